// Package commands implements the cspctl CLI, a thin client for manual
// protocol exercise against a running cspd.
package commands

import (
	"github.com/spf13/cobra"
)

var addr string

var rootCmd = &cobra.Command{
	Use:           "cspctl",
	Short:         "cspctl exercises a CSP server by hand",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&addr, "addr", "127.0.0.1:9190", "cspd listen address")
	rootCmd.AddCommand(pingCmd)
	rootCmd.AddCommand(sendCmd)
	rootCmd.AddCommand(settingsCmd)
}
