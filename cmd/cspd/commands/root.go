// Package commands implements the cspd CLI.
package commands

import (
	"github.com/spf13/cobra"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "cspd",
	Short: "cspd runs a CSP message dispatcher over TCP",
	Long: `cspd loads a server configuration, registers the built-in example
handlers, and serves CSP messages over a TCP listener.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (YAML); falls back to defaults and CSP_ environment variables")
	rootCmd.AddCommand(startCmd)
}
