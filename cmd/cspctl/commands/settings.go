package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	cspctx "github.com/marmos91/csp/pkg/context"
	"github.com/marmos91/csp/pkg/framing"
	"github.com/marmos91/csp/pkg/settings"
	"github.com/marmos91/csp/pkg/wire"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Send a GetSettings message and print the decoded reply",
	RunE: func(cmd *cobra.Command, args []string) error {
		sink := wire.NewSink(8)
		common := cspctx.Common{ProtocolVersion: 2, MessageType: cspctx.MessageGetSettings}
		if err := framing.EncodeCommonHeader(sink, common); err != nil {
			return err
		}

		reply, err := roundTrip(sink.Bytes())
		if err != nil {
			return err
		}

		src := wire.NewSource(reply)
		replyCommon, err := framing.DecodeCommonHeader(src)
		if err != nil {
			return fmt.Errorf("decode reply header: %w", err)
		}
		if replyCommon.MessageType != cspctx.MessageGetSettings {
			return fmt.Errorf("unexpected reply message type: %s", replyCommon.MessageType)
		}

		cfg, err := settings.Decode(src, replyCommon.BigEndian())
		if err != nil {
			return fmt.Errorf("decode settings body: %w", err)
		}

		fmt.Printf("supported protocol versions: %v\n", cfg.SupportedProtocolVersions)
		fmt.Printf("mandatory common flags: %d\n", cfg.MandatoryCommonFlags)
		fmt.Printf("forbidden common flags: %d\n", cfg.ForbiddenCommonFlags)
		for _, iface := range cfg.Interfaces {
			fmt.Printf("interface %s: version %d\n", iface.ID, iface.CurrentVersion)
		}
		return nil
	},
}
