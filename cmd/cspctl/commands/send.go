package commands

import (
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"

	cspctx "github.com/marmos91/csp/pkg/context"
	"github.com/marmos91/csp/pkg/framing"
	"github.com/marmos91/csp/pkg/wire"
)

var (
	sendStructID string
	sendHexBody  string
	sendVersion  uint32
)

var sendCmd = &cobra.Command{
	Use:   "send",
	Short: "Send a raw Data message by struct id and hex payload",
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := wire.ParseStructID(sendStructID)
		if err != nil {
			return fmt.Errorf("parse struct id: %w", err)
		}
		body, err := hex.DecodeString(sendHexBody)
		if err != nil {
			return fmt.Errorf("decode hex payload: %w", err)
		}

		common := cspctx.Common{ProtocolVersion: 2, MessageType: cspctx.MessageData}
		d := cspctx.NewData(common, id, sendVersion, 0)

		sink := wire.NewSink(32 + len(body))
		if err := framing.EncodeCommonHeader(sink, common); err != nil {
			return err
		}
		if err := framing.EncodeDataSubHeader(sink, d); err != nil {
			return err
		}
		if _, err := sink.Write(body); err != nil {
			return err
		}

		reply, err := roundTrip(sink.Bytes())
		if err != nil {
			return err
		}
		fmt.Printf("reply (%d bytes): %s\n", len(reply), hex.EncodeToString(reply))
		return nil
	},
}

func init() {
	sendCmd.Flags().StringVar(&sendStructID, "id", "", "struct id (UUID form)")
	sendCmd.Flags().StringVar(&sendHexBody, "body", "", "hex-encoded message body")
	sendCmd.Flags().Uint32Var(&sendVersion, "version", 1, "interface version to declare")
	sendCmd.MarkFlagRequired("id")
}
