package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	cspctx "github.com/marmos91/csp/pkg/context"
	"github.com/marmos91/csp/pkg/examples"
	"github.com/marmos91/csp/pkg/framing"
	"github.com/marmos91/csp/pkg/status"
	"github.com/marmos91/csp/pkg/wire"
)

var (
	pingMX uint8
	pingMY uint8
)

var pingCmd = &cobra.Command{
	Use:   "ping",
	Short: "Send a Ping message and print the decoded Pong reply",
	RunE: func(cmd *cobra.Command, args []string) error {
		ping := examples.Ping{MX: pingMX, MY: pingMY}

		common := cspctx.Common{ProtocolVersion: 2, MessageType: cspctx.MessageData}
		d := cspctx.NewData(common, ping.StructID(), 1, 0)

		sink := wire.NewSink(32)
		if err := framing.EncodeCommonHeader(sink, common); err != nil {
			return err
		}
		if err := framing.EncodeDataSubHeader(sink, d); err != nil {
			return err
		}
		if _, err := sink.Write(ping.RawBytes()); err != nil {
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

		switch replyCommon.MessageType {
		case cspctx.MessageStatus:
			st, err := framing.DecodeStatusSubHeader(src, replyCommon, framing.NewBodyForCode)
			if err != nil {
				return fmt.Errorf("decode status reply: %w", err)
			}
			return fmt.Errorf("server returned status %s", st.Code)
		case cspctx.MessageData:
			rd, err := framing.DecodeDataSubHeader(src, replyCommon)
			if err != nil {
				return fmt.Errorf("decode data reply header: %w", err)
			}
			body, err := src.ReadN(src.Remaining())
			if err != nil {
				return err
			}
			var pong examples.Pong
			if err := pong.SetRawBytes(body); err != nil {
				return err
			}
			fmt.Printf("pong from %s: mx=%d my=%d\n", rd.ID, pong.Echoed.MX, pong.Echoed.MY)
			return nil
		default:
			return status.New(status.ErrInternal, "unexpected reply message type")
		}
	},
}

func init() {
	pingCmd.Flags().Uint8Var(&pingMX, "mx", 210, "Ping.MX value")
	pingCmd.Flags().Uint8Var(&pingMY, "my", 115, "Ping.MY value")
}
