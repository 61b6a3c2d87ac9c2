package server

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	cspctx "github.com/marmos91/csp/pkg/context"
	"github.com/marmos91/csp/pkg/framing"
	"github.com/marmos91/csp/pkg/registry"
	"github.com/marmos91/csp/pkg/settings"
	"github.com/marmos91/csp/pkg/status"
	"github.com/marmos91/csp/pkg/wire"
)

func testSettings() settings.Config {
	cfg := settings.Defaults()
	cfg.SupportedProtocolVersions = []uint8{1}
	return cfg
}

func encodeGetSettings(protocolVersion uint8) []byte {
	sink := wire.NewSink(4)
	common := cspctx.Common{ProtocolVersion: protocolVersion, MessageType: cspctx.MessageGetSettings}
	_ = framing.EncodeCommonHeader(sink, common)
	return sink.Bytes()
}

func encodeDataMessage(id wire.StructID, version uint32, flags cspctx.DataFlags, payload []byte) []byte {
	sink := wire.NewSink(32 + len(payload))
	common := cspctx.Common{ProtocolVersion: 1, MessageType: cspctx.MessageData}
	_ = framing.EncodeCommonHeader(sink, common)
	d := cspctx.NewData(common, id, version, flags)
	_ = framing.EncodeDataSubHeader(sink, d)
	_, _ = sink.Write(payload)
	return sink.Bytes()
}

func decodeStatus(t *testing.T, reply []byte) *cspctx.Status {
	t.Helper()
	src := wire.NewSource(reply)
	common, err := framing.DecodeCommonHeader(src)
	require.NoError(t, err)
	require.Equal(t, cspctx.MessageStatus, common.MessageType)
	st, err := framing.DecodeStatusSubHeader(src, common, framing.NewBodyForCode)
	require.NoError(t, err)
	return st
}

func TestHandleMessageRejectsUnsupportedProtocolVersion(t *testing.T) {
	srv := New(registry.New(), testSettings())
	reply, err := srv.HandleMessage(context.Background(), encodeGetSettings(9), "test")
	require.NoError(t, err)

	st := decodeStatus(t, reply)
	require.Equal(t, status.ErrNotSupportedProtocolVersion, st.Code)
}

func TestHandleMessageGetSettingsShortCircuits(t *testing.T) {
	srv := New(registry.New(), testSettings())
	reply, err := srv.HandleMessage(context.Background(), encodeGetSettings(1), "test")
	require.NoError(t, err)

	src := wire.NewSource(reply)
	common, err := framing.DecodeCommonHeader(src)
	require.NoError(t, err)
	require.Equal(t, cspctx.MessageGetSettings, common.MessageType)

	decoded, err := settings.Decode(src, common.BigEndian())
	require.NoError(t, err)
	require.Equal(t, testSettings().SupportedProtocolVersions, decoded.SupportedProtocolVersions)
}

func TestHandleMessageNoHandlerRegistered(t *testing.T) {
	srv := New(registry.New(), testSettings())
	id := wire.NewStructID()
	reply, err := srv.HandleMessage(context.Background(), encodeDataMessage(id, 1, 0, []byte{1, 2}), "test")
	require.NoError(t, err)

	st := decodeStatus(t, reply)
	require.Equal(t, status.ErrNoSuchHandler, st.Code)
}

func TestHandleMessageDispatchesToSingleHandler(t *testing.T) {
	reg := registry.New()
	id := wire.NewStructID()
	outID := wire.NewStructID()

	entry := &Entry{
		MinimumVersion: 1,
		CurrentVersion: 1,
		Fn: func(ctx context.Context, d *cspctx.Data, src *wire.Source, clientAddr string) (wire.StructID, []byte, error) {
			b, err := wire.ReadBytes(src, 2)
			if err != nil {
				return wire.StructID{}, nil, err
			}
			return outID, b, nil
		},
	}
	require.NoError(t, reg.Register(id, false, entry))

	srv := New(reg, testSettings())
	reply, err := srv.HandleMessage(context.Background(), encodeDataMessage(id, 1, 0, []byte{7, 8}), "test")
	require.NoError(t, err)

	src := wire.NewSource(reply)
	common, err := framing.DecodeCommonHeader(src)
	require.NoError(t, err)
	require.Equal(t, cspctx.MessageData, common.MessageType)

	d, err := framing.DecodeDataSubHeader(src, common)
	require.NoError(t, err)
	require.Equal(t, outID, d.ID)

	body, err := wire.ReadBytes(src, 2)
	require.NoError(t, err)
	require.Equal(t, []byte{7, 8}, body)
}

func TestHandleMessageRejectsInterfaceVersionOutOfRange(t *testing.T) {
	reg := registry.New()
	id := wire.NewStructID()
	entry := &Entry{
		MinimumVersion: 2,
		CurrentVersion: 3,
		Fn: func(ctx context.Context, d *cspctx.Data, src *wire.Source, clientAddr string) (wire.StructID, []byte, error) {
			return wire.StructID{}, nil, nil
		},
	}
	require.NoError(t, reg.Register(id, false, entry))

	srv := New(reg, testSettings())
	reply, err := srv.HandleMessage(context.Background(), encodeDataMessage(id, 1, 0, nil), "test")
	require.NoError(t, err)

	st := decodeStatus(t, reply)
	require.Equal(t, status.ErrNotSupportedInterfaceVersion, st.Code)
}

func TestHandleMessageMulticastReturnsFirstSuccess(t *testing.T) {
	reg := registry.New()
	id := wire.NewStructID()
	outID := wire.NewStructID()

	makeEntry := func() *Entry {
		return &Entry{
			MinimumVersion: 1,
			CurrentVersion: 1,
			Fn: func(ctx context.Context, d *cspctx.Data, src *wire.Source, clientAddr string) (wire.StructID, []byte, error) {
				b, err := wire.ReadBytes(src, 1)
				if err != nil {
					return wire.StructID{}, nil, err
				}
				return outID, b, nil
			},
		}
	}
	require.NoError(t, reg.Register(id, true, makeEntry()))
	require.NoError(t, reg.Register(id, true, makeEntry()))

	srv := New(reg, testSettings())
	reply, err := srv.HandleMessage(context.Background(), encodeDataMessage(id, 1, 0, []byte{42}), "test")
	require.NoError(t, err)

	src := wire.NewSource(reply)
	common, err := framing.DecodeCommonHeader(src)
	require.NoError(t, err)
	require.Equal(t, cspctx.MessageData, common.MessageType)
}

func TestHandleMessageMulticastRejectsInterfaceVersionOutOfRange(t *testing.T) {
	reg := registry.New()
	id := wire.NewStructID()

	makeEntry := func() *Entry {
		return &Entry{
			MinimumVersion: 2,
			CurrentVersion: 3,
			Fn: func(ctx context.Context, d *cspctx.Data, src *wire.Source, clientAddr string) (wire.StructID, []byte, error) {
				return wire.StructID{}, nil, nil
			},
		}
	}
	require.NoError(t, reg.Register(id, true, makeEntry()))
	require.NoError(t, reg.Register(id, true, makeEntry()))

	srv := New(reg, testSettings())
	reply, err := srv.HandleMessage(context.Background(), encodeDataMessage(id, 1, 0, nil), "test")
	require.NoError(t, err)

	st := decodeStatus(t, reply)
	require.Equal(t, status.ErrNotSupportedInterfaceVersion, st.Code)

	mismatch, ok := st.Body.(*framing.InterfaceVersionMismatch)
	require.True(t, ok, "expected multicast mismatch reply to carry an InterfaceVersionMismatch body")
	require.Equal(t, id, mismatch.ID)
	require.Equal(t, uint32(2), mismatch.MinSupported)
	require.Equal(t, uint32(3), mismatch.CurrentSupported)
}
