package settings

import (
	"testing"

	"github.com/stretchr/testify/require"

	ctx "github.com/marmos91/csp/pkg/context"
	"github.com/marmos91/csp/pkg/wire"
)

func TestDefaultsLoadWithoutConfigFile(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, Defaults().ListenAddr, cfg.ListenAddr)
	require.Equal(t, Defaults().SupportedProtocolVersions, cfg.SupportedProtocolVersions)
}

func TestPolicyProjection(t *testing.T) {
	cfg := Defaults()
	cfg.MandatoryCommonFlags = uint16(ctx.BigEndianFormat)
	cfg.ForbiddenCommonFlags = uint16(ctx.ExtendedFormat)

	p := cfg.Policy()
	require.Equal(t, cfg.SupportedProtocolVersions, p.SupportedProtocolVersions)
	require.Equal(t, ctx.BigEndianFormat, p.MandatoryCommonFlags)
	require.Equal(t, ctx.ExtendedFormat, p.ForbiddenCommonFlags)
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	cfg := Defaults()
	cfg.Interfaces = []InterfaceDescriptor{
		{ID: wire.NewStructID(), CurrentVersion: 3, MandatoryDataFlags: ctx.AllowUnmanagedPointers, ForbiddenDataFlags: ctx.SimplyAssignableTagsOptimizationsAreTurnedOff},
		{ID: wire.NewStructID(), CurrentVersion: 1},
	}

	sink := wire.NewSink(64)
	require.NoError(t, cfg.Encode(sink, false))

	src := wire.NewSource(sink.Bytes())
	out, err := Decode(src, false)
	require.NoError(t, err)

	require.Equal(t, cfg.SupportedProtocolVersions, out.SupportedProtocolVersions)
	require.Equal(t, cfg.MandatoryCommonFlags, out.MandatoryCommonFlags)
	require.Equal(t, cfg.ForbiddenCommonFlags, out.ForbiddenCommonFlags)
	require.Equal(t, cfg.Interfaces, out.Interfaces)
}

func TestEncodeDecodeRoundTripBigEndian(t *testing.T) {
	cfg := Defaults()
	cfg.Interfaces = []InterfaceDescriptor{{ID: wire.NewStructID(), CurrentVersion: 42}}

	sink := wire.NewSink(64)
	require.NoError(t, cfg.Encode(sink, true))

	src := wire.NewSource(sink.Bytes())
	out, err := Decode(src, true)
	require.NoError(t, err)
	require.Equal(t, cfg.Interfaces, out.Interfaces)
}
