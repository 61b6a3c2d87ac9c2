package version

import (
	"testing"

	"github.com/stretchr/testify/require"

	ctx "github.com/marmos91/csp/pkg/context"
	"github.com/marmos91/csp/pkg/status"
	"github.com/marmos91/csp/pkg/traits"
	"github.com/marmos91/csp/pkg/wire"
)

type fakeValue struct {
	versions []uint32
	id       wire.StructID
	payload  int32
}

func (f fakeValue) Traits() traits.Trait     { return 0 }
func (f fakeValue) StructID() wire.StructID  { return f.id }
func (f fakeValue) PrivateVersions() []uint32 { return f.versions }

type fakeConverter struct {
	toOldCalled   bool
	fromOldCalled bool
}

func (c *fakeConverter) ToOld(d *ctx.Data, sink *wire.Sink, value fakeValue, targetVersion uint32) error {
	c.toOldCalled = true
	return wire.WriteFixedSigned(sink, value.payload, d.BigEndian())
}

func (c *fakeConverter) FromOld(d *ctx.Data, src *wire.Source, sourceVersion uint32) (fakeValue, error) {
	c.fromOldCalled = true
	payload, err := wire.ReadFixedSigned[int32](src, d.BigEndian())
	if err != nil {
		return fakeValue{}, err
	}
	return fakeValue{payload: payload}, nil
}

func TestSerializePreludeNoConversionNeeded(t *testing.T) {
	common := ctx.Common{}
	d := ctx.NewData(common, wire.StructID{}, 3, 0)
	value := fakeValue{versions: []uint32{3, 2, 1}}

	sink := wire.NewSink(4)
	code, err := SerializePrelude[fakeValue](d, sink, value, nil)
	require.NoError(t, err)
	require.Equal(t, status.Success, code)
}

func TestSerializePreludeConvertsToOld(t *testing.T) {
	common := ctx.Common{}
	d := ctx.NewData(common, wire.StructID{}, 1, ctx.InterfaceVersionsNotMatch)
	value := fakeValue{versions: []uint32{3, 2, 1}, payload: 42}

	conv := &fakeConverter{}
	sink := wire.NewSink(4)
	code, err := SerializePrelude[fakeValue](d, sink, value, conv)
	require.NoError(t, err)
	require.Equal(t, status.NoFurtherProcessingRequired, code)
	require.True(t, conv.toOldCalled)
}

func TestSerializePreludeTooOldPeerFails(t *testing.T) {
	common := ctx.Common{}
	d := ctx.NewData(common, wire.StructID{}, 0, ctx.InterfaceVersionsNotMatch)
	value := fakeValue{versions: []uint32{3, 2, 1}}

	sink := wire.NewSink(4)
	code, err := SerializePrelude[fakeValue](d, sink, value, &fakeConverter{})
	require.Error(t, err)
	require.Equal(t, status.ErrNotSupportedInterfaceVersion, code)
}

func TestDeserializePreludeConvertsFromOld(t *testing.T) {
	common := ctx.Common{}
	d := ctx.NewData(common, wire.StructID{}, 1, ctx.InterfaceVersionsNotMatch)
	d.VersionsMismatched = true

	sink := wire.NewSink(4)
	require.NoError(t, wire.WriteFixedSigned(sink, int32(99), d.BigEndian()))

	src := wire.NewSource(sink.Bytes())
	conv := &fakeConverter{}
	value, handled, err := DeserializePrelude[fakeValue](d, src, conv)
	require.NoError(t, err)
	require.True(t, handled)
	require.True(t, conv.fromOldCalled)
	require.Equal(t, int32(99), value.payload)
}

func TestDeserializePreludeNoOpWhenVersionsMatch(t *testing.T) {
	common := ctx.Common{}
	d := ctx.NewData(common, wire.StructID{}, 1, 0)

	src := wire.NewSource(nil)
	_, handled, err := DeserializePrelude[fakeValue](d, src, &fakeConverter{})
	require.NoError(t, err)
	require.False(t, handled)
}
