package codec

import (
	"testing"

	"github.com/stretchr/testify/require"

	ctx "github.com/marmos91/csp/pkg/context"
	"github.com/marmos91/csp/pkg/wire"
)

func TestSerializeUnsignedFixedWidthWhenFlagUnset(t *testing.T) {
	d := ctx.NewData(ctx.Common{}, [16]byte{}, 1, 0)
	sink := wire.NewSink(4)
	require.NoError(t, SerializeUnsigned(d, sink, uint32(7)))
	require.Len(t, sink.Bytes(), 4)

	src := wire.NewSource(sink.Bytes())
	out, err := DeserializeUnsigned[uint32](d, src)
	require.NoError(t, err)
	require.Equal(t, uint32(7), out)
}

func TestSerializeUnsignedWidthPrefixedWhenFlagSet(t *testing.T) {
	d := ctx.NewData(ctx.Common{}, [16]byte{}, 1, ctx.SizeOfIntegersMayBeNotEqual)
	sink := wire.NewSink(8)
	require.NoError(t, SerializeUnsigned(d, sink, uint32(9)))
	require.Len(t, sink.Bytes(), 5)
	require.Equal(t, byte(4), sink.Bytes()[0])

	src := wire.NewSource(sink.Bytes())
	out, err := DeserializeUnsigned[uint32](d, src)
	require.NoError(t, err)
	require.Equal(t, uint32(9), out)
}

func TestSerializeSignedWidthPrefixedWhenFlagSet(t *testing.T) {
	d := ctx.NewData(ctx.Common{}, [16]byte{}, 1, ctx.SizeOfIntegersMayBeNotEqual)
	sink := wire.NewSink(8)
	require.NoError(t, SerializeSigned(d, sink, int16(-5)))
	require.Len(t, sink.Bytes(), 3)
	require.Equal(t, byte(2), sink.Bytes()[0])

	src := wire.NewSource(sink.Bytes())
	out, err := DeserializeSigned[int16](d, src)
	require.NoError(t, err)
	require.Equal(t, int16(-5), out)
}
