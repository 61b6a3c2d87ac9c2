package codec

import (
	"encoding/binary"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/require"

	ctx "github.com/marmos91/csp/pkg/context"
	"github.com/marmos91/csp/pkg/traits"
	"github.com/marmos91/csp/pkg/wire"
)

func rawUint32(v uint32) []byte {
	b := make([]byte, 4)
	binary.LittleEndian.PutUint32(b, v)
	return b
}

func serializeUint32Elem(d *ctx.Data, sink *wire.Sink, v uint32) error {
	return wire.WriteFixed(sink, v, d.BigEndian())
}

func deserializeUint32Elem(d *ctx.Data, src *wire.Source) (uint32, error) {
	return wire.ReadFixed[uint32](src, d.BigEndian())
}

func TestSerializeArrayFastPath(t *testing.T) {
	d := ctx.NewData(ctx.Common{}, [16]byte{}, 1, 0)
	sink := wire.NewSink(16)
	values := []uint32{1, 2, 3}

	require.NoError(t, SerializeArray(d, sink, values, traits.AlwaysSimplyAssignable, nil, 1, rawUint32, serializeUint32Elem))
	require.Len(t, sink.Bytes(), 12)
	require.Equal(t, uint32(1), binary.LittleEndian.Uint32(sink.Bytes()[0:4]))
	require.Equal(t, uint32(3), binary.LittleEndian.Uint32(sink.Bytes()[8:12]))
}

func TestArrayRoundTripSlowPath(t *testing.T) {
	common := ctx.Common{ProtocolVersion: 1, CommonFlags: ctx.BigEndianFormat}
	d := ctx.NewData(common, [16]byte{}, 1, 0)
	sink := wire.NewSink(16)
	values := []uint32{10, 20, 30}

	newer := uint32(2)
	require.NoError(t, SerializeArray(d, sink, values, traits.AlwaysSimplyAssignable, &newer, 1, rawUint32, serializeUint32Elem))

	d2 := ctx.NewData(common, [16]byte{}, 1, 0)
	src := wire.NewSource(sink.Bytes())
	out, err := DeserializeArray(d2, src, 3, deserializeUint32Elem)
	require.NoError(t, err)
	require.Equal(t, values, out)
}

func TestSerializeArrayRecordsElementOffsetsWhenTrackingPointers(t *testing.T) {
	d := ctx.NewData(ctx.Common{}, [16]byte{}, 1, ctx.CheckRecursivePointers)
	sink := wire.NewSink(16)
	values := []uint32{5, 6}

	newer := uint32(9)
	require.NoError(t, SerializeArray(d, sink, values, 0, &newer, 1, rawUint32, serializeUint32Elem))
	require.NotNil(t, d.PointerMap)

	off, ok := d.PointerMap.OffsetOf(uintptr(unsafe.Pointer(&values[0])))
	require.True(t, ok)
	require.Equal(t, 0, off)
	off, ok = d.PointerMap.OffsetOf(uintptr(unsafe.Pointer(&values[1])))
	require.True(t, ok)
	require.Equal(t, 4, off)
}
