package wire

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFixedRoundTrip(t *testing.T) {
	sink := NewSink(8)
	require.NoError(t, WriteFixed(sink, uint32(0x11223344), false))
	require.Equal(t, []byte{0x44, 0x33, 0x22, 0x11}, sink.Bytes())

	src := NewSource(sink.Bytes())
	v, err := ReadFixed[uint32](src, false)
	require.NoError(t, err)
	require.Equal(t, uint32(0x11223344), v)
}

func TestFixedBigEndian(t *testing.T) {
	sink := NewSink(8)
	require.NoError(t, WriteFixed(sink, uint32(0x11223344), true))
	require.Equal(t, []byte{0x11, 0x22, 0x33, 0x44}, sink.Bytes())

	src := NewSource(sink.Bytes())
	v, err := ReadFixed[uint32](src, true)
	require.NoError(t, err)
	require.Equal(t, uint32(0x11223344), v)
}

// TestEndiannessByteOrderIndependence exercises spec §8's endianness
// property: serializing little-endian and decoding big-endian on a type
// intended to be endianness tolerant (single bytes) yields the same value.
func TestEndiannessByteOrderIndependence(t *testing.T) {
	sink := NewSink(1)
	require.NoError(t, WriteFixed(sink, uint8(0x7f), false))
	src := NewSource(sink.Bytes())
	b, err := ReadFixed[uint8](src, true)
	require.NoError(t, err)
	require.Equal(t, byte(0x7f), b)
}

func TestWidthPrefixedUnsignedWiden(t *testing.T) {
	// Scenario 3: uint32 = 5 with SizeOfIntegersMayBeNotEqual -> prefix 4
	// then [05 00 00 00], decoded on a 2-byte receiver yields 5.
	sink := NewSink(8)
	require.NoError(t, WriteWidthPrefixedUnsigned(sink, uint32(5), false))
	require.Equal(t, []byte{4, 5, 0, 0, 0}, sink.Bytes())

	src := NewSource(sink.Bytes())
	v, err := ReadWidthPrefixedUnsigned[uint16](src, false)
	require.NoError(t, err)
	require.Equal(t, uint16(5), v)
}

func TestWidthPrefixedUnsignedNarrowLossy(t *testing.T) {
	// 0x10005 cannot fit in a 2-byte receiver -> ErrDataCorrupted.
	sink := NewSink(8)
	require.NoError(t, WriteWidthPrefixedUnsigned(sink, uint32(0x10005), false))

	src := NewSource(sink.Bytes())
	_, err := ReadWidthPrefixedUnsigned[uint16](src, false)
	require.Error(t, err)
}

func TestWidthPrefixedSignedRoundTrip(t *testing.T) {
	sink := NewSink(8)
	require.NoError(t, WriteWidthPrefixedSigned(sink, int32(-5), false))

	src := NewSource(sink.Bytes())
	v, err := ReadWidthPrefixedSigned[int64](src, false)
	require.NoError(t, err)
	require.Equal(t, int64(-5), v)
}

func TestSizeTBitness(t *testing.T) {
	sink := NewSink(8)
	require.NoError(t, WriteSizeT(sink, 7, false, false))
	require.Equal(t, []byte{7, 0, 0, 0, 0, 0, 0, 0}, sink.Bytes())

	sink32 := NewSink(4)
	require.NoError(t, WriteSizeT(sink32, 7, false, true))
	require.Equal(t, []byte{7, 0, 0, 0}, sink32.Bytes())
}

func TestFloatRoundTrip(t *testing.T) {
	sink := NewSink(8)
	require.NoError(t, WriteFloat64(sink, 3.5, false))
	src := NewSource(sink.Bytes())
	v, err := ReadFloat64(src, false)
	require.NoError(t, err)
	require.Equal(t, 3.5, v)
}
