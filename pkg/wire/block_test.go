package wire

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRawBlockRoundTripLittleEndian(t *testing.T) {
	sink := NewSink(16)
	values := []uint32{1, 2, 3, 0xdeadbeef}
	require.NoError(t, WriteRawBlock(sink, values, false))

	src := NewSource(sink.Bytes())
	out, err := ReadRawBlock[uint32](src, len(values), false)
	require.NoError(t, err)
	require.Equal(t, values, out)
}

func TestRawBlockRoundTripBigEndian(t *testing.T) {
	sink := NewSink(16)
	values := []uint16{0x1122, 0x3344}
	require.NoError(t, WriteRawBlock(sink, values, true))

	src := NewSource(sink.Bytes())
	out, err := ReadRawBlock[uint16](src, len(values), true)
	require.NoError(t, err)
	require.Equal(t, values, out)
}

func TestBytesRoundTrip(t *testing.T) {
	sink := NewSink(8)
	require.NoError(t, WriteBytes(sink, []byte("hello")))

	src := NewSource(sink.Bytes())
	out, err := ReadBytes(src, 5)
	require.NoError(t, err)
	require.Equal(t, []byte("hello"), out)
}

func TestSourceOverflow(t *testing.T) {
	src := NewSource([]byte{1, 2})
	_, err := src.ReadN(3)
	require.Error(t, err)
}

func TestSourceSeekAndTell(t *testing.T) {
	src := NewSource([]byte{1, 2, 3, 4})
	_, err := src.ReadN(2)
	require.NoError(t, err)
	require.Equal(t, 2, src.Tell())

	require.NoError(t, src.Seek(0))
	b, err := src.ReadByte()
	require.NoError(t, err)
	require.Equal(t, byte(1), b)
}
