package wire

import (
	"math"

	"github.com/marmos91/csp/pkg/status"
)

// Unsigned is the set of unsigned integer (and unsigned-enum) widths the
// primitive codec knows how to transform and byte-swap.
type Unsigned interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64
}

// Signed is the signed counterpart of Unsigned.
type Signed interface {
	~int8 | ~int16 | ~int32 | ~int64
}

func swap(b []byte) {
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
}

// putUint writes the low n bytes of v into a fresh n-byte slice in the
// requested byte order.
func putUint(v uint64, n int, bigEndian bool) []byte {
	b := make([]byte, n)
	for i := 0; i < n; i++ {
		b[i] = byte(v >> (8 * uint(i)))
	}
	if bigEndian {
		swap(b)
	}
	return b
}

// getUint reassembles an n-byte (n<=8) field in the requested byte order
// into a uint64.
func getUint(b []byte, bigEndian bool) uint64 {
	n := len(b)
	tmp := make([]byte, n)
	copy(tmp, b)
	if bigEndian {
		swap(tmp)
	}
	var v uint64
	for i := 0; i < n; i++ {
		v |= uint64(tmp[i]) << (8 * uint(i))
	}
	return v
}

// WriteFixed writes v at its native width with no integer-width transform —
// the path taken when SizeOfIntegersMayBeNotEqual is not set, or for
// fixed-width arithmetic per spec §4.D.
func WriteFixed[T Unsigned](sink *Sink, v T, bigEndian bool) error {
	width := sizeOf[T]()
	_, err := sink.Write(putUint(uint64(v), width, bigEndian))
	return err
}

// ReadFixed is the dual of WriteFixed.
func ReadFixed[T Unsigned](src *Source, bigEndian bool) (T, error) {
	width := sizeOf[T]()
	b, err := src.ReadN(width)
	if err != nil {
		return 0, err
	}
	return T(getUint(b, bigEndian)), nil
}

// WriteFixedSigned/ReadFixedSigned mirror WriteFixed/ReadFixed for signed
// integers; two's complement bit patterns round-trip identically to the
// unsigned path, so only the Go type differs.
func WriteFixedSigned[T Signed](sink *Sink, v T, bigEndian bool) error {
	width := sizeOfSigned[T]()
	_, err := sink.Write(putUint(uint64(uintOf(v, width)), width, bigEndian))
	return err
}

func ReadFixedSigned[T Signed](src *Source, bigEndian bool) (T, error) {
	width := sizeOfSigned[T]()
	b, err := src.ReadN(width)
	if err != nil {
		return 0, err
	}
	return T(signExtend(getUint(b, bigEndian), width)), nil
}

func sizeOf[T Unsigned]() int {
	var v T
	switch any(v).(type) {
	case uint8:
		return 1
	case uint16:
		return 2
	case uint32:
		return 4
	default:
		return 8
	}
}

func sizeOfSigned[T Signed]() int {
	var v T
	switch any(v).(type) {
	case int8:
		return 1
	case int16:
		return 2
	case int32:
		return 4
	default:
		return 8
	}
}

func uintOf[T Signed](v T, width int) uint64 {
	u := uint64(v)
	if width < 8 {
		mask := uint64(1)<<(8*uint(width)) - 1
		u &= mask
	}
	return u
}

func signExtend(v uint64, width int) int64 {
	if width >= 8 {
		return int64(v)
	}
	shift := uint(64 - 8*width)
	return int64(v<<shift) >> shift
}

// WriteWidthPrefixedUnsigned implements spec §4.D's integer-width
// transform for an unsigned value: a single leading byte carrying
// sizeof(T), followed by that many value bytes. Used when
// SizeOfIntegersMayBeNotEqual is set.
func WriteWidthPrefixedUnsigned[T Unsigned](sink *Sink, v T, bigEndian bool) error {
	width := sizeOf[T]()
	if err := sink.WriteByte(byte(width)); err != nil {
		return err
	}
	_, err := sink.Write(putUint(uint64(v), width, bigEndian))
	return err
}

// ReadWidthPrefixedUnsigned is the dual of WriteWidthPrefixedUnsigned. It
// reads the sender's width prefix and narrows or zero-extends into the
// receiver's native width T, failing with ErrDataCorrupted if a narrowing
// read would lose information.
func ReadWidthPrefixedUnsigned[T Unsigned](src *Source, bigEndian bool) (T, error) {
	prefix, err := src.ReadByte()
	if err != nil {
		return 0, err
	}
	senderWidth := int(prefix)
	if senderWidth > 8 {
		return 0, status.New(status.ErrTypeSizeIsTooBig, "sender width exceeds 8 bytes")
	}
	raw, err := src.ReadN(senderWidth)
	if err != nil {
		return 0, err
	}
	value := getUint(raw, bigEndian)

	nativeWidth := sizeOf[T]()
	if senderWidth > nativeWidth {
		mask := uint64(1)<<(8*uint(nativeWidth)) - 1
		if value&^mask != 0 {
			return 0, status.New(status.ErrDataCorrupted, "narrowing integer read would lose data")
		}
	}
	return T(value), nil
}

// WriteWidthPrefixedSigned/ReadWidthPrefixedSigned are the signed
// counterparts: sign extension on widen, and a sign-consistency check on
// narrow (spec §4.D: "any bit pattern not matching the sign of the low
// native-sized portion" fails with ErrDataCorrupted).
func WriteWidthPrefixedSigned[T Signed](sink *Sink, v T, bigEndian bool) error {
	width := sizeOfSigned[T]()
	if err := sink.WriteByte(byte(width)); err != nil {
		return err
	}
	_, err := sink.Write(putUint(uintOf(v, width), width, bigEndian))
	return err
}

func ReadWidthPrefixedSigned[T Signed](src *Source, bigEndian bool) (T, error) {
	prefix, err := src.ReadByte()
	if err != nil {
		return 0, err
	}
	senderWidth := int(prefix)
	if senderWidth > 8 {
		return 0, status.New(status.ErrTypeSizeIsTooBig, "sender width exceeds 8 bytes")
	}
	raw, err := src.ReadN(senderWidth)
	if err != nil {
		return 0, err
	}
	rawValue := getUint(raw, bigEndian)
	wide := signExtend(rawValue, senderWidth)

	nativeWidth := sizeOfSigned[T]()
	if senderWidth > nativeWidth {
		narrow := signExtend(uint64(wide), nativeWidth)
		if narrow != wide {
			return 0, status.New(status.ErrDataCorrupted, "narrowing signed integer read would change value")
		}
		wide = narrow
	}
	return T(wide), nil
}

// WriteFloat32/WriteFloat64 encode IEEE-754 values at their fixed native
// width. Floats never take the integer-width-transform path: spec §4.D
// scopes that transform to "non-fixed-width arithmetic/enum", and float
// layout is fixed by the type, not by the sender's choice of a narrower
// representation.
func WriteFloat32(sink *Sink, v float32, bigEndian bool) error {
	return WriteFixed(sink, math.Float32bits(v), bigEndian)
}

func ReadFloat32(src *Source, bigEndian bool) (float32, error) {
	bits, err := ReadFixed[uint32](src, bigEndian)
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(bits), nil
}

func WriteFloat64(sink *Sink, v float64, bigEndian bool) error {
	return WriteFixed(sink, math.Float64bits(v), bigEndian)
}

func ReadFloat64(src *Source, bigEndian bool) (float64, error) {
	bits, err := ReadFixed[uint64](src, bigEndian)
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(bits), nil
}

// WriteSizeT and ReadSizeT implement spec §4.D's size_t framing: 4 or 8
// bytes selected by the session's Bitness32Format common flag, independent
// of the sender's native size_t width.
func WriteSizeT(sink *Sink, v uint64, bigEndian, bitness32 bool) error {
	width := 8
	if bitness32 {
		width = 4
	}
	_, err := sink.Write(putUint(v, width, bigEndian))
	return err
}

func ReadSizeT(src *Source, bigEndian, bitness32 bool) (uint64, error) {
	width := 8
	if bitness32 {
		width = 4
	}
	b, err := src.ReadN(width)
	if err != nil {
		return 0, err
	}
	return getUint(b, bigEndian), nil
}
