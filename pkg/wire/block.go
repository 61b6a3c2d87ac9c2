package wire

// WriteRawBlock emits N values of a fixed-width unsigned/enum type as a
// single N*sizeof(T)-byte write when byte order is native (bigEndian
// false on a little-endian wire, matching the struct's in-memory layout),
// and falls back to per-element emission otherwise. This is the "raw
// blocks" bulk path from spec §4.D, reused by the composite codec's
// simply-assignable fast path (spec §4.E) for arrays of arithmetic
// elements.
func WriteRawBlock[T Unsigned](sink *Sink, values []T, bigEndian bool) error {
	if !bigEndian {
		width := sizeOf[T]()
		buf := make([]byte, 0, len(values)*width)
		for _, v := range values {
			buf = append(buf, putUint(uint64(v), width, false)...)
		}
		_, err := sink.Write(buf)
		return err
	}
	for _, v := range values {
		if err := WriteFixed(sink, v, bigEndian); err != nil {
			return err
		}
	}
	return nil
}

// ReadRawBlock is the dual of WriteRawBlock.
func ReadRawBlock[T Unsigned](src *Source, n int, bigEndian bool) ([]T, error) {
	out := make([]T, n)
	for i := range out {
		v, err := ReadFixed[T](src, bigEndian)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// WriteBytes and ReadBytes move an EndiannessTolerant byte block (spec
// §4.B: "individual byte order irrelevant") straight through with no
// per-element transform at all.
func WriteBytes(sink *Sink, b []byte) error {
	_, err := sink.Write(b)
	return err
}

func ReadBytes(src *Source, n int) ([]byte, error) {
	b, err := src.ReadN(n)
	if err != nil {
		return nil, err
	}
	out := make([]byte, n)
	copy(out, b)
	return out, nil
}
