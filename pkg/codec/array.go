package codec

import (
	"unsafe"

	ctx "github.com/marmos91/csp/pkg/context"
	"github.com/marmos91/csp/pkg/traits"
	"github.com/marmos91/csp/pkg/wire"
)

// SerializeArray implements spec §4.E's array path: "Identical to N-sized
// pointer paths but without allocation. The first fast-path check runs
// once per array." rawBytes returns one element's wire image for the bulk
// path; serializeElem recurses into the per-value dispatch for the slow
// path.
func SerializeArray[T any](
	d *ctx.Data, sink *wire.Sink, values []T,
	tr traits.Trait, serializableVersion *uint32, sessionInterfaceVersion uint32,
	rawBytes func(T) []byte,
	serializeElem func(*ctx.Data, *wire.Sink, T) error,
) error {
	if FastPathEligible(d, tr, serializableVersion, sessionInterfaceVersion, d.BigEndian()) {
		for _, v := range values {
			if _, err := sink.Write(rawBytes(v)); err != nil {
				return err
			}
		}
		return nil
	}

	for i := range values {
		if d.DataFlags.Has(ctx.CheckRecursivePointers) {
			addr := uintptr(unsafe.Pointer(&values[i]))
			d.PointerMap.RecordOffset(addr, sink.Len())
		}
		if err := serializeElem(d, sink, values[i]); err != nil {
			return err
		}
	}
	return nil
}

// DeserializeArray is the dual of SerializeArray for the slow path; the
// bulk path is handled by the caller via wire.ReadRawBlock when the fast
// path is eligible, since only arithmetic/enum raw blocks are specified
// there.
func DeserializeArray[T any](
	d *ctx.Data, src *wire.Source, n int,
	deserializeElem func(*ctx.Data, *wire.Source) (T, error),
) ([]T, error) {
	out := make([]T, n)
	for i := range out {
		v, err := deserializeElem(d, src)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}
