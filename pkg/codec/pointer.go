package codec

import (
	"unsafe"

	"github.com/marmos91/csp/pkg/allocator"
	ctx "github.com/marmos91/csp/pkg/context"
	"github.com/marmos91/csp/pkg/status"
	"github.com/marmos91/csp/pkg/wire"
)

// SerializePointer implements spec §4.E's pointer-field serialize path.
// serializeValue encodes the pointee itself and is invoked once per unique
// address. Pointer fields are refused outright unless AllowUnmanagedPointers
// is negotiated.
func SerializePointer[T any](d *ctx.Data, sink *wire.Sink, p *T, serializeValue func(*ctx.Data, *wire.Sink, *T) error) error {
	if !d.DataFlags.Has(ctx.AllowUnmanagedPointers) {
		return status.New(status.ErrNotCompatibleDataFlagsSettings, "pointer field requires AllowUnmanagedPointers")
	}

	if !d.DataFlags.Has(ctx.CheckRecursivePointers) {
		if p == nil {
			return sink.WriteByte(0)
		}
		if err := sink.WriteByte(1); err != nil {
			return err
		}
		return serializeValue(d, sink, p)
	}

	if p == nil {
		return wire.WriteSizeT(sink, 0, d.BigEndian(), d.Bitness32())
	}

	addr := uintptr(unsafe.Pointer(p))
	if offset, seen := d.PointerMap.OffsetOf(addr); seen {
		return wire.WriteSizeT(sink, uint64(offset), d.BigEndian(), d.Bitness32())
	}

	if err := wire.WriteSizeT(sink, 1, d.BigEndian(), d.Bitness32()); err != nil {
		return err
	}
	d.PointerMap.RecordOffset(addr, sink.Len())
	return serializeValue(d, sink, p)
}

// DeserializePointer implements spec §4.E's pointer-field deserialize
// path: offset 0 decodes to nil, offset 1 allocates a fresh pointee via
// alloc and records its address for later back-references, and any other
// offset must resolve a previously recorded address in the pointer map
// (spec §4.E: "any other offset k must be < tell() and is looked up in
// the pointer map... no new allocation").
func DeserializePointer[T any](d *ctx.Data, src *wire.Source, alloc allocator.Allocator[T], deserializeValue func(*ctx.Data, *wire.Source, *T) error) (*T, error) {
	if !d.DataFlags.Has(ctx.AllowUnmanagedPointers) {
		return nil, status.New(status.ErrNotCompatibleDataFlagsSettings, "pointer field requires AllowUnmanagedPointers")
	}

	if !d.DataFlags.Has(ctx.CheckRecursivePointers) {
		marker, err := src.ReadByte()
		if err != nil {
			return nil, err
		}
		if marker == 0 {
			return nil, nil
		}
		obj, err := alloc.New()
		if err != nil {
			return nil, err
		}
		if err := deserializeValue(d, src, obj); err != nil {
			return nil, err
		}
		if d.AddedPointers != nil {
			d.AddedPointers.Add(obj)
		}
		return obj, nil
	}

	offset, err := wire.ReadSizeT(src, d.BigEndian(), d.Bitness32())
	if err != nil {
		return nil, err
	}

	switch offset {
	case 0:
		return nil, nil
	case 1:
		obj, err := alloc.New()
		if err != nil {
			return nil, err
		}
		pos := src.Tell()
		d.PointerMap.RecordAddress(pos, uintptr(unsafe.Pointer(obj)))
		if err := deserializeValue(d, src, obj); err != nil {
			return nil, err
		}
		if d.AddedPointers != nil {
			d.AddedPointers.Add(obj)
		}
		return obj, nil
	default:
		if offset >= uint64(src.Tell()) {
			return nil, status.New(status.ErrDataCorrupted, "pointer offset does not precede current read position")
		}
		addr, ok := d.PointerMap.AddressOf(int(offset))
		if !ok {
			return nil, status.New(status.ErrDataCorrupted, "pointer offset does not resolve to a previously decoded address")
		}
		return (*T)(unsafe.Pointer(addr)), nil
	}
}
