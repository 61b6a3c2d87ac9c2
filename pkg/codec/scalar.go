package codec

import (
	ctx "github.com/marmos91/csp/pkg/context"
	"github.com/marmos91/csp/pkg/wire"
)

// SerializeUnsigned and DeserializeUnsigned are the per-field routing a
// generated struct's slow-path codec performs for every unsigned
// arithmetic field (spec §4.D's integer-width transform): when the
// session has negotiated SizeOfIntegersMayBeNotEqual, every such field is
// framed with a leading width byte via WriteWidthPrefixedUnsigned/
// ReadWidthPrefixedUnsigned instead of at its fixed native width.
func SerializeUnsigned[T wire.Unsigned](d *ctx.Data, sink *wire.Sink, v T) error {
	if d.DataFlags.Has(ctx.SizeOfIntegersMayBeNotEqual) {
		return wire.WriteWidthPrefixedUnsigned(sink, v, d.BigEndian())
	}
	return wire.WriteFixed(sink, v, d.BigEndian())
}

func DeserializeUnsigned[T wire.Unsigned](d *ctx.Data, src *wire.Source) (T, error) {
	if d.DataFlags.Has(ctx.SizeOfIntegersMayBeNotEqual) {
		return wire.ReadWidthPrefixedUnsigned[T](src, d.BigEndian())
	}
	return wire.ReadFixed[T](src, d.BigEndian())
}

// SerializeSigned and DeserializeSigned are the signed counterparts.
func SerializeSigned[T wire.Signed](d *ctx.Data, sink *wire.Sink, v T) error {
	if d.DataFlags.Has(ctx.SizeOfIntegersMayBeNotEqual) {
		return wire.WriteWidthPrefixedSigned(sink, v, d.BigEndian())
	}
	return wire.WriteFixedSigned(sink, v, d.BigEndian())
}

func DeserializeSigned[T wire.Signed](d *ctx.Data, src *wire.Source) (T, error) {
	if d.DataFlags.Has(ctx.SizeOfIntegersMayBeNotEqual) {
		return wire.ReadWidthPrefixedSigned[T](src, d.BigEndian())
	}
	return wire.ReadFixedSigned[T](src, d.BigEndian())
}
