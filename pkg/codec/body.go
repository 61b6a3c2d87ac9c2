// Package codec implements the composite codec ("Body Processor") from
// spec §4.E: fast-path eligibility for bulk-copy, per-value dispatch for
// arithmetic/enum/pointer/simply-assignable/empty types, and the
// generated-per-struct-routine contract of spec §4.E/§4.F that
// hand-written Serializable types satisfy directly (spec §9: "a
// hand-written implementation that satisfies the contract is
// equivalent").
package codec

import (
	ctx "github.com/marmos91/csp/pkg/context"
	"github.com/marmos91/csp/pkg/metrics"
	"github.com/marmos91/csp/pkg/status"
	"github.com/marmos91/csp/pkg/traits"
	"github.com/marmos91/csp/pkg/wire"
)

// RawAssignable is implemented by a type carrying one of the
// simply-assignable markers. RawBytes returns the value's exact wire
// image under native byte order and no integer-width transform; SetRawBytes
// is its dual. A hand-written Serializable type that is, say,
// AlwaysSimplyAssignable implements RawBytes as a fixed sequence of field
// writes with no branching — functionally the bulk memcpy spec §4.E
// describes, expressed portably instead of by reinterpreting struct
// memory.
type RawAssignable interface {
	traits.Classified
	RawBytes() []byte
	SetRawBytes([]byte) error
}

// StructSerializer is the generated-per-struct routine contract from spec
// §4.E: field-by-field serialize/deserialize, invoked when no fast path is
// eligible or when the type carries no simply-assignable marker at all
// (spec §4.E's "Otherwise" branch).
type StructSerializer interface {
	traits.Serializable
	SerializeFields(d *ctx.Data, sink *wire.Sink) error
	DeserializeFields(d *ctx.Data, src *wire.Source) error
}

// FastPathEligible implements spec §4.E's five-condition bulk-copy
// eligibility test for a RawAssignable type. serializableVersion and
// sessionInterfaceVersion implement condition 2 ("if T is Serializable,
// T.currentInterfaceVersion <= session.interfaceVersion"); pass
// serializableVersion == nil when T does not also implement Serializable.
func FastPathEligible(d *ctx.Data, tr traits.Trait, serializableVersion *uint32, sessionInterfaceVersion uint32, sessionNeedsEndianSwap bool) bool {
	eligible := fastPathEligible(d, tr, serializableVersion, sessionInterfaceVersion, sessionNeedsEndianSwap)
	metrics.ObserveCodecPath(eligible)
	return eligible
}

func fastPathEligible(d *ctx.Data, tr traits.Trait, serializableVersion *uint32, sessionInterfaceVersion uint32, sessionNeedsEndianSwap bool) bool {
	switch {
	case tr.Has(traits.AlwaysSimplyAssignable):
		// Condition 1: always memcopy safe, no further alignment check.
	case tr.Has(traits.SimplyAssignableFixedSize):
		if d.DataFlags.Has(ctx.AlignmentMayBeNotEqual) {
			return false
		}
	case tr.Has(traits.SimplyAssignableAlignedToOne):
		if d.DataFlags.Has(ctx.SizeOfIntegersMayBeNotEqual) {
			return false
		}
	case tr.Has(traits.SimplyAssignable):
		if d.DataFlags.Has(ctx.AlignmentMayBeNotEqual) || d.DataFlags.Has(ctx.SizeOfIntegersMayBeNotEqual) {
			return false
		}
	default:
		return false
	}

	// Condition 2.
	if serializableVersion != nil && *serializableVersion > sessionInterfaceVersion {
		return false
	}
	// Condition 3.
	if d.DataFlags.Has(ctx.SimplyAssignableTagsOptimizationsAreTurnedOff) {
		return false
	}
	// Condition 4.
	if sessionNeedsEndianSwap && !tr.Has(traits.EndiannessTolerant) {
		return false
	}
	return true
}

// CheckDataFlagsCompatibility implements step 2 of the generated-routine
// contract: a struct declares mandatory/forbidden data flags, and a
// session whose negotiated flags violate them fails closed.
func CheckDataFlagsCompatibility(flags, mandatory, forbidden ctx.DataFlags) error {
	if flags.Satisfies(mandatory, forbidden) {
		return nil
	}
	return status.New(status.ErrNotCompatibleDataFlagsSettings, "negotiated data flags violate struct's declared policy")
}
