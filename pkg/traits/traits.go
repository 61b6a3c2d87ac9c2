// Package traits implements the compile-time type classifier from spec
// §4.B. The source library expresses these as C++ type traits evaluated at
// compile time; Go has no equivalent metaprogramming facility, so each
// marker becomes a bit in a Trait set that a type publishes through a
// single Classified.Traits() method — the "CRTP instance_type → type
// parameter" substitution spec §9 calls for.
package traits

import "github.com/marmos91/csp/pkg/wire"

// Trait is a bitset of the codec-strategy markers spec §4.B defines.
type Trait uint8

const (
	// AlwaysSimplyAssignable types have no padding, no wider-than-expected
	// integers, and alignment 1 — memcopy safe unconditionally.
	AlwaysSimplyAssignable Trait = 1 << iota

	// SimplyAssignableFixedSize types have every field fixed-width;
	// memcopy safe when alignments match.
	SimplyAssignableFixedSize

	// SimplyAssignableAlignedToOne types are aligned to 1 but may contain
	// variable-width integers; memcopy safe when no width transform is
	// needed.
	SimplyAssignableAlignedToOne

	// SimplyAssignable types have assignment-equivalent layout; memcopy
	// safe when alignments match and no width transform is needed.
	SimplyAssignable

	// EndiannessTolerant types are byte-order independent (byte arrays,
	// size-1 element types).
	EndiannessTolerant

	// EmptyType types serialize to zero bytes.
	EmptyType
)

// Has reports whether t includes flag.
func (t Trait) Has(flag Trait) bool { return t&flag != 0 }

// AnySimplyAssignable reports whether t carries any of the four
// simply-assignable markers.
func (t Trait) AnySimplyAssignable() bool {
	return t&(AlwaysSimplyAssignable|SimplyAssignableFixedSize|SimplyAssignableAlignedToOne|SimplyAssignable) != 0
}

// Classified is implemented by any type the Body Processor may be asked to
// serialize. Types with no special codec strategy return Trait(0), which
// routes them to the generated per-struct routine (spec §4.E's "Otherwise"
// branch).
type Classified interface {
	Traits() Trait
}

// Serializable is spec §4.B's capability interface: carrying a struct id
// and the private-version history used by the version converter (spec
// §4.F). PrivateVersions must be non-empty and strictly decreasing, with
// PrivateVersions()[0] equal to the type's current version — the
// invariant spec §3 states for the private-version list.
type Serializable interface {
	Classified
	StructID() wire.StructID
	PrivateVersions() []uint32
}

// CurrentVersion returns s.PrivateVersions()[0], the struct's current
// version.
func CurrentVersion(s Serializable) uint32 {
	versions := s.PrivateVersions()
	if len(versions) == 0 {
		return 0
	}
	return versions[0]
}

// BestCommonVersion returns the highest version in s's private-version
// list that is <= ceiling, and ok=false if no such version exists (spec
// §4.F: "bestCommon == undefined (peer too old)").
func BestCommonVersion(s Serializable, ceiling uint32) (version uint32, ok bool) {
	for _, v := range s.PrivateVersions() {
		if v <= ceiling {
			return v, true
		}
	}
	return 0, false
}
