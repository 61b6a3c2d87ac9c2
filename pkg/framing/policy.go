package framing

import ctx "github.com/marmos91/csp/pkg/context"

// Policy is one party's declared mandatory/forbidden flags for both flag
// sets (spec §3: "Each party declares mandatory and forbidden common
// flags; a session must satisfy both"). A Policy also carries the ordered
// list of protocol versions this party supports, highest first (spec §3).
type Policy struct {
	SupportedProtocolVersions []uint8
	MandatoryCommonFlags      ctx.CommonFlags
	ForbiddenCommonFlags      ctx.CommonFlags
	MandatoryDataFlags        ctx.DataFlags
	ForbiddenDataFlags        ctx.DataFlags
}

// PreferredProtocolVersion returns the first (highest) entry of
// SupportedProtocolVersions, spec §3's "peer's preferred" version.
func (p Policy) PreferredProtocolVersion() uint8 {
	if len(p.SupportedProtocolVersions) == 0 {
		return 0
	}
	return p.SupportedProtocolVersions[0]
}

// SupportsProtocolVersion reports whether v is one of p's advertised
// versions.
func (p Policy) SupportsProtocolVersion(v uint8) bool {
	for _, sv := range p.SupportedProtocolVersions {
		if sv == v {
			return true
		}
	}
	return false
}

// CheckCommonFlags reports whether flags satisfies p's mandatory/forbidden
// common-flag policy, and if not, the mismatch body to reply with.
func (p Policy) CheckCommonFlags(flags ctx.CommonFlags) (ok bool, mismatch *CommonFlagsMismatch) {
	if flags.Satisfies(p.MandatoryCommonFlags, p.ForbiddenCommonFlags) {
		return true, nil
	}
	return false, &CommonFlagsMismatch{Forbidden: p.ForbiddenCommonFlags, Mandatory: p.MandatoryCommonFlags}
}

// CheckDataFlags reports whether flags satisfies a struct's declared
// mandatory/forbidden data-flag policy (spec §4.E's generated-routine
// contract, step 2).
func (p Policy) CheckDataFlags(flags ctx.DataFlags, id [16]byte) (ok bool, mismatch *DataFlagsMismatch) {
	if flags.Satisfies(p.MandatoryDataFlags, p.ForbiddenDataFlags) {
		return true, nil
	}
	return false, &DataFlagsMismatch{Forbidden: p.ForbiddenDataFlags, Mandatory: p.MandatoryDataFlags, ID: id}
}
