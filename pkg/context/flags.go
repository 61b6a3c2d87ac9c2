// Package context bundles the buffer, negotiated flags, version, and
// auxiliary state for one serialize/deserialize pass (spec §3 "Context
// objects", §4.C).
package context

// CommonFlags is the 16-bit session-level flag set negotiated once per
// connection (spec §3).
type CommonFlags uint16

const (
	BigEndianFormat CommonFlags = 1 << iota
	Bitness32Format
	ExtendedFormat
)

func (f CommonFlags) Has(flag CommonFlags) bool { return f&flag != 0 }

// Satisfies reports whether f satisfies a party's declared mandatory and
// forbidden flags (spec §3: "a session must satisfy both").
func (f CommonFlags) Satisfies(mandatory, forbidden CommonFlags) bool {
	return f&mandatory == mandatory && f&forbidden == 0
}

// DataFlags is the 16-bit per-message flag set controlling codec
// transforms (spec §3).
type DataFlags uint16

const (
	AlignmentMayBeNotEqual DataFlags = 1 << iota
	SizeOfIntegersMayBeNotEqual
	AllowUnmanagedPointers
	CheckRecursivePointers
	InterfaceVersionsNotMatch
	SimplyAssignableTagsOptimizationsAreTurnedOff
)

func (f DataFlags) Has(flag DataFlags) bool { return f&flag != 0 }

// Normalize enforces spec §3's invariant CheckRecursivePointers =>
// AllowUnmanagedPointers, so callers that set the former never have to
// remember to also set the latter.
func (f DataFlags) Normalize() DataFlags {
	if f.Has(CheckRecursivePointers) {
		f |= AllowUnmanagedPointers
	}
	return f
}

func (f DataFlags) Satisfies(mandatory, forbidden DataFlags) bool {
	return f&mandatory == mandatory && f&forbidden == 0
}

// MessageType discriminates the kind of message a common header introduces
// (spec §4.G).
type MessageType uint8

const (
	MessageData MessageType = iota
	MessageStatus
	MessageGetSettings
	MessageInOut
)

func (m MessageType) String() string {
	switch m {
	case MessageData:
		return "Data"
	case MessageStatus:
		return "Status"
	case MessageGetSettings:
		return "GetSettings"
	case MessageInOut:
		return "InOut"
	default:
		return "Unknown"
	}
}
