package context

import (
	"github.com/marmos91/csp/pkg/status"
	"github.com/marmos91/csp/pkg/wire"
)

// Common is the part of every context shared by data, status, and
// settings passes (spec §3, §4.C): the negotiated protocol version,
// message type, and common flags.
type Common struct {
	ProtocolVersion uint8
	MessageType     MessageType
	CommonFlags     CommonFlags
}

// BigEndian reports whether this pass uses big-endian byte order for
// non-header scalars.
func (c Common) BigEndian() bool { return c.CommonFlags.Has(BigEndianFormat) }

// Bitness32 reports whether size_t values are framed as 4 bytes.
func (c Common) Bitness32() bool { return c.CommonFlags.Has(Bitness32Format) }

// Data extends Common with the per-message state a data pass needs (spec
// §3, §4.C): the target struct id, the sender's interface version for it,
// the negotiated data flags, whether interface versions are known to
// differ, and the optional pointer-tracking machinery.
type Data struct {
	Common

	ID               wire.StructID
	InterfaceVersion uint32
	DataFlags        DataFlags

	// VersionsMismatched records whether the peer's interface version for
	// ID differs from this side's current version — distinct from the
	// DataFlags.InterfaceVersionsNotMatch bit, which only declares that
	// the session negotiated the *capability* to run converters at all.
	VersionsMismatched bool

	PointerMap    *PointerMap
	AddedPointers *AddedPointers

	// AuxUsingHeapAllocation selects whether pointer targets decoded
	// during this pass come from a heap allocator or a caller-supplied
	// bump allocator (spec §5's "forTempUseHeap" handler property).
	AuxUsingHeapAllocation bool
}

// NewData builds a Data context with the pointer-tracking fields
// allocated exactly when the negotiated flags require them (spec §4.J
// step 4): a PointerMap only under CheckRecursivePointers, an
// AddedPointers container only under AllowUnmanagedPointers.
func NewData(common Common, id wire.StructID, interfaceVersion uint32, flags DataFlags) *Data {
	flags = flags.Normalize()
	d := &Data{
		Common:           common,
		ID:               id,
		InterfaceVersion: interfaceVersion,
		DataFlags:        flags,
	}
	if flags.Has(CheckRecursivePointers) {
		d.PointerMap = NewPointerMap()
	}
	if flags.Has(AllowUnmanagedPointers) {
		d.AddedPointers = NewAddedPointers()
	}
	return d
}

// Status extends Common with the status code and kind-specific body of a
// Status message (spec §3, §4.H).
type Status struct {
	Common
	Code status.Code
	Body StatusBody
}

// StatusBody is implemented by every kind-specific status payload from
// spec §4.H so the framing layer can encode/decode them polymorphically
// while the dispatcher and client code work with the concrete type.
type StatusBody interface {
	Encode(sink *wire.Sink, bigEndian bool) error
	Decode(src *wire.Source, bigEndian bool) error
}
