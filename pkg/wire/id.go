package wire

import (
	"github.com/google/uuid"
)

// StructID is the 128-bit opaque identifier CSP uses to name a logical
// struct type across peers (spec §3, "Struct Id"). It is backed by a UUID
// the same way the teacher's NFS handle/session ids are, for the same
// reason: a 128-bit value with a well-known textual form and a mature
// library for generating and parsing it.
type StructID [16]byte

// NewStructID generates a random v4 struct id. Used by tests that need a
// fresh id.
func NewStructID() StructID {
	return StructID(uuid.New())
}

// ParseStructID parses the canonical UUID string form of a struct id.
func ParseStructID(s string) (StructID, error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return StructID{}, err
	}
	return StructID(u), nil
}

func (id StructID) String() string {
	return uuid.UUID(id).String()
}

// IsZero reports whether id is the all-zero struct id, used as a sentinel
// for "no struct id" in contexts built before the data sub-header is read.
func (id StructID) IsZero() bool {
	return id == StructID{}
}
