// Package examples holds small Serializable types that exercise every
// codec path this module implements: the bulk fast path, a version
// converter pair, pointer-graph cycles, and base-struct composition. They
// double as the fixtures cmd/cspd registers and the package's own tests
// round-trip against.
package examples

import (
	"github.com/google/uuid"

	"github.com/marmos91/csp/pkg/status"
	"github.com/marmos91/csp/pkg/traits"
	"github.com/marmos91/csp/pkg/wire"
)

var pingStructID = wire.StructID(uuid.MustParse("8f14e45f-ceea-467e-b0f0-00000000ca11"))

// Ping is an AlwaysSimplyAssignable struct: two bytes, no padding, no
// width transform possible. `Ping{MX: 210, MY: 115}` serializes to
// exactly `[210, 115]` regardless of negotiated flags: Ping's only
// encoding is RawBytes, two single-byte fields with no byte-order or
// width branching.
type Ping struct {
	MX uint8
	MY uint8
}

func (Ping) Traits() traits.Trait      { return traits.AlwaysSimplyAssignable }
func (Ping) StructID() wire.StructID   { return pingStructID }
func (Ping) PrivateVersions() []uint32 { return []uint32{1} }
func (p Ping) RawBytes() []byte        { return []byte{p.MX, p.MY} }
func (p *Ping) SetRawBytes(b []byte) error {
	if len(b) != 2 {
		return status.New(status.ErrDataCorrupted, "Ping wire image must be exactly 2 bytes")
	}
	p.MX, p.MY = b[0], b[1]
	return nil
}

// Pong is Ping's reply counterpart, registered under its own struct id so
// a single connection can carry request/response pairs without a shared
// id colliding in the registry.
var pongStructID = wire.StructID(uuid.MustParse("8f14e45f-ceea-467e-b0f0-00000000ca12"))

type Pong struct {
	Echoed Ping
}

func (Pong) Traits() traits.Trait      { return traits.AlwaysSimplyAssignable }
func (Pong) StructID() wire.StructID   { return pongStructID }
func (Pong) PrivateVersions() []uint32 { return []uint32{1} }
func (p Pong) RawBytes() []byte        { return p.Echoed.RawBytes() }
func (p *Pong) SetRawBytes(b []byte) error {
	return p.Echoed.SetRawBytes(b)
}
