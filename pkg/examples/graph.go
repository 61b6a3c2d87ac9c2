package examples

import (
	"github.com/google/uuid"

	"github.com/marmos91/csp/pkg/allocator"
	"github.com/marmos91/csp/pkg/codec"
	ctx "github.com/marmos91/csp/pkg/context"
	"github.com/marmos91/csp/pkg/traits"
	"github.com/marmos91/csp/pkg/wire"
)

var nodeStructID = wire.StructID(uuid.MustParse("8f14e45f-ceea-467e-b0f0-000000001002"))

// Node is a linked-list element whose Next pointer may be nil, point
// forward, or — when CheckRecursivePointers is negotiated — point back
// to an already-serialized Node, forming a cycle. It carries no
// simply-assignable marker (Trait 0), so the Body Processor always routes
// it through SerializeFields/DeserializeFields (spec §4.E's "Otherwise"
// branch), which is how a generated routine would handle any struct
// containing a pointer field.
type Node struct {
	Value uint32
	Next  *Node
}

func (Node) Traits() traits.Trait      { return 0 }
func (Node) StructID() wire.StructID   { return nodeStructID }
func (Node) PrivateVersions() []uint32 { return []uint32{1} }

func (n Node) SerializeFields(d *ctx.Data, sink *wire.Sink) error {
	if err := codec.SerializeUnsigned(d, sink, n.Value); err != nil {
		return err
	}
	return codec.SerializePointer(d, sink, n.Next, func(d *ctx.Data, sink *wire.Sink, next *Node) error {
		return next.SerializeFields(d, sink)
	})
}

func (n *Node) DeserializeFields(d *ctx.Data, src *wire.Source) error {
	value, err := codec.DeserializeUnsigned[uint32](d, src)
	if err != nil {
		return err
	}
	n.Value = value

	next, err := codec.DeserializePointer(d, src, allocator.NewHeap[Node](), func(d *ctx.Data, src *wire.Source, out *Node) error {
		return out.DeserializeFields(d, src)
	})
	if err != nil {
		return err
	}
	n.Next = next
	return nil
}
