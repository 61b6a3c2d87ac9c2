package examples

import (
	"github.com/google/uuid"

	"github.com/marmos91/csp/pkg/codec"
	ctx "github.com/marmos91/csp/pkg/context"
	"github.com/marmos91/csp/pkg/traits"
	"github.com/marmos91/csp/pkg/wire"
)

var entityStructID = wire.StructID(uuid.MustParse("8f14e45f-ceea-467e-b0f0-000000001003"))

// Identity is a base struct that derived types embed (here: Entity). Spec
// §9's "diamond inheritance → composition" note replaces virtual base
// classes with an explicit field of the base type; the generated
// serialize routine emits it exactly once regardless of how many
// interfaces the derived type also satisfies.
type Identity struct {
	ID   wire.StructID
	Name string
}

func (b Identity) serialize(d *ctx.Data, sink *wire.Sink) error {
	if err := wire.WriteBytes(sink, b.ID[:]); err != nil {
		return err
	}
	nameBytes := []byte(b.Name)
	if err := wire.WriteFixed(sink, uint32(len(nameBytes)), d.BigEndian()); err != nil {
		return err
	}
	_, err := sink.Write(nameBytes)
	return err
}

func (b *Identity) deserialize(d *ctx.Data, src *wire.Source) error {
	idBytes, err := src.ReadN(16)
	if err != nil {
		return err
	}
	copy(b.ID[:], idBytes)
	n, err := wire.ReadFixed[uint32](src, d.BigEndian())
	if err != nil {
		return err
	}
	nameBytes, err := src.ReadN(int(n))
	if err != nil {
		return err
	}
	b.Name = string(nameBytes)
	return nil
}

// Entity embeds Identity exactly once, then adds its own fields. Even
// though a richer hierarchy might route through Identity by more than one
// interface, the wire layout only ever contains one base slice, emitted
// by the single Identity field below — there is no second embedding to
// accidentally duplicate it.
type Entity struct {
	Identity
	Health uint32
}

func (Entity) Traits() traits.Trait      { return 0 }
func (Entity) StructID() wire.StructID   { return entityStructID }
func (Entity) PrivateVersions() []uint32 { return []uint32{1} }

func (e Entity) SerializeFields(d *ctx.Data, sink *wire.Sink) error {
	if err := e.Identity.serialize(d, sink); err != nil {
		return err
	}
	return codec.SerializeUnsigned(d, sink, e.Health)
}

func (e *Entity) DeserializeFields(d *ctx.Data, src *wire.Source) error {
	if err := e.Identity.deserialize(d, src); err != nil {
		return err
	}
	health, err := codec.DeserializeUnsigned[uint32](d, src)
	if err != nil {
		return err
	}
	e.Health = health
	return nil
}
