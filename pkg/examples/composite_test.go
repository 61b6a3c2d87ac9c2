package examples

import (
	"testing"

	"github.com/stretchr/testify/require"

	ctx "github.com/marmos91/csp/pkg/context"
	"github.com/marmos91/csp/pkg/wire"
)

func TestEntityRoundTrip(t *testing.T) {
	d := ctx.NewData(ctx.Common{}, entityStructID, 1, 0)
	e := Entity{Identity: Identity{ID: wire.NewStructID(), Name: "dragon"}, Health: 42}

	sink := wire.NewSink(64)
	require.NoError(t, e.SerializeFields(d, sink))

	var out Entity
	src := wire.NewSource(sink.Bytes())
	require.NoError(t, out.DeserializeFields(d, src))
	require.Equal(t, e, out)
}

func TestEntityEmptyName(t *testing.T) {
	d := ctx.NewData(ctx.Common{}, entityStructID, 1, 0)
	e := Entity{Identity: Identity{ID: wire.NewStructID()}, Health: 0}

	sink := wire.NewSink(32)
	require.NoError(t, e.SerializeFields(d, sink))

	var out Entity
	src := wire.NewSource(sink.Bytes())
	require.NoError(t, out.DeserializeFields(d, src))
	require.Equal(t, e, out)
}
