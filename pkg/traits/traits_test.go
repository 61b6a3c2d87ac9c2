package traits

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/marmos91/csp/pkg/wire"
)

type fakeSerializable struct {
	versions []uint32
}

func (f fakeSerializable) Traits() Trait            { return 0 }
func (f fakeSerializable) StructID() wire.StructID  { return wire.StructID{} }
func (f fakeSerializable) PrivateVersions() []uint32 { return f.versions }

func TestCurrentVersion(t *testing.T) {
	s := fakeSerializable{versions: []uint32{3, 2, 1}}
	require.Equal(t, uint32(3), CurrentVersion(s))
}

func TestBestCommonVersion(t *testing.T) {
	s := fakeSerializable{versions: []uint32{3, 2, 1}}

	v, ok := BestCommonVersion(s, 3)
	require.True(t, ok)
	require.Equal(t, uint32(3), v)

	v, ok = BestCommonVersion(s, 1)
	require.True(t, ok)
	require.Equal(t, uint32(1), v)

	_, ok = BestCommonVersion(s, 0)
	require.False(t, ok)
}

func TestTraitHasAndAnySimplyAssignable(t *testing.T) {
	tr := SimplyAssignableFixedSize
	require.True(t, tr.Has(SimplyAssignableFixedSize))
	require.False(t, tr.Has(AlwaysSimplyAssignable))
	require.True(t, tr.AnySimplyAssignable())
	require.False(t, Trait(0).AnySimplyAssignable())
}
