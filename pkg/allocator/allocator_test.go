package allocator

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHeapAllocator(t *testing.T) {
	h := NewHeap[int]()
	v, err := h.New()
	require.NoError(t, err)
	require.NotNil(t, v)
	require.True(t, h.Constructs())
}

func TestKeeperExhaustsBudget(t *testing.T) {
	region := make([]byte, 16)
	k := NewKeeper[int64](region)

	for i := 0; i < 2; i++ {
		_, err := k.New()
		require.NoError(t, err)
	}
	_, err := k.New()
	require.Error(t, err)
}

func TestKeeperResetReclaimsBudget(t *testing.T) {
	region := make([]byte, 8)
	k := NewKeeper[int64](region)
	_, err := k.New()
	require.NoError(t, err)
	require.Equal(t, 0, k.Remaining())

	k.Reset()
	require.Equal(t, 8, k.Remaining())
}

func TestRescaleKeeperScalesUsedBudget(t *testing.T) {
	region := make([]byte, 32)
	k := NewKeeper[int64](region)
	_, err := k.New()
	require.NoError(t, err)
	require.Equal(t, 8, k.used)

	rescaled := RescaleKeeper[int64, int32](k)
	require.Equal(t, 4, rescaled.used)
	require.Equal(t, 32, rescaled.MaxSize())
}
