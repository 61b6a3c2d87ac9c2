package status

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCodeOfUnwrapsWrappedError(t *testing.T) {
	base := New(ErrDataCorrupted, "bad checksum")
	wrapped := fmt.Errorf("read field: %w", base)
	require.Equal(t, ErrDataCorrupted, CodeOf(wrapped))
}

func TestCodeOfNonStatusErrorIsInternal(t *testing.T) {
	require.Equal(t, ErrInternal, CodeOf(errors.New("plain")))
}

func TestBodyOfReturnsAttachedBody(t *testing.T) {
	type mismatch struct{ min, max uint32 }
	err := NewWithBody(ErrNotSupportedInterfaceVersion, "interface version mismatch", &mismatch{min: 1, max: 3})

	body, ok := BodyOf(err).(*mismatch)
	require.True(t, ok)
	require.Equal(t, uint32(1), body.min)
	require.Equal(t, uint32(3), body.max)
}

func TestBodyOfNilForPlainError(t *testing.T) {
	require.Nil(t, BodyOf(errors.New("plain")))
	require.Nil(t, BodyOf(New(ErrInternal, "no body attached")))
}
