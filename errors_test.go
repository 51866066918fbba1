package valkey

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIsKindMatchesWrappedError(t *testing.T) {
	base := errors.New("boom")
	wrapped := transportError(base)

	require.True(t, IsKind(wrapped, KindTransport))
	require.False(t, IsKind(wrapped, KindValkey))
	require.ErrorIs(t, wrapped, base)
}

func TestIsKindFalseForForeignError(t *testing.T) {
	require.False(t, IsKind(errors.New("not ours"), KindClient))
	require.False(t, IsKind(nil, KindClient))
}

func TestValkeyErrorMessage(t *testing.T) {
	err := ValkeyError("WRONGTYPE Operation against a key holding the wrong kind of value")
	require.True(t, IsKind(err, KindValkey))
	require.Contains(t, err.Error(), "WRONGTYPE")
}
