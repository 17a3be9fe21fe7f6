package registry

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizeHandle(t *testing.T) {
	require.Equal(t, "alice", NormalizeHandle("@alice"))
	require.Equal(t, "alice", NormalizeHandle("alice"))
	require.Equal(t, "alice", NormalizeHandle(" @alice "))
}

func TestNormalizeHandleIsIdempotent(t *testing.T) {
	for _, h := range []string{"@bob", "bob", "@", ""} {
		once := NormalizeHandle(h)
		require.Equal(t, once, NormalizeHandle(once))
	}
}

func TestDisplayHandle(t *testing.T) {
	require.Equal(t, "@carol", DisplayHandle("carol"))
	require.Equal(t, "@carol", DisplayHandle("@carol"))
}
