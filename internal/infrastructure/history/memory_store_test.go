package history

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMemoryStoreAddDedupesAndTrims(t *testing.T) {
	store := NewMemoryStore(filepath.Join(t.TempDir(), "profile.json"))

	added, err := store.Add("  always use pnpm  ")
	require.NoError(t, err)
	require.True(t, added)

	added, err = store.Add("always use pnpm")
	require.NoError(t, err)
	require.False(t, added)

	added, err = store.Add("   ")
	require.NoError(t, err)
	require.False(t, added)

	memories, err := store.List()
	require.NoError(t, err)
	require.Equal(t, []string{"always use pnpm"}, memories)
}

func TestMemoryStoreRemoveAndClear(t *testing.T) {
	store := NewMemoryStore(filepath.Join(t.TempDir(), "profile.json"))
	for _, fact := range []string{"a", "b", "c"} {
		_, err := store.Add(fact)
		require.NoError(t, err)
	}

	removed, err := store.Remove(1)
	require.NoError(t, err)
	require.True(t, removed)

	removed, err = store.Remove(5)
	require.NoError(t, err)
	require.False(t, removed)

	removed, err = store.Remove(-1)
	require.NoError(t, err)
	require.False(t, removed)

	memories, _ := store.List()
	require.Equal(t, []string{"a", "c"}, memories)

	require.NoError(t, store.Clear())
	memories, _ = store.List()
	require.Empty(t, memories)
}
