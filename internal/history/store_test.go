package history

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_LoadAbsentFile(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "topic-history.json"))

	snap, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, 0, snap.Len())
	assert.NotNil(t, snap.Topics)
}

func TestStore_SaveLoadRoundTrip(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "topic-history.json"))

	d := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	snap := Update(Empty(), []string{"golang", "databases"}, d)
	require.NoError(t, store.Save(snap))

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, 2, loaded.Len())

	stats, ok := loaded.Get("golang")
	require.True(t, ok)
	assert.Equal(t, "2026-03-02", stats.FirstSeen)
	assert.Equal(t, []string{"2026-03-02"}, stats.RecentDays)
}

func TestStore_LoadCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "topic-history.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	_, err := NewStore(path).Load()
	assert.Error(t, err)
}

func TestStore_SaveOverwritesAtomically(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "topic-history.json")
	store := NewStore(path)

	d := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	require.NoError(t, store.Save(Update(Empty(), []string{"one"}, d)))
	require.NoError(t, store.Save(Update(Empty(), []string{"two"}, d)))

	loaded, err := store.Load()
	require.NoError(t, err)
	_, hasOne := loaded.Get("one")
	_, hasTwo := loaded.Get("two")
	assert.False(t, hasOne)
	assert.True(t, hasTwo)

	// No temp files left behind.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}
