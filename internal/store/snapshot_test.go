package store

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recall/internal/domain"
)

func TestSnapshot_SaveLoadRoundtrip(t *testing.T) {
	dir := t.TempDir()
	snap := New(dir)

	now := time.Now().UTC().Truncate(time.Second)
	records := []domain.Record{
		{ID: 0, Content: "termux installation guide", Timestamp: now, Metadata: map[string]any{"source": "cli"}},
		{ID: 1, Content: "python setup tutorial", Timestamp: now.Add(time.Minute)},
	}
	require.NoError(t, snap.Save(records))

	loaded, err := snap.Load()
	require.NoError(t, err)
	require.Len(t, loaded, 2)
	for i := range records {
		assert.Equal(t, records[i].ID, loaded[i].ID)
		assert.Equal(t, records[i].Content, loaded[i].Content)
		assert.True(t, records[i].Timestamp.Equal(loaded[i].Timestamp))
	}
	assert.Equal(t, "cli", loaded[0].Metadata["source"])
}

func TestSnapshot_LoadMissingFileIsEmptyCorpus(t *testing.T) {
	snap := New(t.TempDir())

	records, err := snap.Load()
	assert.NoError(t, err)
	assert.Empty(t, records)
}

func TestSnapshot_LoadCorruptFileIsReported(t *testing.T) {
	dir := t.TempDir()
	snap := New(dir)
	require.NoError(t, os.WriteFile(snap.Path(), []byte("{not valid json"), 0o644))

	_, err := snap.Load()
	assert.ErrorIs(t, err, domain.ErrCorruptSnapshot)
}

func TestSnapshot_SaveCreatesDataDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")
	snap := New(dir)

	require.NoError(t, snap.Save(nil))
	_, err := os.Stat(snap.Path())
	assert.NoError(t, err)
}

func TestSnapshot_SaveLeavesNoTempFile(t *testing.T) {
	dir := t.TempDir()
	snap := New(dir)
	require.NoError(t, snap.Save([]domain.Record{{ID: 0, Content: "x", Timestamp: time.Now()}}))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "snapshot.json", entries[0].Name())
}
