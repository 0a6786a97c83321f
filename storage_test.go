// FILE: storage_test.go
package logship

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestFileStoreRoundTrip verifies save/load restores the identical ordered
// content and that the key is cleared after a successful load
func TestFileStoreRoundTrip(t *testing.T) {
	tmpDir := t.TempDir()
	store := NewFileStore(tmpDir)

	batch := []Record{
		{
			AppID:     "test-app",
			Level:     LevelInfo,
			Message:   "first",
			Timestamp: time.Date(2026, 8, 23, 10, 0, 0, 0, time.UTC),
			Device:    map[string]any{"platform": "linux"},
			Metadata:  map[string]any{"request_id": "r1"},
		},
		{
			AppID:     "test-app",
			Level:     LevelError,
			Message:   "second",
			Timestamp: time.Date(2026, 8, 23, 10, 0, 1, 0, time.UTC),
		},
	}
	require.NoError(t, store.Save(batch))

	loaded, err := store.Load()
	require.NoError(t, err)
	require.Len(t, loaded, 2)

	assert.Equal(t, "first", loaded[0].Message)
	assert.Equal(t, LevelInfo, loaded[0].Level)
	assert.Equal(t, "test-app", loaded[0].AppID)
	assert.True(t, batch[0].Timestamp.Equal(loaded[0].Timestamp))
	assert.Equal(t, map[string]any{"platform": "linux"}, loaded[0].Device)
	assert.Equal(t, map[string]any{"request_id": "r1"}, loaded[0].Metadata)

	assert.Equal(t, "second", loaded[1].Message)
	assert.Equal(t, LevelError, loaded[1].Level)

	// The key is cleared: a second load returns empty
	loaded, err = store.Load()
	require.NoError(t, err)
	assert.Empty(t, loaded)
}

// TestFileStoreLoadAbsent verifies a missing key is an empty backlog, not an error
func TestFileStoreLoadAbsent(t *testing.T) {
	store := NewFileStore(t.TempDir())

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, loaded)
}

// TestFileStoreLoadCorrupt verifies an undecodable backlog is discarded
func TestFileStoreLoadCorrupt(t *testing.T) {
	tmpDir := t.TempDir()
	store := NewFileStore(tmpDir)

	path := filepath.Join(tmpDir, backlogFileName)
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, loaded)

	// The corrupt file does not survive to wedge the next startup
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

// TestFileStoreSaveOverwrites verifies save replaces any prior value under
// the fixed key
func TestFileStoreSaveOverwrites(t *testing.T) {
	store := NewFileStore(t.TempDir())

	require.NoError(t, store.Save([]Record{{Message: "old"}}))
	require.NoError(t, store.Save([]Record{{Message: "new-1"}, {Message: "new-2"}}))

	loaded, err := store.Load()
	require.NoError(t, err)
	require.Len(t, loaded, 2)
	assert.Equal(t, "new-1", loaded[0].Message)
	assert.Equal(t, "new-2", loaded[1].Message)
}

// TestFileStoreSaveFailure verifies a write failure surfaces as an error for
// the caller to swallow, without panicking
func TestFileStoreSaveFailure(t *testing.T) {
	if os.Getuid() == 0 {
		t.Skip("root ignores directory permissions")
	}

	tmpDir := t.TempDir()
	readOnly := filepath.Join(tmpDir, "ro")
	require.NoError(t, os.Mkdir(readOnly, 0555))

	store := NewFileStore(filepath.Join(readOnly, "nested"))
	err := store.Save([]Record{{Message: "x"}})
	assert.Error(t, err)
}

// TestFileStoreCreatesDirectory verifies the storage directory is created
// lazily on first save
func TestFileStoreCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")
	store := NewFileStore(dir)

	require.NoError(t, store.Save([]Record{{Message: "x"}}))

	_, err := os.Stat(filepath.Join(dir, backlogFileName))
	assert.NoError(t, err)
}
