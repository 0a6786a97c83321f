// FILE: storage.go
package logship

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// BacklogStore persists the pending queue across restarts. The storage key
// is private to this subsystem and must not be shared with other consumers
// of the same backend. Save failures are swallowed by the caller; logging
// persistence must never raise into the host application.
type BacklogStore interface {
	// Save serializes the ordered batch under the fixed key, overwriting
	// any prior value.
	Save(batch []Record) error
	// Load returns the stored sequence and clears the key so the same
	// backlog is never replayed twice. Absence or a decode failure yields
	// an empty result, not an error.
	Load() ([]Record, error)
}

// FileStore keeps the backlog as a JSON array in a single file.
type FileStore struct {
	path string
}

// NewFileStore creates a store rooted at dir. The directory is created
// lazily on the first Save.
func NewFileStore(dir string) *FileStore {
	return &FileStore{path: filepath.Join(dir, backlogFileName)}
}

// Save overwrites the backlog file with the given batch. The write goes
// through a temp file and rename so a crash mid-write cannot corrupt an
// existing backlog.
func (fs *FileStore) Save(batch []Record) error {
	data, err := json.Marshal(batch)
	if err != nil {
		return fmtErrorf("failed to encode backlog: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(fs.path), 0755); err != nil {
		return fmtErrorf("failed to create storage directory: %w", err)
	}

	tmp := fs.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmtErrorf("failed to write backlog: %w", err)
	}
	if err := os.Rename(tmp, fs.path); err != nil {
		return fmtErrorf("failed to commit backlog: %w", err)
	}
	return nil
}

// Load reads and removes the backlog file. A missing file is an empty
// backlog; an unreadable or undecodable file is discarded so it cannot
// wedge startup on every run.
func (fs *FileStore) Load() ([]Record, error) {
	data, err := os.ReadFile(fs.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmtErrorf("failed to read backlog: %w", err)
	}

	// Clear the key before decoding: replaying a corrupt backlog forever
	// is worse than losing it once.
	if err := os.Remove(fs.path); err != nil && !os.IsNotExist(err) {
		return nil, fmtErrorf("failed to clear backlog: %w", err)
	}

	var batch []Record
	if err := json.Unmarshal(data, &batch); err != nil {
		return nil, nil
	}
	return batch, nil
}
