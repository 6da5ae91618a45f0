// Package store persists the corpus as a JSON snapshot of its record list.
// Vectors and vocabulary are derived state and are never written to disk;
// a reload replays the records instead.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"recall/internal/domain"
)

const snapshotFile = "snapshot.json"

type snapshot struct {
	Records []domain.Record `json:"records"`
}

// Snapshot reads and writes the corpus snapshot under a data directory.
type Snapshot struct {
	path string
}

// New creates a snapshot store rooted at dataDir.
func New(dataDir string) *Snapshot {
	return &Snapshot{path: filepath.Join(dataDir, snapshotFile)}
}

// Path returns the snapshot file location.
func (s *Snapshot) Path() string { return s.path }

// Save writes the ordered record list durably. The write goes through a
// temp file and a rename so a failure mid-write never leaves a truncated
// snapshot behind.
func (s *Snapshot) Save(records []domain.Record) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}
	data, err := json.MarshalIndent(snapshot{Records: records}, "", "  ")
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("commit snapshot: %w", err)
	}
	return nil
}

// Load returns the record list of a prior snapshot. A missing file is a
// first run and yields an empty list with no error; a file that exists but
// cannot be decoded is reported as corrupt, never masked as "no data".
func (s *Snapshot) Load() ([]domain.Record, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read snapshot: %w", err)
	}
	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrCorruptSnapshot, s.path, err)
	}
	return snap.Records, nil
}
