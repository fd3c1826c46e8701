package history

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Store persists a Snapshot as a single JSON document. There is no
// concurrent writer; the discipline is read the previous snapshot fully,
// replace it atomically on write.
type Store struct {
	path string
}

// NewStore creates a store rooted at path. The file does not need to
// exist yet.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the backing file path.
func (s *Store) Path() string { return s.path }

// Load reads the persisted snapshot. A missing file is not an error and
// yields an empty snapshot; a corrupt or unreadable file is surfaced so
// the caller can proceed with an empty in-memory history and log it.
func (s *Store) Load() (Snapshot, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return Empty(), nil
		}
		return Empty(), fmt.Errorf("read topic history: %w", err)
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return Empty(), fmt.Errorf("parse topic history: %w", err)
	}
	if snap.Topics == nil {
		snap.Topics = map[string]TopicStats{}
	}
	return snap, nil
}

// Save rewrites the history wholesale: marshal to a temp file in the same
// directory, then rename over the old snapshot.
func (s *Store) Save(snap Snapshot) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create history directory: %w", err)
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal topic history: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".topic-history-*.json")
	if err != nil {
		return fmt.Errorf("create temp history file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write topic history: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close topic history: %w", err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace topic history: %w", err)
	}
	return nil
}
