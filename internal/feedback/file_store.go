package feedback

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// FileStore keeps the feedback log as a JSON array on disk, rewritten
// atomically and trimmed to the retention cap on every append.
type FileStore struct {
	mu        sync.Mutex
	path      string
	retention int
}

func NewFileStore(path string, retention int) *FileStore {
	if retention <= 0 {
		retention = DefaultRetention
	}
	return &FileStore{path: path, retention: retention}
}

func (s *FileStore) Append(ctx context.Context, e *Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	entries, err := s.load()
	if err != nil {
		return err
	}
	entries = trim(append(entries, cloneEntry(e)), s.retention)
	return s.save(entries)
}

func (s *FileStore) List(ctx context.Context, since time.Time) ([]*Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entries, err := s.load()
	if err != nil {
		return nil, err
	}
	return filterSince(entries, since), nil
}

func (s *FileStore) load() ([]*Entry, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read feedback log: %w", err)
	}
	if len(data) == 0 {
		return nil, nil
	}
	var entries []*Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("decode feedback log %s: %w", s.path, err)
	}
	return entries, nil
}

func (s *FileStore) save(entries []*Entry) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	if dir := filepath.Dir(s.path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create feedback dir: %w", err)
		}
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write feedback log: %w", err)
	}
	return os.Rename(tmp, s.path)
}
