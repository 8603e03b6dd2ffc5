package feedback

import (
	"context"
	"sync"
	"time"
)

// DefaultRetention is the number of entries a persistent store keeps.
const DefaultRetention = 1000

// Store persists the feedback log.
type Store interface {
	Append(ctx context.Context, e *Entry) error
	// List returns entries with Timestamp >= since, oldest first.
	List(ctx context.Context, since time.Time) ([]*Entry, error)
}

// InMemoryStore is a threadsafe in-memory store for tests and local runs.
type InMemoryStore struct {
	mu        sync.RWMutex
	entries   []*Entry
	retention int
}

func NewInMemoryStore(retention int) *InMemoryStore {
	if retention <= 0 {
		retention = DefaultRetention
	}
	return &InMemoryStore{retention: retention}
}

func (s *InMemoryStore) Append(ctx context.Context, e *Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = trim(append(s.entries, cloneEntry(e)), s.retention)
	return nil
}

func (s *InMemoryStore) List(ctx context.Context, since time.Time) ([]*Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return filterSince(s.entries, since), nil
}

// trim drops the oldest entries beyond the retention cap.
func trim(entries []*Entry, retention int) []*Entry {
	if retention > 0 && len(entries) > retention {
		return append([]*Entry(nil), entries[len(entries)-retention:]...)
	}
	return entries
}

func filterSince(entries []*Entry, since time.Time) []*Entry {
	out := make([]*Entry, 0, len(entries))
	for _, e := range entries {
		if !e.Timestamp.Before(since) {
			out = append(out, cloneEntry(e))
		}
	}
	return out
}
