// Package selectionstore persists per-session selection state.
package selectionstore

import (
	"context"
	"sync"
	"time"

	"github.com/yanqian/facility-heatmap/internal/domain/selection"
)

type entry struct {
	state     selection.State
	expiresAt time.Time
}

// MemoryStore is an in-memory implementation of selection.Store for tests/dev.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]entry
	now     func() time.Time
}

// NewMemoryStore constructs a store backed by process memory.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]entry),
		now:     time.Now,
	}
}

// Get implements selection.Store.
func (s *MemoryStore) Get(_ context.Context, sessionID string) (selection.State, bool, error) {
	s.mu.RLock()
	record, ok := s.entries[sessionID]
	s.mu.RUnlock()
	if !ok {
		return selection.State{}, false, nil
	}
	if s.hasExpired(record.expiresAt) {
		s.evictExpired(sessionID)
		return selection.State{}, false, nil
	}
	return record.state, true, nil
}

// Save implements selection.Store. A non-positive ttl never expires.
func (s *MemoryStore) Save(_ context.Context, sessionID string, state selection.State, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	exp := time.Time{}
	if ttl > 0 {
		exp = s.now().Add(ttl)
	}
	s.entries[sessionID] = entry{state: state, expiresAt: exp}
	return nil
}

// evictExpired deletes sessionID only if it is still expired under the write
// lock; a Save that raced the read keeps its fresh entry.
func (s *MemoryStore) evictExpired(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if record, ok := s.entries[sessionID]; ok && s.hasExpired(record.expiresAt) {
		delete(s.entries, sessionID)
	}
}

func (s *MemoryStore) hasExpired(ts time.Time) bool {
	if ts.IsZero() {
		return false
	}
	return ts.Before(s.now())
}

var _ selection.Store = (*MemoryStore)(nil)
