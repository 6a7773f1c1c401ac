// Package vizstore is the in-memory visualization cache. Entries are
// published only after they are fully constructed and are immutable
// thereafter; they live for the process lifetime unless trimmed.
package vizstore

import (
	"sync"

	"github.com/google/uuid"

	"github.com/hyperjump/kotoba/internal/models"
)

// Store holds completed visualizations keyed by generated id. Safe for
// concurrent store/retrieve from independent requests.
type Store struct {
	mu      sync.RWMutex
	entries map[string]*models.Visualization
	// order holds ids oldest-first so Trim can keep the most recent.
	order []string
}

// New returns an empty store.
func New() *Store {
	return &Store{entries: make(map[string]*models.Visualization)}
}

// Store assigns viz a fresh unique id, inserts it, and returns the id.
// The caller must not mutate viz afterwards.
func (s *Store) Store(viz *models.Visualization) string {
	id := uuid.NewString()
	viz.ID = id
	s.mu.Lock()
	s.entries[id] = viz
	s.order = append(s.order, id)
	s.mu.Unlock()
	return id
}

// Get returns the visualization for id, or false when unknown.
func (s *Store) Get(id string) (*models.Visualization, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	viz, ok := s.entries[id]
	return viz, ok
}

// IDs returns all stored ids, oldest first.
func (s *Store) IDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.order...)
}

// Size returns the number of stored visualizations.
func (s *Store) Size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Trim evicts the oldest entries until at most max remain, returning the
// remaining count. max <= 0 clears the store.
func (s *Store) Trim(max int) int {
	if max < 0 {
		max = 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.order) > max {
		evict := s.order[:len(s.order)-max]
		for _, id := range evict {
			delete(s.entries, id)
		}
		s.order = append([]string(nil), s.order[len(s.order)-max:]...)
	}
	return len(s.entries)
}
