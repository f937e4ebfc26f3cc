// Package memstore keeps a mochadb document in memory. Saves take a deep
// copy so later edits to the live tree do not leak into the saved state.
package memstore

import (
	"github.com/vegasq/mochadb/store"
)

// Store is an in-memory store.Backend.
type Store struct {
	saved *store.Node
	saves int
}

// New returns an empty in-memory backend.
func New() *Store {
	return &Store{}
}

// Load returns a copy of the last saved tree, or nil before the first save.
func (s *Store) Load() (*store.Node, error) {
	if s.saved == nil {
		return nil, nil
	}
	return s.saved.Clone(), nil
}

// Save keeps a copy of root.
func (s *Store) Save(root *store.Node) error {
	s.saved = root.Clone()
	s.saves++
	return nil
}

// Close is a no-op.
func (s *Store) Close() error { return nil }

// Name identifies the backend.
func (s *Store) Name() string { return "memory" }

// Saves returns how many times Save was called.
func (s *Store) Saves() int { return s.saves }

// Snapshot returns the last saved tree without copying it.
func (s *Store) Snapshot() *store.Node { return s.saved }
