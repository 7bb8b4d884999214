package memstore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"sync"

	"github.com/ntoxeg/narst/pkg/narst/internalerr"
	"github.com/ntoxeg/narst/pkg/narst/memory"
	"github.com/ntoxeg/narst/pkg/narst/nal"
	"github.com/ntoxeg/narst/pkg/narst/store"
)

// Store is an in-memory implementation of store.Store backed by a
// memory.Memory document, optionally persisted to a JSON file.
type Store struct {
	mu   sync.RWMutex
	mem  *memory.Memory
	path string
}

// New creates a new in-memory store.
func New() *Store {
	return &Store{mem: memory.New()}
}

// Open loads the JSON document at path, or starts empty when the file
// does not exist yet. Flush and Close write it back.
func Open(path string) (*Store, error) {
	mem, err := memory.Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		mem = memory.New()
	} else if err != nil {
		return nil, err
	}
	return &Store{mem: mem, path: path}, nil
}

// Close implements store.Store.
func (s *Store) Close() error {
	return s.Flush(context.Background())
}

// Flush persists the document if the store was opened from a file.
func (s *Store) Flush(ctx context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.path == "" {
		return nil
	}
	return memory.Store(s.path, s.mem)
}

// AddBelief appends a belief, assigning the next id and timestamp.
func (s *Store) AddBelief(ctx context.Context, term string, tv nal.TruthValue, embedID *uint64) (store.Belief, error) {
	if term == "" {
		return store.Belief{}, fmt.Errorf("empty term: %w", internalerr.ErrInvalidInput)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mem.Add(term, tv, embedID).Copy(), nil
}

// GetBelief returns a belief by id.
func (s *Store) GetBelief(ctx context.Context, id uint64) (store.Belief, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if it, ok := s.mem.Get(id); ok {
		return it.Copy(), nil
	}
	return store.Belief{}, fmt.Errorf("belief %d: %w", id, internalerr.ErrNotFound)
}

// FindBelief returns the most recent belief about term.
func (s *Store) FindBelief(ctx context.Context, term string) (store.Belief, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	it, ok := s.mem.Find(term)
	return it.Copy(), ok, nil
}

// ListBeliefs returns beliefs in insertion order, at most limit of them
// when limit is positive.
func (s *Store) ListBeliefs(ctx context.Context, limit int) ([]store.Belief, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := s.mem.Items
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	out := make([]store.Belief, len(items))
	for i, it := range items {
		out[i] = it.Copy()
	}
	return out, nil
}

// TouchBelief increments a belief's usage count.
func (s *Store) TouchBelief(ctx context.Context, id uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mem.Touch(id)
}

// Snapshot returns a deep copy of the underlying document.
func (s *Store) Snapshot(ctx context.Context) (*memory.Memory, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.mem.Clone(), nil
}
