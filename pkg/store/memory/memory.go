// Package memory provides an in-memory Store implementation, used by tests
// and as the working set behind the files store.
package memory

import (
	"sort"
	"sync"

	"github.com/aidirectory/aidirectory/pkg/entities"
	"github.com/aidirectory/aidirectory/pkg/errors"
	"github.com/aidirectory/aidirectory/pkg/store"
)

// Option configures a memory store.
type Option func(*Store)

// WithReadOnly makes the store reject commits.
func WithReadOnly() Option {
	return func(s *Store) {
		s.readOnly = true
	}
}

// WithEntities preloads the store.
func WithEntities(list ...*entities.Entity) Option {
	return func(s *Store) {
		for _, e := range list {
			s.byID[e.Slug] = e.Clone()
		}
	}
}

// Store is an in-memory implementation of store.Store. It is safe for
// concurrent use; reads return deep copies so callers can never observe a
// half-applied merge.
type Store struct {
	mu       sync.RWMutex
	byID     map[string]*entities.Entity
	readOnly bool
}

var _ store.Store = (*Store)(nil)

// New creates an in-memory store.
func New(opts ...Option) *Store {
	s := &Store{
		byID: make(map[string]*entities.Entity),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Entity returns the entity for a slug.
func (s *Store) Entity(slug string) (*entities.Entity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.byID[slug]
	if !ok {
		return nil, errors.NewNotFoundError("entity", slug)
	}
	return e.Clone(), nil
}

// List returns a snapshot of all entities, sorted by slug for deterministic
// iteration.
func (s *Store) List() ([]*entities.Entity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*entities.Entity, 0, len(s.byID))
	for _, e := range s.byID {
		out = append(out, e.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Slug < out[j].Slug })
	return out, nil
}

// Snapshot builds an index over the current contents.
func (s *Store) Snapshot() (*store.Index, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ix := store.NewIndex()
	for _, e := range s.byID {
		ix.Add(e)
	}
	return ix, nil
}

// Commit swaps in the full next state of one entity.
func (s *Store) Commit(entity *entities.Entity) error {
	if entity == nil || entity.Slug == "" {
		return errors.NewValidationError("slug", entity, "entity must have a slug")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.readOnly {
		return errors.ErrReadOnly
	}

	s.byID[entity.Slug] = entity.Clone()
	return nil
}

// Len returns the number of stored entities.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byID)
}
