// Package store defines the persistence collaborator the pipeline depends
// on: load-by-slug, indexed lookups for deduplication, and atomic per-entity
// commit. Implementations live in the memory and files subpackages.
package store

import (
	"strings"

	"github.com/aidirectory/aidirectory/pkg/entities"
	"github.com/aidirectory/aidirectory/pkg/normalize"
)

// Store is the persistence interface consumed by the pipeline. Commit must
// be atomic per entity: either the full next state becomes visible or the
// previous state survives untouched.
type Store interface {
	// Entity returns the canonical entity for a slug, or errors.ErrNotFound.
	Entity(slug string) (*entities.Entity, error)

	// List returns a read-only snapshot of all canonical entities.
	List() ([]*entities.Entity, error)

	// Snapshot returns a consistent index snapshot for deduplication.
	Snapshot() (*Index, error)

	// Commit atomically persists the full next state of one entity.
	Commit(entity *entities.Entity) error
}

// Index is a point-in-time view of the identity indexes the deduplicator
// matches against. It is never mutated after construction; writers build a
// fresh snapshot instead.
type Index struct {
	// Domains maps a normalized website host to the owning slug.
	Domains map[string]string
	// Slugs is the set of all assigned slugs.
	Slugs map[string]bool
	// Names maps a lower-cased display name to the owning slug.
	Names map[string]string
}

// NewIndex returns an empty index.
func NewIndex() *Index {
	return &Index{
		Domains: make(map[string]string),
		Slugs:   make(map[string]bool),
		Names:   make(map[string]string),
	}
}

// Add indexes one entity.
func (ix *Index) Add(e *entities.Entity) {
	ix.Slugs[e.Slug] = true

	if name, ok := e.Field(entities.FieldName); ok {
		if s, ok := name.(string); ok && s != "" {
			ix.Names[strings.ToLower(s)] = e.Slug
		}
	}

	if site, ok := e.Field(entities.FieldWebsite); ok {
		if s, ok := site.(string); ok {
			if domain := normalize.Domain(s); domain != "" {
				ix.Domains[domain] = e.Slug
			}
		}
	}
}

// BuildIndex constructs an index over a set of entities.
func BuildIndex(list []*entities.Entity) *Index {
	ix := NewIndex()
	for _, e := range list {
		ix.Add(e)
	}
	return ix
}
