// Package files provides a Store backed by one YAML document per entity.
// It keeps a full working set in memory and writes through on commit, so
// reads and index snapshots never touch the filesystem. Commits write to a
// temporary file and rename it into place: a crash mid-commit leaves the
// previous on-disk state intact.
package files

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/goccy/go-yaml"

	"github.com/aidirectory/aidirectory/pkg/entities"
	"github.com/aidirectory/aidirectory/pkg/errors"
	"github.com/aidirectory/aidirectory/pkg/logging"
	"github.com/aidirectory/aidirectory/pkg/store"
	"github.com/aidirectory/aidirectory/pkg/store/memory"
)

// filePermissions for entity documents.
const filePermissions = 0o644

// Store persists canonical entities as <dir>/<slug>.yaml.
type Store struct {
	mu    sync.Mutex
	dir   string
	cache *memory.Store
}

var _ store.Store = (*Store)(nil)

// Open loads the entity directory into memory. Files that fail to parse are
// skipped with a warning; the schema validator reports them, and one corrupt
// file must not block the rest of the batch.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.WrapIO("create", dir, err)
	}

	s := &Store{
		dir:   dir,
		cache: memory.New(),
	}

	matches, err := filepath.Glob(filepath.Join(dir, "*.yaml"))
	if err != nil {
		return nil, errors.WrapIO("read", dir, err)
	}

	for _, path := range matches {
		data, err := os.ReadFile(path) //nolint:gosec // paths come from the glob above
		if err != nil {
			return nil, errors.WrapIO("read", path, err)
		}

		var e entities.Entity
		if err := yaml.Unmarshal(data, &e); err != nil {
			logging.Warn().
				Str("path", path).
				Err(err).
				Msg("Skipping entity file that failed to parse")
			continue
		}
		if e.Slug == "" {
			e.Slug = strings.TrimSuffix(filepath.Base(path), ".yaml")
		}
		if err := s.cache.Commit(&e); err != nil {
			return nil, errors.WrapResource("load", "entity", e.Slug, err)
		}
	}

	return s, nil
}

// Entity returns the entity for a slug.
func (s *Store) Entity(slug string) (*entities.Entity, error) {
	return s.cache.Entity(slug)
}

// List returns a snapshot of all entities.
func (s *Store) List() ([]*entities.Entity, error) {
	return s.cache.List()
}

// Snapshot builds an index over the current contents.
func (s *Store) Snapshot() (*store.Index, error) {
	return s.cache.Snapshot()
}

// Commit writes the entity document atomically and then updates the working
// set. The in-memory state only changes after the rename succeeds, so a
// failed commit leaves both disk and memory at the previous state.
func (s *Store) Commit(entity *entities.Entity) error {
	if entity == nil || entity.Slug == "" {
		return errors.NewValidationError("slug", entity, "entity must have a slug")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := yaml.Marshal(entity)
	if err != nil {
		return errors.WrapParse("yaml", entity.Slug, err)
	}

	final := filepath.Join(s.dir, entity.Slug+".yaml")

	tmp, err := os.CreateTemp(s.dir, "."+entity.Slug+".*.tmp")
	if err != nil {
		return errors.WrapIO("create", final, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return errors.WrapIO("write", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return errors.WrapIO("close", tmpName, err)
	}
	if err := os.Chmod(tmpName, filePermissions); err != nil {
		_ = os.Remove(tmpName)
		return errors.WrapIO("write", tmpName, err)
	}
	if err := os.Rename(tmpName, final); err != nil {
		_ = os.Remove(tmpName)
		return errors.WrapIO("write", final, err)
	}

	return s.cache.Commit(entity)
}

// Dir returns the backing directory.
func (s *Store) Dir() string {
	return s.dir
}
