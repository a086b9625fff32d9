package aidirectory

import (
	"github.com/aidirectory/aidirectory/pkg/errors"
	"github.com/aidirectory/aidirectory/pkg/store"
)

// Option is a function that configures a Directory instance
type Option func(*config) error

// config holds the assembled Directory configuration.
type config struct {
	store   store.Store
	dataDir string
	workers int
}

func defaultConfig() *config {
	return &config{}
}

// WithStore configures the persistence backend. Takes precedence over
// WithDataDir.
func WithStore(s store.Store) Option {
	return func(c *config) error {
		if s == nil {
			return errors.NewValidationError("store", nil, "store must not be nil")
		}
		c.store = s
		return nil
	}
}

// WithDataDir configures a file-backed store rooted at dir, one YAML
// document per entity.
func WithDataDir(dir string) Option {
	return func(c *config) error {
		if dir == "" {
			return errors.NewValidationError("dataDir", dir, "directory must not be empty")
		}
		c.dataDir = dir
		return nil
	}
}

// WithWorkers bounds batch concurrency. Zero uses the pipeline default.
func WithWorkers(n int) Option {
	return func(c *config) error {
		if n < 0 {
			return errors.NewValidationError("workers", n, "worker count must not be negative")
		}
		c.workers = n
		return nil
	}
}
