// Package aidirectory is the library entry point for the entity
// reconciliation system: a canonical directory of AI companies and products
// assembled from differently-trusted sources, with field-level provenance.
package aidirectory

import (
	"context"
	"fmt"

	"github.com/aidirectory/aidirectory/pkg/entities"
	"github.com/aidirectory/aidirectory/pkg/pipeline"
	"github.com/aidirectory/aidirectory/pkg/store/files"
	"github.com/aidirectory/aidirectory/pkg/store/memory"
	"github.com/aidirectory/aidirectory/pkg/validate"
)

// Directory manages a canonical entity dataset with reconciliation and
// event hooks
type Directory interface {
	// Process runs one source record through the reconciliation pipeline
	Process(ctx context.Context, rec entities.SourceRecord) (pipeline.Outcome, error)

	// ProcessBatch runs a set of records concurrently
	ProcessBatch(ctx context.Context, recs []entities.SourceRecord) ([]pipeline.BatchResult, pipeline.Summary, error)

	// Entity returns the canonical entity for a slug
	Entity(slug string) (*entities.Entity, error)

	// Entities returns a snapshot of all canonical entities
	Entities() ([]*entities.Entity, error)

	// Validate runs the integrity validator over the full dataset
	Validate(ctx context.Context) (*validate.Report, error)

	// OnEntityCreated registers a callback for when entities are created
	OnEntityCreated(EntityCreatedHook)

	// OnEntityMerged registers a callback for when records merge into entities
	OnEntityMerged(EntityMergedHook)

	// OnRecordHeld registers a callback for when ambiguous records are held
	OnRecordHeld(RecordHeldHook)
}

// directory is the internal implementation of the Directory interface
type directory struct {
	config   *config
	pipeline *pipeline.Pipeline
	hooks    *hooks
}

// New creates a new Directory instance with the given options
func New(opts ...Option) (Directory, error) {
	d := &directory{
		config: defaultConfig(),
		hooks:  newHooks(),
	}

	for _, opt := range opts {
		if err := opt(d.config); err != nil {
			return nil, fmt.Errorf("applying options: %w", err)
		}
	}

	if d.config.store == nil {
		if d.config.dataDir != "" {
			s, err := files.Open(d.config.dataDir)
			if err != nil {
				return nil, fmt.Errorf("opening data directory: %w", err)
			}
			d.config.store = s
		} else {
			d.config.store = memory.New()
		}
	}

	d.pipeline = pipeline.New(d.config.store)
	return d, nil
}

// Process runs one source record through the reconciliation pipeline.
func (d *directory) Process(ctx context.Context, rec entities.SourceRecord) (pipeline.Outcome, error) {
	outcome, err := d.pipeline.Process(ctx, rec)
	if err != nil {
		return outcome, err
	}
	d.dispatch(rec, outcome)
	return outcome, nil
}

// ProcessBatch runs a set of records concurrently.
func (d *directory) ProcessBatch(ctx context.Context, recs []entities.SourceRecord) ([]pipeline.BatchResult, pipeline.Summary, error) {
	results, summary, err := d.pipeline.ProcessBatch(ctx, recs, d.config.workers)
	if err != nil {
		return results, summary, err
	}
	for i, r := range results {
		if r.Err == nil {
			d.dispatch(recs[i], r.Outcome)
		}
	}
	return results, summary, nil
}

// Entity returns the canonical entity for a slug.
func (d *directory) Entity(slug string) (*entities.Entity, error) {
	return d.config.store.Entity(slug)
}

// Entities returns a snapshot of all canonical entities.
func (d *directory) Entities() ([]*entities.Entity, error) {
	return d.config.store.List()
}

// Validate runs the integrity validator over the full dataset.
func (d *directory) Validate(ctx context.Context) (*validate.Report, error) {
	return d.pipeline.ValidateAll(ctx)
}

// dispatch fires the hooks that match one processing outcome.
func (d *directory) dispatch(rec entities.SourceRecord, outcome pipeline.Outcome) {
	switch outcome.Kind {
	case pipeline.Created:
		if e, err := d.config.store.Entity(outcome.Slug); err == nil {
			d.hooks.entityCreated(e)
		}
	case pipeline.Merged:
		if len(outcome.Changed) == 0 {
			return
		}
		if e, err := d.config.store.Entity(outcome.Slug); err == nil {
			d.hooks.entityMerged(e, outcome.Changed)
		}
	case pipeline.Ambiguous:
		d.hooks.recordHeld(rec, outcome.Candidates)
	}
}
