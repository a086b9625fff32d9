// Package pipeline orchestrates the full reconciliation flow for source
// records: normalization, identity resolution, confidence gating, tiered
// merge, and atomic commit. The pipeline owns cross-component sequencing
// and concurrency; all policy lives in the collaborator packages.
package pipeline

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/aidirectory/aidirectory/pkg/dedupe"
	"github.com/aidirectory/aidirectory/pkg/entities"
	"github.com/aidirectory/aidirectory/pkg/errors"
	"github.com/aidirectory/aidirectory/pkg/gate"
	"github.com/aidirectory/aidirectory/pkg/logging"
	"github.com/aidirectory/aidirectory/pkg/merge"
	"github.com/aidirectory/aidirectory/pkg/normalize"
	"github.com/aidirectory/aidirectory/pkg/store"
	"github.com/aidirectory/aidirectory/pkg/validate"
)

// OutcomeKind classifies what processing one record did to the dataset.
type OutcomeKind string

// Processing outcomes.
const (
	// Created means the record established a new canonical entity.
	Created OutcomeKind = "created"
	// Merged means the record was applied to an existing entity. The
	// changed-field list may be empty when every field lost to a more
	// trusted holder.
	Merged OutcomeKind = "merged"
	// Ambiguous means identity resolution could not pick a single entity;
	// the record was held and nothing was written.
	Ambiguous OutcomeKind = "ambiguous"
	// Discovered means a discovery-tier record surfaced a candidate
	// identity: a hint naming an unknown entity, or a no-op against a
	// known one. Discovery records never write the store.
	Discovered OutcomeKind = "discovered"
)

// Outcome reports what processing one source record did.
type Outcome struct {
	Kind OutcomeKind
	// Slug is the entity written or matched, empty for held records and
	// for discovery hints naming an unknown entity.
	Slug string
	// Name is the candidate display name carried by a discovery hint.
	Name string
	// Changed lists the fields the record won, for merged and created
	// outcomes.
	Changed []entities.Field
	// Candidates are the competing slugs for ambiguous outcomes.
	Candidates []string
}

// Pipeline processes source records into the canonical store. Create one
// with New; the zero value is not usable.
type Pipeline struct {
	store  store.Store
	norm   *normalize.Normalizer
	merger *merge.Merger
	valid  *validate.Validator
	locks  *entityLocks
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithNormalizer replaces the default normalizer.
func WithNormalizer(n *normalize.Normalizer) Option {
	return func(p *Pipeline) {
		p.norm = n
	}
}

// New creates a Pipeline over a store.
func New(s store.Store, opts ...Option) *Pipeline {
	p := &Pipeline{
		store:  s,
		norm:   normalize.New(normalize.WithStripLegalSuffixes()),
		merger: merge.New(),
		valid:  validate.New(),
		locks:  newEntityLocks(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Process runs one source record through the full flow and reports the
// outcome. Bad field values degrade or drop silently; only store failures
// and malformed records return errors. Merges against the same entity are
// serialized, so Process is safe to call concurrently.
func (p *Pipeline) Process(ctx context.Context, rec entities.SourceRecord) (Outcome, error) {
	if err := ctx.Err(); err != nil {
		return Outcome{}, err
	}
	if !rec.Tier.Valid() {
		return Outcome{}, errors.NewValidationError("tier", rec.Tier, "unknown trust tier")
	}

	log := logging.Ctx(ctx).With().
		Str("source", rec.Source).
		Str("tier", rec.Tier.String()).
		Logger()

	rec = p.norm.Record(rec)
	rec = gate.Record(rec)

	snapshot, err := p.store.Snapshot()
	if err != nil {
		return Outcome{}, err
	}

	decision := dedupe.New(snapshot).Resolve(rec.Hints)
	switch decision.Kind {
	case dedupe.Ambiguous:
		log.Info().
			Str("name", rec.Hints.Name).
			Strs("candidates", decision.Candidates).
			Msg("Holding record with ambiguous identity")
		return Outcome{Kind: Ambiguous, Candidates: decision.Candidates}, nil

	case dedupe.Match:
		return p.applyTo(ctx, rec, decision.Slug, log)

	default:
		return p.create(ctx, rec, log)
	}
}

// applyTo merges a record into an existing entity under that entity's lock.
func (p *Pipeline) applyTo(ctx context.Context, rec entities.SourceRecord, slug string, log zerolog.Logger) (Outcome, error) {
	unlock := p.locks.lock(slug)
	defer unlock()

	entity, err := p.store.Entity(slug)
	if err != nil {
		return Outcome{}, err
	}

	next, changed, err := p.merger.Apply(rec, entity)
	if err != nil {
		return Outcome{}, errors.NewMergeError(rec.Source, slug, err)
	}

	if !rec.Tier.WritesFields() {
		log.Debug().Str("slug", slug).Msg("Discovery record matched known entity")
		return Outcome{Kind: Discovered, Slug: slug, Name: rec.Hints.Name}, nil
	}

	if err := p.store.Commit(next); err != nil {
		return Outcome{}, errors.NewMergeError(rec.Source, slug, err)
	}

	log.Info().
		Str("slug", slug).
		Int("changed", len(changed)).
		Msg("Merged record into entity")
	return Outcome{Kind: Merged, Slug: slug, Changed: changed}, nil
}

// create establishes a new canonical entity from a record that matched
// nothing.
func (p *Pipeline) create(ctx context.Context, rec entities.SourceRecord, log zerolog.Logger) (Outcome, error) {
	// Discovery records never create entities. An unknown identity is
	// surfaced as a hint for a field-writing tier to follow up on.
	if !rec.Tier.WritesFields() {
		log.Info().Str("name", rec.Hints.Name).Msg("Recorded discovery hint")
		return Outcome{Kind: Discovered, Name: rec.Hints.Name}, nil
	}

	slug := rec.Hints.Slug
	if slug == "" {
		slug = normalize.Slug(rec.Hints.Name)
	}
	if slug == "" {
		return Outcome{}, errors.NewValidationError("slug", "", "record carries no identity to create an entity from")
	}

	// Creation serializes on the strongest identity signal the record
	// carries. Two concurrent records for one domain with different names
	// derive different slugs, so a slug lock alone would let both create.
	key := slug
	if domain := normalize.Domain(rec.Hints.URL); domain != "" {
		key = domain
	}
	unlockCreate := p.locks.lock("create/" + key)
	defer unlockCreate()

	// The snapshot that produced NoMatch predates the lock; another worker
	// may have committed a matching entity since. Re-resolve before
	// creating.
	snapshot, err := p.store.Snapshot()
	if err != nil {
		return Outcome{}, err
	}
	switch decision := dedupe.New(snapshot).Resolve(rec.Hints); decision.Kind {
	case dedupe.Match:
		return p.applyTo(ctx, rec, decision.Slug, log)
	case dedupe.Ambiguous:
		log.Info().
			Str("name", rec.Hints.Name).
			Strs("candidates", decision.Candidates).
			Msg("Holding record with ambiguous identity")
		return Outcome{Kind: Ambiguous, Candidates: decision.Candidates}, nil
	}

	unlock := p.locks.lock(slug)
	defer unlock()

	if existing, err := p.store.Entity(slug); err == nil {
		// Slug collision with an entity the hints did not match: treat the
		// slug as identity and merge rather than minting a suffixed slug.
		next, changed, err := p.merger.Apply(rec, existing)
		if err != nil {
			return Outcome{}, errors.NewMergeError(rec.Source, slug, err)
		}
		if err := p.store.Commit(next); err != nil {
			return Outcome{}, errors.NewMergeError(rec.Source, slug, err)
		}
		return Outcome{Kind: Merged, Slug: slug, Changed: changed}, nil
	} else if !errors.IsNotFound(err) {
		return Outcome{}, err
	}

	hinted := rec
	hinted.Hints.Slug = slug

	next, changed, err := p.merger.Apply(hinted, nil)
	if err != nil {
		return Outcome{}, errors.NewMergeError(rec.Source, slug, err)
	}
	if err := p.store.Commit(next); err != nil {
		return Outcome{}, errors.NewMergeError(rec.Source, slug, err)
	}

	log.Info().
		Str("slug", slug).
		Int("fields", len(changed)).
		Msg("Created entity")
	return Outcome{Kind: Created, Slug: slug, Changed: changed}, nil
}

// ValidateAll runs the integrity validator over the full dataset.
func (p *Pipeline) ValidateAll(ctx context.Context) (*validate.Report, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	list, err := p.store.List()
	if err != nil {
		return nil, err
	}
	return p.valid.Validate(list), nil
}
