// Package merge implements trust-tiered field-level merging of source
// records into canonical entities. Each field is won independently: a value
// written at tier N is overwritten only by a strictly more trusted source,
// and the first source to write at a given tier keeps the field against
// later same-tier sources. Machine-inferred records fill gaps but never
// displace human-written values, and discovery records carry identity hints
// only and never touch fields.
package merge

import (
	"github.com/agentstation/utc"

	"github.com/aidirectory/aidirectory/pkg/entities"
	"github.com/aidirectory/aidirectory/pkg/errors"
	"github.com/aidirectory/aidirectory/pkg/logging"
)

// Merger applies source records to canonical entities. A Merger is stateless
// and safe for concurrent use; serializing merges against the same entity is
// the caller's job.
type Merger struct{}

// New creates a Merger.
func New() *Merger {
	return &Merger{}
}

// Apply merges a source record into an entity and returns the next entity
// state along with the fields that changed. The input entity is never
// mutated: Apply works on a clone and the caller swaps the result in at
// commit, so a rejected merge leaves nothing half-applied.
//
// Pass a nil entity to create a new one from the record.
func (m *Merger) Apply(rec entities.SourceRecord, entity *entities.Entity) (*entities.Entity, []entities.Field, error) {
	if !rec.Tier.Valid() {
		return nil, nil, errors.NewValidationError("tier", rec.Tier, "unknown trust tier")
	}

	var next *entities.Entity
	if entity == nil {
		slug := rec.Hints.Slug
		if slug == "" {
			return nil, nil, errors.NewValidationError("slug", "", "record carries no slug hint")
		}
		next = entities.NewEntity(slug, rec.Kind)
	} else {
		next = entity.Clone()
	}

	// Discovery records only confirm an identity; they contribute no field
	// values.
	if !rec.Tier.WritesFields() {
		next.UpdatedAt = utc.Now()
		return next, nil, nil
	}

	var changed []entities.Field
	for _, spec := range entities.Fields() {
		field := spec.Name
		value, ok := rec.Fields[field]
		if !ok || entities.IsEmptyValue(value) {
			continue
		}

		prov, populated := next.Provenance[field]
		if populated {
			if _, hasValue := next.Field(field); !hasValue {
				populated = false
			}
		}

		switch {
		case !populated:
			// Unset field: any field-writing tier may claim it.
		case rec.Tier == entities.TierInferred:
			// Inferred values fill gaps only.
			continue
		case !rec.Tier.Overrides(prov.Tier):
			// Same or lower trust than the current holder. First writer at
			// a tier wins; corroboration is not recorded.
			logging.Debug().
				Str("slug", next.Slug).
				Str("field", string(field)).
				Str("holder", prov.Source).
				Str("holder_tier", prov.Tier.String()).
				Str("source", rec.Source).
				Str("tier", rec.Tier.String()).
				Msg("Keeping existing value from equal or higher tier")
			continue
		}

		next.Fields[field] = value
		next.Provenance[field] = entities.Provenance{
			Source:     rec.Source,
			Tier:       rec.Tier,
			Confidence: rec.FieldConfidence(field),
			WrittenAt:  utc.Now(),
		}
		changed = append(changed, field)
	}

	next.QualityScore = next.Quality()
	next.UpdatedAt = utc.Now()
	return next, changed, nil
}
