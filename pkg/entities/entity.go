// Package entities defines the data model shared by the reconciliation
// pipeline: source records, canonical entities, trust tiers, field-level
// provenance, and the fixed field schema.
package entities

import (
	"math"

	"github.com/agentstation/utc"
)

// Kind is the type of real-world entity a record describes.
type Kind string

// Entity kinds tracked by the directory.
const (
	KindCompany Kind = "company"
	KindProduct Kind = "product"
)

// Provenance records which source, at which tier and confidence, supplied a
// field's current value. Every populated field on an entity carries exactly
// one Provenance entry.
type Provenance struct {
	Source     string   `yaml:"source" json:"source"`
	Tier       Tier     `yaml:"tier" json:"tier"`
	Confidence float64  `yaml:"confidence" json:"confidence"`
	WrittenAt  utc.Time `yaml:"written_at" json:"written_at"`
}

// Entity is the canonical merged record for one real-world entity. The slug
// is immutable once assigned. Entities are mutated only by the merger, which
// builds the next full state and swaps it in at commit.
type Entity struct {
	Slug         string               `yaml:"slug" json:"slug"`
	Kind         Kind                 `yaml:"kind" json:"kind"`
	Fields       map[Field]any        `yaml:"fields" json:"fields"`
	Provenance   map[Field]Provenance `yaml:"provenance" json:"provenance"`
	QualityScore float64              `yaml:"quality_score" json:"quality_score"`
	CreatedAt    utc.Time             `yaml:"created_at" json:"created_at"`
	UpdatedAt    utc.Time             `yaml:"updated_at" json:"updated_at"`
}

// NewEntity creates an empty canonical entity with initialized maps.
func NewEntity(slug string, kind Kind) *Entity {
	now := utc.Now()
	return &Entity{
		Slug:       slug,
		Kind:       kind,
		Fields:     make(map[Field]any),
		Provenance: make(map[Field]Provenance),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// Field returns a field value and whether it is populated. Empty strings and
// empty lists count as unpopulated, matching the sparse-field convention of
// source records.
func (e *Entity) Field(f Field) (any, bool) {
	v, ok := e.Fields[f]
	if !ok || IsEmptyValue(v) {
		return nil, false
	}
	return v, true
}

// Clone returns a deep copy of the entity. The merger works on a clone so a
// failed merge never leaves a partially-applied entity visible.
func (e *Entity) Clone() *Entity {
	clone := *e
	clone.Fields = make(map[Field]any, len(e.Fields))
	for f, v := range e.Fields {
		clone.Fields[f] = cloneValue(v)
	}
	clone.Provenance = make(map[Field]Provenance, len(e.Provenance))
	for f, p := range e.Provenance {
		clone.Provenance[f] = p
	}
	return &clone
}

// Quality returns a weighted completeness score in [0,1], rounded to two
// decimals. Each populated field earns its schema weight; core identity
// fields count for several times as much as nice-to-have ones.
func (e *Entity) Quality() float64 {
	var earned float64
	for f, weight := range qualityWeights {
		if _, ok := e.Field(f); ok {
			earned += weight
		}
	}
	score := earned / qualityTotal
	return math.Round(score*100) / 100
}

// IsEmptyValue reports whether a field value counts as unpopulated.
func IsEmptyValue(v any) bool {
	switch val := v.(type) {
	case nil:
		return true
	case string:
		return val == ""
	case []string:
		return len(val) == 0
	case []any:
		return len(val) == 0
	default:
		return false
	}
}

// cloneValue copies list values so entity clones do not share backing arrays.
func cloneValue(v any) any {
	switch val := v.(type) {
	case []string:
		out := make([]string, len(val))
		copy(out, val)
		return out
	case []any:
		out := make([]any, len(val))
		copy(out, val)
		return out
	default:
		return v
	}
}
