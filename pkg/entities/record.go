package entities

import (
	"github.com/agentstation/utc"
)

// IdentityHints carries the matching signals of a source record. Hints are
// consumed by the deduplicator only; they are never merged verbatim into a
// canonical entity.
type IdentityHints struct {
	// URL is the primary URL of the entity as seen by the source.
	URL string `yaml:"url,omitempty" json:"url,omitempty"`
	// Slug is a proposed slug, usually derived from the display name.
	Slug string `yaml:"slug,omitempty" json:"slug,omitempty"`
	// Name is the display name as seen by the source.
	Name string `yaml:"name,omitempty" json:"name,omitempty"`
}

// SourceRecord is an immutable snapshot of facts about one entity as seen by
// one source at one time. Field keys that are absent mean "not observed",
// not "empty". Records are produced once by a fetch collaborator and
// consumed once by the pipeline.
type SourceRecord struct {
	Source     string        `yaml:"source" json:"source"`
	Tier       Tier          `yaml:"tier" json:"tier"`
	Kind       Kind          `yaml:"kind" json:"kind"`
	Fields     map[Field]any `yaml:"fields" json:"fields"`
	ObservedAt utc.Time      `yaml:"observed_at" json:"observed_at"`
	Hints      IdentityHints `yaml:"hints" json:"hints"`

	// Confidence carries per-field self-reported confidences for
	// machine-inferred records. Empty for tiers 1-2; required for tier-3
	// contributions, which are filtered by the confidence gate before
	// merging.
	Confidence map[Field]float64 `yaml:"confidence,omitempty" json:"confidence,omitempty"`
}

// FieldConfidence returns the confidence to record in provenance when this
// record writes a field: the self-reported per-field value when present,
// otherwise the tier's trust score.
func (r *SourceRecord) FieldConfidence(f Field) float64 {
	if c, ok := r.Confidence[f]; ok {
		return c
	}
	return r.Tier.TrustScore()
}
