// Package validate checks referential and provenance integrity across the
// full canonical dataset. The validator is read-only: it reports every
// defect it finds and repairs nothing, so a validation run is always safe
// against live data.
package validate

import (
	"fmt"
	"sort"

	"github.com/aidirectory/aidirectory/pkg/entities"
	"github.com/aidirectory/aidirectory/pkg/logging"
)

// DefectKind classifies an integrity defect.
type DefectKind string

// Defect kinds reported by the validator.
const (
	// DefectMissingProvenance marks a populated field with no provenance
	// entry, which breaks the audit trail.
	DefectMissingProvenance DefectKind = "missing_provenance"
	// DefectOrphanProvenance marks a provenance entry whose field holds no
	// value.
	DefectOrphanProvenance DefectKind = "orphan_provenance"
	// DefectDanglingReference marks a slug reference to an entity that does
	// not exist in the dataset.
	DefectDanglingReference DefectKind = "dangling_reference"
	// DefectSchemaViolation marks a field value that does not conform to the
	// declared schema shape or enum.
	DefectSchemaViolation DefectKind = "schema_violation"
	// DefectContamination marks a field value that appears to belong to a
	// different entity: a shared or aggregator website, or a near-duplicate
	// description.
	DefectContamination DefectKind = "contamination"
)

// Defect is one integrity problem found on one entity field.
type Defect struct {
	Slug    string          `yaml:"slug" json:"slug"`
	Field   entities.Field  `yaml:"field,omitempty" json:"field,omitempty"`
	Kind    DefectKind      `yaml:"kind" json:"kind"`
	Message string          `yaml:"message" json:"message"`
}

func (d Defect) String() string {
	return fmt.Sprintf("%s/%s: %s: %s", d.Slug, d.Field, d.Kind, d.Message)
}

// Report aggregates every defect from one validation run. A run never stops
// at the first problem.
type Report struct {
	Entities int      `yaml:"entities" json:"entities"`
	Defects  []Defect `yaml:"defects" json:"defects"`
}

// Clean reports whether the run found no defects.
func (r *Report) Clean() bool {
	return len(r.Defects) == 0
}

// ByKind returns the defects of one kind, preserving report order.
func (r *Report) ByKind(kind DefectKind) []Defect {
	var out []Defect
	for _, d := range r.Defects {
		if d.Kind == kind {
			out = append(out, d)
		}
	}
	return out
}

// Validator checks canonical entities for integrity defects.
type Validator struct {
	schema *SchemaChecker
}

// New creates a Validator with the default schema checker.
func New() *Validator {
	return &Validator{schema: NewSchemaChecker()}
}

// Validate runs every integrity check over the given entities and returns
// the aggregated report. Results are ordered by slug, then by check.
func (v *Validator) Validate(ents []*entities.Entity) *Report {
	sorted := make([]*entities.Entity, len(ents))
	copy(sorted, ents)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Slug < sorted[j].Slug })

	known := make(map[string]bool, len(sorted))
	for _, e := range sorted {
		known[e.Slug] = true
	}

	idx := buildCrossIndex(sorted)

	report := &Report{Entities: len(sorted)}
	for _, e := range sorted {
		report.Defects = append(report.Defects, v.checkProvenance(e)...)
		report.Defects = append(report.Defects, v.checkReferences(e, known)...)
		report.Defects = append(report.Defects, v.schema.Check(e)...)
		report.Defects = append(report.Defects, v.checkContamination(e, idx)...)
	}

	logging.Info().
		Int("entities", report.Entities).
		Int("defects", len(report.Defects)).
		Msg("Integrity validation complete")
	return report
}

// checkProvenance verifies that populated fields and provenance entries
// match one-to-one.
func (v *Validator) checkProvenance(e *entities.Entity) []Defect {
	var defects []Defect

	for _, spec := range entities.Fields() {
		field := spec.Name
		_, populated := e.Field(field)
		_, tracked := e.Provenance[field]

		switch {
		case populated && !tracked:
			defects = append(defects, Defect{
				Slug:    e.Slug,
				Field:   field,
				Kind:    DefectMissingProvenance,
				Message: "field is populated but carries no provenance",
			})
		case tracked && !populated:
			defects = append(defects, Defect{
				Slug:    e.Slug,
				Field:   field,
				Kind:    DefectOrphanProvenance,
				Message: "provenance entry exists but field holds no value",
			})
		}
	}

	return defects
}

// checkReferences verifies that every slug reference resolves to an entity
// in the dataset.
func (v *Validator) checkReferences(e *entities.Entity, known map[string]bool) []Defect {
	var defects []Defect

	for _, field := range entities.ReferenceFields() {
		value, ok := e.Field(field)
		if !ok {
			continue
		}
		for _, slug := range toSlugs(value) {
			if known[slug] {
				continue
			}
			defects = append(defects, Defect{
				Slug:    e.Slug,
				Field:   field,
				Kind:    DefectDanglingReference,
				Message: fmt.Sprintf("references unknown entity %q", slug),
			})
		}
	}

	return defects
}

// toSlugs flattens a slug-list field value for reference checking.
func toSlugs(v any) []string {
	switch val := v.(type) {
	case []string:
		return val
	case []any:
		out := make([]string, 0, len(val))
		for _, item := range val {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}
