// Package gate filters machine-inferred contributions before they reach the
// merger. Each schema field is classified as inferential or factual, and a
// proposed value is accepted only when its self-reported confidence clears
// the class threshold. The dual threshold encodes, structurally, that a
// generative process is systematically more reliable at classification-style
// reasoning than at fact recall.
package gate

import (
	"github.com/aidirectory/aidirectory/pkg/entities"
	"github.com/aidirectory/aidirectory/pkg/logging"
)

// Acceptance thresholds by field class.
const (
	// InferentialThreshold applies to classification, tagging, summarization
	// and translation fields.
	InferentialThreshold = 0.5
	// FactualThreshold applies to objectively verifiable point facts.
	FactualThreshold = 0.9
)

// Threshold returns the acceptance threshold for a schema field. Unknown
// fields are held to the factual threshold; they are dropped upstream by the
// normalizer anyway.
func Threshold(f entities.Field) float64 {
	spec, ok := entities.Spec(f)
	if !ok || spec.Class == entities.ClassFactual {
		return FactualThreshold
	}
	return InferentialThreshold
}

// Filter returns the subset of fields whose confidence clears the class
// threshold. Fields with no entry in the confidence map are dropped: no
// confidence means no acceptance. Rejections are logged, never surfaced as
// errors.
func Filter(fields map[entities.Field]any, confidence map[entities.Field]float64) map[entities.Field]any {
	accepted := make(map[entities.Field]any, len(fields))

	for field, value := range fields {
		c, ok := confidence[field]
		if !ok {
			logging.Debug().
				Str("field", string(field)).
				Msg("Dropping inferred field with no confidence")
			continue
		}

		if threshold := Threshold(field); c < threshold {
			logging.Debug().
				Str("field", string(field)).
				Float64("confidence", c).
				Float64("threshold", threshold).
				Msg("Dropping inferred field below threshold")
			continue
		}

		accepted[field] = value
	}

	return accepted
}

// Record applies the gate to a machine-inferred source record and returns a
// copy carrying only the accepted fields, each still paired with its
// original confidence. Records at other tiers pass through unchanged.
func Record(rec entities.SourceRecord) entities.SourceRecord {
	if rec.Tier != entities.TierInferred {
		return rec
	}

	out := rec
	out.Fields = Filter(rec.Fields, rec.Confidence)

	out.Confidence = make(map[entities.Field]float64, len(out.Fields))
	for field := range out.Fields {
		out.Confidence[field] = rec.Confidence[field]
	}

	return out
}
