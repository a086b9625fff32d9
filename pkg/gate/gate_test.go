package gate

import (
	"testing"

	"github.com/aidirectory/aidirectory/pkg/entities"
)

func TestThreshold(t *testing.T) {
	if got := Threshold(entities.FieldCategory); got != InferentialThreshold {
		t.Errorf("category threshold = %v, want %v", got, InferentialThreshold)
	}
	if got := Threshold(entities.FieldFoundedYear); got != FactualThreshold {
		t.Errorf("founded_year threshold = %v, want %v", got, FactualThreshold)
	}
	if got := Threshold(entities.Field("no_such_field")); got != FactualThreshold {
		t.Errorf("unknown field threshold = %v, want factual threshold", got)
	}
}

func TestFilter(t *testing.T) {
	fields := map[entities.Field]any{
		entities.FieldCategory:    "ai-agent", // inferential at 0.6: accepted
		entities.FieldTags:        []string{"agents"},
		entities.FieldFoundedYear: 2021,  // factual at 0.7: rejected
		entities.FieldHQCountry:   "United States",
		entities.FieldDescription: "An agents company", // no confidence: dropped
	}
	confidence := map[entities.Field]float64{
		entities.FieldCategory:    0.6,
		entities.FieldTags:        0.5,
		entities.FieldFoundedYear: 0.7,
		entities.FieldHQCountry:   0.95,
	}

	accepted := Filter(fields, confidence)

	if _, ok := accepted[entities.FieldCategory]; !ok {
		t.Error("inferential field at 0.6 should be accepted")
	}
	if _, ok := accepted[entities.FieldTags]; !ok {
		t.Error("inferential field exactly at threshold should be accepted")
	}
	if _, ok := accepted[entities.FieldFoundedYear]; ok {
		t.Error("factual field at 0.7 should be rejected")
	}
	if _, ok := accepted[entities.FieldHQCountry]; !ok {
		t.Error("factual field at 0.95 should be accepted")
	}
	if _, ok := accepted[entities.FieldDescription]; ok {
		t.Error("field without confidence should be dropped")
	}
}

func TestRecord(t *testing.T) {
	inferred := entities.SourceRecord{
		Source: "llm-enricher",
		Tier:   entities.TierInferred,
		Fields: map[entities.Field]any{
			entities.FieldCategory:    "ai-model",
			entities.FieldFoundedYear: 2015,
		},
		Confidence: map[entities.Field]float64{
			entities.FieldCategory:    0.8,
			entities.FieldFoundedYear: 0.8,
		},
	}

	gated := Record(inferred)

	if len(gated.Fields) != 1 {
		t.Fatalf("gated fields = %v, want only category", gated.Fields)
	}
	if gated.Confidence[entities.FieldCategory] != 0.8 {
		t.Error("accepted field should keep its original confidence")
	}
	if _, ok := gated.Confidence[entities.FieldFoundedYear]; ok {
		t.Error("rejected field should not keep a confidence entry")
	}

	// Records from human-curated tiers pass through untouched.
	openWeb := entities.SourceRecord{
		Tier: entities.TierOpenWeb,
		Fields: map[entities.Field]any{
			entities.FieldFoundedYear: 2015,
		},
	}
	if got := Record(openWeb); len(got.Fields) != 1 {
		t.Error("open-web records must not be gated")
	}
}
