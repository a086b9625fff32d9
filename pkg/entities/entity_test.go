package entities

import "testing"

func TestEntityField(t *testing.T) {
	e := NewEntity("acme", KindCompany)
	e.Fields[FieldName] = "Acme"
	e.Fields[FieldDescription] = ""
	e.Fields[FieldTags] = []string{}

	if _, ok := e.Field(FieldName); !ok {
		t.Error("populated field should be visible")
	}
	if _, ok := e.Field(FieldDescription); ok {
		t.Error("empty string should count as unpopulated")
	}
	if _, ok := e.Field(FieldTags); ok {
		t.Error("empty list should count as unpopulated")
	}
	if _, ok := e.Field(FieldWebsite); ok {
		t.Error("absent field should count as unpopulated")
	}
}

func TestEntityClone(t *testing.T) {
	e := NewEntity("acme", KindCompany)
	e.Fields[FieldName] = "Acme"
	e.Fields[FieldTags] = []string{"agents"}
	e.Provenance[FieldName] = Provenance{Source: "wikidata", Tier: TierAuthoritative}

	clone := e.Clone()

	clone.Fields[FieldName] = "Modified"
	clone.Fields[FieldTags].([]string)[0] = "modified"
	clone.Provenance[FieldName] = Provenance{Source: "other", Tier: TierOpenWeb}

	if e.Fields[FieldName] != "Acme" {
		t.Error("clone mutation leaked into original field map")
	}
	if e.Fields[FieldTags].([]string)[0] != "agents" {
		t.Error("clone mutation leaked into original list backing array")
	}
	if e.Provenance[FieldName].Source != "wikidata" {
		t.Error("clone mutation leaked into original provenance")
	}
}

func TestEntityQuality(t *testing.T) {
	e := NewEntity("acme", KindCompany)
	if got := e.Quality(); got != 0 {
		t.Errorf("empty entity quality = %v, want 0", got)
	}

	for f, spec := range specIndex {
		if _, weighted := qualityWeights[f]; !weighted {
			continue
		}
		switch spec.Kind {
		case KindInt:
			e.Fields[f] = 2021
		case KindFloat:
			e.Fields[f] = 1_000_000.0
		case KindBool:
			e.Fields[f] = true
		case KindStringList, KindSlugList:
			e.Fields[f] = []string{"x"}
		default:
			e.Fields[f] = "x"
		}
	}
	if got := e.Quality(); got != 1 {
		t.Errorf("complete entity quality = %v, want 1", got)
	}

	// Losing a heavy identity field must cost more than losing a light one.
	delete(e.Fields, FieldName)
	withoutName := e.Quality()
	e.Fields[FieldName] = "x"
	delete(e.Fields, FieldHQCity)
	withoutCity := e.Quality()
	if withoutName <= 0 || withoutName >= 1 || withoutCity <= 0 || withoutCity >= 1 {
		t.Errorf("partial quality out of (0,1): %v, %v", withoutName, withoutCity)
	}
	if withoutName >= withoutCity {
		t.Errorf("name (weight 3) = %v should cost more than city (weight 0.5) = %v",
			withoutName, withoutCity)
	}
}

func TestSourceRecordFieldConfidence(t *testing.T) {
	rec := SourceRecord{
		Tier:       TierInferred,
		Confidence: map[Field]float64{FieldCategory: 0.8},
	}

	if got := rec.FieldConfidence(FieldCategory); got != 0.8 {
		t.Errorf("self-reported confidence = %v, want 0.8", got)
	}
	if got := rec.FieldConfidence(FieldTags); got != 0.50 {
		t.Errorf("fallback confidence = %v, want tier trust score 0.50", got)
	}

	authoritative := SourceRecord{Tier: TierAuthoritative}
	if got := authoritative.FieldConfidence(FieldName); got != 0.95 {
		t.Errorf("authoritative fallback = %v, want 0.95", got)
	}
}
