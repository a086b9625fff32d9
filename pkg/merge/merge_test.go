package merge

import (
	"reflect"
	"testing"

	"github.com/agentstation/utc"

	"github.com/aidirectory/aidirectory/pkg/entities"
)

func record(source string, tier entities.Tier, fields map[entities.Field]any) entities.SourceRecord {
	return entities.SourceRecord{
		Source:     source,
		Tier:       tier,
		Kind:       entities.KindCompany,
		Fields:     fields,
		ObservedAt: utc.Now(),
		Hints:      entities.IdentityHints{Slug: "acme"},
	}
}

func TestApplyCreatesEntity(t *testing.T) {
	m := New()

	next, changed, err := m.Apply(record("wikidata", entities.TierAuthoritative, map[entities.Field]any{
		entities.FieldName:        "Acme",
		entities.FieldFoundedYear: 2021,
	}), nil)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}

	if next.Slug != "acme" {
		t.Errorf("slug = %q, want acme", next.Slug)
	}
	if len(changed) != 2 {
		t.Errorf("changed = %v, want two fields", changed)
	}

	prov, ok := next.Provenance[entities.FieldName]
	if !ok {
		t.Fatal("written field must carry provenance")
	}
	if prov.Source != "wikidata" || prov.Tier != entities.TierAuthoritative {
		t.Errorf("provenance = %+v", prov)
	}
	if prov.Confidence != 0.95 {
		t.Errorf("confidence = %v, want tier trust score 0.95", prov.Confidence)
	}
	if prov.WrittenAt.IsZero() {
		t.Error("provenance must carry a write timestamp")
	}
}

func TestApplyHigherTierOverwrites(t *testing.T) {
	m := New()

	base, _, err := m.Apply(record("crunchbase", entities.TierOpenWeb, map[entities.Field]any{
		entities.FieldFoundedYear: 2020,
	}), nil)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}

	next, changed, err := m.Apply(record("wikidata", entities.TierAuthoritative, map[entities.Field]any{
		entities.FieldFoundedYear: 2021,
	}), base)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}

	if next.Fields[entities.FieldFoundedYear] != 2021 {
		t.Error("authoritative value should overwrite open-web value")
	}
	if next.Provenance[entities.FieldFoundedYear].Source != "wikidata" {
		t.Error("provenance should follow the new writer")
	}
	if len(changed) != 1 {
		t.Errorf("changed = %v, want founded_year only", changed)
	}
}

func TestApplyLowerTierIsNoOp(t *testing.T) {
	m := New()

	base, _, err := m.Apply(record("wikidata", entities.TierAuthoritative, map[entities.Field]any{
		entities.FieldFoundedYear: 2021,
	}), nil)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}

	next, changed, err := m.Apply(record("crunchbase", entities.TierOpenWeb, map[entities.Field]any{
		entities.FieldFoundedYear: 1999,
	}), base)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}

	if next.Fields[entities.FieldFoundedYear] != 2021 {
		t.Error("open-web value must not displace authoritative value")
	}
	if next.Provenance[entities.FieldFoundedYear].Source != "wikidata" {
		t.Error("provenance must stay with the authoritative writer")
	}
	if len(changed) != 0 {
		t.Errorf("changed = %v, want none", changed)
	}
}

func TestApplyFirstWriterAtTierWins(t *testing.T) {
	m := New()

	base, _, err := m.Apply(record("crunchbase", entities.TierOpenWeb, map[entities.Field]any{
		entities.FieldDescription: "First description",
	}), nil)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}

	next, changed, err := m.Apply(record("producthunt", entities.TierOpenWeb, map[entities.Field]any{
		entities.FieldDescription: "Second description",
	}), base)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}

	if next.Fields[entities.FieldDescription] != "First description" {
		t.Error("same-tier write must not displace the first writer")
	}
	if next.Provenance[entities.FieldDescription].Source != "crunchbase" {
		t.Error("corroboration must not be recorded in provenance")
	}
	if len(changed) != 0 {
		t.Errorf("changed = %v, want none", changed)
	}
}

func TestApplyInferredFillsGapsOnly(t *testing.T) {
	m := New()

	base, _, err := m.Apply(record("crunchbase", entities.TierOpenWeb, map[entities.Field]any{
		entities.FieldDescription: "Human-written description",
	}), nil)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}

	inferred := record("llm-enricher", entities.TierInferred, map[entities.Field]any{
		entities.FieldDescription: "Machine description",
		entities.FieldCategory:    "ai-agent",
	})
	inferred.Confidence = map[entities.Field]float64{
		entities.FieldDescription: 0.9,
		entities.FieldCategory:    0.7,
	}

	next, changed, err := m.Apply(inferred, base)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}

	if next.Fields[entities.FieldDescription] != "Human-written description" {
		t.Error("inferred value must never displace a human-written value")
	}
	if next.Fields[entities.FieldCategory] != "ai-agent" {
		t.Error("inferred value should fill the unset field")
	}
	if got := next.Provenance[entities.FieldCategory].Confidence; got != 0.7 {
		t.Errorf("filled field confidence = %v, want self-reported 0.7", got)
	}
	if len(changed) != 1 || changed[0] != entities.FieldCategory {
		t.Errorf("changed = %v, want [category]", changed)
	}
}

func TestApplyDiscoveryWritesNothing(t *testing.T) {
	m := New()

	base, _, err := m.Apply(record("crunchbase", entities.TierOpenWeb, map[entities.Field]any{
		entities.FieldName: "Acme",
	}), nil)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}

	discovery := record("github-trending", entities.TierDiscovery, map[entities.Field]any{
		entities.FieldName:        "Acme Labs",
		entities.FieldDescription: "should never land",
	})

	next, changed, err := m.Apply(discovery, base)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}

	if len(changed) != 0 {
		t.Errorf("changed = %v, discovery records must not write fields", changed)
	}
	if next.Fields[entities.FieldName] != "Acme" {
		t.Error("discovery record altered a field value")
	}
	if _, ok := next.Fields[entities.FieldDescription]; ok {
		t.Error("discovery record wrote a new field")
	}
}

func TestApplyIsIdempotent(t *testing.T) {
	m := New()
	rec := record("crunchbase", entities.TierOpenWeb, map[entities.Field]any{
		entities.FieldName:        "Acme",
		entities.FieldDescription: "Robots",
		entities.FieldTags:        []string{"agents"},
	})

	first, _, err := m.Apply(rec, nil)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	second, changed, err := m.Apply(rec, first)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}

	if len(changed) != 0 {
		t.Errorf("re-applying the same record changed %v", changed)
	}
	if !reflect.DeepEqual(first.Fields, second.Fields) {
		t.Error("field values drifted on re-apply")
	}
	if !reflect.DeepEqual(first.Provenance, second.Provenance) {
		t.Error("provenance drifted on re-apply")
	}
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	m := New()

	base, _, err := m.Apply(record("crunchbase", entities.TierOpenWeb, map[entities.Field]any{
		entities.FieldFoundedYear: 2020,
	}), nil)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	before := base.Clone()

	_, _, err = m.Apply(record("wikidata", entities.TierAuthoritative, map[entities.Field]any{
		entities.FieldFoundedYear: 2021,
		entities.FieldName:        "Acme",
	}), base)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}

	if !reflect.DeepEqual(before.Fields, base.Fields) {
		t.Error("Apply mutated the input entity's fields")
	}
	if !reflect.DeepEqual(before.Provenance, base.Provenance) {
		t.Error("Apply mutated the input entity's provenance")
	}
}

func TestApplyUpdatesQuality(t *testing.T) {
	m := New()

	next, _, err := m.Apply(record("wikidata", entities.TierAuthoritative, map[entities.Field]any{
		entities.FieldName:    "Acme",
		entities.FieldWebsite: "https://acme.ai",
	}), nil)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}

	if next.QualityScore <= 0 {
		t.Errorf("quality score = %v, want > 0 after writing core fields", next.QualityScore)
	}
	if next.QualityScore != next.Quality() {
		t.Error("stored quality score should match recomputation")
	}
}

func TestApplyRejectsInvalidTier(t *testing.T) {
	m := New()

	rec := record("broken", entities.Tier(9), map[entities.Field]any{
		entities.FieldName: "Acme",
	})
	if _, _, err := m.Apply(rec, nil); err == nil {
		t.Error("invalid tier should be rejected")
	}

	noSlug := record("wikidata", entities.TierAuthoritative, nil)
	noSlug.Hints.Slug = ""
	if _, _, err := m.Apply(noSlug, nil); err == nil {
		t.Error("creating an entity without a slug hint should fail")
	}
}
