package infer

import (
	"reflect"
	"testing"

	"github.com/aidirectory/aidirectory/pkg/entities"
)

func entity(fields map[entities.Field]any) *entities.Entity {
	e := entities.NewEntity("acme", entities.KindCompany)
	for f, v := range fields {
		e.Fields[f] = v
	}
	return e
}

func contains(tags []string, want string) bool {
	for _, t := range tags {
		if t == want {
			return true
		}
	}
	return false
}

func TestTagsFromKeywords(t *testing.T) {
	tests := []struct {
		name        string
		description string
		want        string
	}{
		{"chatbot", "A conversational AI for support teams", "chatbot"},
		{"diffusion", "Image generation with a diffusion backbone", "diffusion-model"},
		{"rag", "Retrieval-augmented generation over your docs", "rag"},
		{"code generation", "Code completion for every editor", "code-generation"},
		{"healthcare", "Clinical decision support for medical teams", "healthcare"},
		{"customer support", "Automates customer support tickets", "customer-support"},
		{"self-hosted", "Run it self-hosted or in our cloud", "self-hosted"},
	}

	g := New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tags := g.Tags(entity(map[entities.Field]any{
				entities.FieldName:        "Acme",
				entities.FieldDescription: tt.description,
			}))
			if !contains(tags, tt.want) {
				t.Errorf("Tags() = %v, want %q inferred", tags, tt.want)
			}
		})
	}
}

func TestTagsFromCategoryAndPlatforms(t *testing.T) {
	g := New()
	tags := g.Tags(entity(map[entities.Field]any{
		entities.FieldName:      "Acme",
		entities.FieldCategory:  "ai-dev-tool",
		entities.FieldPlatforms: []string{"ios", "cli"},
	}))

	for _, want := range []string{"developers", "mobile-app", "cli-tool"} {
		if !contains(tags, want) {
			t.Errorf("Tags() = %v, want %q inferred", tags, want)
		}
	}
}

func TestTagsFromStructuredFields(t *testing.T) {
	g := New()
	tags := g.Tags(entity(map[entities.Field]any{
		entities.FieldName:         "Acme",
		entities.FieldOpenSource:   true,
		entities.FieldAPIAvailable: true,
		entities.FieldArchitecture: "Mixture-of-experts Transformer",
		entities.FieldModalities:   []string{"text", "image"},
		entities.FieldHQCountry:    "Germany",
		entities.FieldPricingModel: "freemium",
	}))

	for _, want := range []string{
		"open-source", "api-service", "moe", "transformer",
		"multimodal", "europe", "freemium",
	} {
		if !contains(tags, want) {
			t.Errorf("Tags() = %v, want %q inferred", tags, want)
		}
	}
}

func TestTagsClosedSourceExcludesOpenSource(t *testing.T) {
	g := New()

	// Description mentions open source, but the structured field says no.
	tags := g.Tags(entity(map[entities.Field]any{
		entities.FieldName:        "Acme",
		entities.FieldDescription: "Better than any open source alternative",
		entities.FieldOpenSource:  false,
	}))

	if contains(tags, "open-source") {
		t.Errorf("Tags() = %v, open-source must be excluded for closed-source entities", tags)
	}
	if !contains(tags, "closed-source") {
		t.Errorf("Tags() = %v, want closed-source", tags)
	}
}

func TestTagsKeepsExistingAndDeduplicates(t *testing.T) {
	g := New()
	tags := g.Tags(entity(map[entities.Field]any{
		entities.FieldName:        "Acme",
		entities.FieldDescription: "A conversational AI chatbot",
		entities.FieldTags:        []string{"chatbot", "hand-curated"},
	}))

	if tags[0] != "chatbot" || tags[1] != "hand-curated" {
		t.Errorf("Tags() = %v, existing tags must lead in order", tags)
	}
	count := 0
	for _, tag := range tags {
		if tag == "chatbot" {
			count++
		}
	}
	if count != 1 {
		t.Errorf("Tags() = %v, chatbot duplicated", tags)
	}
}

func TestTagsCapped(t *testing.T) {
	g := New()
	tags := g.Tags(entity(map[entities.Field]any{
		entities.FieldName: "Acme",
		entities.FieldDescription: "A multimodal transformer chatbot copilot for translation, " +
			"code generation, data analytics, customer support, photo editing, video editing, " +
			"meeting notes, healthcare, robotics, trading, writing assistance, content creation, " +
			"workflow automation, search engine work, fraud detection and drug discovery",
		entities.FieldCategory:  "ai-infrastructure",
		entities.FieldPlatforms: []string{"web", "ios", "desktop", "api", "cli"},
	}))

	if len(tags) > MaxTags {
		t.Errorf("len(Tags()) = %d, want at most %d", len(tags), MaxTags)
	}
}

func TestTagsDeterministic(t *testing.T) {
	g := New()
	e := entity(map[entities.Field]any{
		entities.FieldName:        "Acme",
		entities.FieldDescription: "A chatbot with speech recognition and real-time translation",
		entities.FieldPlatforms:   []string{"web", "api"},
		entities.FieldCategory:    "ai-app",
	})

	first := g.Tags(e)
	for i := 0; i < 10; i++ {
		if got := g.Tags(e); !reflect.DeepEqual(got, first) {
			t.Fatalf("Tags() = %v on run %d, want stable %v", got, i, first)
		}
	}
}

func TestRecord(t *testing.T) {
	g := New()

	e := entity(map[entities.Field]any{
		entities.FieldName:        "Acme",
		entities.FieldDescription: "A conversational AI chatbot",
	})

	rec, ok := g.Record(e)
	if !ok {
		t.Fatal("Record() found nothing to infer")
	}
	if rec.Source != SourceName {
		t.Errorf("source = %q, want %q", rec.Source, SourceName)
	}
	if rec.Tier != entities.TierInferred {
		t.Errorf("tier = %v, want inferred", rec.Tier)
	}
	if rec.Hints.Slug != "acme" {
		t.Errorf("hint slug = %q, want acme", rec.Hints.Slug)
	}
	if got := rec.Confidence[entities.FieldTags]; got != Confidence {
		t.Errorf("confidence = %v, want %v", got, Confidence)
	}
	tags, _ := rec.Fields[entities.FieldTags].([]string)
	if !contains(tags, "chatbot") {
		t.Errorf("record tags = %v, want chatbot", tags)
	}
}

func TestRecordNothingNew(t *testing.T) {
	g := New()

	// All inferable tags already present: no record to emit.
	e := entity(map[entities.Field]any{
		entities.FieldName: "Plain Co",
	})

	if _, ok := g.Record(e); ok {
		t.Error("Record() emitted a record with nothing inferred")
	}
}
