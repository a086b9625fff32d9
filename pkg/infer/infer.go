// Package infer derives tags for canonical entities with rule-based keyword
// and structured-field heuristics. It costs nothing to run — no model
// calls — and is designed to run after merging, before optional LLM
// enrichment. Its output is an inferred-tier source record, so inferred
// tags flow through the confidence gate and the tiered merger like any
// other machine contribution.
package infer

import (
	"strings"

	"github.com/agentstation/utc"

	"github.com/aidirectory/aidirectory/pkg/entities"
)

const (
	// SourceName identifies tag-inference contributions in provenance.
	SourceName = "tag-inference"

	// MaxTags caps the tag list to keep noise down.
	MaxTags = 20

	// Confidence reported for rule hits. Rules are deterministic keyword
	// matches, so this sits well above the inferential gate threshold.
	Confidence = 0.9
)

// Engine infers tags for entities. The zero value is not usable; create
// one with New. An Engine is stateless and safe for concurrent use.
type Engine struct{}

// New creates a tag-inference engine.
func New() *Engine {
	return &Engine{}
}

// Tags returns the full inferred tag list for an entity: its existing tags
// followed by every newly inferred one, deduplicated, validated against the
// tag vocabulary, and capped at MaxTags. The result equals the existing
// tags when no rule fires.
func (g *Engine) Tags(e *entities.Entity) []string {
	existing := stringList(e, entities.FieldTags)

	tags := make([]string, 0, len(existing))
	seen := make(map[string]bool, len(existing))
	for _, t := range existing {
		if !seen[t] {
			tags = append(tags, t)
			seen[t] = true
		}
	}

	add := func(ids ...string) {
		for _, id := range ids {
			if vocabulary[id] && !seen[id] {
				tags = append(tags, id)
				seen[id] = true
			}
		}
	}

	text := searchText(e)
	for _, r := range textRules {
		if r.pattern.MatchString(text) {
			add(r.tags...)
		}
	}

	if cat, ok := stringField(e, entities.FieldCategory); ok {
		add(categoryTags[cat]...)
	}
	for _, platform := range stringList(e, entities.FieldPlatforms) {
		if tag, ok := platformTags[strings.ToLower(platform)]; ok {
			add(tag)
		}
	}
	if pricing, ok := stringField(e, entities.FieldPricingModel); ok {
		if tag, ok := pricingTags[pricing]; ok {
			add(tag)
		}
	}

	g.addStructured(e, add)

	// A closed-source entity whose description merely mentions open source
	// must not carry the tag.
	if open, ok := boolField(e, entities.FieldOpenSource); ok && !open {
		tags = without(tags, "open-source")
	}

	if len(tags) > MaxTags {
		tags = tags[:MaxTags]
	}
	return tags
}

// Record packages the inferred tags as an inferred-tier source record. The
// boolean is false when inference adds nothing beyond the entity's existing
// tags.
func (g *Engine) Record(e *entities.Entity) (entities.SourceRecord, bool) {
	tags := g.Tags(e)
	if len(tags) == len(stringList(e, entities.FieldTags)) {
		return entities.SourceRecord{}, false
	}

	return entities.SourceRecord{
		Source:     SourceName,
		Tier:       entities.TierInferred,
		Kind:       e.Kind,
		Fields:     map[entities.Field]any{entities.FieldTags: tags},
		ObservedAt: utc.Now(),
		Hints:      entities.IdentityHints{Slug: e.Slug},
		Confidence: map[entities.Field]float64{entities.FieldTags: Confidence},
	}, true
}

// addStructured infers tags from non-text fields.
func (g *Engine) addStructured(e *entities.Entity, add func(...string)) {
	if open, ok := boolField(e, entities.FieldOpenSource); ok {
		if open {
			add("open-source")
		} else {
			add("closed-source")
		}
	}
	if _, ok := stringField(e, entities.FieldGitHubURL); ok {
		add("open-source")
	}
	if api, ok := boolField(e, entities.FieldAPIAvailable); ok && api {
		add("api-service")
	}

	if arch, ok := stringField(e, entities.FieldArchitecture); ok {
		lower := strings.ToLower(arch)
		if strings.Contains(lower, "transformer") {
			add("transformer")
		}
		if strings.Contains(lower, "moe") || strings.Contains(lower, "mixture") {
			add("moe")
		}
		if strings.Contains(lower, "diffusion") {
			add("diffusion-model")
		}
		if strings.Contains(lower, "cnn") || strings.Contains(lower, "convolut") {
			add("computer-vision")
		}
	}

	if len(stringList(e, entities.FieldModalities)) > 1 {
		add("multimodal")
	}

	if country, ok := stringField(e, entities.FieldHQCountry); ok {
		if tag, ok := countryTags[country]; ok {
			add(tag)
		}
		if europeanCountries[country] {
			add("europe")
		}
	}
}

// searchText concatenates the entity's display text fields.
func searchText(e *entities.Entity) string {
	var parts []string
	for _, f := range []entities.Field{
		entities.FieldName,
		entities.FieldDescription,
		entities.FieldDescriptionZH,
	} {
		if s, ok := stringField(e, f); ok {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, " ")
}

func stringField(e *entities.Entity, f entities.Field) (string, bool) {
	v, ok := e.Field(f)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok && s != ""
}

func boolField(e *entities.Entity, f entities.Field) (bool, bool) {
	v, ok := e.Field(f)
	if !ok {
		return false, false
	}
	b, ok := v.(bool)
	return b, ok
}

// stringList reads a list field that may hold []string or []any after a
// YAML round-trip.
func stringList(e *entities.Entity, f entities.Field) []string {
	v, ok := e.Field(f)
	if !ok {
		return nil
	}
	switch list := v.(type) {
	case []string:
		return list
	case []any:
		out := make([]string, 0, len(list))
		for _, item := range list {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

func without(tags []string, drop string) []string {
	out := tags[:0]
	for _, t := range tags {
		if t != drop {
			out = append(out, t)
		}
	}
	return out
}
