// Package enrich produces machine-inferred source records for canonical
// entities with schema gaps. It asks a Gemini model to propose values for
// the unset fields, each with a self-reported confidence, and packages the
// answer as an inferred-tier record. The enricher never writes to the
// store; its output flows through the confidence gate and the tiered merge
// like any other source.
package enrich

import (
	"context"
	"fmt"
	"os"

	"github.com/agentstation/utc"
	"google.golang.org/genai"

	"github.com/aidirectory/aidirectory/pkg/entities"
	"github.com/aidirectory/aidirectory/pkg/errors"
	"github.com/aidirectory/aidirectory/pkg/logging"
)

// DefaultModel is the Gemini model used when none is configured.
const DefaultModel = "gemini-2.0-flash"

// SourceName identifies enricher output in provenance entries.
const SourceName = "llm-enricher"

// Enricher proposes values for unset entity fields via the Gemini API.
type Enricher struct {
	client *genai.Client
	model  string
}

// Option configures an Enricher.
type Option func(*Enricher)

// WithModel selects the Gemini model to query.
func WithModel(model string) Option {
	return func(e *Enricher) {
		e.model = model
	}
}

// New creates an Enricher. The API key is read from GEMINI_API_KEY, falling
// back to GOOGLE_API_KEY.
func New(ctx context.Context, opts ...Option) (*Enricher, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		apiKey = os.Getenv("GOOGLE_API_KEY")
	}
	if apiKey == "" {
		return nil, errors.ErrAPIKeyRequired
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		Backend: genai.BackendGeminiAPI,
		APIKey:  apiKey,
	})
	if err != nil {
		return nil, err
	}

	e := &Enricher{client: client, model: DefaultModel}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Gaps returns the schema fields that are unset on an entity, in schema
// order. An entity with no gaps needs no enrichment.
func Gaps(e *entities.Entity) []entities.Field {
	var gaps []entities.Field
	for _, spec := range entities.Fields() {
		if _, ok := e.Field(spec.Name); !ok {
			gaps = append(gaps, spec.Name)
		}
	}
	return gaps
}

// Enrich queries the model for the entity's schema gaps and returns an
// inferred-tier source record carrying the proposed values and their
// confidences. An entity with no gaps yields a record with no fields.
func (e *Enricher) Enrich(ctx context.Context, entity *entities.Entity) (entities.SourceRecord, error) {
	rec := entities.SourceRecord{
		Source:     SourceName,
		Tier:       entities.TierInferred,
		Kind:       entity.Kind,
		Fields:     make(map[entities.Field]any),
		Confidence: make(map[entities.Field]float64),
		ObservedAt: utc.Now(),
		Hints:      entities.IdentityHints{Slug: entity.Slug},
	}

	gaps := Gaps(entity)
	if len(gaps) == 0 {
		return rec, nil
	}

	prompt := BuildPrompt(entity, gaps)

	resp, err := e.client.Models.GenerateContent(ctx, e.model, genai.Text(prompt), &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		Temperature:      genai.Ptr[float32](0.2),
	})
	if err != nil {
		return rec, fmt.Errorf("enriching %s: %w", entity.Slug, err)
	}

	fields, confidence, err := ParseProposal(resp.Text())
	if err != nil {
		return rec, errors.WrapParse("json", entity.Slug, err)
	}

	rec.Fields = fields
	rec.Confidence = confidence

	logging.Ctx(ctx).Debug().
		Str("slug", entity.Slug).
		Int("gaps", len(gaps)).
		Int("proposed", len(fields)).
		Msg("Enrichment proposal received")
	return rec, nil
}
