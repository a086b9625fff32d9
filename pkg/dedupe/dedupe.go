// Package dedupe decides whether a normalized source record denotes an
// existing canonical entity or a new one. Matching rules run in strict
// precedence order — domain, slug, fuzzy name — and the first rule that
// produces exactly one match wins. Ties are never auto-resolved; they
// surface as an ambiguous decision for external resolution.
package dedupe

import (
	"sort"
	"strings"

	"github.com/aidirectory/aidirectory/pkg/entities"
	"github.com/aidirectory/aidirectory/pkg/logging"
	"github.com/aidirectory/aidirectory/pkg/normalize"
	"github.com/aidirectory/aidirectory/pkg/store"
)

// Matching thresholds for fuzzy name comparison.
const (
	// NameSimilarityThreshold is the minimum score for a fuzzy name match.
	NameSimilarityThreshold = 0.85
	// AmbiguityMargin is how far the best fuzzy score must exceed the
	// runner-up before the match is trusted.
	AmbiguityMargin = 0.05
)

// DecisionKind classifies the outcome of a resolution.
type DecisionKind int

const (
	// NoMatch means the record denotes a new entity.
	NoMatch DecisionKind = iota
	// Match means the record denotes exactly one existing entity.
	Match
	// Ambiguous means more than one existing entity plausibly matches; the
	// record must be held for external resolution.
	Ambiguous
)

// String returns the kind name.
func (k DecisionKind) String() string {
	switch k {
	case Match:
		return "match"
	case Ambiguous:
		return "ambiguous"
	default:
		return "no-match"
	}
}

// Decision is the result of resolving one record's identity hints.
type Decision struct {
	Kind DecisionKind
	// Slug is the matched entity, set when Kind is Match.
	Slug string
	// Candidates are the competing slugs, set when Kind is Ambiguous,
	// ordered by descending score.
	Candidates []string
	// Rule names the matching rule that fired ("domain", "slug", "name").
	Rule string
}

// Deduplicator matches identity hints against an index snapshot. Snapshots
// are immutable, so a Deduplicator is safe for concurrent use; take a fresh
// snapshot per batch to observe newly created entities.
type Deduplicator struct {
	index *store.Index
}

// New creates a Deduplicator over an index snapshot.
func New(index *store.Index) *Deduplicator {
	if index == nil {
		index = store.NewIndex()
	}
	return &Deduplicator{index: index}
}

// Resolve decides which existing entity, if any, the hints denote. The
// decision is deterministic: the same index and hints always produce the
// same result.
func (d *Deduplicator) Resolve(hints entities.IdentityHints) Decision {
	// Rule 1: exact domain match. Strongest signal, short-circuits the rest.
	if domain := normalize.Domain(hints.URL); domain != "" {
		if slug, ok := d.index.Domains[domain]; ok {
			return Decision{Kind: Match, Slug: slug, Rule: "domain"}
		}
	}

	// Rule 2: exact slug match.
	if hints.Slug != "" && d.index.Slugs[hints.Slug] {
		return Decision{Kind: Match, Slug: hints.Slug, Rule: "slug"}
	}

	// Rule 3: fuzzy name match.
	if hints.Name != "" {
		if decision, ok := d.resolveByName(hints.Name); ok {
			return decision
		}
	}

	return Decision{Kind: NoMatch}
}

// scored pairs a candidate slug with its name similarity.
type scored struct {
	slug  string
	score float64
}

// resolveByName scores the candidate name against every indexed name. The
// boolean is false when no candidate clears the threshold.
func (d *Deduplicator) resolveByName(name string) (Decision, bool) {
	target := strings.ToLower(name)

	var candidates []scored
	for existing, slug := range d.index.Names {
		if score := NameSimilarity(target, existing); score >= NameSimilarityThreshold {
			candidates = append(candidates, scored{slug: slug, score: score})
		}
	}

	if len(candidates) == 0 {
		return Decision{}, false
	}

	// Sort by score descending, slug ascending for determinism.
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].score != candidates[j].score {
			return candidates[i].score > candidates[j].score
		}
		return candidates[i].slug < candidates[j].slug
	})

	if len(candidates) == 1 {
		return Decision{Kind: Match, Slug: candidates[0].slug, Rule: "name"}, true
	}

	best, second := candidates[0], candidates[1]
	if best.slug == second.slug || best.score-second.score >= AmbiguityMargin {
		return Decision{Kind: Match, Slug: best.slug, Rule: "name"}, true
	}

	slugs := make([]string, 0, len(candidates))
	seen := make(map[string]bool, len(candidates))
	for _, c := range candidates {
		if !seen[c.slug] {
			slugs = append(slugs, c.slug)
			seen[c.slug] = true
		}
	}

	logging.Debug().
		Str("name", name).
		Float64("best", best.score).
		Float64("second", second.score).
		Msg("Fuzzy name match is ambiguous")

	return Decision{Kind: Ambiguous, Candidates: slugs, Rule: "name"}, true
}
