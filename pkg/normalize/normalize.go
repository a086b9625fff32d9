// Package normalize canonicalizes raw source fields into the shape the rest
// of the pipeline expects. Normalization is pure and total: malformed input
// never raises an error, it degrades to an empty value and the field is
// treated as unobserved.
package normalize

import (
	"regexp"
	"strings"

	"github.com/aidirectory/aidirectory/pkg/entities"
	"github.com/aidirectory/aidirectory/pkg/logging"
)

// legalSuffixes matches trailing legal-entity decorations on company names.
var legalSuffixes = regexp.MustCompile(`(?i)\s*(,?\s*(Inc\.?|LLC|Ltd\.?|Corp\.?|Co\.?|GmbH|S\.?A\.?))\s*$`)

// whitespaceRuns collapses internal whitespace runs to a single space.
var whitespaceRuns = regexp.MustCompile(`\s+`)

// Normalizer canonicalizes source records field by field. The zero value is
// not usable; create one with New.
type Normalizer struct {
	stripLegalSuffixes bool
}

// Option configures a Normalizer.
type Option func(*Normalizer)

// WithStripLegalSuffixes enables removal of trailing legal-entity suffixes
// (Inc, LLC, Ltd, ...) from display names.
func WithStripLegalSuffixes() Option {
	return func(n *Normalizer) {
		n.stripLegalSuffixes = true
	}
}

// New creates a Normalizer.
func New(opts ...Option) *Normalizer {
	n := &Normalizer{}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Name trims and collapses whitespace and, when configured, strips trailing
// legal suffixes. Casing and non-Latin script content are preserved.
func (n *Normalizer) Name(raw string) string {
	name := strings.TrimSpace(raw)
	name = whitespaceRuns.ReplaceAllString(name, " ")
	if n.stripLegalSuffixes {
		name = legalSuffixes.ReplaceAllString(name, "")
	}
	return name
}

// Record projects a raw source record onto the fixed field schema and
// normalizes every field it keeps. Unknown fields and values that fail
// normalization are dropped, not propagated as errors. The input record is
// not modified.
func (n *Normalizer) Record(rec entities.SourceRecord) entities.SourceRecord {
	out := rec
	out.Fields = make(map[entities.Field]any, len(rec.Fields))

	for field, raw := range rec.Fields {
		spec, known := entities.Spec(field)
		if !known {
			logging.Debug().
				Str("source", rec.Source).
				Str("field", string(field)).
				Msg("Dropping unknown field")
			continue
		}

		value, ok := n.normalizeValue(spec, raw)
		if !ok {
			logging.Debug().
				Str("source", rec.Source).
				Str("field", string(field)).
				Msg("Dropping field that failed normalization")
			continue
		}
		out.Fields[field] = value
	}

	out.Hints = n.hints(rec, out.Fields)
	return out
}

// normalizeValue canonicalizes one field value against its schema spec.
// The second return is false when the value cannot be represented and the
// field should be treated as unobserved.
func (n *Normalizer) normalizeValue(spec entities.FieldSpec, raw any) (any, bool) {
	switch spec.Kind {
	case entities.KindString:
		s, ok := raw.(string)
		if !ok {
			return nil, false
		}
		s = n.normalizeString(spec, s)
		if s == "" {
			return nil, false
		}
		return s, true

	case entities.KindInt:
		switch v := raw.(type) {
		case int:
			return v, true
		case int64:
			return int(v), true
		case uint64:
			return int(v), true
		case float64:
			return int(v), true
		default:
			return nil, false
		}

	case entities.KindFloat:
		switch v := raw.(type) {
		case float64:
			return v, true
		case int:
			return float64(v), true
		case int64:
			return float64(v), true
		case uint64:
			return float64(v), true
		default:
			return nil, false
		}

	case entities.KindBool:
		b, ok := raw.(bool)
		if !ok {
			return nil, false
		}
		return b, true

	case entities.KindStringList, entities.KindSlugList:
		items := toStringList(raw)
		var kept []string
		for _, item := range items {
			item = strings.TrimSpace(item)
			if item == "" || !spec.AllowsValue(item) {
				continue
			}
			if spec.Kind == entities.KindSlugList {
				item = Slug(item)
				if item == "" {
					continue
				}
			}
			kept = append(kept, item)
		}
		if len(kept) == 0 {
			return nil, false
		}
		return kept, true
	}

	return nil, false
}

// normalizeString applies per-field string canonicalization.
func (n *Normalizer) normalizeString(spec entities.FieldSpec, s string) string {
	switch spec.Name {
	case entities.FieldName:
		s = n.Name(s)
	case entities.FieldWebsite, entities.FieldGitHubURL, entities.FieldLinkedInURL:
		s = URL(s)
	case entities.FieldHQCountry:
		s = Country(s)
	case entities.FieldHQCountryCode:
		s = strings.ToUpper(strings.TrimSpace(s))
		if len(s) != 2 {
			return ""
		}
	default:
		s = strings.TrimSpace(s)
	}

	if s == "" || !spec.AllowsValue(s) {
		return ""
	}
	return s
}

// hints derives identity hints from the normalized fields, falling back to
// whatever the source supplied.
func (n *Normalizer) hints(rec entities.SourceRecord, fields map[entities.Field]any) entities.IdentityHints {
	hints := rec.Hints

	if hints.Name == "" {
		if name, ok := fields[entities.FieldName].(string); ok {
			hints.Name = name
		}
	} else {
		hints.Name = n.Name(hints.Name)
	}

	if hints.URL == "" {
		if site, ok := fields[entities.FieldWebsite].(string); ok {
			hints.URL = site
		}
	} else {
		hints.URL = URL(hints.URL)
	}

	if hints.Slug == "" && hints.Name != "" {
		hints.Slug = Slug(hints.Name)
	} else if hints.Slug != "" {
		hints.Slug = Slug(hints.Slug)
	}

	return hints
}

// toStringList coerces a raw list value into []string, dropping non-string
// items.
func toStringList(raw any) []string {
	switch v := raw.(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	case string:
		if v == "" {
			return nil
		}
		return []string{v}
	default:
		return nil
	}
}
