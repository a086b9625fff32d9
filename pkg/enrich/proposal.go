package enrich

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/aidirectory/aidirectory/pkg/entities"
)

// proposal is the wire shape of one proposed field value.
type proposal struct {
	Value      json.RawMessage `json:"value"`
	Confidence float64         `json:"confidence"`
}

// ParseProposal decodes a model answer into field values and confidences.
// Unknown fields, values that do not decode to the field's declared shape,
// and confidences outside [0,1] are dropped rather than failing the whole
// answer; the error is non-nil only when the payload is not a JSON object
// at all.
func ParseProposal(raw string) (map[entities.Field]any, map[entities.Field]float64, error) {
	payload := stripFences(raw)

	var proposals map[string]proposal
	if err := json.Unmarshal([]byte(payload), &proposals); err != nil {
		return nil, nil, fmt.Errorf("decoding enrichment answer: %w", err)
	}

	fields := make(map[entities.Field]any, len(proposals))
	confidence := make(map[entities.Field]float64, len(proposals))

	for name, p := range proposals {
		field := entities.Field(name)
		spec, known := entities.Spec(field)
		if !known {
			continue
		}
		if p.Confidence < 0 || p.Confidence > 1 {
			continue
		}

		value, ok := decodeValue(spec.Kind, p.Value)
		if !ok {
			continue
		}

		fields[field] = value
		confidence[field] = p.Confidence
	}

	return fields, confidence, nil
}

// decodeValue decodes a raw JSON value against the field's declared shape.
func decodeValue(kind entities.FieldKind, raw json.RawMessage) (any, bool) {
	switch kind {
	case entities.KindString:
		var s string
		if json.Unmarshal(raw, &s) != nil || s == "" {
			return nil, false
		}
		return s, true
	case entities.KindInt:
		var n int
		if json.Unmarshal(raw, &n) != nil {
			return nil, false
		}
		return n, true
	case entities.KindFloat:
		var f float64
		if json.Unmarshal(raw, &f) != nil {
			return nil, false
		}
		return f, true
	case entities.KindBool:
		var b bool
		if json.Unmarshal(raw, &b) != nil {
			return nil, false
		}
		return b, true
	case entities.KindStringList, entities.KindSlugList:
		var list []string
		if json.Unmarshal(raw, &list) != nil || len(list) == 0 {
			return nil, false
		}
		return list, true
	default:
		return nil, false
	}
}

// stripFences removes a surrounding markdown code fence, which some models
// emit even when asked for bare JSON.
func stripFences(raw string) string {
	s := strings.TrimSpace(raw)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
