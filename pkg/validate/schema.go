package validate

import (
	"fmt"

	"github.com/aidirectory/aidirectory/pkg/entities"
)

// SchemaChecker verifies entity field values against the declared schema:
// value shape, enum membership, and basic range sanity on numeric facts.
// It is the validator's conformance collaborator and can be used standalone
// against a single entity.
type SchemaChecker struct{}

// NewSchemaChecker creates a SchemaChecker.
func NewSchemaChecker() *SchemaChecker {
	return &SchemaChecker{}
}

// Check returns every schema violation on one entity.
func (c *SchemaChecker) Check(e *entities.Entity) []Defect {
	var defects []Defect

	for field, value := range e.Fields {
		spec, ok := entities.Spec(field)
		if !ok {
			defects = append(defects, Defect{
				Slug:    e.Slug,
				Field:   field,
				Kind:    DefectSchemaViolation,
				Message: "field is not declared in the schema",
			})
			continue
		}
		if entities.IsEmptyValue(value) {
			continue
		}
		if msg := c.checkValue(spec, value); msg != "" {
			defects = append(defects, Defect{
				Slug:    e.Slug,
				Field:   field,
				Kind:    DefectSchemaViolation,
				Message: msg,
			})
		}
	}

	return defects
}

// checkValue returns a violation message, or "" when the value conforms.
func (c *SchemaChecker) checkValue(spec entities.FieldSpec, value any) string {
	switch spec.Kind {
	case entities.KindString:
		s, ok := value.(string)
		if !ok {
			return fmt.Sprintf("expected string, got %T", value)
		}
		if !spec.AllowsValue(s) {
			return fmt.Sprintf("value %q is not in the allowed set", s)
		}
	case entities.KindInt:
		if _, ok := toInt(value); !ok {
			return fmt.Sprintf("expected integer, got %T", value)
		}
	case entities.KindFloat:
		if _, ok := toFloat(value); !ok {
			return fmt.Sprintf("expected number, got %T", value)
		}
	case entities.KindBool:
		if _, ok := value.(bool); !ok {
			return fmt.Sprintf("expected bool, got %T", value)
		}
	case entities.KindStringList, entities.KindSlugList:
		items := toSlugs(value)
		if items == nil {
			return fmt.Sprintf("expected string list, got %T", value)
		}
		for _, item := range items {
			if !spec.AllowsValue(item) {
				return fmt.Sprintf("list item %q is not in the allowed set", item)
			}
		}
	}
	return ""
}

// toInt accepts the integer representations YAML decoding produces.
func toInt(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int64:
		return n, true
	case uint64:
		return int64(n), true
	case float64:
		if n == float64(int64(n)) {
			return int64(n), true
		}
	}
	return 0, false
}

// toFloat accepts any numeric representation.
func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	}
	return 0, false
}
