package enrich

import (
	"fmt"
	"strings"

	"github.com/aidirectory/aidirectory/pkg/entities"
)

// BuildPrompt renders the enrichment prompt for one entity: what is already
// known, which fields to propose, and the required answer shape. The prompt
// is deterministic for a given entity so runs are reproducible.
func BuildPrompt(e *entities.Entity, gaps []entities.Field) string {
	var b strings.Builder

	fmt.Fprintf(&b, "You are completing a structured directory entry for the %s %q.\n\n", e.Kind, e.Slug)

	b.WriteString("Known facts:\n")
	for _, field := range sortedFields(e) {
		value, _ := e.Field(field)
		fmt.Fprintf(&b, "  %s: %v\n", field, value)
	}

	b.WriteString("\nPropose values for these missing fields:\n")
	for _, field := range gaps {
		spec, _ := entities.Spec(field)
		fmt.Fprintf(&b, "  %s (%s)", field, kindName(spec.Kind))
		if len(spec.Enum) > 0 {
			fmt.Fprintf(&b, " one of: %s", strings.Join(spec.Enum, ", "))
		}
		b.WriteString("\n")
	}

	b.WriteString(`
Answer with a single JSON object. Each key is a field name; each value is an
object {"value": <proposed value>, "confidence": <0.0-1.0>}. Confidence is
how certain you are the value is correct, not how plausible it sounds. Omit
any field you cannot propose; never guess identifiers, URLs, or financial
figures you are not sure of.
`)

	return b.String()
}

// sortedFields returns the entity's populated fields in schema order.
func sortedFields(e *entities.Entity) []entities.Field {
	var fields []entities.Field
	for _, spec := range entities.Fields() {
		if _, ok := e.Field(spec.Name); ok {
			fields = append(fields, spec.Name)
		}
	}
	return fields
}

// kindName renders a field kind for the prompt.
func kindName(k entities.FieldKind) string {
	switch k {
	case entities.KindInt:
		return "integer"
	case entities.KindFloat:
		return "number"
	case entities.KindBool:
		return "boolean"
	case entities.KindStringList, entities.KindSlugList:
		return "list of strings"
	default:
		return "string"
	}
}
