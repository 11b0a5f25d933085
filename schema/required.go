package schema

import (
	"fmt"
	"strings"

	"github.com/kaptinlin/ucl"
)

// evaluateRequired checks that every name in schema.Required is present as
// an instance property (spec.md §4.9).
func evaluateRequired(schema *Schema, instance *ucl.Value) *EvaluationError {
	if len(schema.Required) == 0 || instance.Tag() != ucl.Object {
		return nil
	}

	var missing []string
	for _, name := range schema.Required {
		if _, ok := instance.Get(name); !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	if len(missing) == 1 {
		return NewEvaluationError("required", MissingProperty, "missing_required_property",
			"Required property {property} is missing", instance,
			map[string]any{"property": fmt.Sprintf("'%s'", missing[0])})
	}
	quoted := make([]string, len(missing))
	for i, p := range missing {
		quoted[i] = fmt.Sprintf("'%s'", p)
	}
	return NewEvaluationError("required", MissingProperty, "missing_required_properties",
		"Required properties {properties} are missing", instance,
		map[string]any{"properties": strings.Join(quoted, ", ")})
}
