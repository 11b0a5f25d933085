package schema

import (
	"fmt"
	"strings"

	"github.com/kaptinlin/ucl"
)

// evaluateProperties validates each named property present in instance
// against its subschema, recording a detail result per property plus a
// single combined Constraint error naming every
// property that failed (spec.md §4.9's "properties" keyword).
func evaluateProperties(schema *Schema, instance *ucl.Value) *EvaluationResult {
	if schema.Properties == nil || instance.Tag() != ucl.Object {
		return nil
	}

	result := NewEvaluationResult(schema)
	var invalid []string
	for _, name := range schema.PropertyOrder {
		val, ok := instance.Get(name)
		if !ok {
			continue
		}
		detail := schema.Properties[name].Evaluate(val)
		detail.SetInstanceLocation("/" + name)
		result.AddDetail(detail)
		if !detail.IsValid() {
			invalid = append(invalid, name)
		}
	}

	if len(invalid) == 0 {
		return result
	}
	if len(invalid) == 1 {
		result.AddError(NewEvaluationError("properties", Constraint, "property_mismatch",
			"Property {property} does not match the schema", instance,
			map[string]any{"property": fmt.Sprintf("'%s'", invalid[0])}))
		return result
	}
	quoted := make([]string, len(invalid))
	for i, p := range invalid {
		quoted[i] = fmt.Sprintf("'%s'", p)
	}
	result.AddError(NewEvaluationError("properties", Constraint, "properties_mismatch",
		"Properties {properties} do not match the schema", instance,
		map[string]any{"properties": strings.Join(quoted, ", ")}))
	return result
}
