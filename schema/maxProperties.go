package schema

import "github.com/kaptinlin/ucl"

// evaluateMaxProperties checks instance's property count against
// schema.MaxProperties (spec.md §4.9).
func evaluateMaxProperties(schema *Schema, instance *ucl.Value) *EvaluationError {
	if schema.MaxProperties == nil || instance.Tag() != ucl.Object {
		return nil
	}
	count := instance.Length()
	if float64(count) > *schema.MaxProperties {
		return NewEvaluationError("maxProperties", Constraint, "too_many_properties",
			"Value should have at most {max_properties} properties", instance,
			map[string]any{"max_properties": *schema.MaxProperties, "count": count})
	}
	return nil
}
