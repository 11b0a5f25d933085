package schema

import "github.com/kaptinlin/ucl"

// evaluateMinProperties checks instance's property count against
// schema.MinProperties (spec.md §4.9).
func evaluateMinProperties(schema *Schema, instance *ucl.Value) *EvaluationError {
	if schema.MinProperties == nil || instance.Tag() != ucl.Object {
		return nil
	}
	count := instance.Length()
	if float64(count) < *schema.MinProperties {
		return NewEvaluationError("minProperties", Constraint, "too_few_properties",
			"Value should have at least {min_properties} properties", instance,
			map[string]any{"min_properties": *schema.MinProperties, "count": count})
	}
	return nil
}
