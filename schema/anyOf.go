package schema

import "github.com/kaptinlin/ucl"

// evaluateAnyOf requires instance to validate against at least one subschema
// in schema.AnyOf (spec.md §4.9).
func evaluateAnyOf(schema *Schema, instance *ucl.Value) *EvaluationResult {
	if len(schema.AnyOf) == 0 {
		return nil
	}

	result := NewEvaluationResult(schema)
	matched := false
	for _, sub := range schema.AnyOf {
		detail := sub.Evaluate(instance)
		result.AddDetail(detail)
		if detail.IsValid() {
			matched = true
		}
	}

	if matched {
		return result
	}
	result.AddError(NewEvaluationError("anyOf", Constraint, "any_of_mismatch",
		"Value does not match any of the anyOf schemas", instance, nil))
	return result
}
