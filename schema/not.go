package schema

import "github.com/kaptinlin/ucl"

// evaluateNot requires instance to fail validation against schema.Not
// (spec.md §4.9).
func evaluateNot(schema *Schema, instance *ucl.Value) *EvaluationResult {
	if schema.Not == nil {
		return nil
	}

	result := NewEvaluationResult(schema)
	detail := schema.Not.Evaluate(instance)
	result.AddDetail(detail)
	if !detail.IsValid() {
		return result
	}
	result.AddError(NewEvaluationError("not", Constraint, "not_mismatch",
		"Value should not match the not schema", instance, nil))
	return result
}
