package schema

import "github.com/kaptinlin/ucl"

// evaluateMinItems checks instance's element count against schema.MinItems
// (spec.md §4.9).
func evaluateMinItems(schema *Schema, instance *ucl.Value) *EvaluationError {
	if schema.MinItems == nil || instance.Tag() != ucl.Array {
		return nil
	}
	count := instance.Length()
	if float64(count) < *schema.MinItems {
		return NewEvaluationError("minItems", Constraint, "too_few_items",
			"Array should have at least {min_items} items", instance,
			map[string]any{"min_items": *schema.MinItems, "count": count})
	}
	return nil
}
