package schema

import "github.com/kaptinlin/ucl"

// evaluateMaxItems checks instance's element count against schema.MaxItems
// (spec.md §4.9).
func evaluateMaxItems(schema *Schema, instance *ucl.Value) *EvaluationError {
	if schema.MaxItems == nil || instance.Tag() != ucl.Array {
		return nil
	}
	count := instance.Length()
	if float64(count) > *schema.MaxItems {
		return NewEvaluationError("maxItems", Constraint, "too_many_items",
			"Array should have at most {max_items} items", instance,
			map[string]any{"max_items": *schema.MaxItems, "count": count})
	}
	return nil
}
