package schema

import (
	"strconv"
	"strings"

	"github.com/kaptinlin/ucl"
)

// evaluateAllOf requires instance to validate against every subschema in
// schema.AllOf (spec.md §4.9).
func evaluateAllOf(schema *Schema, instance *ucl.Value) *EvaluationResult {
	if len(schema.AllOf) == 0 {
		return nil
	}

	result := NewEvaluationResult(schema)
	var invalid []string
	for i, sub := range schema.AllOf {
		detail := sub.Evaluate(instance)
		result.AddDetail(detail)
		if !detail.IsValid() {
			invalid = append(invalid, strconv.Itoa(i))
		}
	}

	if len(invalid) == 0 {
		return result
	}
	result.AddError(NewEvaluationError("allOf", Constraint, "all_of_mismatch",
		"Value does not match the allOf schema at index {indexes}", instance,
		map[string]any{"indexes": strings.Join(invalid, ", ")}))
	return result
}
