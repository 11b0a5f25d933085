package schema

import (
	"strconv"
	"strings"

	"github.com/kaptinlin/ucl"
)

// evaluateOneOf requires instance to validate against exactly one subschema
// in schema.OneOf (spec.md §4.9).
func evaluateOneOf(schema *Schema, instance *ucl.Value) *EvaluationResult {
	if len(schema.OneOf) == 0 {
		return nil
	}

	result := NewEvaluationResult(schema)
	var matched []string
	for i, sub := range schema.OneOf {
		detail := sub.Evaluate(instance)
		result.AddDetail(detail)
		if detail.IsValid() {
			matched = append(matched, strconv.Itoa(i))
		}
	}

	if len(matched) == 1 {
		return result
	}
	if len(matched) == 0 {
		result.AddError(NewEvaluationError("oneOf", Constraint, "one_of_none_matched",
			"Value does not match any of the oneOf schemas", instance, nil))
		return result
	}
	result.AddError(NewEvaluationError("oneOf", Constraint, "one_of_multiple_matched",
		"Value matches more than one oneOf schema: {indexes}", instance,
		map[string]any{"indexes": strings.Join(matched, ", ")}))
	return result
}
