package schema

import (
	"unicode/utf8"

	"github.com/kaptinlin/ucl"
)

// evaluateMinLength checks a string instance's rune count against
// schema.MinLength (spec.md §4.9).
func evaluateMinLength(schema *Schema, instance *ucl.Value) *EvaluationError {
	if schema.MinLength == nil || instance.Tag() != ucl.String {
		return nil
	}
	length := utf8.RuneCountInString(instance.Str())
	if float64(length) < *schema.MinLength {
		return NewEvaluationError("minLength", Constraint, "string_too_short",
			"Value should be at least {min_length} characters", instance,
			map[string]any{"min_length": *schema.MinLength, "length": length})
	}
	return nil
}
