package schema

import (
	"unicode/utf8"

	"github.com/kaptinlin/ucl"
)

// evaluateMaxLength checks a string instance's rune count against
// schema.MaxLength (spec.md §4.9).
func evaluateMaxLength(schema *Schema, instance *ucl.Value) *EvaluationError {
	if schema.MaxLength == nil || instance.Tag() != ucl.String {
		return nil
	}
	length := utf8.RuneCountInString(instance.Str())
	if float64(length) > *schema.MaxLength {
		return NewEvaluationError("maxLength", Constraint, "string_too_long",
			"Value should be at most {max_length} characters", instance,
			map[string]any{"max_length": *schema.MaxLength, "length": length})
	}
	return nil
}
