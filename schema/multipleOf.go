package schema

import (
	"math"

	"github.com/kaptinlin/ucl"
)

// evaluateMultipleOf checks that instance divides evenly by schema.MultipleOf.
// Draft-4 arithmetic is done in plain float64 rather than arbitrary-precision
// rationals, so exact integer division is replaced by an epsilon check on
// the IEEE remainder (spec.md §4.9).
func evaluateMultipleOf(schema *Schema, instance *ucl.Value) *EvaluationError {
	if schema.MultipleOf == nil || !instance.IsNumeric() {
		return nil
	}
	divisor := *schema.MultipleOf
	value := instance.AsFloat64()

	if math.Abs(math.Remainder(value, divisor)) >= 1e-16 {
		return NewEvaluationError("multipleOf", Constraint, "not_multiple_of",
			"{value} should be a multiple of {multiple_of}", instance,
			map[string]any{"value": value, "multiple_of": divisor})
	}
	return nil
}
