package schema

import "github.com/kaptinlin/ucl"

// evaluateMinimum checks a numeric instance against schema.Minimum. Draft-4
// expresses exclusivity as the boolean modifier "exclusiveMinimum" rather
// than 2020-12's standalone numeric keyword (spec.md §4.9), so both keywords
// are evaluated together here.
func evaluateMinimum(schema *Schema, instance *ucl.Value) *EvaluationError {
	if schema.Minimum == nil || !instance.IsNumeric() {
		return nil
	}
	value := instance.AsFloat64()
	if schema.ExclusiveMinimum {
		if value <= *schema.Minimum {
			return NewEvaluationError("minimum", Constraint, "exclusive_minimum_mismatch",
				"{value} should be greater than {minimum}", instance,
				map[string]any{"value": value, "minimum": *schema.Minimum})
		}
		return nil
	}
	if value < *schema.Minimum {
		return NewEvaluationError("minimum", Constraint, "value_below_minimum",
			"{value} should be at least {minimum}", instance,
			map[string]any{"value": value, "minimum": *schema.Minimum})
	}
	return nil
}
