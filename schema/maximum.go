package schema

import "github.com/kaptinlin/ucl"

// evaluateMaximum checks a numeric instance against schema.Maximum, folding
// in draft-4's boolean "exclusiveMaximum" modifier (spec.md §4.9).
func evaluateMaximum(schema *Schema, instance *ucl.Value) *EvaluationError {
	if schema.Maximum == nil || !instance.IsNumeric() {
		return nil
	}
	value := instance.AsFloat64()
	if schema.ExclusiveMaximum {
		if value >= *schema.Maximum {
			return NewEvaluationError("maximum", Constraint, "exclusive_maximum_mismatch",
				"{value} should be less than {maximum}", instance,
				map[string]any{"value": value, "maximum": *schema.Maximum})
		}
		return nil
	}
	if value > *schema.Maximum {
		return NewEvaluationError("maximum", Constraint, "value_above_maximum",
			"{value} should be at most {maximum}", instance,
			map[string]any{"value": value, "maximum": *schema.Maximum})
	}
	return nil
}
