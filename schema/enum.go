package schema

import "github.com/kaptinlin/ucl"

// evaluateEnum checks instance against schema.Enum using the same deep
// equality relation uniqueItems uses (spec.md §4.9/§8 property 10):
// ucl.Equal, which compares Int/Float/Time numerically.
func evaluateEnum(schema *Schema, instance *ucl.Value) *EvaluationError {
	if len(schema.Enum) == 0 {
		return nil
	}
	for _, want := range schema.Enum {
		if ucl.Equal(instance, want) {
			return nil
		}
	}
	return NewEvaluationError("enum", Constraint, "value_not_in_enum",
		"Value should match one of the values specified by the enum", instance)
}
