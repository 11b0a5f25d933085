package schema

import (
	"strings"

	"github.com/kaptinlin/ucl"
)

// evaluateType checks instance's tag against schema.Type, treating Int,
// Float, and Time as "number" per spec.md §4.9 ("an Int passes number; a
// Time passes number"); "integer" additionally requires the tag be Int or a
// Time/Float holding a whole number.
func evaluateType(schema *Schema, instance *ucl.Value) *EvaluationError {
	if len(schema.Type) == 0 {
		return nil
	}
	for _, t := range schema.Type {
		if matchesInstanceType(instance, t) {
			return nil
		}
	}
	return NewEvaluationError("type", TypeMismatch, "type_mismatch",
		"Value is {received} but should be {expected}", instance,
		map[string]any{
			"expected": strings.Join(schema.Type, " or "),
			"received": jsonTypeName(instance),
		})
}

func matchesInstanceType(instance *ucl.Value, t string) bool {
	switch t {
	case "number":
		return instance.IsNumeric()
	case "integer":
		if instance.Tag() == ucl.Int {
			return true
		}
		if instance.IsNumeric() {
			f := instance.AsFloat64()
			return f == float64(int64(f))
		}
		return false
	case "string":
		return instance.Tag() == ucl.String
	case "boolean":
		return instance.Tag() == ucl.Bool
	case "object":
		return instance.Tag() == ucl.Object
	case "array":
		return instance.Tag() == ucl.Array
	case "null":
		return instance.Tag() == ucl.Null
	default:
		return false
	}
}

// jsonTypeName reports the JSON Schema type name for an instance's tag, for
// the type_mismatch error message.
func jsonTypeName(instance *ucl.Value) string {
	switch instance.Tag() {
	case ucl.Null:
		return "null"
	case ucl.Bool:
		return "boolean"
	case ucl.Int:
		return "integer"
	case ucl.Float, ucl.Time:
		return "number"
	case ucl.String:
		return "string"
	case ucl.Array:
		return "array"
	case ucl.Object:
		return "object"
	default:
		return "unknown"
	}
}
