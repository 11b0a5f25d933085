package schema

import (
	"regexp"

	"github.com/kaptinlin/ucl"
)

// evaluatePattern checks a string instance against schema.Pattern, an
// RE2-dialect regular expression compiled lazily and cached on the schema
// (spec.md §4.9).
func evaluatePattern(schema *Schema, instance *ucl.Value) *EvaluationError {
	if schema.Pattern == nil || instance.Tag() != ucl.String {
		return nil
	}
	regExp, err := getCompiledPattern(schema)
	if err != nil {
		return NewEvaluationError("pattern", InvalidSchema, "invalid_pattern",
			"Invalid regular expression pattern {pattern}", instance,
			map[string]any{"pattern": *schema.Pattern})
	}

	value := instance.Str()
	if !regExp.MatchString(value) {
		return NewEvaluationError("pattern", Constraint, "pattern_mismatch",
			"Value does not match the required pattern {pattern}", instance,
			map[string]any{"pattern": *schema.Pattern, "value": value})
	}
	return nil
}

func getCompiledPattern(schema *Schema) (*regexp.Regexp, error) {
	if schema.compiledStringPattern == nil {
		regExp, err := regexp.Compile(*schema.Pattern)
		if err != nil {
			return nil, err
		}
		schema.compiledStringPattern = regExp
	}
	return schema.compiledStringPattern, nil
}
