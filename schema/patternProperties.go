package schema

import (
	"fmt"
	"strings"

	"github.com/kaptinlin/ucl"
)

// matchedPatternKeys reports which instance keys any patternProperties
// regex matches, so additionalProperties knows which keys are already
// spoken for.
func matchedPatternKeys(schema *Schema, instance *ucl.Value) map[string]bool {
	matched := make(map[string]bool)
	if schema.PatternProperties == nil {
		return matched
	}
	instance.Iterate(ucl.Collapsed, func(entry ucl.Entry) bool {
		for pattern, re := range schema.compiledPatterns {
			_ = pattern
			if re.MatchString(entry.Key) {
				matched[entry.Key] = true
			}
		}
		return true
	})
	return matched
}

// evaluatePatternProperties validates every instance property whose name
// matches one of schema.PatternProperties's regex keys against the
// corresponding subschema (spec.md §4.9).
func evaluatePatternProperties(schema *Schema, instance *ucl.Value) *EvaluationResult {
	if schema.PatternProperties == nil || instance.Tag() != ucl.Object {
		return nil
	}

	result := NewEvaluationResult(schema)
	var invalid []string
	seen := make(map[string]bool)
	instance.Iterate(ucl.Collapsed, func(entry ucl.Entry) bool {
		for pattern, patternSchema := range schema.PatternProperties {
			re, ok := schema.compiledPatterns[pattern]
			if !ok || !re.MatchString(entry.Key) {
				continue
			}
			detail := patternSchema.Evaluate(entry.Value)
			detail.SetInstanceLocation("/" + entry.Key)
			result.AddDetail(detail)
			if !detail.IsValid() && !seen[entry.Key] {
				seen[entry.Key] = true
				invalid = append(invalid, entry.Key)
			}
		}
		return true
	})

	if len(invalid) == 0 {
		return result
	}
	if len(invalid) == 1 {
		result.AddError(NewEvaluationError("patternProperties", Constraint, "pattern_property_mismatch",
			"Property {property} does not match the pattern schema", instance,
			map[string]any{"property": fmt.Sprintf("'%s'", invalid[0])}))
		return result
	}
	quoted := make([]string, len(invalid))
	for i, p := range invalid {
		quoted[i] = fmt.Sprintf("'%s'", p)
	}
	result.AddError(NewEvaluationError("patternProperties", Constraint, "pattern_properties_mismatch",
		"Properties {properties} do not match their pattern schemas", instance,
		map[string]any{"properties": strings.Join(quoted, ", ")}))
	return result
}
