package schema

import (
	"fmt"
	"strings"

	"github.com/kaptinlin/ucl"
)

// evaluateAdditionalProperties validates instance properties that neither
// "properties" nor "patternProperties" names, against schema
// .AdditionalProperties (spec.md §4.9). A nil AdditionalProperties means no
// constraint; a compiled false-schema (Boolean pointing at false) rejects
// any such property outright.
func evaluateAdditionalProperties(schema *Schema, instance *ucl.Value) *EvaluationResult {
	if schema.AdditionalProperties == nil || instance.Tag() != ucl.Object {
		return nil
	}

	named := make(map[string]bool)
	for name := range schema.Properties {
		named[name] = true
	}
	patternMatched := matchedPatternKeys(schema, instance)

	result := NewEvaluationResult(schema)
	var invalid []string
	instance.Iterate(ucl.Collapsed, func(entry ucl.Entry) bool {
		if named[entry.Key] || patternMatched[entry.Key] {
			return true
		}
		detail := schema.AdditionalProperties.Evaluate(entry.Value)
		detail.SetInstanceLocation("/" + entry.Key)
		result.AddDetail(detail)
		if !detail.IsValid() {
			invalid = append(invalid, entry.Key)
		}
		return true
	})

	if len(invalid) == 0 {
		return result
	}
	if len(invalid) == 1 {
		result.AddError(NewEvaluationError("additionalProperties", Constraint, "additional_property_mismatch",
			"Additional property {property} does not match the schema", instance,
			map[string]any{"property": fmt.Sprintf("'%s'", invalid[0])}))
		return result
	}
	quoted := make([]string, len(invalid))
	for i, p := range invalid {
		quoted[i] = fmt.Sprintf("'%s'", p)
	}
	result.AddError(NewEvaluationError("additionalProperties", Constraint, "additional_properties_mismatch",
		"Additional properties {properties} do not match the schema", instance,
		map[string]any{"properties": strings.Join(quoted, ", ")}))
	return result
}
