package schema

import (
	"fmt"
	"strings"

	"github.com/kaptinlin/ucl"
)

// evaluateDependencies implements draft-4's single "dependencies" keyword,
// which the 2019-09+ split into dependentRequired/dependentSchemas (spec.md
// §4.9 keeps the unified draft-4 form; see DESIGN.md's dropped-module
// ledger). Each entry's trigger property, if present on instance, requires
// either a list of co-required property names or that the whole instance
// validate against a subschema.
func evaluateDependencies(schema *Schema, instance *ucl.Value) *EvaluationResult {
	if schema.Dependencies == nil || instance.Tag() != ucl.Object {
		return nil
	}

	result := NewEvaluationResult(schema)
	var missingDeps []string
	for trigger, dep := range schema.Dependencies {
		if _, present := instance.Get(trigger); !present {
			continue
		}

		for _, required := range dep.Properties {
			if _, ok := instance.Get(required); !ok {
				missingDeps = append(missingDeps, fmt.Sprintf("'%s' requires '%s'", trigger, required))
			}
		}

		if dep.Schema != nil {
			detail := dep.Schema.Evaluate(instance)
			result.AddDetail(detail)
			if !detail.IsValid() {
				missingDeps = append(missingDeps, fmt.Sprintf("'%s' requires the dependent schema to match", trigger))
			}
		}
	}

	if len(missingDeps) == 0 {
		return result
	}
	result.AddError(NewEvaluationError("dependencies", MissingDependency, "dependency_mismatch",
		"Unsatisfied dependencies: {dependencies}", instance,
		map[string]any{"dependencies": strings.Join(missingDeps, "; ")}))
	return result
}
