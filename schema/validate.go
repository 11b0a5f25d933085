package schema

import "github.com/kaptinlin/ucl"

// Evaluate validates instance against s, returning the full per-keyword
// result tree (spec.md §4.9). Each keyword is evaluated independently and
// merged in; a schema is invalid if any keyword's evaluation is invalid.
func (s *Schema) Evaluate(instance *ucl.Value) *EvaluationResult {
	result := NewEvaluationResult(s)

	if s.Boolean != nil {
		if !*s.Boolean {
			result.AddError(NewEvaluationError("schema", InvalidSchema, "false_schema_mismatch",
				"No values are allowed because the schema is set to 'false'", instance))
		}
		return result
	}

	if s.Ref != "" {
		target, err := s.resolveRef(s.Ref)
		if err != nil {
			result.AddError(NewEvaluationError("$ref", InvalidSchema, "invalid_ref",
				"Unable to resolve reference {ref}", instance, map[string]any{"ref": s.Ref}))
			return result
		}
		return target.Evaluate(instance)
	}

	addErr := func(err *EvaluationError) {
		if err != nil {
			result.AddError(err)
		}
	}
	merge := func(sub *EvaluationResult) {
		if sub == nil {
			return
		}
		result.AddDetail(sub)
		if !sub.IsValid() {
			result.SetInvalid()
		}
	}

	if len(s.Type) > 0 {
		addErr(evaluateType(s, instance))
	}
	if len(s.Enum) > 0 {
		addErr(evaluateEnum(s, instance))
	}

	merge(evaluateProperties(s, instance))
	merge(evaluatePatternProperties(s, instance))
	merge(evaluateAdditionalProperties(s, instance))
	addErr(evaluateRequired(s, instance))
	addErr(evaluateMinProperties(s, instance))
	addErr(evaluateMaxProperties(s, instance))
	merge(evaluateDependencies(s, instance))

	merge(evaluateItems(s, instance))
	addErr(evaluateUniqueItems(s, instance))
	addErr(evaluateMinItems(s, instance))
	addErr(evaluateMaxItems(s, instance))

	addErr(evaluateMinimum(s, instance))
	addErr(evaluateMaximum(s, instance))
	addErr(evaluateMultipleOf(s, instance))

	addErr(evaluateMinLength(s, instance))
	addErr(evaluateMaxLength(s, instance))
	addErr(evaluatePattern(s, instance))

	merge(evaluateAllOf(s, instance))
	merge(evaluateAnyOf(s, instance))
	merge(evaluateOneOf(s, instance))
	merge(evaluateNot(s, instance))

	addErr(evaluateFormat(s, instance))

	return result
}

// Validate runs Evaluate and collapses the result into spec.md §4.9's public
// "(bool, ErrorInfo)" shape, surfacing only the first error found.
func (s *Schema) Validate(instance *ucl.Value) (bool, *ErrorInfo) {
	return s.Evaluate(instance).ToErrorInfo()
}
