package schema

import "github.com/kaptinlin/ucl"

// evaluateFormat checks instance against the named format validator for
// schema.Format, consulting the compiler's custom registry first and then
// the built-in Formats table. Per spec.md §4.10, format is an annotation:
// it is only enforced when the owning Compiler has AssertFormat set, and an
// unrecognized format name never produces an error regardless of that flag.
func evaluateFormat(schema *Schema, instance *ucl.Value) *EvaluationError {
	if schema.Format == nil {
		return nil
	}
	name := *schema.Format

	var validate FormatValidator
	if schema.compiler != nil {
		if v, ok := schema.compiler.lookupFormat(name); ok {
			validate = v
		}
	}
	if validate == nil {
		if v, ok := Formats[name]; ok {
			validate = v
		}
	}
	if validate == nil {
		return nil
	}

	assert := schema.compiler != nil && schema.compiler.AssertFormat
	if !assert {
		return nil
	}
	if !validate(instance) {
		return NewEvaluationError("format", Constraint, "format_mismatch",
			"Value does not match format '{format}'", instance,
			map[string]any{"format": name})
	}
	return nil
}
