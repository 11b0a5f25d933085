package schema_test

import (
	"testing"

	"github.com/kaptinlin/ucl"
	"github.com/kaptinlin/ucl/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustCompile(t *testing.T, schemaJSON string) *schema.Schema {
	t.Helper()
	c := schema.NewCompiler()
	s, err := c.CompileJSON("", []byte(schemaJSON))
	require.NoError(t, err)
	return s
}

func mustValue(t *testing.T, instanceJSON string) *ucl.Value {
	t.Helper()
	v, err := ucl.FromJSONBytes([]byte(instanceJSON))
	require.NoError(t, err)
	return v
}

func TestBooleanSchemas(t *testing.T) {
	trueSchema := mustCompile(t, `true`)
	ok, info := trueSchema.Validate(mustValue(t, `{"anything":1}`))
	assert.True(t, ok)
	assert.Nil(t, info)

	falseSchema := mustCompile(t, `false`)
	ok, info = falseSchema.Validate(mustValue(t, `1`))
	assert.False(t, ok)
	require.NotNil(t, info)
	assert.Equal(t, schema.InvalidSchema, info.Code)
}

func TestTypeKeyword(t *testing.T) {
	s := mustCompile(t, `{"type": "string"}`)

	ok, info := s.Validate(mustValue(t, `"hello"`))
	assert.True(t, ok)
	assert.Nil(t, info)

	ok, info = s.Validate(mustValue(t, `42`))
	require.False(t, ok)
	assert.Equal(t, schema.TypeMismatch, info.Code)
}

func TestTypeAcceptsUnionList(t *testing.T) {
	s := mustCompile(t, `{"type": ["string", "number"]}`)
	assert.True(t, first(s.Validate(mustValue(t, `"x"`))))
	assert.True(t, first(s.Validate(mustValue(t, `3.5`))))
	assert.False(t, first(s.Validate(mustValue(t, `true`))))
}

func TestRequiredAndProperties(t *testing.T) {
	s := mustCompile(t, `{
		"type": "object",
		"properties": {
			"name": {"type": "string"},
			"age": {"type": "integer", "minimum": 0}
		},
		"required": ["name"]
	}`)

	ok, _ := s.Validate(mustValue(t, `{"name": "Ada", "age": 30}`))
	assert.True(t, ok)

	ok, info := s.Validate(mustValue(t, `{"age": 30}`))
	require.False(t, ok)
	assert.Equal(t, schema.MissingProperty, info.Code)

	ok, info = s.Validate(mustValue(t, `{"name": "Ada", "age": -1}`))
	require.False(t, ok)
	assert.Equal(t, schema.Constraint, info.Code)
}

func TestAdditionalPropertiesFalseRejectsExtras(t *testing.T) {
	s := mustCompile(t, `{
		"type": "object",
		"properties": {"a": {"type": "string"}},
		"additionalProperties": false
	}`)

	assert.True(t, first(s.Validate(mustValue(t, `{"a": "x"}`))))
	assert.False(t, first(s.Validate(mustValue(t, `{"a": "x", "b": 1}`))))
}

func TestPatternProperties(t *testing.T) {
	s := mustCompile(t, `{
		"type": "object",
		"patternProperties": {
			"^S_": {"type": "string"},
			"^I_": {"type": "integer"}
		},
		"additionalProperties": false
	}`)

	assert.True(t, first(s.Validate(mustValue(t, `{"S_name": "x", "I_count": 3}`))))
	assert.False(t, first(s.Validate(mustValue(t, `{"S_name": 1}`))))
	assert.False(t, first(s.Validate(mustValue(t, `{"other": 1}`))))
}

func TestMinMaxProperties(t *testing.T) {
	s := mustCompile(t, `{"minProperties": 1, "maxProperties": 2}`)
	assert.False(t, first(s.Validate(mustValue(t, `{}`))))
	assert.True(t, first(s.Validate(mustValue(t, `{"a":1}`))))
	assert.False(t, first(s.Validate(mustValue(t, `{"a":1,"b":2,"c":3}`))))
}

func TestDependencies(t *testing.T) {
	s := mustCompile(t, `{
		"dependencies": {
			"credit_card": ["billing_address"]
		}
	}`)
	assert.True(t, first(s.Validate(mustValue(t, `{"name": "Ada"}`))))
	assert.False(t, first(s.Validate(mustValue(t, `{"credit_card": "1234"}`))))
	assert.True(t, first(s.Validate(mustValue(t, `{"credit_card": "1234", "billing_address": "x"}`))))
}

func TestEnum(t *testing.T) {
	s := mustCompile(t, `{"enum": ["red", "green", "blue"]}`)
	assert.True(t, first(s.Validate(mustValue(t, `"red"`))))
	assert.False(t, first(s.Validate(mustValue(t, `"yellow"`))))
}

func first(ok bool, _ *schema.ErrorInfo) bool { return ok }

// TestSpecExampleE5 covers spec.md §8's E5: a bound violation on an
// integer range fails with Constraint and a message naming the bound.
func TestSpecExampleE5(t *testing.T) {
	s := mustCompile(t, `{"type": "integer", "minimum": 0, "maximum": 255}`)
	ok, info := s.Validate(mustValue(t, `300`))
	require.False(t, ok)
	assert.Equal(t, schema.Constraint, info.Code)
	assert.Contains(t, info.Message, "255")
}

// TestSpecExampleE6 covers spec.md §8's E6: additionalProperties:false
// rejects an unexpected property naming it in the error, while the same
// schema without that keyword accepts the same value.
func TestSpecExampleE6(t *testing.T) {
	withAdditional := mustCompile(t, `{
		"type": "object",
		"properties": {"x": {"type": "string"}},
		"required": ["x"],
		"additionalProperties": false
	}`)
	ok, info := withAdditional.Validate(mustValue(t, `{"x": "ok", "y": 1}`))
	require.False(t, ok)
	assert.Equal(t, schema.Constraint, info.Code)
	assert.Contains(t, info.Message, "y")

	withoutAdditional := mustCompile(t, `{
		"type": "object",
		"properties": {"x": {"type": "string"}},
		"required": ["x"]
	}`)
	ok, _ = withoutAdditional.Validate(mustValue(t, `{"x": "ok", "y": 1}`))
	assert.True(t, ok)
}
