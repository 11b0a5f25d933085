package schema_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAllOf(t *testing.T) {
	s := mustCompile(t, `{
		"allOf": [
			{"type": "number"},
			{"minimum": 0}
		]
	}`)
	assert.True(t, first(s.Validate(mustValue(t, `5`))))
	assert.False(t, first(s.Validate(mustValue(t, `-5`))))
	assert.False(t, first(s.Validate(mustValue(t, `"x"`))))
}

func TestAnyOf(t *testing.T) {
	s := mustCompile(t, `{
		"anyOf": [
			{"type": "string"},
			{"type": "integer"}
		]
	}`)
	assert.True(t, first(s.Validate(mustValue(t, `"x"`))))
	assert.True(t, first(s.Validate(mustValue(t, `5`))))
	assert.False(t, first(s.Validate(mustValue(t, `5.5`))))
}

func TestOneOf(t *testing.T) {
	s := mustCompile(t, `{
		"oneOf": [
			{"type": "number", "multipleOf": 5},
			{"type": "number", "multipleOf": 3}
		]
	}`)
	assert.True(t, first(s.Validate(mustValue(t, `5`))))
	assert.True(t, first(s.Validate(mustValue(t, `9`))))
	assert.False(t, first(s.Validate(mustValue(t, `15`))), "matches both branches")
	assert.False(t, first(s.Validate(mustValue(t, `7`))), "matches neither branch")
}

func TestNot(t *testing.T) {
	s := mustCompile(t, `{"not": {"type": "string"}}`)
	assert.True(t, first(s.Validate(mustValue(t, `5`))))
	assert.False(t, first(s.Validate(mustValue(t, `"x"`))))
}
