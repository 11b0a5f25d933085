package schema_test

import (
	"testing"

	"github.com/kaptinlin/ucl/schema"
	"github.com/stretchr/testify/assert"
)

func TestMinimumMaximum(t *testing.T) {
	s := mustCompile(t, `{"minimum": 0, "maximum": 10}`)
	assert.True(t, first(s.Validate(mustValue(t, `5`))))
	assert.True(t, first(s.Validate(mustValue(t, `0`))))
	assert.True(t, first(s.Validate(mustValue(t, `10`))))
	assert.False(t, first(s.Validate(mustValue(t, `-1`))))
	assert.False(t, first(s.Validate(mustValue(t, `11`))))
}

func TestExclusiveMinimumMaximum(t *testing.T) {
	s := mustCompile(t, `{
		"minimum": 0, "exclusiveMinimum": true,
		"maximum": 10, "exclusiveMaximum": true
	}`)
	assert.False(t, first(s.Validate(mustValue(t, `0`))))
	assert.False(t, first(s.Validate(mustValue(t, `10`))))
	assert.True(t, first(s.Validate(mustValue(t, `5`))))
}

func TestMultipleOf(t *testing.T) {
	s := mustCompile(t, `{"multipleOf": 2.5}`)
	assert.True(t, first(s.Validate(mustValue(t, `0`))))
	assert.True(t, first(s.Validate(mustValue(t, `7.5`))))
	assert.False(t, first(s.Validate(mustValue(t, `7`))))
}

func TestMultipleOfIgnoresNonNumeric(t *testing.T) {
	s := mustCompile(t, `{"multipleOf": 2}`)
	ok, info := s.Validate(mustValue(t, `"not a number"`))
	assert.True(t, ok)
	assert.Nil(t, info)
}
