package schema_test

import "testing"

import "github.com/stretchr/testify/assert"

func TestItemsSingleSchema(t *testing.T) {
	s := mustCompile(t, `{"items": {"type": "number"}}`)
	assert.True(t, first(s.Validate(mustValue(t, `[1, 2, 3.5]`))))
	assert.False(t, first(s.Validate(mustValue(t, `[1, "two", 3]`))))
}

func TestItemsPositionalWithAdditionalItems(t *testing.T) {
	s := mustCompile(t, `{
		"items": [{"type": "string"}, {"type": "number"}],
		"additionalItems": false
	}`)
	assert.True(t, first(s.Validate(mustValue(t, `["a", 1]`))))
	assert.False(t, first(s.Validate(mustValue(t, `["a", 1, "extra"]`))))
}

func TestItemsPositionalAllowsExtrasWithoutAdditionalItems(t *testing.T) {
	s := mustCompile(t, `{"items": [{"type": "string"}]}`)
	assert.True(t, first(s.Validate(mustValue(t, `["a", 1, true]`))))
}

func TestMinMaxItems(t *testing.T) {
	s := mustCompile(t, `{"minItems": 1, "maxItems": 2}`)
	assert.False(t, first(s.Validate(mustValue(t, `[]`))))
	assert.True(t, first(s.Validate(mustValue(t, `[1]`))))
	assert.False(t, first(s.Validate(mustValue(t, `[1,2,3]`))))
}

func TestUniqueItems(t *testing.T) {
	s := mustCompile(t, `{"uniqueItems": true}`)
	assert.True(t, first(s.Validate(mustValue(t, `[1, 2, 3]`))))
	assert.False(t, first(s.Validate(mustValue(t, `[1, 2, 2]`))))
}

func TestUniqueItemsIgnoredWhenFalse(t *testing.T) {
	s := mustCompile(t, `{"uniqueItems": false}`)
	assert.True(t, first(s.Validate(mustValue(t, `[1, 1, 1]`))))
}
