package schema_test

import (
	"testing"

	"github.com/kaptinlin/ucl/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRefLocalFragment(t *testing.T) {
	s := mustCompile(t, `{
		"type": "object",
		"properties": {
			"a": {"$ref": "#/properties/b"},
			"b": {"type": "integer"}
		}
	}`)
	assert.True(t, first(s.Validate(mustValue(t, `{"a": 1, "b": 2}`))))
	assert.False(t, first(s.Validate(mustValue(t, `{"a": "x", "b": 2}`))))
}

func TestRefRoot(t *testing.T) {
	s := mustCompile(t, `{
		"type": "object",
		"properties": {
			"child": {"$ref": "#"}
		}
	}`)
	assert.True(t, first(s.Validate(mustValue(t, `{"child": {}}`))))
}

func TestRefUnsupportedFormReturnsInvalidSchema(t *testing.T) {
	s := mustCompile(t, `{"$ref": "https://example.com/schema.json"}`)
	ok, info := s.Validate(mustValue(t, `1`))
	require.False(t, ok)
	assert.Equal(t, schema.InvalidSchema, info.Code)
}
