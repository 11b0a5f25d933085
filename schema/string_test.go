package schema_test

import (
	"testing"

	"github.com/kaptinlin/ucl"
	"github.com/kaptinlin/ucl/schema"
	"github.com/stretchr/testify/assert"
)

func TestMinMaxLength(t *testing.T) {
	s := mustCompile(t, `{"minLength": 2, "maxLength": 4}`)
	assert.False(t, first(s.Validate(mustValue(t, `"a"`))))
	assert.True(t, first(s.Validate(mustValue(t, `"ab"`))))
	assert.True(t, first(s.Validate(mustValue(t, `"abcd"`))))
	assert.False(t, first(s.Validate(mustValue(t, `"abcde"`))))
}

func TestLengthCountsRunesNotBytes(t *testing.T) {
	s := mustCompile(t, `{"minLength": 3, "maxLength": 3}`)
	assert.True(t, first(s.Validate(mustValue(t, `"日本語"`))))
}

func TestPattern(t *testing.T) {
	s := mustCompile(t, `{"pattern": "^[a-z]+$"}`)
	assert.True(t, first(s.Validate(mustValue(t, `"hello"`))))
	assert.False(t, first(s.Validate(mustValue(t, `"Hello"`))))
}

func TestFormatIsAnnotationByDefault(t *testing.T) {
	s := mustCompile(t, `{"format": "email"}`)
	ok, info := s.Validate(mustValue(t, `"not-an-email"`))
	assert.True(t, ok, "format is annotation-only unless AssertFormat is set")
	assert.Nil(t, info)
}

func TestFormatAssertedWhenEnabled(t *testing.T) {
	c := schema.NewCompiler()
	c.SetAssertFormat(true)
	s, err := c.CompileJSON("", []byte(`{"format": "email"}`))
	assert.NoError(t, err)

	assert.True(t, first(s.Validate(mustValue(t, `"user@example.com"`))))
	assert.False(t, first(s.Validate(mustValue(t, `"not-an-email"`))))
}

func TestUnknownFormatNeverErrors(t *testing.T) {
	c := schema.NewCompiler()
	c.SetAssertFormat(true)
	s, err := c.CompileJSON("", []byte(`{"format": "x-totally-made-up"}`))
	assert.NoError(t, err)

	ok, info := s.Validate(mustValue(t, `"anything"`))
	assert.True(t, ok)
	assert.Nil(t, info)
}

func TestCustomFormat(t *testing.T) {
	c := schema.NewCompiler()
	c.SetAssertFormat(true)
	c.RegisterFormat("even-digits", func(v *ucl.Value) bool {
		if v.Tag() != ucl.String {
			return true
		}
		return len(v.Str())%2 == 0
	})
	s, err := c.CompileJSON("", []byte(`{"format": "even-digits"}`))
	assert.NoError(t, err)

	assert.True(t, first(s.Validate(mustValue(t, `"1234"`))))
	assert.False(t, first(s.Validate(mustValue(t, `"123"`))))
}
