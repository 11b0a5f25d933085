package schema_test

import (
	"testing"

	"github.com/kaptinlin/ucl/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalizeFallsBackToEnglishWithoutLocalizer(t *testing.T) {
	s := mustCompile(t, `{"type": "string"}`)
	result := s.Evaluate(mustValue(t, `5`))
	require.False(t, result.IsValid())

	err := result.FirstError()
	require.NotNil(t, err)
	assert.Contains(t, err.Localize(nil), "should be")
}

func TestLocalizeChineseBundle(t *testing.T) {
	bundle, err := schema.NewI18n()
	require.NoError(t, err)
	localizer := bundle.NewLocalizer("zh-Hans")

	s := mustCompile(t, `{"type": "string"}`)
	result := s.Evaluate(mustValue(t, `5`))
	evalErr := result.FirstError()
	require.NotNil(t, evalErr)

	msg := evalErr.Localize(localizer)
	assert.NotEmpty(t, msg)
}
