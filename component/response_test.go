package component_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aditya1404Sal/openai-component/component"
)

func TestExtractOutputTextDirectField(t *testing.T) {
	raw := `{"output":[{"content":[{"type":"output_text","text":"hello world"}]}]}`
	text, err := component.ExtractOutputText([]byte(raw))
	require.NoError(t, err)
	assert.Equal(t, "hello world", text)
}

func TestExtractOutputTextFallbackField(t *testing.T) {
	raw := `{"output":[{"content":[{"output_text":{"text":"nested"}}]}]}`
	text, err := component.ExtractOutputText([]byte(raw))
	require.NoError(t, err)
	assert.Equal(t, "nested", text)
}

func TestExtractOutputTextPrefersDirectField(t *testing.T) {
	raw := `{"output":[{"content":[{"text":"direct","output_text":{"text":"nested"}}]}]}`
	text, err := component.ExtractOutputText([]byte(raw))
	require.NoError(t, err)
	assert.Equal(t, "direct", text)
}

func TestExtractOutputTextMissing(t *testing.T) {
	for _, raw := range []string{
		`{}`,
		`{"output":[]}`,
		`{"output":[{"content":[]}]}`,
		`{"output":[{"content":[{"type":"refusal"}]}]}`,
	} {
		_, err := component.ExtractOutputText([]byte(raw))
		assert.ErrorIs(t, err, component.ErrNoOutputText, raw)
	}
}

func TestExtractOutputTextMalformedJSON(t *testing.T) {
	_, err := component.ExtractOutputText([]byte(`{"output":`))
	require.Error(t, err)
	assert.NotErrorIs(t, err, component.ErrNoOutputText)
}
