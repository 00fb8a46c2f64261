package component_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aditya1404Sal/openai-component/component"
)

func TestBuildPayloadEscapesPrompt(t *testing.T) {
	payload, err := component.BuildPayload("gpt-4.1", `say "hi" with a \ and
a newline`)
	require.NoError(t, err)

	var decoded struct {
		Model  string `json:"model"`
		Input  string `json:"input"`
		Stream bool   `json:"stream"`
	}
	require.NoError(t, json.Unmarshal(payload, &decoded))
	assert.Equal(t, "gpt-4.1", decoded.Model)
	assert.Equal(t, "say \"hi\" with a \\ and\na newline", decoded.Input)
	assert.False(t, decoded.Stream, "complete responses only, never streaming")
}

func TestBuildSpecFromBaseURL(t *testing.T) {
	spec, err := component.BuildSpec("https://api.openai.com/v1/responses", "sk-test")
	require.NoError(t, err)

	assert.Equal(t, "POST", spec.Method)
	assert.Equal(t, "https", spec.Scheme)
	assert.Equal(t, "api.openai.com", spec.Authority)
	assert.Equal(t, "/v1/responses", spec.Path)
	assert.Equal(t, []string{"application/json"}, spec.Header["Content-Type"])
	assert.Equal(t, []string{"Bearer sk-test"}, spec.Header["Authorization"])
}

func TestBuildSpecKeepsPort(t *testing.T) {
	spec, err := component.BuildSpec("http://localhost:8080/v1/responses", "k")
	require.NoError(t, err)
	assert.Equal(t, "localhost:8080", spec.Authority)
	assert.Equal(t, "http", spec.Scheme)
}

func TestBuildSpecRejectsBadURL(t *testing.T) {
	_, err := component.BuildSpec("not a url", "k")
	require.Error(t, err)
}
