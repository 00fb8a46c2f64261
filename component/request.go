// File: component/request.go
//
// Request construction for the Responses API: JSON payload plus the wire
// spec (method, authority, path, headers) parsed from the configured URL.

package component

import (
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/Aditya1404Sal/openai-component/api"
)

// promptPayload is the non-streaming Responses API request body.
type promptPayload struct {
	Model  string `json:"model"`
	Input  string `json:"input"`
	Stream bool   `json:"stream"`
}

// BuildPayload serializes the request body for prompt.
func BuildPayload(model, prompt string) ([]byte, error) {
	data, err := json.Marshal(promptPayload{Model: model, Input: prompt, Stream: false})
	if err != nil {
		return nil, fmt.Errorf("encode request payload: %w", err)
	}
	return data, nil
}

// BuildSpec derives the request spec from the endpoint URL and API key.
func BuildSpec(baseURL, apiKey string) (api.RequestSpec, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return api.RequestSpec{}, fmt.Errorf("parse base url: %w", err)
	}
	if u.Host == "" {
		return api.RequestSpec{}, fmt.Errorf("base url %q has no authority", baseURL)
	}
	path := u.Path
	if path == "" {
		path = "/"
	}
	return api.RequestSpec{
		Method:    "POST",
		Scheme:    u.Scheme,
		Authority: u.Host,
		Path:      path,
		Header: map[string][]string{
			"Content-Type":  {"application/json"},
			"Authorization": {"Bearer " + apiKey},
		},
	}, nil
}
