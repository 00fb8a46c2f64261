// File: component/response.go
//
// Output-text extraction from the Responses API JSON. The direct "text"
// field is the primary path; "output_text.text" is the fallback.

package component

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrNoOutputText reports a well-formed response without extractable text.
var ErrNoOutputText = errors.New("no output text found in response")

type responseEnvelope struct {
	Output []struct {
		Content []struct {
			Text       string `json:"text"`
			OutputText struct {
				Text string `json:"text"`
			} `json:"output_text"`
		} `json:"content"`
	} `json:"output"`
}

// ExtractOutputText pulls the model's text out of a complete non-streaming
// response body.
func ExtractOutputText(raw []byte) (string, error) {
	var envelope responseEnvelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return "", fmt.Errorf("parse response: %w", err)
	}
	if len(envelope.Output) == 0 || len(envelope.Output[0].Content) == 0 {
		return "", ErrNoOutputText
	}
	content := envelope.Output[0].Content[0]
	if content.Text != "" {
		return content.Text, nil
	}
	if content.OutputText.Text != "" {
		return content.OutputText.Text, nil
	}
	return "", ErrNoOutputText
}
