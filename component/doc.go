// Package component is the prompt-handling glue over the engine: it builds
// the Responses API request, drives it through the cooperative executor and
// the body adapters, and extracts the output text from the response JSON.
package component
