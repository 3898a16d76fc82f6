// Package llm talks to hosted language models on behalf of quiz generation.
// Every provider takes one prompt, asks for JSON matching a Schema and
// returns the validated document.
package llm

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// Provider generates structured output for a single prompt.
type Provider interface {
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID is the model requests are sent to.
	ModelID() string
}

// Request is one single-turn generation.
type Request struct {
	// Purpose labels the request in the event log, e.g. "quiz-gen".
	Purpose string

	System string
	Prompt string

	// Schema, when set, is sent through the provider's structured-output
	// mechanism and the answer is validated against it.
	Schema *Schema

	MaxTokens   int
	Temperature float64
}

// Schema is a named JSON Schema. It is compiled on first use, so a Schema
// must not be copied after that.
type Schema struct {
	// Name is sent as the schema or tool name, kebab-case.
	Name        string
	Description string
	Definition  map[string]any

	once       sync.Once
	compiled   *jsonschema.Schema
	compileErr error
}

// Response is a successful generation.
type Response struct {
	// Content is the JSON document, already validated when the request
	// carried a schema.
	Content json.RawMessage
	Usage   Usage

	// Model is the model that actually answered.
	Model string
}

// Usage is the token count of one request.
type Usage struct {
	InputTokens  int
	OutputTokens int
}

// finish turns raw provider output into a Response. A truncated answer or
// one that does not match the request schema becomes an *Error.
func finish(provider string, req Request, raw json.RawMessage, truncated bool, usage Usage, model string) (*Response, error) {
	if truncated {
		return nil, &Error{Kind: KindTruncated, Provider: provider, Content: raw}
	}
	if req.Schema != nil {
		if err := req.Schema.Validate(raw); err != nil {
			return nil, &Error{Kind: KindInvalidOutput, Provider: provider, Content: raw, Err: err}
		}
	}
	return &Response{Content: raw, Usage: usage, Model: model}, nil
}
