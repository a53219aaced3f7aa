package flow

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/unhabit-ai/unhabit/internal/genai"
)

// mockClient implements genai.ClientInterface for stage tests. Unset
// functions return errors (or an empty map for JSON), so a stage that
// unexpectedly reaches the gateway degrades visibly instead of passing.
type mockClient struct {
	generateTextFn       func(ctx context.Context, systemPrompt, userPrompt string, temperature float64) (string, error)
	generateStructuredFn func(ctx context.Context, prompt string, schema genai.StructuredSchema, temperature float64) (json.RawMessage, error)
	generateJSONFn       func(ctx context.Context, prompt string, opts genai.JSONOptions) map[string]any

	textCalls       int
	structuredCalls int
	jsonCalls       int
}

var errMockUnset = errors.New("mock function not set")

func (m *mockClient) GenerateText(ctx context.Context, systemPrompt, userPrompt string, temperature float64) (string, error) {
	m.textCalls++
	if m.generateTextFn == nil {
		return "", errMockUnset
	}
	return m.generateTextFn(ctx, systemPrompt, userPrompt, temperature)
}

func (m *mockClient) GenerateStructured(ctx context.Context, prompt string, schema genai.StructuredSchema, temperature float64) (json.RawMessage, error) {
	m.structuredCalls++
	if m.generateStructuredFn == nil {
		return nil, errMockUnset
	}
	return m.generateStructuredFn(ctx, prompt, schema, temperature)
}

func (m *mockClient) GenerateJSON(ctx context.Context, prompt string, opts genai.JSONOptions) map[string]any {
	m.jsonCalls++
	if m.generateJSONFn == nil {
		return map[string]any{}
	}
	return m.generateJSONFn(ctx, prompt, opts)
}

func newTestEngine(mock *mockClient) *Engine {
	return NewEngine(mock)
}
