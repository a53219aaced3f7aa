// Package flow implements the habit-change pipeline stages: safety
// classification, habit canonicalization, quiz generation, mechanism
// summarization, 21-day plan generation, day rationale, and coaching.
//
// Every stage is total: it takes the current HabitState, consults the
// generation gateway, and returns a typed StateDelta. Stage failures
// degrade to deterministic fallbacks instead of propagating errors, so a
// pipeline run always completes with a usable state.
package flow

import (
	"github.com/unhabit-ai/unhabit/internal/genai"
)

// Engine runs the individual pipeline stages against a generation gateway.
type Engine struct {
	client genai.ClientInterface
}

// NewEngine creates a stage engine backed by the given gateway.
func NewEngine(client genai.ClientInterface) *Engine {
	return &Engine{client: client}
}

// stringField extracts a non-empty string from a freeform JSON mapping,
// falling back to def when the key is missing or not a string.
func stringField(data map[string]any, key, def string) string {
	if v, ok := data[key]; ok {
		if s, ok := v.(string); ok && s != "" {
			return s
		}
	}
	return def
}
