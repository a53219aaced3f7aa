package flow

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/unhabit-ai/unhabit/internal/genai"
	"github.com/unhabit-ai/unhabit/internal/models"
)

// safetyTemperature keeps the classifier near-deterministic.
const safetyTemperature = 0.1

// blockedFallbackMessage is surfaced when the classifier itself fails.
// Failing closed here means an unclassifiable message is never allowed.
const blockedFallbackMessage = "I'm here only for habit and behavior coaching, so I can't safely respond to this. " +
	"Please avoid medical, illegal, or harmful topics, and consider reaching out to a " +
	"trusted person or local professional if you're in distress."

var safetySchema = genai.StructuredSchema{
	Name: "safety_result",
	Schema: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"risk": map[string]any{
				"type": "string",
				"enum": []string{"none", "self_harm", "eating_disorder", "severe_addiction", "violence", "other"},
			},
			"action": map[string]any{
				"type": "string",
				"enum": []string{"allow", "block_and_escalate"},
			},
			"message": map[string]any{"type": "string"},
		},
		"required":             []string{"risk", "action", "message"},
		"additionalProperties": false,
	},
}

// blockedSafetyResult is the fail-closed classification used whenever the
// model call or its payload cannot be trusted.
func blockedSafetyResult() *models.SafetyResult {
	return &models.SafetyResult{
		Risk:    models.RiskOther,
		Action:  models.ActionBlockAndEscalate,
		Message: blockedFallbackMessage,
	}
}

// ClassifySafety classifies the freshest user text for safety and scope.
// It prefers LastUserMessage over HabitDescription. Any failure in the
// classifier path yields a block-and-escalate result, never an allow.
func (e *Engine) ClassifySafety(ctx context.Context, state models.HabitState) models.StateDelta {
	userText := state.LastUserMessage
	if userText == "" {
		userText = state.HabitDescription
	}

	prompt := fmt.Sprintf(safetyPrompt, userText)

	raw, err := e.client.GenerateStructured(ctx, prompt, safetySchema, safetyTemperature)
	if err != nil {
		slog.Warn("Engine.ClassifySafety: classification failed, blocking", "error", err)
		return models.StateDelta{Safety: blockedSafetyResult()}
	}

	var result models.SafetyResult
	if err := json.Unmarshal(raw, &result); err != nil {
		slog.Warn("Engine.ClassifySafety: failed to decode classification, blocking", "error", err)
		return models.StateDelta{Safety: blockedSafetyResult()}
	}
	if err := result.Validate(); err != nil {
		slog.Warn("Engine.ClassifySafety: invalid classification, blocking", "error", err)
		return models.StateDelta{Safety: blockedSafetyResult()}
	}

	return models.StateDelta{Safety: &result}
}
