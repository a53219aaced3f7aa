package flow

import (
	"context"
	"fmt"

	"github.com/unhabit-ai/unhabit/internal/genai"
	"github.com/unhabit-ai/unhabit/internal/models"
)

// CanonicalizeHabit maps raw habit text, including slang and obfuscations,
// to a canonical habit name, broad category, and confidence label. When
// generation degrades to an empty mapping, the raw text is kept as the
// canonical name with category "unknown" and low confidence.
func (e *Engine) CanonicalizeHabit(ctx context.Context, state models.HabitState) models.StateDelta {
	userRaw := state.HabitDescription

	prompt := fmt.Sprintf(canonicalizePrompt, userRaw)
	data := e.client.GenerateJSON(ctx, prompt, genai.JSONOptions{})

	canonical := stringField(data, "canonical_habit_name", userRaw)
	category := stringField(data, "habit_category", "unknown")
	confidence := stringField(data, "confidence", models.ConfidenceLow)

	return models.StateDelta{
		CanonicalHabitName:  models.StringPtr(canonical),
		HabitCategory:       models.StringPtr(category),
		CanonicalConfidence: models.StringPtr(confidence),
	}
}
