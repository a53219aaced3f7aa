package flow

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/unhabit-ai/unhabit/internal/genai"
	"github.com/unhabit-ai/unhabit/internal/models"
)

const quizSummaryTemperature = 0.3

var quizSummarySchema = genai.StructuredSchema{
	Name: "quiz_summary",
	Schema: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"user_habit_raw":       map[string]any{"type": "string"},
			"canonical_habit_name": map[string]any{"type": "string"},
			"habit_category": map[string]any{
				"type": "string",
				"enum": []string{
					"nicotine_smoking", "nicotine_vaping", "nicotine_oral",
					"pornography", "social_media", "gaming",
					"food_overeating", "shopping_spending",
					"procrastination", "alcohol", "cannabis", "other",
				},
			},
			"category_confidence": map[string]any{
				"type": "string",
				"enum": []string{"low", "medium", "high"},
			},
			"product_type": map[string]any{"type": "string"},
			"severity_level": map[string]any{
				"type": "string",
				"enum": []string{"mild", "moderate", "severe"},
			},
			"core_loop":          map[string]any{"type": "string"},
			"primary_payoff":     map[string]any{"type": "string"},
			"avoidance_target":   map[string]any{"type": "string"},
			"identity_link":      map[string]any{"type": "string"},
			"dopamine_profile":   map[string]any{"type": "string"},
			"collapse_condition": map[string]any{"type": "string"},
			"long_term_cost":     map[string]any{"type": "string"},
			"main_trigger":       map[string]any{"type": "string"},
			"peak_times":         map[string]any{"type": "string"},
			"common_locations":   map[string]any{"type": "string"},
			"emotional_patterns": map[string]any{"type": "string"},
			"frequency_pattern":  map[string]any{"type": "string"},
			"previous_attempts":  map[string]any{"type": "string"},
			"motivation_reason":  map[string]any{"type": "string"},
			"risk_situations":    map[string]any{"type": "string"},
			"mechanism_summary":  map[string]any{"type": "string"},
		},
		// Strict structured outputs: every property must be required.
		"required": []string{
			"user_habit_raw", "canonical_habit_name", "habit_category",
			"category_confidence", "product_type", "severity_level",
			"core_loop", "primary_payoff", "avoidance_target",
			"identity_link", "dopamine_profile", "collapse_condition",
			"long_term_cost", "main_trigger", "peak_times",
			"common_locations", "emotional_patterns", "frequency_pattern",
			"previous_attempts", "motivation_reason", "risk_situations",
			"mechanism_summary",
		},
		"additionalProperties": false,
	},
}

// fallbackQuizSummary marks everything it does not know as explicitly
// unknown rather than inventing structure.
func fallbackQuizSummary(habitDescription string) *models.QuizSummary {
	canonical := habitDescription
	if canonical == "" {
		canonical = "user habit"
	}
	return &models.QuizSummary{
		UserHabitRaw:       habitDescription,
		CanonicalHabitName: canonical,
		HabitCategory:      models.CategoryOther,
		CategoryConfidence: models.ConfidenceLow,
		ProductType:        "unspecified",
		SeverityLevel:      models.SeverityMild,
		MainTrigger:        "unknown",
		PeakTimes:          "unknown",
		CommonLocations:    "unknown",
		EmotionalPatterns:  "unclear",
		FrequencyPattern:   "unknown",
		PreviousAttempts:   "not_clear",
		MotivationReason:   "user_wants_change",
		RiskSituations:     "unknown",
	}
}

// SummarizeQuiz distills the habit description, the generated quiz, and
// the user's answers into the mechanism-level profile that drives plan
// generation. Failure yields the explicit-unknown fallback summary.
func (e *Engine) SummarizeQuiz(ctx context.Context, state models.HabitState) models.StateDelta {
	habitDescription := state.HabitDescription

	quizFormJSON := []byte("{}")
	if state.QuizForm != nil {
		if b, err := json.Marshal(state.QuizForm); err == nil {
			quizFormJSON = b
		}
	}
	answersJSON, err := json.Marshal(state.UserQuizAnswers.Payload())
	if err != nil {
		answersJSON = []byte("{}")
	}

	prompt := fmt.Sprintf(quizSummaryPrompt, habitDescription, quizFormJSON, answersJSON)

	raw, err := e.client.GenerateStructured(ctx, prompt, quizSummarySchema, quizSummaryTemperature)
	if err != nil {
		slog.Warn("Engine.SummarizeQuiz: generation failed, using fallback summary", "error", err)
		return models.StateDelta{QuizSummary: fallbackQuizSummary(habitDescription)}
	}

	var summary models.QuizSummary
	if err := json.Unmarshal(raw, &summary); err != nil {
		slog.Warn("Engine.SummarizeQuiz: failed to decode summary, using fallback summary", "error", err)
		return models.StateDelta{QuizSummary: fallbackQuizSummary(habitDescription)}
	}
	if err := summary.Validate(); err != nil {
		slog.Warn("Engine.SummarizeQuiz: invalid summary, using fallback summary", "error", err)
		return models.StateDelta{QuizSummary: fallbackQuizSummary(habitDescription)}
	}
	if !models.IsValidHabitCategory(summary.HabitCategory) {
		slog.Warn("Engine.SummarizeQuiz: category outside the closed set, treating as other", "category", summary.HabitCategory)
		summary.HabitCategory = models.CategoryOther
	}

	return models.StateDelta{QuizSummary: &summary}
}
