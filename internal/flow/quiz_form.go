package flow

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/unhabit-ai/unhabit/internal/genai"
	"github.com/unhabit-ai/unhabit/internal/models"
)

const quizFormTemperature = 0.4

// Strict structured outputs demands that every property is listed in
// required (optional fields are nullable instead) and forbids array
// length keywords; question and option counts are constrained by the
// prompt and enforced by QuizForm.Validate.
var quizFormSchema = genai.StructuredSchema{
	Name: "quiz_form",
	Schema: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"habit_name_guess": map[string]any{"type": "string"},
			"questions": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"id":          map[string]any{"type": "string"},
						"question":    map[string]any{"type": "string"},
						"helper_text": map[string]any{"type": []string{"string", "null"}},
						"options": map[string]any{
							"type": "array",
							"items": map[string]any{
								"type": "object",
								"properties": map[string]any{
									"id":          map[string]any{"type": "string"},
									"label":       map[string]any{"type": "string"},
									"helper_text": map[string]any{"type": []string{"string", "null"}},
								},
								"required":             []string{"id", "label", "helper_text"},
								"additionalProperties": false,
							},
						},
					},
					"required":             []string{"id", "question", "helper_text", "options"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []string{"habit_name_guess", "questions"},
		"additionalProperties": false,
	},
}

// GenerateQuizForm produces the tailored 8-10 question multiple-choice
// quiz for the described habit. Generation or validation failure yields
// the deterministic fallback quiz, which is still tied to the habit
// description.
func (e *Engine) GenerateQuizForm(ctx context.Context, state models.HabitState) models.StateDelta {
	habitDescription := state.HabitDescription

	prompt := fmt.Sprintf(quizGeneratorPrompt, habitDescription)

	raw, err := e.client.GenerateStructured(ctx, prompt, quizFormSchema, quizFormTemperature)
	if err != nil {
		slog.Warn("Engine.GenerateQuizForm: generation failed, using fallback quiz", "error", err)
		return models.StateDelta{QuizForm: FallbackQuizForm(habitDescription)}
	}

	var form models.QuizForm
	if err := json.Unmarshal(raw, &form); err != nil {
		slog.Warn("Engine.GenerateQuizForm: failed to decode quiz, using fallback quiz", "error", err)
		return models.StateDelta{QuizForm: FallbackQuizForm(habitDescription)}
	}
	if err := form.Validate(); err != nil {
		slog.Warn("Engine.GenerateQuizForm: invalid quiz shape, using fallback quiz", "error", err)
		return models.StateDelta{QuizForm: FallbackQuizForm(habitDescription)}
	}

	return models.StateDelta{QuizForm: &form}
}

// FallbackQuizForm builds the deterministic diagnostic quiz used when
// tailored generation fails. The questions still reference the habit
// label, so the quiz never degrades to a fully generic checklist.
func FallbackQuizForm(habitDescription string) *models.QuizForm {
	habitLabel := habitDescription
	if habitLabel == "" {
		habitLabel = "this habit"
	}

	return &models.QuizForm{
		HabitNameGuess: habitLabel,
		Questions: []models.Question{
			{
				ID:         "q1",
				Question:   fmt.Sprintf("How often do you usually do %s?", habitLabel),
				HelperText: "Think about an average week.",
				Options: []models.Option{
					{ID: "q1_a", Label: "Less than once a week"},
					{ID: "q1_b", Label: "1-3 times a week"},
					{ID: "q1_c", Label: "4-7 times a week"},
					{ID: "q1_d", Label: "Multiple times per day"},
				},
			},
			{
				ID:       "q2",
				Question: fmt.Sprintf("At what times of day does %s usually happen most?", habitLabel),
				Options: []models.Option{
					{ID: "q2_a", Label: "Morning"},
					{ID: "q2_b", Label: "Afternoon"},
					{ID: "q2_c", Label: "Evening"},
					{ID: "q2_d", Label: "Late night / before sleep"},
				},
			},
			{
				ID:         "q3",
				Question:   fmt.Sprintf("Where are you most often when %s happens?", habitLabel),
				HelperText: "For example: bedroom, desk, bathroom, outside, with friends.",
				Options: []models.Option{
					{ID: "q3_a", Label: "Mostly at home"},
					{ID: "q3_b", Label: "Mostly outside"},
					{ID: "q3_c", Label: "Mostly at work / study place"},
					{ID: "q3_d", Label: "It changes a lot"},
				},
			},
			{
				ID:         "q4",
				Question:   fmt.Sprintf("Right before %s, you are usually…", habitLabel),
				HelperText: "Pick the closest option.",
				Options: []models.Option{
					{ID: "q4_a", Label: "Bored or passing time"},
					{ID: "q4_b", Label: "Stressed / anxious / overwhelmed"},
					{ID: "q4_c", Label: "Lonely / sad"},
					{ID: "q4_d", Label: "Generally okay or even excited"},
				},
			},
			{
				ID:       "q5",
				Question: fmt.Sprintf("What usually triggers you to do %s?", habitLabel),
				Options: []models.Option{
					{ID: "q5_a", Label: "Seeing or having the product/device nearby"},
					{ID: "q5_b", Label: "Notifications, apps, or online content"},
					{ID: "q5_c", Label: "Specific people, places, or routines"},
					{ID: "q5_d", Label: "Mostly my internal feelings / thoughts"},
				},
			},
			{
				ID:       "q6",
				Question: fmt.Sprintf("How strong does the urge for %s feel when it appears?", habitLabel),
				Options: []models.Option{
					{ID: "q6_a", Label: "Mild – I can ignore it if needed"},
					{ID: "q6_b", Label: "Moderate – uncomfortable but manageable"},
					{ID: "q6_c", Label: "Strong – very hard to resist"},
					{ID: "q6_d", Label: "Overwhelming – I almost always give in"},
				},
			},
			{
				ID:       "q7",
				Question: fmt.Sprintf("Have you tried to cut down or stop %s before?", habitLabel),
				Options: []models.Option{
					{ID: "q7_a", Label: "No, this is my first serious attempt"},
					{ID: "q7_b", Label: "Yes, once or twice"},
					{ID: "q7_c", Label: "Yes, many times with short success"},
					{ID: "q7_d", Label: "Yes, but I never really committed"},
				},
			},
			{
				ID:       "q8",
				Question: fmt.Sprintf("Right now, how ready do you feel to change %s?", habitLabel),
				Options: []models.Option{
					{ID: "q8_a", Label: "Just exploring, not really ready"},
					{ID: "q8_b", Label: "Somewhat ready, but scared / unsure"},
					{ID: "q8_c", Label: "Ready to seriously reduce it"},
					{ID: "q8_d", Label: "Very ready – I want big change"},
				},
			},
		},
	}
}
