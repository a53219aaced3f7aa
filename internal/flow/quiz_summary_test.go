package flow

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/unhabit-ai/unhabit/internal/genai"
	"github.com/unhabit-ai/unhabit/internal/models"
)

func TestSummarizeQuizValidResult(t *testing.T) {
	payload := `{
		"user_habit_raw": "zyn all day",
		"canonical_habit_name": "frequent nicotine pouch use",
		"habit_category": "nicotine_oral",
		"category_confidence": "high",
		"product_type": "nicotine pouches",
		"severity_level": "moderate",
		"core_loop": "stress -> reach for pouch -> relief -> shame",
		"primary_payoff": "relief",
		"main_trigger": "work stress"
	}`
	mock := &mockClient{
		generateStructuredFn: func(_ context.Context, _ string, _ genai.StructuredSchema, temp float64) (json.RawMessage, error) {
			if temp != quizSummaryTemperature {
				t.Errorf("expected temperature %v, got %v", quizSummaryTemperature, temp)
			}
			return json.RawMessage(payload), nil
		},
	}
	engine := newTestEngine(mock)

	delta := engine.SummarizeQuiz(context.Background(), models.HabitState{HabitDescription: "zyn all day"})

	summary := delta.QuizSummary
	if summary == nil {
		t.Fatal("expected quiz summary in delta")
	}
	if summary.HabitCategory != models.CategoryNicotineOral {
		t.Errorf("expected nicotine_oral, got %q", summary.HabitCategory)
	}
	if summary.CanonicalHabitName != "frequent nicotine pouch use" {
		t.Errorf("unexpected canonical name %q", summary.CanonicalHabitName)
	}
}

func TestSummarizeQuizNormalizesUnknownCategory(t *testing.T) {
	payload := `{
		"user_habit_raw": "zyn all day",
		"canonical_habit_name": "frequent nicotine pouch use",
		"habit_category": "stimulant_misuse",
		"category_confidence": "medium",
		"severity_level": "moderate",
		"main_trigger": "work stress"
	}`
	mock := &mockClient{
		generateStructuredFn: func(_ context.Context, _ string, _ genai.StructuredSchema, _ float64) (json.RawMessage, error) {
			return json.RawMessage(payload), nil
		},
	}
	engine := newTestEngine(mock)

	delta := engine.SummarizeQuiz(context.Background(), models.HabitState{HabitDescription: "zyn all day"})

	summary := delta.QuizSummary
	if summary == nil {
		t.Fatal("expected quiz summary in delta")
	}
	if summary.HabitCategory != models.CategoryOther {
		t.Errorf("expected category outside the closed set to map to other, got %q", summary.HabitCategory)
	}
	if summary.MainTrigger != "work stress" {
		t.Error("normalization must keep the rest of the decoded summary")
	}
}

func TestSummarizeQuizEmbedsQuizAndAnswers(t *testing.T) {
	var gotPrompt string
	mock := &mockClient{
		generateStructuredFn: func(_ context.Context, prompt string, _ genai.StructuredSchema, _ float64) (json.RawMessage, error) {
			gotPrompt = prompt
			return nil, errors.New("stop here")
		},
	}
	engine := newTestEngine(mock)

	state := models.HabitState{
		HabitDescription: "doomscrolling",
		QuizForm:         FallbackQuizForm("doomscrolling"),
		UserQuizAnswers:  models.QuizAnswers{Selected: map[string]string{"q1": "q1_d"}},
	}
	engine.SummarizeQuiz(context.Background(), state)

	if !strings.Contains(gotPrompt, `"q1":"q1_d"`) {
		t.Error("expected selected answers in the prompt")
	}
	if !strings.Contains(gotPrompt, "habit_name_guess") {
		t.Error("expected quiz form JSON in the prompt")
	}
}

func TestSummarizeQuizWrapsFreeformAnswers(t *testing.T) {
	var gotPrompt string
	mock := &mockClient{
		generateStructuredFn: func(_ context.Context, prompt string, _ genai.StructuredSchema, _ float64) (json.RawMessage, error) {
			gotPrompt = prompt
			return nil, errors.New("stop here")
		},
	}
	engine := newTestEngine(mock)

	state := models.HabitState{
		HabitDescription: "doomscrolling",
		UserQuizAnswers:  models.QuizAnswers{Freeform: "mostly at night when alone"},
	}
	engine.SummarizeQuiz(context.Background(), state)

	if !strings.Contains(gotPrompt, `"freeform":"mostly at night when alone"`) {
		t.Error("expected legacy answers wrapped under freeform")
	}
}

func TestSummarizeQuizFallbackOnError(t *testing.T) {
	mock := &mockClient{
		generateStructuredFn: func(_ context.Context, _ string, _ genai.StructuredSchema, _ float64) (json.RawMessage, error) {
			return nil, errors.New("api down")
		},
	}
	engine := newTestEngine(mock)

	delta := engine.SummarizeQuiz(context.Background(), models.HabitState{HabitDescription: "shopping sprees"})

	summary := delta.QuizSummary
	if summary == nil {
		t.Fatal("expected fallback summary")
	}
	if summary.HabitCategory != models.CategoryOther {
		t.Errorf("expected category other, got %q", summary.HabitCategory)
	}
	if summary.CategoryConfidence != models.ConfidenceLow {
		t.Errorf("expected low confidence, got %q", summary.CategoryConfidence)
	}
	if summary.CanonicalHabitName != "shopping sprees" {
		t.Errorf("expected raw description as canonical name, got %q", summary.CanonicalHabitName)
	}
	// Unknowns are explicit, never invented.
	if summary.MainTrigger != "unknown" || summary.EmotionalPatterns != "unclear" {
		t.Errorf("expected explicit-unknown fields, got trigger=%q emotions=%q", summary.MainTrigger, summary.EmotionalPatterns)
	}
	if summary.MotivationReason != "user_wants_change" {
		t.Errorf("unexpected motivation %q", summary.MotivationReason)
	}
}

func TestSummarizeQuizFallbackEmptyDescription(t *testing.T) {
	mock := &mockClient{}
	engine := newTestEngine(mock)

	delta := engine.SummarizeQuiz(context.Background(), models.HabitState{})
	if delta.QuizSummary.CanonicalHabitName != "user habit" {
		t.Errorf("expected default canonical name, got %q", delta.QuizSummary.CanonicalHabitName)
	}
}
