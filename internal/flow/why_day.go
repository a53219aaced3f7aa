package flow

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/unhabit-ai/unhabit/internal/models"
)

const whyDayTemperature = 0.4

// Canned replies for the guard and degradation paths of ExplainDay.
const (
	whyDayNoPlanMessage = "I can't explain this task yet because your 21-day plan hasn't been generated. " +
		"Please complete the quiz and generate the plan first."
	whyDayNoSummaryMessage = "I can't explain this task yet because the diagnostic summary is missing. " +
		"Try re-running the quiz and plan generation."
	whyDayFallbackExplanation = "This task targets a critical part of your habit loop: the moment between urge and escape. " +
		"By executing it exactly as written, you train your brain to associate that discomfort with " +
		"action and progress instead of avoidance and short-term relief."
)

// minExplanationWords is the threshold below which a generated rationale is
// treated as garbage and replaced by the fixed fallback.
const minExplanationWords = 5

func whyDayDelta(dayKey, explanation string) models.StateDelta {
	return models.StateDelta{
		LastWhyDay:         models.StringPtr(dayKey),
		LastWhyExplanation: models.StringPtr(explanation),
	}
}

// ExplainDay produces the rationale for one plan day, identified by its
// day_N key. Missing plan, missing summary, or an unknown day each yield a
// fixed message without touching the gateway; generation failure or a
// degenerate reply yields the generic fallback rationale.
func (e *Engine) ExplainDay(ctx context.Context, state models.HabitState, dayKey string) models.StateDelta {
	if state.Plan21 == nil {
		return whyDayDelta(dayKey, whyDayNoPlanMessage)
	}
	if state.QuizSummary == nil {
		return whyDayDelta(dayKey, whyDayNoSummaryMessage)
	}
	dayTask := state.Plan21.DayTasks[dayKey]
	if dayTask == "" {
		return whyDayDelta(dayKey, fmt.Sprintf("No task found for %s, so there is nothing to explain.", dayKey))
	}

	summaryJSON, _ := json.Marshal(state.QuizSummary)
	planJSON, _ := json.Marshal(state.Plan21)

	var sb strings.Builder
	sb.WriteString("---------------- CONTEXT ----------------\n")
	sb.WriteString("User habit description:\n")
	sb.WriteString(state.HabitDescription)
	sb.WriteString("\n\nQuiz summary JSON:\n")
	sb.Write(summaryJSON)
	sb.WriteString("\n\nFull 21-day plan JSON:\n")
	sb.Write(planJSON)
	sb.WriteString("\n\nFOCUS DAY:\n")
	sb.WriteString(fmt.Sprintf("day_key: %s\n", dayKey))
	sb.WriteString(fmt.Sprintf("day_task: %s\n", dayTask))
	sb.WriteString("\nExplain in 3-6 sentences:\n")
	sb.WriteString("- Why this specific task exists in the protocol,\n")
	sb.WriteString("- Which part of the habit mechanism it targets (trigger, craving, avoidance, reward, identity, environment),\n")
	sb.WriteString("- Why it is placed at this point in the 21-day sequence.\n")
	sb.WriteString("Be surgical and concrete. No generic motivation talk.\n")

	explanation, err := e.client.GenerateText(ctx, whyDayPrompt, sb.String(), whyDayTemperature)
	if err != nil {
		slog.Warn("Engine.ExplainDay: generation failed, using fallback rationale", "day_key", dayKey, "error", err)
		return whyDayDelta(dayKey, whyDayFallbackExplanation)
	}

	explanation = strings.TrimSpace(explanation)
	if len(strings.Fields(explanation)) < minExplanationWords {
		return whyDayDelta(dayKey, whyDayFallbackExplanation)
	}

	return whyDayDelta(dayKey, explanation)
}
