package flow

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/unhabit-ai/unhabit/internal/genai"
	"github.com/unhabit-ai/unhabit/internal/models"
)

// Plan generation parameters. The larger token budget covers 21 tasks plus
// the summary in one completion.
const (
	planTemperature = 0.35
	planMaxTokens   = 1600
	planRetries     = 2
)

// GeneratePlan produces the personalized 21-day plan from the quiz summary
// and its category guidance. Repair is hybrid: individually missing or
// blank day tasks are substituted from the deterministic fallback plan,
// while an unusable result as a whole yields the full fallback. The
// returned plan always carries exactly day_1..day_21 with non-empty tasks.
func (e *Engine) GeneratePlan(ctx context.Context, state models.HabitState) models.StateDelta {
	if state.QuizSummary == nil {
		return models.StateDelta{Plan21: FallbackPlan(nil)}
	}
	summary := state.QuizSummary

	quizJSON, err := json.Marshal(summary)
	if err != nil {
		slog.Warn("Engine.GeneratePlan: failed to encode summary, using fallback plan", "error", err)
		return models.StateDelta{Plan21: FallbackPlan(summary)}
	}

	prompt := fmt.Sprintf(planPrompt, quizJSON, CategoryGuidance(summary))

	data := e.client.GenerateJSON(ctx, prompt, genai.JSONOptions{
		MaxTokens:   planMaxTokens,
		Temperature: planTemperature,
		Retries:     planRetries,
	})

	plan := repairPlan(data, summary)
	if err := plan.Validate(); err != nil {
		slog.Warn("Engine.GeneratePlan: repaired plan still invalid, using fallback plan", "error", err)
		return models.StateDelta{Plan21: FallbackPlan(summary)}
	}

	return models.StateDelta{Plan21: plan}
}

// repairPlan sanitizes a freeform generation result into a Plan21D. Day
// tasks that are missing, non-string, or blank are replaced one by one
// from the fallback plan; keys outside day_1..day_21 are dropped. A
// missing plan summary gets a templated one.
func repairPlan(data map[string]any, summary *models.QuizSummary) *models.Plan21D {
	fallback := FallbackPlan(summary)

	rawTasks, _ := data["day_tasks"].(map[string]any)
	dayTasks := make(map[string]string, models.PlanDays)
	for _, key := range models.DayKeys() {
		task, _ := rawTasks[key].(string)
		if strings.TrimSpace(task) == "" {
			task = fallback.DayTasks[key]
		}
		dayTasks[key] = task
	}

	planSummary, _ := data["plan_summary"].(string)
	if strings.TrimSpace(planSummary) == "" {
		planSummary = fmt.Sprintf(
			"Personalized 21-day behavioural plan to reduce %s.",
			summary.HabitName("your habit"),
		)
	}

	return &models.Plan21D{PlanSummary: planSummary, DayTasks: dayTasks}
}
