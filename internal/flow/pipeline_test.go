package flow

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/unhabit-ai/unhabit/internal/genai"
	"github.com/unhabit-ai/unhabit/internal/models"
)

// sequencedMock records the order of stage calls by schema name or method.
func sequencedMock(t *testing.T, safetyPayload string) (*mockClient, *[]string) {
	t.Helper()
	var calls []string
	quizPayload, err := json.Marshal(FallbackQuizForm("smoking"))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	mock := &mockClient{
		generateStructuredFn: func(_ context.Context, _ string, schema genai.StructuredSchema, _ float64) (json.RawMessage, error) {
			calls = append(calls, schema.Name)
			switch schema.Name {
			case "safety_result":
				return json.RawMessage(safetyPayload), nil
			case "quiz_form":
				return quizPayload, nil
			case "quiz_summary":
				return json.RawMessage(`{
					"user_habit_raw": "smoking",
					"canonical_habit_name": "heavy cigarette smoking",
					"habit_category": "nicotine_smoking",
					"category_confidence": "high",
					"severity_level": "moderate"
				}`), nil
			}
			t.Fatalf("unexpected schema %q", schema.Name)
			return nil, nil
		},
		generateJSONFn: func(_ context.Context, _ string, _ genai.JSONOptions) map[string]any {
			calls = append(calls, "plan")
			return fullPlanResult("Execute")
		},
		generateTextFn: func(_ context.Context, _, _ string, _ float64) (string, error) {
			calls = append(calls, "coach")
			return "Welcome. Start with day one tonight.", nil
		},
	}
	return mock, &calls
}

func TestPipelineRunOrder(t *testing.T) {
	mock, calls := sequencedMock(t, `{"risk":"none","action":"allow","message":""}`)
	pipeline := NewPipeline(NewEngine(mock))

	state := pipeline.Run(context.Background(), models.HabitState{HabitDescription: "smoking"})

	want := []string{"safety_result", "quiz_form", "quiz_summary", "plan", "coach"}
	if len(*calls) != len(want) {
		t.Fatalf("expected calls %v, got %v", want, *calls)
	}
	for i, name := range want {
		if (*calls)[i] != name {
			t.Fatalf("expected calls %v, got %v", want, *calls)
		}
	}

	if state.Safety == nil || state.QuizForm == nil || state.QuizSummary == nil || state.Plan21 == nil {
		t.Error("expected all stage results applied to state")
	}
	if state.CoachReply == "" {
		t.Error("expected a first coach reply")
	}
	if state.HabitDescription != "smoking" {
		t.Error("stage deltas must not clobber unrelated fields")
	}
}

func TestPipelineOnboardThenComplete(t *testing.T) {
	mock, _ := sequencedMock(t, `{"risk":"none","action":"allow","message":""}`)
	pipeline := NewPipeline(NewEngine(mock))

	state := pipeline.Onboard(context.Background(), models.HabitState{HabitDescription: "smoking"})
	if state.QuizForm == nil {
		t.Fatal("expected quiz form after onboarding")
	}
	if state.Plan21 != nil {
		t.Fatal("plan must not exist before Complete")
	}

	state.UserQuizAnswers = models.QuizAnswers{Selected: map[string]string{"q1": "q1_b"}}
	state = pipeline.Complete(context.Background(), state)

	if state.QuizSummary == nil || state.Plan21 == nil {
		t.Error("expected summary and plan after Complete")
	}
	if err := state.Plan21.Validate(); err != nil {
		t.Errorf("completed plan must validate: %v", err)
	}
}

func TestPipelineContinuesPastBlockByDefault(t *testing.T) {
	blocked := `{"risk":"self_harm","action":"block_and_escalate","message":"Please reach out to someone you trust."}`
	mock, _ := sequencedMock(t, blocked)
	pipeline := NewPipeline(NewEngine(mock))

	state := pipeline.Run(context.Background(), models.HabitState{HabitDescription: "bad thoughts"})

	if !state.Safety.Blocked() {
		t.Fatal("expected blocked classification recorded")
	}
	if state.QuizForm == nil {
		t.Error("default pipeline still generates the quiz after a block")
	}
	// The recorded block forces the coach short-circuit downstream.
	if state.CoachReply != coachBlockedReply {
		t.Errorf("expected the fixed blocked coach reply, got %q", state.CoachReply)
	}
}

func TestPipelineStopOnSafetyBlock(t *testing.T) {
	blocked := `{"risk":"violence","action":"block_and_escalate","message":"I can't help with that."}`
	mock, calls := sequencedMock(t, blocked)
	pipeline := NewPipeline(NewEngine(mock), WithStopOnSafetyBlock())

	state := pipeline.Run(context.Background(), models.HabitState{HabitDescription: "violent plans"})

	if !state.Safety.Blocked() {
		t.Fatal("expected blocked classification recorded")
	}
	if state.QuizForm != nil || state.Plan21 != nil || state.CoachReply != "" {
		t.Error("expected no downstream stages after a block")
	}
	if len(*calls) != 1 {
		t.Errorf("expected only the safety call, got %v", *calls)
	}
}
