package flow

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/unhabit-ai/unhabit/internal/models"
)

func TestCoachNormalTurn(t *testing.T) {
	mock := &mockClient{
		generateTextFn: func(_ context.Context, system, user string, temp float64) (string, error) {
			if temp != coachTemperature {
				t.Errorf("expected temperature %v, got %v", coachTemperature, temp)
			}
			if !strings.Contains(system, "AI habit coach") {
				t.Error("expected coach instructions as system prompt")
			}
			if !strings.Contains(user, "user_message:\nI had a rough day") {
				t.Error("expected the latest user message in context")
			}
			if !strings.Contains(user, "user: earlier message") {
				t.Error("expected prior history rendered as role-prefixed lines")
			}
			return "Pick one small task from today's plan and do only that.", nil
		},
	}
	engine := newTestEngine(mock)

	state := planState()
	state.LastUserMessage = "I had a rough day"
	state.ChatHistory = []models.ChatMessage{{Role: models.RoleUser, Content: "earlier message"}}

	delta := engine.Coach(context.Background(), state)

	if *delta.CoachReply != "Pick one small task from today's plan and do only that." {
		t.Errorf("unexpected reply %q", *delta.CoachReply)
	}
	if len(delta.ChatHistory) != 3 {
		t.Fatalf("expected history of 3, got %d", len(delta.ChatHistory))
	}
	if delta.ChatHistory[1].Role != models.RoleUser || delta.ChatHistory[1].Content != "I had a rough day" {
		t.Errorf("expected user turn appended, got %+v", delta.ChatHistory[1])
	}
	if delta.ChatHistory[2].Role != models.RoleAssistant {
		t.Errorf("expected assistant turn appended, got %+v", delta.ChatHistory[2])
	}
}

func TestCoachDoesNotMutateInputHistory(t *testing.T) {
	mock := &mockClient{
		generateTextFn: func(_ context.Context, _, _ string, _ float64) (string, error) {
			return "Stay with the plan.", nil
		},
	}
	engine := newTestEngine(mock)

	history := []models.ChatMessage{{Role: models.RoleUser, Content: "first"}}
	state := planState()
	state.LastUserMessage = "second"
	state.ChatHistory = history

	engine.Coach(context.Background(), state)

	if len(history) != 1 || history[0].Content != "first" {
		t.Error("input history must not be mutated")
	}
}

func TestCoachBlockedShortCircuit(t *testing.T) {
	mock := &mockClient{
		generateTextFn: func(_ context.Context, _, _ string, _ float64) (string, error) {
			t.Fatal("no generation may happen for a blocked state")
			return "", nil
		},
	}
	engine := newTestEngine(mock)

	state := planState()
	state.LastUserMessage = "which pills should I take"
	state.Safety = &models.SafetyResult{
		Risk:    models.RiskOther,
		Action:  models.ActionBlockAndEscalate,
		Message: "blocked",
	}

	delta := engine.Coach(context.Background(), state)

	if *delta.CoachReply != coachBlockedReply {
		t.Errorf("expected the fixed blocked reply, got %q", *delta.CoachReply)
	}
	// Blocked turns still extend the conversation record.
	if len(delta.ChatHistory) != 2 {
		t.Fatalf("expected history of 2, got %d", len(delta.ChatHistory))
	}
	if delta.ChatHistory[0].Content != "which pills should I take" {
		t.Errorf("expected the user turn recorded, got %+v", delta.ChatHistory[0])
	}
	if delta.ChatHistory[1].Content != coachBlockedReply {
		t.Errorf("expected the blocked reply recorded, got %+v", delta.ChatHistory[1])
	}
	if mock.textCalls != 0 {
		t.Errorf("expected zero gateway calls, got %d", mock.textCalls)
	}
}

func TestCoachFallbackOnError(t *testing.T) {
	mock := &mockClient{
		generateTextFn: func(_ context.Context, _, _ string, _ float64) (string, error) {
			return "", errors.New("api down")
		},
	}
	engine := newTestEngine(mock)

	state := planState()
	state.LastUserMessage = "help me"
	delta := engine.Coach(context.Background(), state)

	if *delta.CoachReply != coachFallbackReply {
		t.Errorf("expected fallback reply, got %q", *delta.CoachReply)
	}
	if len(delta.ChatHistory) != 2 {
		t.Errorf("expected fallback turn in history, got %d entries", len(delta.ChatHistory))
	}
}

func TestCoachFallsBackToHabitDescription(t *testing.T) {
	var gotUser string
	mock := &mockClient{
		generateTextFn: func(_ context.Context, _, user string, _ float64) (string, error) {
			gotUser = user
			return "ok", nil
		},
	}
	engine := newTestEngine(mock)

	state := planState()
	delta := engine.Coach(context.Background(), state)

	if !strings.Contains(gotUser, "user_message:\nzyn all day") {
		t.Error("expected habit description used when no user message is set")
	}
	if delta.ChatHistory[0].Content != "zyn all day" {
		t.Errorf("expected habit description as the recorded user turn, got %+v", delta.ChatHistory[0])
	}
}
