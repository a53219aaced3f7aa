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

func TestClassifySafetyAllow(t *testing.T) {
	mock := &mockClient{
		generateStructuredFn: func(_ context.Context, _ string, _ genai.StructuredSchema, temp float64) (json.RawMessage, error) {
			if temp != safetyTemperature {
				t.Errorf("expected temperature %v, got %v", safetyTemperature, temp)
			}
			return json.RawMessage(`{"risk":"none","action":"allow","message":""}`), nil
		},
	}
	engine := newTestEngine(mock)

	state := models.HabitState{HabitDescription: "I scroll TikTok too much"}
	delta := engine.ClassifySafety(context.Background(), state)

	if delta.Safety == nil {
		t.Fatal("expected safety result in delta")
	}
	if delta.Safety.Risk != models.RiskNone || delta.Safety.Action != models.ActionAllow {
		t.Errorf("unexpected classification: %+v", delta.Safety)
	}
}

func TestClassifySafetyPrefersLastUserMessage(t *testing.T) {
	var gotPrompt string
	mock := &mockClient{
		generateStructuredFn: func(_ context.Context, prompt string, _ genai.StructuredSchema, _ float64) (json.RawMessage, error) {
			gotPrompt = prompt
			return json.RawMessage(`{"risk":"none","action":"allow","message":""}`), nil
		},
	}
	engine := newTestEngine(mock)

	state := models.HabitState{
		HabitDescription: "smoking",
		LastUserMessage:  "I slipped again last night",
	}
	engine.ClassifySafety(context.Background(), state)

	if !strings.Contains(gotPrompt, "I slipped again last night") {
		t.Error("expected prompt to contain the latest user message")
	}
}

func TestClassifySafetyFailsClosedOnError(t *testing.T) {
	mock := &mockClient{
		generateStructuredFn: func(_ context.Context, _ string, _ genai.StructuredSchema, _ float64) (json.RawMessage, error) {
			return nil, errors.New("api down")
		},
	}
	engine := newTestEngine(mock)

	delta := engine.ClassifySafety(context.Background(), models.HabitState{HabitDescription: "smoking"})

	if delta.Safety == nil {
		t.Fatal("expected safety result in delta")
	}
	if !delta.Safety.Blocked() {
		t.Error("expected block_and_escalate when classification fails")
	}
	if delta.Safety.Risk != models.RiskOther {
		t.Errorf("expected risk other, got %q", delta.Safety.Risk)
	}
	if delta.Safety.Message != blockedFallbackMessage {
		t.Errorf("expected the fixed fallback message, got %q", delta.Safety.Message)
	}
}

func TestClassifySafetyFailsClosedOnInvalidPayload(t *testing.T) {
	cases := []struct {
		name    string
		payload string
	}{
		{"unknown risk", `{"risk":"catastrophic","action":"allow","message":""}`},
		{"unknown action", `{"risk":"none","action":"maybe","message":""}`},
		{"block without message", `{"risk":"self_harm","action":"block_and_escalate","message":""}`},
		{"not an object", `["nope"]`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			mock := &mockClient{
				generateStructuredFn: func(_ context.Context, _ string, _ genai.StructuredSchema, _ float64) (json.RawMessage, error) {
					return json.RawMessage(tc.payload), nil
				},
			}
			engine := newTestEngine(mock)

			delta := engine.ClassifySafety(context.Background(), models.HabitState{HabitDescription: "smoking"})
			if !delta.Safety.Blocked() {
				t.Errorf("expected fail-closed block for payload %s", tc.payload)
			}
		})
	}
}
