package flow

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/unhabit-ai/unhabit/internal/models"
)

const coachTemperature = 0.6

// Fixed coach replies for the blocked and degraded paths.
const (
	coachBlockedReply = "I’m here only for habit and behavior coaching, so I can’t help with medical, legal, " +
		"explicit, or illegal requests. If this is about your health, safety, or a serious " +
		"situation, please talk to a qualified professional or someone you trust in real life."
	coachFallbackReply = "Let’s focus on one small step you can do today that matches your plan."
)

// appendTurn extends a copy of the history with the latest user message
// (when non-empty) and the assistant reply. The input slice is never
// mutated, so history stays append-only across states.
func appendTurn(history []models.ChatMessage, userMessage, reply string) []models.ChatMessage {
	next := make([]models.ChatMessage, 0, len(history)+2)
	next = append(next, history...)
	if userMessage != "" {
		next = append(next, models.ChatMessage{Role: models.RoleUser, Content: userMessage})
	}
	next = append(next, models.ChatMessage{Role: models.RoleAssistant, Content: reply})
	return next
}

// Coach produces one coaching turn from the profile, the plan, and the
// conversation so far. A block-and-escalate safety result short-circuits
// to the fixed refusal without any generation; history is still extended
// so blocked turns remain part of the conversation record.
func (e *Engine) Coach(ctx context.Context, state models.HabitState) models.StateDelta {
	userMessage := state.LastUserMessage
	if userMessage == "" {
		userMessage = state.HabitDescription
	}

	if state.Safety.Blocked() {
		return models.StateDelta{
			CoachReply:  models.StringPtr(coachBlockedReply),
			ChatHistory: appendTurn(state.ChatHistory, userMessage, coachBlockedReply),
		}
	}

	quizJSON := []byte("{}")
	if state.QuizSummary != nil {
		if b, err := json.Marshal(state.QuizSummary); err == nil {
			quizJSON = b
		}
	}
	planJSON := []byte("{}")
	if state.Plan21 != nil {
		if b, err := json.Marshal(state.Plan21); err == nil {
			planJSON = b
		}
	}

	historyLines := make([]string, 0, len(state.ChatHistory))
	for _, msg := range state.ChatHistory {
		historyLines = append(historyLines, fmt.Sprintf("%s: %s", msg.Role, msg.Content))
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("quiz_summary_json:\n%s\n\n", quizJSON))
	sb.WriteString(fmt.Sprintf("plan_21d_json:\n%s\n\n", planJSON))
	sb.WriteString(fmt.Sprintf("history_text:\n%s\n\n", strings.Join(historyLines, "\n")))
	sb.WriteString(fmt.Sprintf("user_message:\n%s\n", userMessage))

	reply, err := e.client.GenerateText(ctx, coachPrompt, sb.String(), coachTemperature)
	if err != nil {
		slog.Warn("Engine.Coach: generation failed, using fallback reply", "error", err)
		reply = coachFallbackReply
	} else {
		reply = strings.TrimSpace(reply)
		if reply == "" {
			reply = coachFallbackReply
		}
	}

	return models.StateDelta{
		CoachReply:  models.StringPtr(reply),
		ChatHistory: appendTurn(state.ChatHistory, userMessage, reply),
	}
}
