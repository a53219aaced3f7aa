// Package models defines the core data structures for the Unhabit pipeline.
//
// It includes the HabitState record threaded through all pipeline stages,
// the typed StateDelta partial update each stage returns, and the entity
// types (safety result, quiz, summary, plan) shared across modules.
package models

import (
	"encoding/json"
	"strings"
)

// Chat roles used in HabitState.ChatHistory.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatMessage is a single turn in the coaching conversation.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// QuizAnswers holds the user's quiz selections. The canonical form is a
// question-id to option-id mapping; a single free-text string is accepted
// for backward compatibility with older clients.
type QuizAnswers struct {
	Selected map[string]string
	Freeform string
}

// UnmarshalJSON accepts either a JSON object (question-id -> option-id) or
// a bare string (legacy freeform answers).
func (a *QuizAnswers) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" || trimmed == "null" {
		*a = QuizAnswers{}
		return nil
	}
	if strings.HasPrefix(trimmed, "\"") {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*a = QuizAnswers{Freeform: s}
		return nil
	}
	var m map[string]string
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	*a = QuizAnswers{Selected: m}
	return nil
}

// MarshalJSON emits the mapping form when present, otherwise the legacy
// string form.
func (a QuizAnswers) MarshalJSON() ([]byte, error) {
	if len(a.Selected) > 0 {
		return json.Marshal(a.Selected)
	}
	if a.Freeform != "" {
		return json.Marshal(a.Freeform)
	}
	return []byte("null"), nil
}

// IsZero reports whether no answers were provided in either form.
func (a QuizAnswers) IsZero() bool {
	return len(a.Selected) == 0 && strings.TrimSpace(a.Freeform) == ""
}

// Payload normalizes the answers for prompt embedding: the mapping passes
// through, a non-empty legacy string is wrapped under "freeform", and no
// answers yields an empty map.
func (a QuizAnswers) Payload() map[string]string {
	if len(a.Selected) > 0 {
		return a.Selected
	}
	if strings.TrimSpace(a.Freeform) != "" {
		return map[string]string{"freeform": a.Freeform}
	}
	return map[string]string{}
}

// HabitState is the single long-lived record threaded through the pipeline.
// It is created empty by the caller at session start, updated by each stage
// through Apply, and discarded or persisted entirely by the caller; no
// stage holds state between invocations.
type HabitState struct {
	UserID           string      `json:"user_id,omitempty"`
	HabitDescription string      `json:"habit_description,omitempty"`
	LastUserMessage  string      `json:"last_user_message,omitempty"`
	UserQuizAnswers  QuizAnswers `json:"user_quiz_answers,omitempty"`

	Safety      *SafetyResult `json:"safety,omitempty"`
	QuizForm    *QuizForm     `json:"quiz_form,omitempty"`
	QuizSummary *QuizSummary  `json:"quiz_summary,omitempty"`
	Plan21      *Plan21D      `json:"plan21,omitempty"`

	CanonicalHabitName  string `json:"canonical_habit_name,omitempty"`
	HabitCategory       string `json:"habit_category,omitempty"`
	CanonicalConfidence string `json:"canonical_confidence,omitempty"`

	ChatHistory        []ChatMessage `json:"chat_history,omitempty"`
	CoachReply         string        `json:"coach_reply,omitempty"`
	LastWhyDay         string        `json:"last_why_day,omitempty"`
	LastWhyExplanation string        `json:"last_why_explanation,omitempty"`
}

// StateDelta is a typed partial update returned by a pipeline stage. Only
// non-nil fields are applied; ChatHistory, when non-nil, replaces the
// history slice whole (stages append to a copy, never mutate in place).
type StateDelta struct {
	Safety      *SafetyResult
	QuizForm    *QuizForm
	QuizSummary *QuizSummary
	Plan21      *Plan21D

	CanonicalHabitName  *string
	HabitCategory       *string
	CanonicalConfidence *string

	ChatHistory        []ChatMessage
	CoachReply         *string
	LastWhyDay         *string
	LastWhyExplanation *string
}

// Apply overlays a StateDelta onto the state and returns the new state.
// The overlay is shallow field-level replacement: fields absent from the
// delta are untouched, and nested structures are replaced, not merged.
func (s HabitState) Apply(d StateDelta) HabitState {
	next := s
	if d.Safety != nil {
		next.Safety = d.Safety
	}
	if d.QuizForm != nil {
		next.QuizForm = d.QuizForm
	}
	if d.QuizSummary != nil {
		next.QuizSummary = d.QuizSummary
	}
	if d.Plan21 != nil {
		next.Plan21 = d.Plan21
	}
	if d.CanonicalHabitName != nil {
		next.CanonicalHabitName = *d.CanonicalHabitName
	}
	if d.HabitCategory != nil {
		next.HabitCategory = *d.HabitCategory
	}
	if d.CanonicalConfidence != nil {
		next.CanonicalConfidence = *d.CanonicalConfidence
	}
	if d.ChatHistory != nil {
		next.ChatHistory = d.ChatHistory
	}
	if d.CoachReply != nil {
		next.CoachReply = *d.CoachReply
	}
	if d.LastWhyDay != nil {
		next.LastWhyDay = *d.LastWhyDay
	}
	if d.LastWhyExplanation != nil {
		next.LastWhyExplanation = *d.LastWhyExplanation
	}
	return next
}

// StringPtr returns a pointer to s, for building StateDelta values.
func StringPtr(s string) *string {
	return &s
}
