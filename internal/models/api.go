package models

import "errors"

// Error variables for API request validation.
var (
	ErrMissingHabitDescription = errors.New("habit_description is required")
	ErrDayNumberOutOfRange     = errors.New("day_number must be between 1 and 21")
)

// ErrorResponse is the JSON body returned for failed API requests.
type ErrorResponse struct {
	Error     string `json:"error"`
	Details   string `json:"details,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

// OnboardingStartRequest is the entry point for a new habit: it runs the
// safety stage and quiz generation and returns the resulting HabitState.
type OnboardingStartRequest struct {
	HabitDescription string `json:"habit_description"`
	UserID           string `json:"user_id,omitempty"`
}

// Validate checks the onboarding payload.
func (r *OnboardingStartRequest) Validate() error {
	if r.HabitDescription == "" {
		return ErrMissingHabitDescription
	}
	return nil
}

// CanonicalizeHabitRequest asks for an instant classification of raw habit
// text, outside the main flow.
type CanonicalizeHabitRequest struct {
	HabitDescription string `json:"habit_description"`
}

// Validate checks the canonicalization payload.
func (r *CanonicalizeHabitRequest) Validate() error {
	if r.HabitDescription == "" {
		return ErrMissingHabitDescription
	}
	return nil
}

// CanonicalizeHabitResponse carries the classification with a numeric
// confidence for UI logic. The core representation of confidence is the
// low/medium/high string; the float mapping exists only on this response.
type CanonicalizeHabitResponse struct {
	HabitName     string  `json:"habit_name"`
	HabitCategory string  `json:"habit_category"`
	SeverityGuess int     `json:"severity_guess"`
	Confidence    float64 `json:"confidence"`
}

// ConfidenceScore maps a low/medium/high confidence string to its numeric
// presentation value. Unknown values map to 0.
func ConfidenceScore(confidence string) float64 {
	switch confidence {
	case ConfidenceLow:
		return 0.3
	case ConfidenceMedium:
		return 0.6
	case ConfidenceHigh:
		return 0.9
	default:
		return 0
	}
}

// StateRequest wraps a caller-supplied HabitState for the per-stage
// endpoints (/safety, /quiz-form, /quiz-summary, /plan-21d, /coach, ...).
type StateRequest struct {
	State HabitState `json:"state"`
}

// WhyDayRequest asks for the rationale behind one plan day. DayNumber is
// 1-21 and is mapped to the day_N key before the stage runs.
type WhyDayRequest struct {
	State     HabitState `json:"state"`
	DayNumber int        `json:"day_number"`
}

// Validate rejects day numbers outside the plan range.
func (r *WhyDayRequest) Validate() error {
	if r.DayNumber < 1 || r.DayNumber > PlanDays {
		return ErrDayNumberOutOfRange
	}
	return nil
}

// WhyDayResponse is the rationale for one plan day.
type WhyDayResponse struct {
	DayNumber   int    `json:"day_number"`
	Explanation string `json:"explanation"`
}

// CoachResponse is one coaching turn: the reply plus the extended history.
type CoachResponse struct {
	CoachReply  string        `json:"coach_reply"`
	ChatHistory []ChatMessage `json:"chat_history"`
}
