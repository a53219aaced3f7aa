package models

import "errors"

// Quiz shape constants. Every generated or fallback quiz must respect them.
const (
	MinQuizQuestions   = 8
	MaxQuizQuestions   = 10
	OptionsPerQuestion = 4
)

// Error variables for quiz validation.
var (
	ErrQuizQuestionCount  = errors.New("quiz must contain between 8 and 10 questions")
	ErrQuizOptionCount    = errors.New("each question must contain exactly 4 options")
	ErrEmptyQuestionID    = errors.New("question id cannot be empty")
	ErrDuplicateQuestion  = errors.New("duplicate question id")
	ErrEmptyQuestionText  = errors.New("question text cannot be empty")
	ErrEmptyOptionID      = errors.New("option id cannot be empty")
	ErrDuplicateOption    = errors.New("duplicate option id within question")
	ErrEmptyOptionLabel   = errors.New("option label cannot be empty")
)

// Option is one selectable answer for a quiz question.
type Option struct {
	ID         string `json:"id"`
	Label      string `json:"label"`
	HelperText string `json:"helper_text,omitempty"`
}

// Question is a single multiple-choice diagnostic question.
type Question struct {
	ID         string   `json:"id"`
	Question   string   `json:"question"`
	HelperText string   `json:"helper_text,omitempty"`
	Options    []Option `json:"options"`
}

// QuizForm is the diagnostic quiz presented to the user after onboarding.
type QuizForm struct {
	HabitNameGuess string     `json:"habit_name_guess"`
	Questions      []Question `json:"questions"`
}

// Validate enforces the quiz shape invariants: 8-10 questions, exactly 4
// options each, ids unique (option ids unique within their question).
func (q *QuizForm) Validate() error {
	if len(q.Questions) < MinQuizQuestions || len(q.Questions) > MaxQuizQuestions {
		return ErrQuizQuestionCount
	}
	seenQuestions := make(map[string]bool, len(q.Questions))
	for _, question := range q.Questions {
		if question.ID == "" {
			return ErrEmptyQuestionID
		}
		if seenQuestions[question.ID] {
			return ErrDuplicateQuestion
		}
		seenQuestions[question.ID] = true
		if question.Question == "" {
			return ErrEmptyQuestionText
		}
		if len(question.Options) != OptionsPerQuestion {
			return ErrQuizOptionCount
		}
		seenOptions := make(map[string]bool, OptionsPerQuestion)
		for _, opt := range question.Options {
			if opt.ID == "" {
				return ErrEmptyOptionID
			}
			if seenOptions[opt.ID] {
				return ErrDuplicateOption
			}
			seenOptions[opt.ID] = true
			if opt.Label == "" {
				return ErrEmptyOptionLabel
			}
		}
	}
	return nil
}
