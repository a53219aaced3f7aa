package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/unhabit-ai/unhabit/internal/flow"
	"github.com/unhabit-ai/unhabit/internal/models"
)

// requireEngine reports whether generation is available, writing the
// configuration error when it is not.
func (s *Server) requireEngine(w http.ResponseWriter, r *http.Request) bool {
	if s.engine == nil {
		writeError(w, r, http.StatusInternalServerError,
			"OPENAI_API_KEY not configured",
			"Set OPENAI_API_KEY in .env before running Unhabit AI.")
		return false
	}
	return true
}

// requirePost enforces the method and rejects everything else with 405.
func requirePost(w http.ResponseWriter, r *http.Request) bool {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		w.WriteHeader(http.StatusMethodNotAllowed)
		return false
	}
	return true
}

// decodeJSON decodes the request body into dst, writing a 400 on failure.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		slog.Warn("Server: failed to decode JSON request", "path", r.URL.Path, "error", err)
		writeError(w, r, http.StatusBadRequest, "Invalid JSON format", err.Error())
		return false
	}
	return true
}

func (s *Server) rootHandler(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		writeError(w, r, http.StatusNotFound, "Not found", "")
		return
	}
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	writeJSONResponse(w, http.StatusOK, map[string]interface{}{
		"message": "Unhabit AI API is running.",
		"debug":   s.debug,
	})
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	writeJSONResponse(w, http.StatusOK, map[string]interface{}{
		"status":                "ok",
		"openai_key_configured": s.engine != nil,
		"debug":                 s.debug,
	})
}

// onboardingStartHandler runs safety classification plus quiz generation
// for a freshly described habit and returns the resulting state. The
// frontend then shows the quiz and later posts answers to /quiz-summary.
func (s *Server) onboardingStartHandler(w http.ResponseWriter, r *http.Request) {
	if r.Body != nil {
		defer r.Body.Close()
	}
	if !requirePost(w, r) || !s.requireEngine(w, r) {
		return
	}

	var req models.OnboardingStartRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error(), "")
		return
	}

	state := models.HabitState{
		UserID:           req.UserID,
		HabitDescription: req.HabitDescription,
	}
	state = s.pipeline.Onboard(r.Context(), state)

	slog.Info("Server.onboardingStartHandler: onboarding complete",
		"request_id", requestIDFromContext(r.Context()),
		"blocked", state.Safety.Blocked())
	writeJSONResponse(w, http.StatusOK, state)
}

// canonicalizeHabitHandler gives an instant classification of raw habit
// text, outside the main flow. The low/medium/high confidence is mapped to
// a numeric score for UI logic only.
func (s *Server) canonicalizeHabitHandler(w http.ResponseWriter, r *http.Request) {
	if r.Body != nil {
		defer r.Body.Close()
	}
	if !requirePost(w, r) || !s.requireEngine(w, r) {
		return
	}

	var req models.CanonicalizeHabitRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error(), "")
		return
	}

	state := models.HabitState{HabitDescription: req.HabitDescription}
	state = state.Apply(s.engine.CanonicalizeHabit(r.Context(), state))

	writeJSONResponse(w, http.StatusOK, models.CanonicalizeHabitResponse{
		HabitName:     state.CanonicalHabitName,
		HabitCategory: state.HabitCategory,
		Confidence:    models.ConfidenceScore(state.CanonicalConfidence),
	})
}

func (s *Server) safetyHandler(w http.ResponseWriter, r *http.Request) {
	if r.Body != nil {
		defer r.Body.Close()
	}
	if !requirePost(w, r) || !s.requireEngine(w, r) {
		return
	}

	var req models.StateRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	delta := s.engine.ClassifySafety(r.Context(), req.State)
	writeJSONResponse(w, http.StatusOK, delta.Safety)
}

func (s *Server) quizFormHandler(w http.ResponseWriter, r *http.Request) {
	if r.Body != nil {
		defer r.Body.Close()
	}
	if !requirePost(w, r) || !s.requireEngine(w, r) {
		return
	}

	var req models.StateRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	delta := s.engine.GenerateQuizForm(r.Context(), req.State)
	writeJSONResponse(w, http.StatusOK, delta.QuizForm)
}

// quizSummaryHandler distills the habit description, quiz, and answers
// into the mechanism profile consumed by /plan-21d and /coach.
func (s *Server) quizSummaryHandler(w http.ResponseWriter, r *http.Request) {
	if r.Body != nil {
		defer r.Body.Close()
	}
	if !requirePost(w, r) || !s.requireEngine(w, r) {
		return
	}

	var req models.StateRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	delta := s.engine.SummarizeQuiz(r.Context(), req.State)
	writeJSONResponse(w, http.StatusOK, delta.QuizSummary)
}

func (s *Server) planHandler(w http.ResponseWriter, r *http.Request) {
	if r.Body != nil {
		defer r.Body.Close()
	}
	if !requirePost(w, r) || !s.requireEngine(w, r) {
		return
	}

	var req models.StateRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	delta := s.engine.GeneratePlan(r.Context(), req.State)
	writeJSONResponse(w, http.StatusOK, delta.Plan21)
}

// fallbackPlanHandler serves the deterministic plan without any
// generation, for testing and strict cost-control environments. It works
// even when no API key is configured.
func (s *Server) fallbackPlanHandler(w http.ResponseWriter, r *http.Request) {
	if r.Body != nil {
		defer r.Body.Close()
	}
	if !requirePost(w, r) {
		return
	}

	var req models.StateRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	writeJSONResponse(w, http.StatusOK, flow.FallbackPlan(req.State.QuizSummary))
}

func (s *Server) coachHandler(w http.ResponseWriter, r *http.Request) {
	if r.Body != nil {
		defer r.Body.Close()
	}
	if !requirePost(w, r) || !s.requireEngine(w, r) {
		return
	}

	var req models.StateRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	state := req.State.Apply(s.engine.Coach(r.Context(), req.State))
	writeJSONResponse(w, http.StatusOK, models.CoachResponse{
		CoachReply:  state.CoachReply,
		ChatHistory: state.ChatHistory,
	})
}

func (s *Server) whyDayHandler(w http.ResponseWriter, r *http.Request) {
	if r.Body != nil {
		defer r.Body.Close()
	}
	if !requirePost(w, r) || !s.requireEngine(w, r) {
		return
	}

	var req models.WhyDayRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error(), "")
		return
	}

	dayKey := models.DayKey(req.DayNumber)
	state := req.State.Apply(s.engine.ExplainDay(r.Context(), req.State, dayKey))

	writeJSONResponse(w, http.StatusOK, models.WhyDayResponse{
		DayNumber:   req.DayNumber,
		Explanation: state.LastWhyExplanation,
	})
}
