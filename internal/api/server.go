// Package api exposes the habit pipeline over HTTP.
//
// It provides the onboarding, per-stage, plan, rationale, and coaching
// endpoints, with a request-ID middleware and permissive CORS for browser
// frontends. Handlers delegate all behavior to the flow engine; the server
// itself holds no session state.
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/cors"

	"github.com/unhabit-ai/unhabit/internal/flow"
)

// DefaultAddr is the listen address used when none is configured.
const DefaultAddr = ":8000"

// requestIDHeader is set on every response.
const requestIDHeader = "X-Request-ID"

type contextKey string

const requestIDKey contextKey = "request_id"

// requestIDFromContext returns the request ID attached by the middleware,
// or "" outside a request.
func requestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// Server hosts the HTTP endpoints over a stage engine and pipeline. A nil
// engine means no generation capability is configured; endpoints that need
// it report that instead of failing obscurely, while the deterministic
// endpoints keep working.
type Server struct {
	engine   *flow.Engine
	pipeline *flow.Pipeline
	addr     string
	debug    bool
}

// Option configures a Server.
type Option func(*Server)

// WithAddr sets the listen address.
func WithAddr(addr string) Option {
	return func(s *Server) { s.addr = addr }
}

// WithDebug marks the server as running in debug mode; it is reported on
// the meta endpoints only.
func WithDebug(debug bool) Option {
	return func(s *Server) { s.debug = debug }
}

// NewServer creates a server over the given engine. The engine may be nil
// when no API key is configured.
func NewServer(engine *flow.Engine, opts ...Option) *Server {
	s := &Server{
		engine: engine,
		addr:   DefaultAddr,
	}
	if engine != nil {
		s.pipeline = flow.NewPipeline(engine)
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler builds the full middleware-wrapped handler for the server.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.rootHandler)
	mux.HandleFunc("/health", s.healthHandler)
	mux.HandleFunc("/onboarding/start", s.onboardingStartHandler)
	mux.HandleFunc("/canonicalize-habit", s.canonicalizeHabitHandler)
	mux.HandleFunc("/safety", s.safetyHandler)
	mux.HandleFunc("/quiz-form", s.quizFormHandler)
	mux.HandleFunc("/quiz-summary", s.quizSummaryHandler)
	mux.HandleFunc("/plan-21d", s.planHandler)
	mux.HandleFunc("/plan-21d-fallback", s.fallbackPlanHandler)
	mux.HandleFunc("/coach", s.coachHandler)
	mux.HandleFunc("/why-day", s.whyDayHandler)

	// Allow all origins; tighten in production deployments.
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	return s.requestIDMiddleware(c.Handler(mux))
}

// requestIDMiddleware attaches a request ID to each request, logs it, and
// recovers panics into a structured 500.
func (s *Server) requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := uuid.NewString()
		ctx := context.WithValue(r.Context(), requestIDKey, requestID)
		r = r.WithContext(ctx)
		w.Header().Set(requestIDHeader, requestID)

		slog.Info("Server: handling request", "request_id", requestID, "method", r.Method, "path", r.URL.Path)

		defer func() {
			if rec := recover(); rec != nil {
				slog.Error("Server: unhandled panic", "request_id", requestID, "panic", rec)
				writeError(w, r, http.StatusInternalServerError, "Internal server error", "Unexpected error")
			}
		}()

		next.ServeHTTP(w, r)
	})
}

// Run starts the HTTP server and blocks until it exits.
func (s *Server) Run() error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	slog.Info("Server: listening", "addr", s.addr)
	return srv.ListenAndServe()
}

// Run assembles a server over the engine and runs it. This is the single
// entry point used by the command binary.
func Run(engine *flow.Engine, opts ...Option) error {
	return NewServer(engine, opts...).Run()
}
