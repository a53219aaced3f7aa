package flow

import (
	"context"

	"github.com/unhabit-ai/unhabit/internal/models"
)

// Pipeline sequences the stages over a HabitState: safety classification,
// quiz generation, quiz summarization, plan generation, and the first
// coach turn. Each stage's delta is applied before the next stage runs, so
// later stages see the earlier results.
type Pipeline struct {
	engine            *Engine
	stopOnSafetyBlock bool
}

// PipelineOption configures a Pipeline.
type PipelineOption func(*Pipeline)

// WithStopOnSafetyBlock makes the pipeline stop after the safety stage
// when the classification blocks, instead of running the remaining stages
// with the block recorded in state. The default is to continue: the coach
// stage short-circuits on the recorded block anyway, and onboarding still
// needs the quiz for a later allowed session.
func WithStopOnSafetyBlock() PipelineOption {
	return func(p *Pipeline) { p.stopOnSafetyBlock = true }
}

// NewPipeline creates a pipeline over the given stage engine.
func NewPipeline(engine *Engine, opts ...PipelineOption) *Pipeline {
	p := &Pipeline{engine: engine}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Onboard runs safety classification followed by quiz generation. This is
// the first half of the flow; the caller then collects quiz answers before
// calling Complete.
func (p *Pipeline) Onboard(ctx context.Context, state models.HabitState) models.HabitState {
	state = state.Apply(p.engine.ClassifySafety(ctx, state))
	if p.stopOnSafetyBlock && state.Safety.Blocked() {
		return state
	}
	return state.Apply(p.engine.GenerateQuizForm(ctx, state))
}

// Complete runs the post-quiz stages: summarization, plan generation, and
// the first coach turn.
func (p *Pipeline) Complete(ctx context.Context, state models.HabitState) models.HabitState {
	state = state.Apply(p.engine.SummarizeQuiz(ctx, state))
	state = state.Apply(p.engine.GeneratePlan(ctx, state))
	return state.Apply(p.engine.Coach(ctx, state))
}

// Run executes the full flow in order. With answers already present in
// state this is equivalent to Onboard followed by Complete.
func (p *Pipeline) Run(ctx context.Context, state models.HabitState) models.HabitState {
	state = state.Apply(p.engine.ClassifySafety(ctx, state))
	if p.stopOnSafetyBlock && state.Safety.Blocked() {
		return state
	}
	state = state.Apply(p.engine.GenerateQuizForm(ctx, state))
	return p.Complete(ctx, state)
}
