// Package agent defines the run contract shared by agents in the framework.
package agent

import (
	"context"
	"time"

	"github.com/mfateev/agent-planner/internal/models"
)

// Agent is the one required capability: run a task and record the outcome.
type Agent interface {
	Run(ctx context.Context, input string, traceID string) (*TaskRecord, error)
}

// Builder is implemented by agents that need setup before their first run.
type Builder interface {
	Build(ctx context.Context) error
}

// Cleaner is implemented by agents that hold resources to release after use.
type Cleaner interface {
	Cleanup(ctx context.Context) error
}

// Hooks provides no-op Build and Cleanup. Embed it to satisfy Builder and
// Cleaner without writing empty methods.
type Hooks struct{}

// Build does nothing.
func (Hooks) Build(context.Context) error { return nil }

// Cleanup does nothing.
func (Hooks) Cleanup(context.Context) error { return nil }

// TaskRecord is what an agent run reports back to the orchestration loop.
type TaskRecord struct {
	Task        string
	TraceID     string
	FinalOutput string
	// Plan is set by planning agents.
	Plan       *models.Plan
	StartedAt  time.Time
	FinishedAt time.Time
}

// Build runs a's setup hook if it has one.
func Build(ctx context.Context, a Agent) error {
	if b, ok := a.(Builder); ok {
		return b.Build(ctx)
	}
	return nil
}

// Cleanup runs a's teardown hook if it has one.
func Cleanup(ctx context.Context, a Agent) error {
	if c, ok := a.(Cleaner); ok {
		return c.Cleanup(ctx)
	}
	return nil
}
