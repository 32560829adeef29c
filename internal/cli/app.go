// Package cli implements the planner's command-line front end.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"go.temporal.io/sdk/client"

	"github.com/mfateev/agent-planner/internal/models"
	"github.com/mfateev/agent-planner/internal/planner"
	"github.com/mfateev/agent-planner/internal/workflow"
)

// ErrEmptyPlan is returned when the model response contained no subtasks.
var ErrEmptyPlan = errors.New("planner produced no subtasks")

// Config holds CLI configuration.
type Config struct {
	Task       string
	TraceID    string
	JSON       bool
	NoColor    bool
	NoMarkdown bool
	Width      int
}

// App plans one task and prints the result.
type App struct {
	config   Config
	planner  planner.PlanCreator
	renderer *Renderer
	out      io.Writer
}

// NewApp creates an app that plans with p and writes to out.
func NewApp(config Config, p planner.PlanCreator, out io.Writer) *App {
	return &App{
		config:   config,
		planner:  p,
		renderer: NewRenderer(out, config.NoColor, config.NoMarkdown, config.Width),
		out:      out,
	}
}

// Run plans the configured task. An empty plan is printed and reported as
// ErrEmptyPlan so the caller can pick an exit status.
func (a *App) Run(ctx context.Context) error {
	traceID := a.config.TraceID
	if traceID == "" {
		traceID = uuid.NewString()
	}

	plan, err := a.planner.CreatePlan(ctx, models.TaskContext{Task: a.config.Task, TraceID: traceID})
	if err != nil {
		return err
	}

	if a.config.JSON {
		if err := a.renderer.RenderJSON(plan); err != nil {
			return fmt.Errorf("failed to write plan: %w", err)
		}
	} else {
		a.renderer.RenderPlan(plan)
	}

	if plan.IsEmpty() {
		return ErrEmptyPlan
	}
	return nil
}

// WorkflowPlanner creates plans by running PlanningWorkflow on a Temporal worker.
type WorkflowPlanner struct {
	client    client.Client
	taskQueue string
	timeout   time.Duration
}

// NewWorkflowPlanner creates a planner that submits to taskQueue.
func NewWorkflowPlanner(c client.Client, taskQueue string, timeout time.Duration) *WorkflowPlanner {
	return &WorkflowPlanner{client: c, taskQueue: taskQueue, timeout: timeout}
}

// CreatePlan starts a planning workflow and waits for its result.
func (p *WorkflowPlanner) CreatePlan(ctx context.Context, task models.TaskContext) (models.Plan, error) {
	workflowID := fmt.Sprintf("plan-%s", uuid.New().String()[:8])
	if task.TraceID != "" {
		workflowID = "plan-" + task.TraceID
	}

	run, err := p.client.ExecuteWorkflow(ctx, client.StartWorkflowOptions{
		ID:        workflowID,
		TaskQueue: p.taskQueue,
	}, workflow.PlanningWorkflow, workflow.PlanningWorkflowInput{
		Task:    task.Task,
		TraceID: task.TraceID,
		Timeout: p.timeout,
	})
	if err != nil {
		return models.Plan{}, fmt.Errorf("failed to start planning workflow: %w", err)
	}

	var out workflow.PlanningWorkflowOutput
	if err := run.Get(ctx, &out); err != nil {
		return models.Plan{}, fmt.Errorf("planning workflow %s failed: %w", workflowID, err)
	}
	return out.Plan, nil
}
