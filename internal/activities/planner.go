// Package activities contains the Temporal activities run by the planning worker.
package activities

import (
	"context"
	"errors"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/temporal"

	"github.com/mfateev/agent-planner/internal/models"
	"github.com/mfateev/agent-planner/internal/planner"
)

// CreatePlanActivity is the registered name of PlannerActivities.CreatePlan.
const CreatePlanActivity = "CreatePlan"

// CreatePlanInput is the input for the CreatePlan activity.
type CreatePlanInput struct {
	Task    string `json:"task"`
	TraceID string `json:"trace_id,omitempty"`
}

// CreatePlanOutput is the output from the CreatePlan activity.
type CreatePlanOutput struct {
	Plan models.Plan `json:"plan"`
}

// PlannerActivities contains planning activities.
type PlannerActivities struct {
	planner planner.PlanCreator
}

// NewPlannerActivities creates a new PlannerActivities instance.
func NewPlannerActivities(p planner.PlanCreator) *PlannerActivities {
	return &PlannerActivities{planner: p}
}

// CreatePlan runs one planning call. Failures are non-retryable: a planning
// attempt is never repeated on the caller's behalf.
func (a *PlannerActivities) CreatePlan(ctx context.Context, input CreatePlanInput) (CreatePlanOutput, error) {
	logger := activity.GetLogger(ctx)

	plan, err := a.planner.CreatePlan(ctx, models.TaskContext{Task: input.Task, TraceID: input.TraceID})
	if err != nil {
		logger.Warn("Planning failed", "trace_id", input.TraceID, "error", err)
		return CreatePlanOutput{}, temporal.NewNonRetryableApplicationError(
			err.Error(), errorType(err), err)
	}

	logger.Info("Plan created", "trace_id", input.TraceID, "subtasks", len(plan.Todo))
	return CreatePlanOutput{Plan: plan}, nil
}

// errorType names the failure class carried in the application error.
func errorType(err error) string {
	var pe *models.ProviderError
	if errors.As(err, &pe) {
		return string(pe.Type)
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return "canceled"
	}
	return "planning"
}
