// Package workflow contains Temporal workflow definitions.
//
// plan.go runs a single planning activity and returns its plan.
package workflow

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	"github.com/mfateev/agent-planner/internal/activities"
	"github.com/mfateev/agent-planner/internal/models"
)

// DefaultPlanningTimeout bounds one planning activity when the input does not set one.
const DefaultPlanningTimeout = 5 * time.Minute

// PlanningWorkflowInput is the input for PlanningWorkflow.
type PlanningWorkflowInput struct {
	Task    string        `json:"task"`
	TraceID string        `json:"trace_id,omitempty"`
	Timeout time.Duration `json:"timeout,omitempty"`
}

// PlanningWorkflowOutput is the result of PlanningWorkflow.
type PlanningWorkflowOutput struct {
	Plan models.Plan `json:"plan"`
}

// PlanningWorkflow produces one plan for a task. The activity runs exactly
// once; a failed planning attempt fails the workflow.
func PlanningWorkflow(ctx workflow.Context, input PlanningWorkflowInput) (PlanningWorkflowOutput, error) {
	logger := workflow.GetLogger(ctx)

	timeout := input.Timeout
	if timeout <= 0 {
		timeout = DefaultPlanningTimeout
	}
	actCtx := workflow.WithActivityOptions(ctx, workflow.ActivityOptions{
		StartToCloseTimeout: timeout,
		RetryPolicy: &temporal.RetryPolicy{
			MaximumAttempts: 1,
		},
	})

	var result activities.CreatePlanOutput
	err := workflow.ExecuteActivity(actCtx, activities.CreatePlanActivity, activities.CreatePlanInput{
		Task:    input.Task,
		TraceID: input.TraceID,
	}).Get(ctx, &result)
	if err != nil {
		logger.Warn("Planning activity failed", "trace_id", input.TraceID, "error", err)
		return PlanningWorkflowOutput{}, err
	}

	logger.Info("Plan ready", "trace_id", input.TraceID, "subtasks", len(result.Plan.Todo))
	return PlanningWorkflowOutput{Plan: result.Plan}, nil
}
