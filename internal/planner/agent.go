package planner

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mfateev/agent-planner/internal/agent"
	"github.com/mfateev/agent-planner/internal/models"
)

var _ agent.Agent = (*Planner)(nil)

// Run plans input and records the result. The plan JSON becomes the final output.
func (p *Planner) Run(ctx context.Context, input string, traceID string) (*agent.TaskRecord, error) {
	if traceID == "" {
		traceID = uuid.NewString()
	}
	record := &agent.TaskRecord{
		Task:      input,
		TraceID:   traceID,
		StartedAt: time.Now(),
	}

	plan, err := p.CreatePlan(ctx, models.TaskContext{Task: input, TraceID: traceID})
	record.FinishedAt = time.Now()
	if err != nil {
		return record, err
	}

	out, err := json.Marshal(plan)
	if err != nil {
		return record, fmt.Errorf("failed to encode plan: %w", err)
	}
	record.Plan = &plan
	record.FinalOutput = string(out)
	return record, nil
}
