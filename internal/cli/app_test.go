package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/mocks"

	"github.com/mfateev/agent-planner/internal/models"
	"github.com/mfateev/agent-planner/internal/workflow"
)

type stubPlanner struct {
	plan models.Plan
	err  error
	task models.TaskContext
}

func (s *stubPlanner) CreatePlan(ctx context.Context, task models.TaskContext) (models.Plan, error) {
	s.task = task
	return s.plan, s.err
}

var samplePlan = models.Plan{
	Analysis: "Need to load data then chart it.",
	Todo: []models.Subtask{
		{AgentName: "loader", Task: "load file"},
		{AgentName: "charter", Task: "plot trend", Completed: true},
	},
}

func plainConfig(task string) Config {
	return Config{Task: task, NoColor: true, NoMarkdown: true}
}

func TestApp_RendersPlan(t *testing.T) {
	var out bytes.Buffer
	stub := &stubPlanner{plan: samplePlan}

	err := NewApp(plainConfig("chart it"), stub, &out).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "chart it", stub.task.Task)
	assert.NotEmpty(t, stub.task.TraceID)
	assert.Equal(t, "Analysis\nNeed to load data then chart it.\n\nPlan\n"+
		" 1. [ ] loader: load file\n"+
		" 2. [x] charter: plot trend\n", out.String())
}

func TestApp_KeepsTraceID(t *testing.T) {
	stub := &stubPlanner{plan: samplePlan}
	cfg := plainConfig("x")
	cfg.TraceID = "trace-7"

	require.NoError(t, NewApp(cfg, stub, &bytes.Buffer{}).Run(context.Background()))
	assert.Equal(t, "trace-7", stub.task.TraceID)
}

func TestApp_JSON(t *testing.T) {
	var out bytes.Buffer
	cfg := plainConfig("x")
	cfg.JSON = true

	require.NoError(t, NewApp(cfg, &stubPlanner{plan: samplePlan}, &out).Run(context.Background()))

	var got models.Plan
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	assert.Equal(t, samplePlan, got)
}

func TestApp_EmptyPlan(t *testing.T) {
	var out bytes.Buffer
	err := NewApp(plainConfig("x"), &stubPlanner{plan: models.Plan{Todo: []models.Subtask{}}}, &out).Run(context.Background())

	assert.ErrorIs(t, err, ErrEmptyPlan)
	assert.Equal(t, "No subtasks were planned.\n", out.String())
}

func TestApp_PlannerError(t *testing.T) {
	var out bytes.Buffer
	boom := errors.New("boom")

	err := NewApp(plainConfig("x"), &stubPlanner{err: boom}, &out).Run(context.Background())
	assert.ErrorIs(t, err, boom)
	assert.Empty(t, out.String())
}

func TestRenderer_MarkdownAnalysis(t *testing.T) {
	var out bytes.Buffer
	r := NewRenderer(&out, true, false, 60)
	require.NotNil(t, r.md)

	r.RenderPlan(models.Plan{Analysis: "# Steps\nload first", Todo: []models.Subtask{{AgentName: "a", Task: "t"}}})

	assert.Contains(t, out.String(), "Steps")
	assert.Contains(t, out.String(), "load first")
	assert.Contains(t, out.String(), " 1. [ ] a: t")
}

func TestRenderer_DefaultWidth(t *testing.T) {
	r := NewRenderer(&bytes.Buffer{}, true, true, 0)
	assert.Equal(t, DefaultWidth, r.width)
	assert.Nil(t, r.md)
}

func TestWorkflowPlanner_ExecutesWorkflow(t *testing.T) {
	c := &mocks.Client{}
	run := &mocks.WorkflowRun{}

	c.On("ExecuteWorkflow", mock.Anything,
		mock.MatchedBy(func(opts client.StartWorkflowOptions) bool {
			return opts.ID == "plan-trace-1" && opts.TaskQueue == "queue"
		}),
		mock.Anything,
		workflow.PlanningWorkflowInput{Task: "chart it", TraceID: "trace-1", Timeout: time.Minute},
	).Return(run, nil)
	run.On("Get", mock.Anything, mock.Anything).Return(nil).Run(func(args mock.Arguments) {
		out := args.Get(1).(*workflow.PlanningWorkflowOutput)
		out.Plan = samplePlan
	})

	p := NewWorkflowPlanner(c, "queue", time.Minute)
	plan, err := p.CreatePlan(context.Background(), models.TaskContext{Task: "chart it", TraceID: "trace-1"})
	require.NoError(t, err)
	assert.Equal(t, samplePlan, plan)
	c.AssertExpectations(t)
	run.AssertExpectations(t)
}

func TestWorkflowPlanner_WorkflowFailure(t *testing.T) {
	c := &mocks.Client{}
	run := &mocks.WorkflowRun{}
	c.On("ExecuteWorkflow", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(run, nil)
	run.On("Get", mock.Anything, mock.Anything).Return(errors.New("activity failed"))

	_, err := NewWorkflowPlanner(c, "queue", 0).CreatePlan(context.Background(), models.TaskContext{Task: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "activity failed")
}
