// Package mcpserver exposes the planner as an MCP tool over stdio, so other
// agent runtimes can request plans.
package mcpserver

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/mfateev/agent-planner/internal/models"
	"github.com/mfateev/agent-planner/internal/planner"
)

// ToolName is the name of the planning tool.
const ToolName = "create_plan"

// CreatePlanArgs are the tool arguments.
type CreatePlanArgs struct {
	Task    string `json:"task" jsonschema:"the task to plan, file paths in backticks"`
	TraceID string `json:"trace_id,omitempty" jsonschema:"optional trace identifier"`
}

// New creates an MCP server with the create_plan tool bound to p.
func New(p planner.PlanCreator, version string) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{Name: "agent-planner", Version: version}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name: ToolName,
		Description: "Break a task down into an ordered list of subtasks, each assigned to one of the " +
			"configured worker agents. Returns the planner's analysis and the todo list.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args CreatePlanArgs) (*mcp.CallToolResult, models.Plan, error) {
		if strings.TrimSpace(args.Task) == "" {
			return nil, models.Plan{}, fmt.Errorf("task must not be empty")
		}
		traceID := args.TraceID
		if traceID == "" {
			traceID = uuid.NewString()
		}
		plan, err := p.CreatePlan(ctx, models.TaskContext{Task: args.Task, TraceID: traceID})
		if err != nil {
			return nil, models.Plan{}, err
		}
		return nil, plan, nil
	})

	return server
}

// Serve runs the server on stdin/stdout until the client disconnects or ctx ends.
func Serve(ctx context.Context, p planner.PlanCreator, version string) error {
	return New(p, version).Run(ctx, &mcp.StdioTransport{})
}
