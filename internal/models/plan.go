// Package models contains the data types shared across the planner.
package models

// AgentDescriptor describes one worker agent that a plan can delegate to.
type AgentDescriptor struct {
	Name        string `json:"name" toml:"name"`
	Description string `json:"desc" toml:"desc"`
	Strengths   string `json:"strengths,omitempty" toml:"strengths"`
	Weaknesses  string `json:"weaknesses,omitempty" toml:"weaknesses"`
}

// Subtask is one planned unit of work assigned to a worker agent.
// Subtasks are created by the plan parser and never mutated afterwards.
type Subtask struct {
	AgentName string `json:"agent_name" jsonschema:"name of the worker agent that runs this subtask"`
	Task      string `json:"task" jsonschema:"instruction for the worker agent"`
	Completed bool   `json:"completed" jsonschema:"completion flag, false for freshly planned subtasks"`
}

// Plan is the structured result of one planning call.
//
// Todo order is execution order. An empty Todo is a valid result meaning the
// model response contained no usable plan; callers decide what to do with it.
type Plan struct {
	Analysis string    `json:"analysis" jsonschema:"planner rationale extracted from the model response"`
	Todo     []Subtask `json:"todo" jsonschema:"ordered subtasks"`
}

// IsEmpty reports whether the plan has no subtasks.
func (p Plan) IsEmpty() bool {
	return len(p.Todo) == 0
}

// PlanEntry is one raw plan item inside a few-shot example.
type PlanEntry struct {
	AgentName string `json:"agent_name"`
	Task      string `json:"task"`
	Completed bool   `json:"completed"`
}

// PlanningExample is a static few-shot example rendered into the system prompt.
type PlanningExample struct {
	Question        string      `json:"question"`
	AvailableAgents string      `json:"available_agents"`
	Analysis        string      `json:"analysis"`
	Plan            []PlanEntry `json:"plan"`
}

// TaskContext carries the task being planned.
type TaskContext struct {
	Task    string `json:"task"`
	TraceID string `json:"trace_id,omitempty"`
}
