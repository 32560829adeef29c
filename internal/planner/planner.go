// Package planner turns a task and a worker roster into an execution plan
// with a single model call.
package planner

import (
	"context"
	"fmt"

	"github.com/mfateev/agent-planner/internal/agent"
	"github.com/mfateev/agent-planner/internal/config"
	"github.com/mfateev/agent-planner/internal/instructions"
	"github.com/mfateev/agent-planner/internal/llm"
	"github.com/mfateev/agent-planner/internal/log"
	"github.com/mfateev/agent-planner/internal/models"
)

// BackgroundProvider derives extra planning context from the task. The
// result goes into the user prompt only; worker agents never see it.
// An empty string means no background.
type BackgroundProvider interface {
	BackgroundInfo(ctx context.Context, task models.TaskContext) string
}

// BackgroundFunc adapts a function to BackgroundProvider.
type BackgroundFunc func(ctx context.Context, task models.TaskContext) string

// BackgroundInfo calls f.
func (f BackgroundFunc) BackgroundInfo(ctx context.Context, task models.TaskContext) string {
	return f(ctx, task)
}

// PlanCreator is anything that can produce a plan for a task.
type PlanCreator interface {
	CreatePlan(ctx context.Context, task models.TaskContext) (models.Plan, error)
}

// Option configures a Planner.
type Option func(*Planner)

// WithBackground sets the background provider consulted before each call.
func WithBackground(bp BackgroundProvider) Option {
	return func(p *Planner) {
		p.background = bp
	}
}

// WithRenderer replaces the prompt renderer resolved from the config.
func WithRenderer(r *instructions.Renderer) Option {
	return func(p *Planner) {
		p.renderer = r
	}
}

// Planner builds prompts from templates and few-shot examples, issues one
// model call per plan and parses the response.
//
// All fields are set in New and only read afterwards, so a Planner may serve
// concurrent CreatePlan calls.
type Planner struct {
	agent.Hooks

	name       string
	client     llm.LLMClient
	model      models.ModelConfig
	renderer   *instructions.Renderer
	background BackgroundProvider

	examples []models.PlanningExample
	agents   []models.AgentDescriptor

	formattedExamples string
	formattedAgents   string
}

// New creates a Planner. Failing to load the examples or the prompt
// directory is a configuration error.
func New(cfg *config.Config, client llm.LLMClient, opts ...Option) (*Planner, error) {
	if client == nil {
		return nil, fmt.Errorf("planner requires an LLM client")
	}

	examples, err := LoadExamples(cfg.Planner.ExamplesPath)
	if err != nil {
		return nil, err
	}

	p := &Planner{
		name:     cfg.Planner.Name,
		client:   client,
		model:    cfg.PlannerModel,
		examples: examples,
		agents:   LoadAgents(cfg.Workers),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.name == "" {
		p.name = config.DefaultPlannerName
	}
	if p.renderer == nil {
		r, err := instructions.NewRenderer(cfg.Planner.TemplateDir)
		if err != nil {
			return nil, err
		}
		p.renderer = r
	}

	p.formattedExamples = FormatExamples(p.examples)
	p.formattedAgents = FormatAgents(p.agents)

	log.Debug("planner ready",
		"name", p.name,
		"examples", len(p.examples),
		"agents", len(p.agents),
		"provider", p.model.Provider,
		"model", p.model.Model)
	return p, nil
}

// Name returns the planner's configured name.
func (p *Planner) Name() string {
	return p.name
}

// Agents returns the worker roster the planner plans for.
func (p *Planner) Agents() []models.AgentDescriptor {
	out := make([]models.AgentDescriptor, len(p.agents))
	copy(out, p.agents)
	return out
}

// CreatePlan produces a plan for task. It makes exactly one model call and
// returns its error unchanged in meaning; an unusable response yields an
// empty plan, not an error.
func (p *Planner) CreatePlan(ctx context.Context, task models.TaskContext) (models.Plan, error) {
	var background string
	if p.background != nil {
		background = p.background.BackgroundInfo(ctx, task)
	}

	messages, err := p.BuildMessages(task, background)
	if err != nil {
		return models.Plan{}, err
	}

	resp, err := p.client.Call(ctx, llm.LLMRequest{
		Messages:    messages,
		ModelConfig: p.model,
	})
	if err != nil {
		return models.Plan{}, fmt.Errorf("planner model call failed: %w", err)
	}

	plan := Parse(resp.Content)

	log.Debug("plan created",
		"planner", p.name,
		"trace_id", task.TraceID,
		"response_len", len(resp.Content),
		"subtasks", len(plan.Todo),
		"prompt_tokens", resp.TokenUsage.PromptTokens,
		"completion_tokens", resp.TokenUsage.CompletionTokens)
	if plan.IsEmpty() {
		log.Warn("model response contained no plan entries",
			"planner", p.name, "trace_id", task.TraceID, "response_len", len(resp.Content))
	}
	return plan, nil
}

// BuildMessages renders the system and user prompts for task.
func (p *Planner) BuildMessages(task models.TaskContext, background string) ([]models.Message, error) {
	sp, err := p.renderer.Render(instructions.PlannerSystemTemplate, map[string]any{
		"planning_examples": p.formattedExamples,
	})
	if err != nil {
		return nil, err
	}
	up, err := p.renderer.Render(instructions.PlannerUserTemplate, map[string]any{
		"available_agents": p.formattedAgents,
		"question":         task.Task,
		"background_info":  background,
	})
	if err != nil {
		return nil, err
	}
	return []models.Message{
		{Role: models.RoleSystem, Content: sp},
		{Role: models.RoleUser, Content: up},
	}, nil
}
