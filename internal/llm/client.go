// Package llm provides the model-call clients used by the planner.
package llm

import (
	"context"

	"github.com/mfateev/agent-planner/internal/models"
)

// LLMRequest is a single non-streaming model call.
type LLMRequest struct {
	Messages    []models.Message
	ModelConfig models.ModelConfig
}

// LLMResponse is the text returned by a model call.
type LLMResponse struct {
	Content    string
	Model      string
	TokenUsage models.TokenUsage
}

// LLMClient sends one request to a model provider and returns its text.
// Errors are returned unchanged in meaning; clients never retry.
type LLMClient interface {
	Call(ctx context.Context, request LLMRequest) (LLMResponse, error)
}

// splitSystem separates system messages from the conversation, for providers
// that take the system prompt out of band.
func splitSystem(messages []models.Message) (system []string, rest []models.Message) {
	for _, m := range messages {
		if m.Role == models.RoleSystem {
			system = append(system, m.Content)
			continue
		}
		rest = append(rest, m)
	}
	return system, rest
}
