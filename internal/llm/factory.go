package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/mfateev/agent-planner/internal/models"
)

// MultiProviderClient implements LLMClient by dispatching to the appropriate
// provider based on the ModelConfig.Provider field.
type MultiProviderClient struct {
	openai    LLMClient
	anthropic LLMClient
}

// NewMultiProviderClient creates a client that can dispatch to multiple providers.
func NewMultiProviderClient() *MultiProviderClient {
	return &MultiProviderClient{
		openai:    NewOpenAIClient(),
		anthropic: NewAnthropicClient(),
	}
}

// Call dispatches to the appropriate provider based on ModelConfig.Provider.
func (c *MultiProviderClient) Call(ctx context.Context, request LLMRequest) (LLMResponse, error) {
	provider := request.ModelConfig.Provider
	if provider == "" {
		provider = detectProviderFromModel(request.ModelConfig.Model)
	}

	switch strings.ToLower(provider) {
	case "openai":
		return c.openai.Call(ctx, request)
	case "anthropic":
		return c.anthropic.Call(ctx, request)
	default:
		return LLMResponse{}, &models.ProviderError{
			Type: models.ErrorTypeFatal,
			Err:  fmt.Errorf("unsupported LLM provider: %s (supported: openai, anthropic)", provider),
		}
	}
}

// detectProviderFromModel infers the provider from the model name.
func detectProviderFromModel(model string) string {
	if strings.HasPrefix(model, "claude") {
		return "anthropic"
	}
	return "openai"
}
