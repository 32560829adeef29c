package llm

import (
	"context"
	"fmt"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"github.com/mfateev/agent-planner/internal/models"
)

// OpenAIClient calls the Chat Completions API. Any OpenAI-compatible endpoint
// works through ModelConfig.BaseURL.
type OpenAIClient struct {
	client openai.Client
}

// NewOpenAIClient creates a client. The API key and base URL default to the
// OPENAI_API_KEY / OPENAI_BASE_URL environment variables.
func NewOpenAIClient(opts ...option.RequestOption) *OpenAIClient {
	return &OpenAIClient{client: openai.NewClient(append([]option.RequestOption{option.WithMaxRetries(0)}, opts...)...)}
}

// Call sends the conversation and returns the first choice's text.
func (c *OpenAIClient) Call(ctx context.Context, request LLMRequest) (LLMResponse, error) {
	params := c.buildParams(request)

	resp, err := c.client.Chat.Completions.New(ctx, params, requestOptions(request.ModelConfig)...)
	if err != nil {
		return LLMResponse{}, classifyError(err)
	}
	if len(resp.Choices) == 0 {
		return LLMResponse{}, &models.ProviderError{
			Type: models.ErrorTypeFatal,
			Err:  fmt.Errorf("openai returned no choices"),
		}
	}

	return LLMResponse{
		Content: resp.Choices[0].Message.Content,
		Model:   resp.Model,
		TokenUsage: models.TokenUsage{
			PromptTokens:     int(resp.Usage.PromptTokens),
			CompletionTokens: int(resp.Usage.CompletionTokens),
			TotalTokens:      int(resp.Usage.TotalTokens),
		},
	}, nil
}

// buildParams converts the request into Chat Completions parameters.
// Unset generation parameters are left to the provider.
func (c *OpenAIClient) buildParams(request LLMRequest) openai.ChatCompletionNewParams {
	params := openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(request.ModelConfig.Model),
		Messages: c.buildMessages(request.Messages),
	}
	p := request.ModelConfig.Params
	if p.Temperature != nil {
		params.Temperature = openai.Float(*p.Temperature)
	}
	if p.MaxTokens != nil {
		params.MaxCompletionTokens = openai.Int(int64(*p.MaxTokens))
	}
	if p.TopP != nil {
		params.TopP = openai.Float(*p.TopP)
	}
	return params
}

func (c *OpenAIClient) buildMessages(messages []models.Message) []openai.ChatCompletionMessageParamUnion {
	out := make([]openai.ChatCompletionMessageParamUnion, 0, len(messages))
	for _, m := range messages {
		switch m.Role {
		case models.RoleSystem:
			out = append(out, openai.SystemMessage(m.Content))
		case models.RoleAssistant:
			out = append(out, openai.AssistantMessage(m.Content))
		default:
			out = append(out, openai.UserMessage(m.Content))
		}
	}
	return out
}

// requestOptions applies per-request endpoint overrides from the config.
func requestOptions(cfg models.ModelConfig) []option.RequestOption {
	var opts []option.RequestOption
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	if cfg.APIKey != "" {
		opts = append(opts, option.WithAPIKey(cfg.APIKey))
	}
	return opts
}
