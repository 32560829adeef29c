package llm

import (
	"context"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/mfateev/agent-planner/internal/models"
)

// defaultAnthropicMaxTokens is used when the config leaves max_tokens unset;
// the Messages API requires it.
const defaultAnthropicMaxTokens = 4096

// AnthropicClient calls the Anthropic Messages API.
type AnthropicClient struct {
	client anthropic.Client
}

// NewAnthropicClient creates a client. The API key defaults to ANTHROPIC_API_KEY.
func NewAnthropicClient(opts ...option.RequestOption) *AnthropicClient {
	return &AnthropicClient{client: anthropic.NewClient(append([]option.RequestOption{option.WithMaxRetries(0)}, opts...)...)}
}

// Call sends the conversation and returns the concatenated text blocks.
func (c *AnthropicClient) Call(ctx context.Context, request LLMRequest) (LLMResponse, error) {
	params := c.buildParams(request)

	var opts []option.RequestOption
	if request.ModelConfig.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(request.ModelConfig.BaseURL))
	}
	if request.ModelConfig.APIKey != "" {
		opts = append(opts, option.WithAPIKey(request.ModelConfig.APIKey))
	}

	msg, err := c.client.Messages.New(ctx, params, opts...)
	if err != nil {
		return LLMResponse{}, classifyError(err)
	}

	var b strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			b.WriteString(block.Text)
		}
	}

	return LLMResponse{
		Content: b.String(),
		Model:   string(msg.Model),
		TokenUsage: models.TokenUsage{
			PromptTokens:     int(msg.Usage.InputTokens),
			CompletionTokens: int(msg.Usage.OutputTokens),
			TotalTokens:      int(msg.Usage.InputTokens + msg.Usage.OutputTokens),
		},
	}, nil
}

// buildParams moves system messages into the system field and converts the
// rest of the conversation.
func (c *AnthropicClient) buildParams(request LLMRequest) anthropic.MessageNewParams {
	system, rest := splitSystem(request.Messages)

	p := request.ModelConfig.Params
	maxTokens := int64(defaultAnthropicMaxTokens)
	if p.MaxTokens != nil {
		maxTokens = int64(*p.MaxTokens)
	}

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(request.ModelConfig.Model),
		MaxTokens: maxTokens,
		Messages:  make([]anthropic.MessageParam, 0, len(rest)),
	}
	for _, s := range system {
		params.System = append(params.System, anthropic.TextBlockParam{Text: s})
	}
	for _, m := range rest {
		block := anthropic.NewTextBlock(m.Content)
		if m.Role == models.RoleAssistant {
			params.Messages = append(params.Messages, anthropic.NewAssistantMessage(block))
		} else {
			params.Messages = append(params.Messages, anthropic.NewUserMessage(block))
		}
	}
	if p.Temperature != nil {
		params.Temperature = anthropic.Float(*p.Temperature)
	}
	if p.TopP != nil {
		params.TopP = anthropic.Float(*p.TopP)
	}
	return params
}
