package models

// Role identifies the author of a conversation message.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one role-tagged entry of a model conversation.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// GenerationParams are the sampling parameters sent with a model call.
// A nil field means "provider default" and is omitted from the request;
// an explicit zero is sent as zero.
type GenerationParams struct {
	Temperature *float64 `json:"temperature,omitempty" toml:"temperature"`
	MaxTokens   *int     `json:"max_tokens,omitempty" toml:"max_tokens"`
	TopP        *float64 `json:"top_p,omitempty" toml:"top_p"`
}

// ModelConfig selects the provider and model for a call.
type ModelConfig struct {
	Provider string           `json:"provider" toml:"provider"`
	Model    string           `json:"model" toml:"model"`
	BaseURL  string           `json:"base_url,omitempty" toml:"base_url"`
	APIKey   string           `json:"-" toml:"api_key"`
	Params   GenerationParams `json:"params" toml:"params"`
}

// DefaultModelConfig returns the model configuration used when none is configured.
func DefaultModelConfig() ModelConfig {
	return ModelConfig{
		Provider: "openai",
		Model:    "gpt-4o-mini",
	}
}

// TokenUsage reports token accounting for one model call.
type TokenUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}
