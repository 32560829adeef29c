package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mfateev/agent-planner/internal/models"
)

// TestAnthropicBuildParams_SystemOutOfBand verifies system messages move to
// the system field and the rest stay in order.
func TestAnthropicBuildParams_SystemOutOfBand(t *testing.T) {
	c := &AnthropicClient{}
	params := c.buildParams(LLMRequest{
		Messages: []models.Message{
			{Role: models.RoleSystem, Content: "You plan."},
			{Role: models.RoleUser, Content: "Question: hi"},
		},
		ModelConfig: models.ModelConfig{Model: "claude-sonnet-4-5"},
	})

	require.Len(t, params.System, 1)
	assert.Equal(t, "You plan.", params.System[0].Text)
	require.Len(t, params.Messages, 1)
	assert.EqualValues(t, "user", params.Messages[0].Role)
	assert.Equal(t, int64(defaultAnthropicMaxTokens), params.MaxTokens)
}

func TestAnthropicBuildParams_MaxTokensFromConfig(t *testing.T) {
	c := &AnthropicClient{}
	params := c.buildParams(LLMRequest{
		Messages:    []models.Message{{Role: models.RoleUser, Content: "hi"}},
		ModelConfig: models.ModelConfig{Model: "claude-sonnet-4-5", Params: models.GenerationParams{MaxTokens: intPtr(256)}},
	})
	assert.Equal(t, int64(256), params.MaxTokens)
}

func TestAnthropicBuildParams_ExplicitZeroTemperature(t *testing.T) {
	c := &AnthropicClient{}
	params := c.buildParams(LLMRequest{
		Messages:    []models.Message{{Role: models.RoleUser, Content: "hi"}},
		ModelConfig: models.ModelConfig{Model: "claude-sonnet-4-5", Params: models.GenerationParams{Temperature: floatPtr(0)}},
	})

	require.True(t, params.Temperature.Valid(), "explicit temperature 0 must be sent")
	assert.Equal(t, 0.0, params.Temperature.Value)
	assert.False(t, params.TopP.Valid())
}

// fakeAnthropicResponse returns a minimal valid Anthropic Messages API JSON response.
func fakeAnthropicResponse() string {
	return `{
		"id": "msg_test123",
		"type": "message",
		"role": "assistant",
		"model": "claude-haiku-4-5-20251001",
		"content": [
			{"type": "text", "text": "<analysis>a</analysis>"},
			{"type": "text", "text": "<plan>[]</plan>"}
		],
		"stop_reason": "end_turn",
		"stop_sequence": null,
		"usage": {"input_tokens": 100, "output_tokens": 10}
	}`
}

// TestAnthropicCall_WireRequest verifies the system prompt and parameters in
// the wire request and text-block concatenation in the response.
func TestAnthropicCall_WireRequest(t *testing.T) {
	var capturedBody map[string]interface{}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(body, &capturedBody))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, fakeAnthropicResponse())
	}))
	defer server.Close()

	c := NewAnthropicClient(option.WithBaseURL(server.URL), option.WithAPIKey("test-key"))

	resp, err := c.Call(context.Background(), LLMRequest{
		Messages: []models.Message{
			{Role: models.RoleSystem, Content: "You plan."},
			{Role: models.RoleUser, Content: "hi"},
		},
		ModelConfig: models.ModelConfig{
			Model:  "claude-haiku-4-5-20251001",
			Params: models.GenerationParams{Temperature: floatPtr(0.5), MaxTokens: intPtr(1024)},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "<analysis>a</analysis><plan>[]</plan>", resp.Content)
	assert.Equal(t, 110, resp.TokenUsage.TotalTokens)

	assert.EqualValues(t, 1024, capturedBody["max_tokens"])
	assert.InDelta(t, 0.5, capturedBody["temperature"], 1e-9)

	systemBlocks, ok := capturedBody["system"].([]interface{})
	require.True(t, ok, "system field must be present in request")
	require.Len(t, systemBlocks, 1)
	block := systemBlocks[0].(map[string]interface{})
	assert.Equal(t, "You plan.", block["text"])

	messages, ok := capturedBody["messages"].([]interface{})
	require.True(t, ok)
	require.Len(t, messages, 1)
}

// TestAnthropicCall_OverloadedIsTransient verifies a 529 surfaces as a
// retryable transient error.
func TestAnthropicCall_OverloadedIsTransient(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(529)
		fmt.Fprint(w, `{"type": "error", "error": {"type": "overloaded_error", "message": "Overloaded"}}`)
	}))
	defer server.Close()

	c := NewAnthropicClient(option.WithBaseURL(server.URL), option.WithAPIKey("test-key"))
	_, err := c.Call(context.Background(), LLMRequest{
		Messages:    []models.Message{{Role: models.RoleUser, Content: "hi"}},
		ModelConfig: models.ModelConfig{Model: "claude-haiku-4-5-20251001"},
	})

	var pe *models.ProviderError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, models.ErrorTypeTransient, pe.Type)
	assert.True(t, pe.Retryable)
	assert.Equal(t, 529, pe.StatusCode)
}
