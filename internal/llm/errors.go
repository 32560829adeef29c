package llm

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/openai/openai-go/v3"

	"github.com/mfateev/agent-planner/internal/models"
)

// classifyError wraps a provider SDK error in a ProviderError.
func classifyError(err error) error {
	if err == nil {
		return nil
	}
	// Cancellation propagates unchanged so callers can match context errors.
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	var oaErr *openai.Error
	if errors.As(err, &oaErr) {
		return classifyByStatusCode(oaErr.StatusCode, err)
	}
	var anErr *anthropic.Error
	if errors.As(err, &anErr) {
		return classifyByStatusCode(anErr.StatusCode, err)
	}

	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "context length") || strings.Contains(msg, "context_length_exceeded") ||
		strings.Contains(msg, "prompt is too long") {
		return &models.ProviderError{Type: models.ErrorTypeContextOverflow, Err: err}
	}
	return &models.ProviderError{Type: models.ErrorTypeTransient, Retryable: true, Err: err}
}

// classifyByStatusCode maps an HTTP status from the provider to an error type.
func classifyByStatusCode(status int, err error) *models.ProviderError {
	pe := &models.ProviderError{StatusCode: status, Err: err}
	switch {
	case status == http.StatusTooManyRequests:
		pe.Type = models.ErrorTypeAPILimit
		pe.Retryable = true
	case status == http.StatusRequestTimeout || status == http.StatusConflict || status >= 500:
		pe.Type = models.ErrorTypeTransient
		pe.Retryable = true
	default:
		pe.Type = models.ErrorTypeFatal
	}
	return pe
}
