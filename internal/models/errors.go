package models

import "fmt"

// ErrorType classifies provider failures.
type ErrorType string

const (
	ErrorTypeFatal           ErrorType = "fatal"
	ErrorTypeTransient       ErrorType = "transient"
	ErrorTypeAPILimit        ErrorType = "api_limit"
	ErrorTypeContextOverflow ErrorType = "context_overflow"
)

// ProviderError is a classified model-call failure. The planner never retries;
// Retryable is advisory for callers that implement their own policy.
type ProviderError struct {
	Type       ErrorType
	Retryable  bool
	StatusCode int
	Err        error
}

func (e *ProviderError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s error (status %d): %v", e.Type, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s error: %v", e.Type, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}
