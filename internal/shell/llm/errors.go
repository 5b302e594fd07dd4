// Package llm turns natural-language deployment requests into Kitten
// configuration documents via an LLM completion call.
package llm

import (
	"errors"
	"fmt"
)

// =============================================================================
// Error Types
// =============================================================================

var (
	// ErrNoCredential is returned when no API key is configured.
	ErrNoCredential = errors.New("llm credential not configured")

	// ErrCompletionFailed is returned when the provider call itself fails
	// (network, auth, rate-limit).
	ErrCompletionFailed = errors.New("llm completion failed")

	// ErrBadCompletion is returned when the completion content cannot be
	// parsed into a configuration document.
	ErrBadCompletion = errors.New("llm returned unparseable configuration")
)

// TranslateError wraps translation failures with the underlying cause.
type TranslateError struct {
	Message string
	Err     error
}

func (e *TranslateError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *TranslateError) Unwrap() error {
	return e.Err
}

// NewTranslateError creates a new TranslateError.
func NewTranslateError(message string, err error) *TranslateError {
	return &TranslateError{
		Message: message,
		Err:     err,
	}
}
