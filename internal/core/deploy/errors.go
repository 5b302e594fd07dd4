// Package deploy contains pure functions for parsing and summarizing Kitten
// configuration documents. No I/O, no side effects.
package deploy

import (
	"errors"
	"fmt"
)

// =============================================================================
// Error Types
// =============================================================================

var (
	// ErrEmptyInput is returned when the completion text is blank.
	ErrEmptyInput = errors.New("configuration text is empty")

	// ErrInvalidJSON is returned when the completion text is not valid JSON
	// after fence stripping.
	ErrInvalidJSON = errors.New("invalid JSON configuration")

	// ErrNoContainers is returned when a document defines zero containers.
	ErrNoContainers = errors.New("configuration must define at least one container")
)

// ParseError wraps errors with context about where parsing failed.
type ParseError struct {
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// NewParseError creates a new ParseError.
func NewParseError(message string, err error) *ParseError {
	return &ParseError{
		Message: message,
		Err:     err,
	}
}
