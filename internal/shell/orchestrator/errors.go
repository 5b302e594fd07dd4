// Package orchestrator provides the HTTP client for the Kitten orchestration
// API, which actually creates and manages containers.
package orchestrator

import (
	"errors"
	"fmt"
)

// =============================================================================
// Error Types
// =============================================================================

// ErrUnavailable is returned for any connectivity failure, timeout or non-2xx
// response from the orchestrator. The caller cannot distinguish these cases
// and should treat the orchestrator as temporarily unreachable.
var ErrUnavailable = errors.New("orchestrator unavailable")

// ClientError wraps orchestrator call failures with context.
type ClientError struct {
	Op         string // Operation that failed (e.g., "Spawn")
	StatusCode int    // HTTP status if a response was received, else 0
	Message    string
	Err        error
}

func (e *ClientError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: orchestrator returned %d: %s", e.Op, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}

func (e *ClientError) Unwrap() error {
	return e.Err
}

// NewClientError creates a new ClientError.
func NewClientError(op string, statusCode int, message string, err error) *ClientError {
	return &ClientError{
		Op:         op,
		StatusCode: statusCode,
		Message:    message,
		Err:        err,
	}
}

// IsUnavailable reports whether err means the orchestrator could not serve
// the request.
func IsUnavailable(err error) bool {
	return errors.Is(err, ErrUnavailable)
}
