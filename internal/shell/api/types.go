package api

import (
	"github.com/artpar/meow/internal/core/deploy"
	"github.com/artpar/meow/internal/shell/orchestrator"
)

// =============================================================================
// Request Types
// =============================================================================

// ParseRequest is the request body for translating a prompt.
type ParseRequest struct {
	Prompt string `json:"prompt"`
}

// ConfirmRequest is the request body for confirming a pending session.
type ConfirmRequest struct {
	SessionID string `json:"session_id"`
}

// =============================================================================
// Response Types
// =============================================================================

// ParseResponse returns the translated configuration for review.
type ParseResponse struct {
	SessionID   string          `json:"session_id"`
	Prompt      string          `json:"prompt"`
	Config      deploy.Document `json:"config"`
	Explanation string          `json:"explanation"`
}

// DeploymentResponse returns the orchestrator's deploy result alongside the
// configuration that was forwarded.
type DeploymentResponse struct {
	ID      string          `json:"id"`
	Message string          `json:"message"`
	Status  string          `json:"status"`
	Config  deploy.Document `json:"config"`
}

// StatusResponse relays deployment status from the orchestrator.
type StatusResponse = orchestrator.StatusResult

// StopResponse relays a stop result from the orchestrator.
type StopResponse = orchestrator.StopResult

// ListResponse relays the deployment list from the orchestrator.
type ListResponse = orchestrator.ListResult

// HealthResponse reports local readiness plus orchestrator reachability.
// The gateway itself is always healthy if it can answer; a broken
// orchestrator degrades the report but never fails the request.
type HealthResponse struct {
	Gateway      string `json:"gateway"`
	LLM          string `json:"llm"`
	Orchestrator string `json:"orchestrator"`
	Time         string `json:"time"`
}

// ErrorResponse is the uniform error envelope.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}
