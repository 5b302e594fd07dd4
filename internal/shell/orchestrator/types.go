package orchestrator

// =============================================================================
// Response Types - Kitten API Contract
// =============================================================================

// SpawnResult is the orchestrator's response to a deploy request.
type SpawnResult struct {
	ID      string `json:"id"`
	Message string `json:"message"`
	Status  string `json:"status"`
}

// StatusResult reports per-container state for one deployment.
type StatusResult struct {
	ID         string            `json:"id"`
	Containers map[string]string `json:"containers"`
	Status     string            `json:"status"`
}

// StopResult is the orchestrator's response to a stop request.
type StopResult struct {
	ID      string `json:"id"`
	Message string `json:"message"`
	Status  string `json:"status"`
}

// ListResult enumerates all live deployments.
type ListResult struct {
	Deployments []DeploymentInfo `json:"deployments"`
}

// DeploymentInfo summarizes one deployment in a list response.
type DeploymentInfo struct {
	ID         string            `json:"id"`
	Containers map[string]string `json:"containers"`
	StartTime  string            `json:"start_time"`
}
