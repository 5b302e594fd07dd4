package orchestrator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/artpar/meow/internal/core/deploy"
)

// =============================================================================
// Client Interface
// =============================================================================

// Client defines the five operations the gateway performs against the Kitten
// orchestration API.
type Client interface {
	// Spawn forwards a configuration document to the orchestrator's deploy
	// endpoint.
	Spawn(ctx context.Context, doc *deploy.Document) (*SpawnResult, error)

	// Status fetches per-container state for a deployment.
	Status(ctx context.Context, deploymentID string) (*StatusResult, error)

	// Stop asks the orchestrator to stop a deployment.
	Stop(ctx context.Context, deploymentID string) (*StopResult, error)

	// List enumerates all live deployments.
	List(ctx context.Context) (*ListResult, error)

	// Health probes the orchestrator's health endpoint. A nil error means
	// the orchestrator answered 2xx.
	Health(ctx context.Context) error
}

// =============================================================================
// HTTP Client Implementation
// =============================================================================

// Config holds configuration for the orchestrator HTTP client.
type Config struct {
	BaseURL        string
	SpawnTimeout   time.Duration // deploy forward, the slow path
	RequestTimeout time.Duration // status/stop/list
	HealthTimeout  time.Duration
}

// DefaultConfig returns default orchestrator client configuration.
func DefaultConfig() Config {
	return Config{
		BaseURL:        "http://localhost:8080",
		SpawnTimeout:   30 * time.Second,
		RequestTimeout: 10 * time.Second,
		HealthTimeout:  5 * time.Second,
	}
}

// HTTPClient implements Client over HTTP.
type HTTPClient struct {
	baseURL    string
	config     Config
	httpClient *http.Client
}

// NewHTTPClient creates a new orchestrator client.
func NewHTTPClient(cfg Config) *HTTPClient {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "http://localhost:8080"
	}
	if cfg.SpawnTimeout == 0 {
		cfg.SpawnTimeout = 30 * time.Second
	}
	if cfg.RequestTimeout == 0 {
		cfg.RequestTimeout = 10 * time.Second
	}
	if cfg.HealthTimeout == 0 {
		cfg.HealthTimeout = 5 * time.Second
	}

	return &HTTPClient{
		baseURL: cfg.BaseURL,
		config:  cfg,
		// Per-call deadlines come from context timeouts, one per operation.
		httpClient: &http.Client{},
	}
}

// Spawn forwards a configuration document to POST {base}/spawn.
func (c *HTTPClient) Spawn(ctx context.Context, doc *deploy.Document) (*SpawnResult, error) {
	body, err := json.Marshal(doc)
	if err != nil {
		return nil, NewClientError("Spawn", 0, "failed to marshal config", err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.config.SpawnTimeout)
	defer cancel()

	var result SpawnResult
	if err := c.do(ctx, "Spawn", http.MethodPost, "/spawn", body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Status fetches GET {base}/status/{id}.
func (c *HTTPClient) Status(ctx context.Context, deploymentID string) (*StatusResult, error) {
	ctx, cancel := context.WithTimeout(ctx, c.config.RequestTimeout)
	defer cancel()

	var result StatusResult
	if err := c.do(ctx, "Status", http.MethodGet, "/status/"+deploymentID, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Stop posts to POST {base}/stop/{id}.
func (c *HTTPClient) Stop(ctx context.Context, deploymentID string) (*StopResult, error) {
	ctx, cancel := context.WithTimeout(ctx, c.config.RequestTimeout)
	defer cancel()

	var result StopResult
	if err := c.do(ctx, "Stop", http.MethodPost, "/stop/"+deploymentID, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// List fetches GET {base}/list.
func (c *HTTPClient) List(ctx context.Context) (*ListResult, error) {
	ctx, cancel := context.WithTimeout(ctx, c.config.RequestTimeout)
	defer cancel()

	var result ListResult
	if err := c.do(ctx, "List", http.MethodGet, "/list", nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Health probes GET {base}/health.
func (c *HTTPClient) Health(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, c.config.HealthTimeout)
	defer cancel()

	return c.do(ctx, "Health", http.MethodGet, "/health", nil, nil)
}

// do performs one request/response cycle. Any connectivity failure, timeout
// or non-2xx response becomes a ClientError wrapping ErrUnavailable.
func (c *HTTPClient) do(ctx context.Context, op, method, path string, body []byte, out any) error {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return NewClientError(op, 0, "failed to create request", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return NewClientError(op, 0, err.Error(), ErrUnavailable)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return NewClientError(op, resp.StatusCode, string(respBody), ErrUnavailable)
	}

	if out == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return NewClientError(op, resp.StatusCode, fmt.Sprintf("invalid response body: %v", err), ErrUnavailable)
	}
	return nil
}
