package llm

import (
	"context"
	"net/http"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

// =============================================================================
// Completer Interface
// =============================================================================

// Completer is the capability the translator needs from an LLM provider:
// one chat-style completion of a fixed system instruction plus a user prompt.
// Tests substitute a deterministic stub.
type Completer interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// =============================================================================
// OpenAI Client Implementation
// =============================================================================

// Config holds configuration for the OpenAI completer.
type Config struct {
	APIKey      string
	Model       string
	BaseURL     string // optional, for OpenAI-compatible providers
	Temperature float32
	MaxTokens   int
	Timeout     time.Duration
}

// DefaultConfig returns default completer configuration. Low randomness and
// bounded output length keep completions close to the schema.
func DefaultConfig() Config {
	return Config{
		Model:       openai.GPT4,
		Temperature: 0.3,
		MaxTokens:   2000,
		Timeout:     60 * time.Second,
	}
}

// OpenAIClient implements Completer using the OpenAI chat completions API.
type OpenAIClient struct {
	client *openai.Client
	config Config
}

// NewOpenAIClient creates a new OpenAI completer.
func NewOpenAIClient(cfg Config) *OpenAIClient {
	if cfg.Model == "" {
		cfg.Model = openai.GPT4
	}
	if cfg.Temperature == 0 {
		cfg.Temperature = 0.3
	}
	if cfg.MaxTokens == 0 {
		cfg.MaxTokens = 2000
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 60 * time.Second
	}

	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	clientCfg.HTTPClient = &http.Client{Timeout: cfg.Timeout}

	return &OpenAIClient{
		client: openai.NewClientWithConfig(clientCfg),
		config: cfg,
	}
}

// Configured reports whether a credential is present. Absence degrades the
// gateway (reported by /health) but does not prevent startup.
func (c *OpenAIClient) Configured() bool {
	return c.config.APIKey != ""
}

// Complete performs one chat completion call.
func (c *OpenAIClient) Complete(ctx context.Context, system, user string) (string, error) {
	if !c.Configured() {
		return "", ErrNoCredential
	}

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.config.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
		Temperature: c.config.Temperature,
		MaxTokens:   c.config.MaxTokens,
	})
	if err != nil {
		return "", err
	}

	if len(resp.Choices) == 0 {
		return "", ErrCompletionFailed
	}
	return resp.Choices[0].Message.Content, nil
}
