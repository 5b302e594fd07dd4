package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// =============================================================================
// Config Types
// =============================================================================

// Config holds all application configuration.
type Config struct {
	Server       ServerConfig       `mapstructure:"server"`
	Orchestrator OrchestratorConfig `mapstructure:"orchestrator"`
	LLM          LLMConfig          `mapstructure:"llm"`
	Sessions     SessionsConfig     `mapstructure:"sessions"`
	Log          LogConfig          `mapstructure:"log"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// Address returns the server address in host:port format.
func (c ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// OrchestratorConfig holds the Kitten API client configuration.
type OrchestratorConfig struct {
	// URL is the orchestrator base URL.
	URL string `mapstructure:"url"`

	// SpawnTimeout bounds a deploy forward, the one slow call.
	SpawnTimeout time.Duration `mapstructure:"spawn_timeout"`

	// RequestTimeout bounds status/stop/list calls.
	RequestTimeout time.Duration `mapstructure:"request_timeout"`

	// HealthTimeout bounds the health probe.
	HealthTimeout time.Duration `mapstructure:"health_timeout"`
}

// LLMConfig holds the completion provider configuration.
type LLMConfig struct {
	// APIKey is the provider credential. Absence degrades the gateway
	// (/health reports missing_api_key) but does not prevent startup.
	// Set via MEOW_LLM_API_KEY.
	APIKey string `mapstructure:"api_key"`

	// Model is the completion model name.
	Model string `mapstructure:"model"`

	// BaseURL optionally points at an OpenAI-compatible provider.
	BaseURL string `mapstructure:"base_url"`

	// Temperature is the sampling temperature. Kept low so completions
	// stay close to the schema.
	Temperature float32 `mapstructure:"temperature"`

	// MaxTokens bounds the completion length.
	MaxTokens int `mapstructure:"max_tokens"`

	// Timeout bounds the completion call.
	Timeout time.Duration `mapstructure:"timeout"`
}

// SessionsConfig holds review-session storage configuration.
type SessionsConfig struct {
	// Backend selects the store implementation: "memory" or "sqlite".
	Backend string `mapstructure:"backend"`

	// DSN is the SQLite database path (sqlite backend only).
	DSN string `mapstructure:"dsn"`

	// TTL is how long an unconfirmed session is kept. 0 keeps sessions
	// until confirmed.
	TTL time.Duration `mapstructure:"ttl"`

	// SweepInterval is the time between expiry sweeps.
	SweepInterval time.Duration `mapstructure:"sweep_interval"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// =============================================================================
// Config Loading
// =============================================================================

// LoadConfig loads configuration from file and environment.
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()

	// Set defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8000)
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "120s") // translation + forward both happen in-request
	v.SetDefault("server.shutdown_timeout", "30s")
	v.SetDefault("orchestrator.url", "http://localhost:8080")
	v.SetDefault("orchestrator.spawn_timeout", "30s")
	v.SetDefault("orchestrator.request_timeout", "10s")
	v.SetDefault("orchestrator.health_timeout", "5s")
	v.SetDefault("llm.api_key", "")
	v.SetDefault("llm.model", "gpt-4")
	v.SetDefault("llm.base_url", "")
	v.SetDefault("llm.temperature", 0.3)
	v.SetDefault("llm.max_tokens", 2000)
	v.SetDefault("llm.timeout", "60s")
	v.SetDefault("sessions.backend", "memory")
	v.SetDefault("sessions.dsn", "./data/meow.db")
	v.SetDefault("sessions.ttl", "30m")
	v.SetDefault("sessions.sweep_interval", "5m")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Load from file if provided
	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			// Only return error if file was explicitly specified and is invalid
			if _, ok := err.(viper.ConfigParseError); ok {
				return nil, fmt.Errorf("failed to parse config file: %w", err)
			}
			// File not found is OK, we'll use defaults
		}
	}

	// Enable environment variable overrides
	v.SetEnvPrefix("MEOW")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Unmarshal config
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// =============================================================================
// Logger Setup
// =============================================================================

// SetupLogger creates a logger with the configured level and format.
func SetupLogger(cfg *Config) *slog.Logger {
	var level slog.Level
	switch strings.ToLower(cfg.Log.Level) {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn", "warning":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	var handler slog.Handler
	if strings.ToLower(cfg.Log.Format) == "text" {
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}
