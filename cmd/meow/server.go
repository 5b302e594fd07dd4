package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/artpar/meow/internal/shell/api"
	"github.com/artpar/meow/internal/shell/llm"
	"github.com/artpar/meow/internal/shell/orchestrator"
	"github.com/artpar/meow/internal/shell/store"
	"github.com/artpar/meow/internal/shell/workers"
)

// =============================================================================
// Exit Codes
// =============================================================================

const (
	ExitSuccess         = 0
	ExitConfigError     = 1
	ExitStoreError      = 2
	ExitHTTPServerError = 3
)

// =============================================================================
// Server
// =============================================================================

// Server represents the Meow gateway process.
type Server struct {
	config     *Config
	httpServer *http.Server
	store      store.Store
	sweeper    *workers.Sweeper
	logger     *slog.Logger
}

// NewServer creates a new server with the given config.
func NewServer(cfg *Config, logger *slog.Logger) (*Server, error) {
	// Create session store
	sessionStore, err := newSessionStore(cfg)
	if err != nil {
		return nil, &ServerError{
			Op:       "NewServer",
			Err:      err,
			ExitCode: ExitStoreError,
		}
	}

	// Create LLM completer and translator
	completer := llm.NewOpenAIClient(llm.Config{
		APIKey:      cfg.LLM.APIKey,
		Model:       cfg.LLM.Model,
		BaseURL:     cfg.LLM.BaseURL,
		Temperature: cfg.LLM.Temperature,
		MaxTokens:   cfg.LLM.MaxTokens,
		Timeout:     cfg.LLM.Timeout,
	})
	if !completer.Configured() {
		logger.Warn("llm api key not set, /parse will fail until MEOW_LLM_API_KEY is configured")
	}
	translator := llm.NewTranslator(completer, logger)

	// Create orchestrator client
	orchClient := orchestrator.NewHTTPClient(orchestrator.Config{
		BaseURL:        cfg.Orchestrator.URL,
		SpawnTimeout:   cfg.Orchestrator.SpawnTimeout,
		RequestTimeout: cfg.Orchestrator.RequestTimeout,
		HealthTimeout:  cfg.Orchestrator.HealthTimeout,
	})

	// Create session sweeper
	sweeper := workers.NewSweeper(sessionStore, workers.SweeperConfig{
		TTL:      cfg.Sessions.TTL,
		Interval: cfg.Sessions.SweepInterval,
	}, logger)

	// Create HTTP handler
	handler := api.NewHandler(translator, sessionStore, orchClient, completer.Configured(), logger)

	httpServer := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      handler.Routes(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	return &Server{
		config:     cfg,
		httpServer: httpServer,
		store:      sessionStore,
		sweeper:    sweeper,
		logger:     logger,
	}, nil
}

// newSessionStore creates the configured session store backend.
func newSessionStore(cfg *Config) (store.Store, error) {
	switch cfg.Sessions.Backend {
	case "", "memory":
		return store.NewMemoryStore(), nil
	case "sqlite":
		return store.NewSQLiteStore(cfg.Sessions.DSN)
	default:
		return nil, fmt.Errorf("unknown sessions backend %q", cfg.Sessions.Backend)
	}
}

// Start starts the server and blocks until shutdown.
func (s *Server) Start(ctx context.Context) error {
	// Setup signal handling
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	// Start session sweeper in background
	s.sweeper.Start()

	// Start HTTP server in goroutine
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting HTTP server",
			"address", s.config.Server.Address(),
			"orchestrator", s.config.Orchestrator.URL,
		)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// Wait for shutdown signal or error
	select {
	case sig := <-sigCh:
		s.logger.Info("received shutdown signal", "signal", sig)
	case err := <-errCh:
		return &ServerError{
			Op:       "Start",
			Err:      err,
			ExitCode: ExitHTTPServerError,
		}
	case <-ctx.Done():
		s.logger.Info("context cancelled")
	}

	return s.Shutdown(context.Background())
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("initiating graceful shutdown")

	shutdownCtx, cancel := context.WithTimeout(ctx, s.config.Server.ShutdownTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		s.logger.Error("HTTP server shutdown error", "error", err)
	}

	s.sweeper.Stop()

	if err := s.store.Close(); err != nil {
		s.logger.Error("session store close error", "error", err)
	}

	s.logger.Info("shutdown complete")
	return nil
}

// =============================================================================
// Server Error
// =============================================================================

// ServerError represents an error during server operation.
type ServerError struct {
	Op       string
	Err      error
	ExitCode int
}

func (e *ServerError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *ServerError) Unwrap() error {
	return e.Err
}
