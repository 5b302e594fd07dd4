// Package workers contains background workers for the gateway.
package workers

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/artpar/meow/internal/shell/store"
)

// SweeperConfig configures the session sweeper worker.
type SweeperConfig struct {
	// TTL is how long an unconfirmed session is kept. 0 disables sweeping
	// and sessions accumulate until confirmed.
	TTL time.Duration

	// Interval is the time between sweep cycles.
	// Default: 5 minutes.
	Interval time.Duration
}

// DefaultSweeperConfig returns the default configuration.
func DefaultSweeperConfig() SweeperConfig {
	return SweeperConfig{
		TTL:      30 * time.Minute,
		Interval: 5 * time.Minute,
	}
}

// Sweeper periodically removes review sessions that were never confirmed.
// Without it the session store grows without bound.
type Sweeper struct {
	store  store.Store
	config SweeperConfig
	logger *slog.Logger

	// Lifecycle management
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewSweeper creates a new session sweeper worker.
func NewSweeper(s store.Store, config SweeperConfig, logger *slog.Logger) *Sweeper {
	if config.Interval == 0 {
		config.Interval = 5 * time.Minute
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Sweeper{
		store:  s,
		config: config,
		logger: logger.With("component", "session_sweeper"),
	}
}

// Start begins the sweeper background goroutine. A zero TTL makes Start a
// no-op.
func (s *Sweeper) Start() {
	if s.config.TTL == 0 {
		s.logger.Info("session sweeping disabled, sessions are kept until confirmed")
		return
	}

	s.ctx, s.cancel = context.WithCancel(context.Background())

	s.wg.Add(1)
	go s.run()

	s.logger.Info("session sweeper started",
		"ttl", s.config.TTL,
		"interval", s.config.Interval,
	)
}

// Stop gracefully stops the sweeper. It waits for an in-progress sweep to
// complete.
func (s *Sweeper) Stop() {
	if s.cancel != nil {
		s.cancel()
	}
	s.wg.Wait()
}

// run is the main loop that sweeps expired sessions periodically.
func (s *Sweeper) run() {
	defer s.wg.Done()

	ticker := time.NewTicker(s.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.ctx.Done():
			return
		case <-ticker.C:
			s.sweep()
		}
	}
}

// sweep removes sessions older than the TTL.
func (s *Sweeper) sweep() {
	cutoff := time.Now().Add(-s.config.TTL)

	removed, err := s.store.DeleteExpired(s.ctx, cutoff)
	if err != nil {
		s.logger.Error("sweep failed", "error", err)
		return
	}
	if removed > 0 {
		s.logger.Info("expired sessions removed", "count", removed)
	}
}
