package store

import (
	"context"
	"time"

	"github.com/artpar/meow/internal/core/deploy"
)

// =============================================================================
// Session
// =============================================================================

// Session links a generated identifier to a translated, not-yet-deployed
// configuration awaiting human confirmation. The configuration is immutable
// between creation and either confirmation or expiry.
type Session struct {
	ID        string          `json:"id"`
	Prompt    string          `json:"prompt"`
	Config    deploy.Document `json:"config"`
	CreatedAt time.Time       `json:"created_at"`
}

// =============================================================================
// Store Interface
// =============================================================================

// Store defines the persistence interface for pending sessions.
//
// Take removes the session atomically: concurrent confirms for the same id
// see exactly one success, the rest observe ErrNotFound. A failed forward is
// undone by re-Creating the taken session.
type Store interface {
	// Create stores a new session. Returns ErrDuplicateID if the ID is
	// already live.
	Create(ctx context.Context, session *Session) error

	// Take atomically looks up and deletes the session with the given ID.
	// Returns ErrNotFound if absent.
	Take(ctx context.Context, id string) (*Session, error)

	// Get reads a session without consuming it.
	Get(ctx context.Context, id string) (*Session, error)

	// DeleteExpired removes sessions created strictly before the given time
	// and returns how many were removed.
	DeleteExpired(ctx context.Context, before time.Time) (int, error)

	// Len returns the number of live sessions.
	Len(ctx context.Context) (int, error)

	// Close releases any resources held by the store.
	Close() error
}
