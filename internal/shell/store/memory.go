package store

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// MemoryStore
// =============================================================================

// MemoryStore implements Store with an in-process map. This is the default
// backend; sessions do not survive a restart.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string]*Session
}

// NewMemoryStore creates an empty in-memory session store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]*Session),
	}
}

// Create stores a new session.
func (s *MemoryStore) Create(ctx context.Context, session *Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.sessions[session.ID]; exists {
		return NewStoreError("Create", session.ID, "already exists", ErrDuplicateID)
	}

	copied := *session
	s.sessions[session.ID] = &copied
	return nil
}

// Take atomically looks up and deletes a session.
func (s *MemoryStore) Take(ctx context.Context, id string) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[id]
	if !ok {
		return nil, NewStoreError("Take", id, "not found", ErrNotFound)
	}
	delete(s.sessions, id)

	copied := *session
	return &copied, nil
}

// Get reads a session without consuming it.
func (s *MemoryStore) Get(ctx context.Context, id string) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[id]
	if !ok {
		return nil, NewStoreError("Get", id, "not found", ErrNotFound)
	}

	copied := *session
	return &copied, nil
}

// DeleteExpired removes sessions created strictly before the given time.
func (s *MemoryStore) DeleteExpired(ctx context.Context, before time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, session := range s.sessions {
		if session.CreatedAt.Before(before) {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed, nil
}

// Len returns the number of live sessions.
func (s *MemoryStore) Len(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions), nil
}

// Close is a no-op for the in-memory backend.
func (s *MemoryStore) Close() error {
	return nil
}
