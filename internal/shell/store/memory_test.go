package store

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artpar/meow/internal/core/deploy"
)

// =============================================================================
// Test Helpers
// =============================================================================

func testSession(id string) *Session {
	return &Session{
		ID:     id,
		Prompt: "Deploy nginx web server on port 8080",
		Config: deploy.Document{
			Version: "1.0",
			Containers: map[string]deploy.ContainerSpec{
				"nginx": {Image: "nginx:latest", Ports: []string{"8080:80"}},
			},
		},
		CreatedAt: time.Now(),
	}
}

// =============================================================================
// MemoryStore Tests
// =============================================================================

func TestMemoryStore_CreateAndTake(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, s.Create(ctx, testSession("sess-1")))

	got, err := s.Take(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, "sess-1", got.ID)
	assert.Equal(t, "Deploy nginx web server on port 8080", got.Prompt)
	assert.Equal(t, "nginx:latest", got.Config.Containers["nginx"].Image)

	// Read-and-delete exactly once: second take fails.
	_, err = s.Take(ctx, "sess-1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_TakeUnknownID(t *testing.T) {
	s := NewMemoryStore()

	_, err := s.Take(context.Background(), "never-issued")
	require.Error(t, err)
	assert.True(t, IsNotFound(err))

	var storeErr *StoreError
	require.ErrorAs(t, err, &storeErr)
	assert.Equal(t, "Take", storeErr.Op)
	assert.Equal(t, "never-issued", storeErr.ID)
}

func TestMemoryStore_DuplicateID(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, s.Create(ctx, testSession("sess-1")))
	err := s.Create(ctx, testSession("sess-1"))
	assert.ErrorIs(t, err, ErrDuplicateID)
}

func TestMemoryStore_RestoreAfterTake(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, s.Create(ctx, testSession("sess-1")))

	taken, err := s.Take(ctx, "sess-1")
	require.NoError(t, err)

	// Forward failed; put the session back so confirm can be retried.
	require.NoError(t, s.Create(ctx, taken))

	got, err := s.Get(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, taken.Prompt, got.Prompt)
}

func TestMemoryStore_ConcurrentTake_ExactlyOneWins(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	require.NoError(t, s.Create(ctx, testSession("sess-1")))

	const goroutines = 32
	var wg sync.WaitGroup
	var successes int64
	var mu sync.Mutex

	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := s.Take(ctx, "sess-1"); err == nil {
				mu.Lock()
				successes++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(1), successes)
}

func TestMemoryStore_DeleteExpired(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	old := testSession("old")
	old.CreatedAt = time.Now().Add(-time.Hour)
	fresh := testSession("fresh")

	require.NoError(t, s.Create(ctx, old))
	require.NoError(t, s.Create(ctx, fresh))

	removed, err := s.DeleteExpired(ctx, time.Now().Add(-30*time.Minute))
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	_, err = s.Get(ctx, "old")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = s.Get(ctx, "fresh")
	assert.NoError(t, err)
}

func TestMemoryStore_Len(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		require.NoError(t, s.Create(ctx, testSession(fmt.Sprintf("sess-%d", i))))
	}

	n, err := s.Len(ctx)
	require.NoError(t, err)
	assert.Equal(t, 5, n)
}

func TestMemoryStore_TakeReturnsCopy(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	original := testSession("sess-1")
	require.NoError(t, s.Create(ctx, original))

	// Mutating the caller's struct after Create must not affect the store.
	original.Prompt = "mutated"

	got, err := s.Take(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, "Deploy nginx web server on port 8080", got.Prompt)
}
