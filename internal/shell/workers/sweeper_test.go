package workers

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artpar/meow/internal/core/deploy"
	"github.com/artpar/meow/internal/shell/store"
)

func newSessionAt(id string, createdAt time.Time) *store.Session {
	return &store.Session{
		ID:     id,
		Prompt: "deploy nginx",
		Config: deploy.Document{
			Version:    "1.0",
			Containers: map[string]deploy.ContainerSpec{"nginx": {Image: "nginx:latest"}},
		},
		CreatedAt: createdAt,
	}
}

func TestSweeper_RemovesExpiredSessions(t *testing.T) {
	s := store.NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, s.Create(ctx, newSessionAt("old", time.Now().Add(-time.Hour))))
	require.NoError(t, s.Create(ctx, newSessionAt("fresh", time.Now())))

	sweeper := NewSweeper(s, SweeperConfig{
		TTL:      30 * time.Minute,
		Interval: 10 * time.Millisecond,
	}, nil)
	sweeper.Start()
	defer sweeper.Stop()

	assert.Eventually(t, func() bool {
		n, err := s.Len(ctx)
		return err == nil && n == 1
	}, time.Second, 10*time.Millisecond)

	_, err := s.Get(ctx, "fresh")
	assert.NoError(t, err)
}

func TestSweeper_ZeroTTLDisablesSweeping(t *testing.T) {
	s := store.NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, s.Create(ctx, newSessionAt("ancient", time.Now().Add(-24*time.Hour))))

	sweeper := NewSweeper(s, SweeperConfig{TTL: 0, Interval: 5 * time.Millisecond}, nil)
	sweeper.Start()
	time.Sleep(50 * time.Millisecond)
	sweeper.Stop()

	n, err := s.Len(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestSweeper_StopIsIdempotentWithoutStart(t *testing.T) {
	sweeper := NewSweeper(store.NewMemoryStore(), DefaultSweeperConfig(), nil)
	// Never started; Stop must not panic.
	sweeper.Stop()
}
