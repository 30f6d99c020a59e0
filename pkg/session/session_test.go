package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/storefront/pkg/cache"
)

func TestMemoryStoreDrainsInOrder(t *testing.T) {
	s := NewMemoryStore(time.Minute)
	ctx := context.Background()

	require.NoError(t, s.Add(ctx, "1", Message{Level: Success, Text: "first"}))
	require.NoError(t, s.Add(ctx, "1", Message{Level: Error, Text: "second"}))
	require.NoError(t, s.Add(ctx, "2", Message{Level: Info, Text: "other owner"}))

	msgs, err := s.Drain(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, []Message{{Success, "first"}, {Error, "second"}}, msgs)

	msgs, err = s.Drain(ctx, "1")
	require.NoError(t, err)
	assert.Empty(t, msgs, "drained once")

	msgs, _ = s.Drain(ctx, "2")
	assert.Len(t, msgs, 1)
}

func TestMemoryStoreExpires(t *testing.T) {
	s := NewMemoryStore(time.Minute)
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	require.NoError(t, s.Add(context.Background(), "1", Message{Level: Info, Text: "stale"}))
	now = now.Add(2 * time.Minute)

	msgs, err := s.Drain(context.Background(), "1")
	require.NoError(t, err)
	assert.Empty(t, msgs)
}

func TestNewStoreFallsBackToMemory(t *testing.T) {
	cache.RDB = nil
	_, ok := NewStore(time.Minute).(*MemoryStore)
	assert.True(t, ok)
}
