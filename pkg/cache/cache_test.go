package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/shashiranjanraj/storefront/pkg/cache"
)

func TestHelpersDegradeWithoutRedis(t *testing.T) {
	cache.RDB = nil
	ctx := context.Background()

	assert.False(t, cache.Available())
	assert.NoError(t, cache.Set(ctx, "k", map[string]int{"a": 1}, time.Minute))

	var got map[string]int
	assert.False(t, cache.Get(ctx, "k", &got))
	assert.NoError(t, cache.Del(ctx, "k"))
	assert.NoError(t, cache.Close())
}

func TestConnectFailsFast(t *testing.T) {
	t.Setenv("REDIS_ADDR", "127.0.0.1:1")
	err := cache.Connect(context.Background())
	assert.Error(t, err)
	assert.False(t, cache.Available())
}
