package cache

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

// unreachableClient returns a client pointed at a port nothing listens on,
// with a short dial timeout so degraded-mode paths fail fast.
func unreachableClient() *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
}

func TestRedisStoreKeyPrefix(t *testing.T) {
	t.Parallel()

	r := NewRedisStore(unreachableClient())
	assert.Equal(t, "chartscope:info:bitnami/nginx:latest", r.key("info:bitnami/nginx:latest"))

	custom := NewRedisStore(unreachableClient(), WithKeyPrefix("test:"))
	assert.Equal(t, "test:search:nginx:20:0", custom.key("search:nginx:20:0"))
}

func TestRedisStoreDegradesToMiss(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	r := NewRedisStore(unreachableClient(), WithRedisTTL(time.Minute))

	// Every operation against an unreachable backend behaves like an empty
	// cache instead of propagating errors.
	r.Set(ctx, "k", []byte("v"))
	_, ok := r.Get(ctx, "k")
	assert.False(t, ok)
	assert.False(t, r.Has(ctx, "k"))
	assert.Equal(t, 0, r.Len(ctx))
	r.Delete(ctx, "k")
	r.Clear(ctx)
}
