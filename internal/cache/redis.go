package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/chartscope/chartscope/pkg/logger"
)

// DefaultKeyPrefix namespaces cache keys so a shared Redis can host other
// tenants.
const DefaultKeyPrefix = "chartscope:"

var _ Store = (*RedisStore)(nil)

// RedisStore is the Redis cache backend. TTL enforcement is delegated to
// the server via per-key expirations, so there is no sweeper and no size
// eviction. Backend errors degrade to misses and are logged, never
// surfaced: callers fall through to the upstream fetch.
type RedisStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// RedisOption configures a RedisStore.
type RedisOption func(*RedisStore)

// WithRedisTTL sets the default entry TTL.
func WithRedisTTL(ttl time.Duration) RedisOption {
	return func(r *RedisStore) {
		if ttl > 0 {
			r.ttl = ttl
		}
	}
}

// WithKeyPrefix overrides the key namespace.
func WithKeyPrefix(prefix string) RedisOption {
	return func(r *RedisStore) {
		if prefix != "" {
			r.prefix = prefix
		}
	}
}

// NewRedisStore creates a Redis-backed cache around an existing client.
func NewRedisStore(client *redis.Client, opts ...RedisOption) *RedisStore {
	r := &RedisStore{
		client: client,
		prefix: DefaultKeyPrefix,
		ttl:    DefaultTTL,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *RedisStore) key(key string) string {
	return r.prefix + key
}

// Get returns the entry for key, treating any backend error as a miss.
func (r *RedisStore) Get(ctx context.Context, key string) ([]byte, bool) {
	data, err := r.client.Get(ctx, r.key(key)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			logger.Warnf("Redis get %q failed: %v", key, err)
		}
		return nil, false
	}
	return data, true
}

// Set stores value with the default TTL.
func (r *RedisStore) Set(ctx context.Context, key string, value []byte) {
	r.SetTTL(ctx, key, value, r.ttl)
}

// SetTTL stores value with an explicit TTL.
func (r *RedisStore) SetTTL(ctx context.Context, key string, value []byte, ttl time.Duration) {
	if ttl <= 0 {
		ttl = r.ttl
	}
	if err := r.client.Set(ctx, r.key(key), value, ttl).Err(); err != nil {
		logger.Warnf("Redis set %q failed: %v", key, err)
	}
}

// Has reports whether key exists.
func (r *RedisStore) Has(ctx context.Context, key string) bool {
	n, err := r.client.Exists(ctx, r.key(key)).Result()
	if err != nil {
		logger.Warnf("Redis exists %q failed: %v", key, err)
		return false
	}
	return n > 0
}

// Delete removes key.
func (r *RedisStore) Delete(ctx context.Context, key string) {
	if err := r.client.Del(ctx, r.key(key)).Err(); err != nil {
		logger.Warnf("Redis del %q failed: %v", key, err)
	}
}

// Clear deletes every key under the store's prefix. Uses SCAN rather than
// FLUSHDB so other tenants of a shared database are untouched.
func (r *RedisStore) Clear(ctx context.Context) {
	iter := r.client.Scan(ctx, 0, r.prefix+"*", 100).Iterator()

	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
		if len(keys) >= 100 {
			if err := r.client.Del(ctx, keys...).Err(); err != nil {
				logger.Warnf("Redis clear failed: %v", err)
				return
			}
			keys = keys[:0]
		}
	}
	if err := iter.Err(); err != nil {
		logger.Warnf("Redis clear scan failed: %v", err)
		return
	}
	if len(keys) > 0 {
		if err := r.client.Del(ctx, keys...).Err(); err != nil {
			logger.Warnf("Redis clear failed: %v", err)
		}
	}
}

// Len counts the keys under the store's prefix. It scans, so it is an
// operational convenience rather than a hot-path call.
func (r *RedisStore) Len(ctx context.Context) int {
	iter := r.client.Scan(ctx, 0, r.prefix+"*", 100).Iterator()

	count := 0
	for iter.Next(ctx) {
		count++
	}
	if err := iter.Err(); err != nil {
		logger.Warnf("Redis len scan failed: %v", err)
		return 0
	}
	return count
}
