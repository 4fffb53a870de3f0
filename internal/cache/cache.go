// Package cache provides the TTL cache used to memoize registry lookups.
//
// Two backends satisfy the Store interface: an in-process map with lazy
// expiry, a background sweeper and coarse size-based eviction, and a Redis
// store for multi-instance deployments where TTL enforcement is delegated
// to the server. Values are opaque bytes; GetJSON/SetJSON add the JSON
// codec used by the service layer.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/chartscope/chartscope/pkg/logger"
)

// Defaults applied when the configuration leaves cache settings unset.
const (
	// DefaultTTL is how long an entry stays fresh.
	DefaultTTL = time.Hour

	// DefaultMaxBytes bounds the estimated size of the in-memory backend.
	DefaultMaxBytes = 100 * 1024 * 1024
)

// Store is the cache contract shared by all backends. Operations never
// return errors: a backend failure degrades to a miss (reads) or a dropped
// write, logged by the backend. Absence is the only negative signal.
type Store interface {
	// Get returns the entry for key, or ok=false when absent or expired.
	Get(ctx context.Context, key string) ([]byte, bool)

	// Set stores value under key with the backend's default TTL.
	Set(ctx context.Context, key string, value []byte)

	// SetTTL stores value under key with an explicit TTL.
	SetTTL(ctx context.Context, key string, value []byte, ttl time.Duration)

	// Has reports whether key is present and unexpired.
	Has(ctx context.Context, key string) bool

	// Delete removes key.
	Delete(ctx context.Context, key string)

	// Clear removes all entries owned by this store.
	Clear(ctx context.Context)

	// Len returns the number of stored entries.
	Len(ctx context.Context) int
}

// GetJSON reads key and unmarshals it into T. A missing key, an expired
// entry, or an undecodable value all report ok=false; undecodable entries
// are deleted so they cannot shadow future writes.
func GetJSON[T any](ctx context.Context, s Store, key string) (T, bool) {
	var value T

	data, ok := s.Get(ctx, key)
	if !ok {
		return value, false
	}
	if err := json.Unmarshal(data, &value); err != nil {
		logger.Warnf("Dropping undecodable cache entry %q: %v", key, err)
		s.Delete(ctx, key)
		var zero T
		return zero, false
	}
	return value, true
}

// SetJSON marshals value and stores it under key with the default TTL.
// Unmarshalable values are dropped.
func SetJSON[T any](ctx context.Context, s Store, key string, value T) {
	data, err := json.Marshal(value)
	if err != nil {
		logger.Warnf("Not caching %q: %v", key, err)
		return
	}
	s.Set(ctx, key, data)
}
