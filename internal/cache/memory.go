package cache

import (
	"context"
	"math/rand/v2"
	"sort"
	"sync"
	"time"

	"github.com/chartscope/chartscope/pkg/logger"
)

const (
	// entrySizeEstimate is the fixed per-entry byte cost used for the size
	// bound. The bound is a coarse guard against unbounded growth, not
	// memory accounting; README payloads dominate, so the estimate is
	// deliberately generous.
	entrySizeEstimate = 64 * 1024

	// evictDivisor controls how much of the cache one eviction removes:
	// the oldest len/evictDivisor entries by insertion time.
	evictDivisor = 10

	defaultSweepInterval = 5 * time.Minute
	maxSweepJitter       = 30 * time.Second
)

var _ Store = (*MemoryStore)(nil)

type memoryEntry struct {
	data       []byte
	insertedAt time.Time
	expiresAt  time.Time
}

// MemoryStore is the in-process cache backend. Reads purge expired entries
// lazily; a background sweeper started via Start purges the rest on a
// jittered interval. When the estimated size exceeds the configured bound,
// the oldest tenth of the entries is evicted.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]*memoryEntry

	ttl           time.Duration
	maxBytes      int64
	sweepInterval time.Duration

	now func() time.Time

	cancelFunc context.CancelFunc
	done       chan struct{}
}

// MemoryOption configures a MemoryStore.
type MemoryOption func(*MemoryStore)

// WithTTL sets the default entry TTL.
func WithTTL(ttl time.Duration) MemoryOption {
	return func(m *MemoryStore) {
		if ttl > 0 {
			m.ttl = ttl
		}
	}
}

// WithMaxBytes sets the estimated size bound.
func WithMaxBytes(maxBytes int64) MemoryOption {
	return func(m *MemoryStore) {
		if maxBytes > 0 {
			m.maxBytes = maxBytes
		}
	}
}

// WithSweepInterval sets the base interval between background sweeps.
func WithSweepInterval(interval time.Duration) MemoryOption {
	return func(m *MemoryStore) {
		if interval > 0 {
			m.sweepInterval = interval
		}
	}
}

// NewMemoryStore creates an in-memory cache with the given options.
func NewMemoryStore(opts ...MemoryOption) *MemoryStore {
	m := &MemoryStore{
		entries:       make(map[string]*memoryEntry),
		ttl:           DefaultTTL,
		maxBytes:      DefaultMaxBytes,
		sweepInterval: defaultSweepInterval,
		now:           time.Now,
		done:          make(chan struct{}),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Get returns the entry for key. An expired entry is deleted and reported
// as a miss: an entry is never returned once now exceeds insertedAt+ttl.
func (m *MemoryStore) Get(_ context.Context, key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[key]
	if !ok {
		return nil, false
	}
	if m.now().After(e.expiresAt) {
		delete(m.entries, key)
		return nil, false
	}
	return e.data, true
}

// Set stores value with the default TTL.
func (m *MemoryStore) Set(ctx context.Context, key string, value []byte) {
	m.SetTTL(ctx, key, value, m.ttl)
}

// SetTTL stores value with an explicit TTL, then enforces the size bound.
func (m *MemoryStore) SetTTL(_ context.Context, key string, value []byte, ttl time.Duration) {
	if ttl <= 0 {
		ttl = m.ttl
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	m.entries[key] = &memoryEntry{
		data:       value,
		insertedAt: now,
		expiresAt:  now.Add(ttl),
	}
	m.evictOversizeLocked()
}

// Has reports whether key is present and unexpired, purging it when stale.
func (m *MemoryStore) Has(_ context.Context, key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[key]
	if !ok {
		return false
	}
	if m.now().After(e.expiresAt) {
		delete(m.entries, key)
		return false
	}
	return true
}

// Delete removes key.
func (m *MemoryStore) Delete(_ context.Context, key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, key)
}

// Clear removes all entries.
func (m *MemoryStore) Clear(_ context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = make(map[string]*memoryEntry)
}

// Len returns the entry count, including entries awaiting sweep.
func (m *MemoryStore) Len(_ context.Context) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

// Start runs the background sweeper until the context is cancelled or Stop
// is called. It blocks, so callers run it in a goroutine or errgroup.
func (m *MemoryStore) Start(ctx context.Context) error {
	sweepCtx, cancel := context.WithCancel(ctx)
	m.mu.Lock()
	m.cancelFunc = cancel
	m.mu.Unlock()
	defer close(m.done)

	interval := m.jitteredInterval()
	logger.Debugf("Cache sweeper starting, interval %s", interval)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if removed := m.sweep(); removed > 0 {
				logger.Debugf("Cache sweep removed %d expired entries", removed)
			}
			ticker.Reset(m.jitteredInterval())
		case <-sweepCtx.Done():
			logger.Debugf("Cache sweeper stopping")
			return nil
		}
	}
}

// Stop cancels the sweeper and waits for it to finish. Safe to call when
// Start was never invoked.
func (m *MemoryStore) Stop() error {
	m.mu.Lock()
	cancel := m.cancelFunc
	m.mu.Unlock()

	if cancel != nil {
		cancel()
		<-m.done
	}
	return nil
}

// jitteredInterval spreads sweeps so co-located instances do not wake
// together. The jitter is capped at a tenth of the interval.
func (m *MemoryStore) jitteredInterval() time.Duration {
	jitter := m.sweepInterval / 10
	if jitter > maxSweepJitter {
		jitter = maxSweepJitter
	}
	if jitter <= 0 {
		return m.sweepInterval
	}
	//nolint:gosec // G404: non-cryptographic randomness is sufficient for sweep jitter
	offset := time.Duration(rand.Int64N(int64(2*jitter))) - jitter
	return m.sweepInterval + offset
}

// sweep deletes every expired entry and returns how many were removed.
func (m *MemoryStore) sweep() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	removed := 0
	for key, e := range m.entries {
		if now.After(e.expiresAt) {
			delete(m.entries, key)
			removed++
		}
	}
	return removed
}

// evictOversizeLocked enforces the coarse size bound: when entry count ×
// entrySizeEstimate exceeds maxBytes, the oldest tenth of the entries by
// insertion time is evicted. Callers hold mu.
func (m *MemoryStore) evictOversizeLocked() {
	if int64(len(m.entries))*entrySizeEstimate <= m.maxBytes {
		return
	}

	count := len(m.entries) / evictDivisor
	if count < 1 {
		count = 1
	}

	type aged struct {
		key        string
		insertedAt time.Time
	}
	all := make([]aged, 0, len(m.entries))
	for key, e := range m.entries {
		all = append(all, aged{key: key, insertedAt: e.insertedAt})
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].insertedAt.Before(all[j].insertedAt)
	})

	for _, a := range all[:count] {
		delete(m.entries, a.key)
	}
	logger.Debugf("Cache evicted %d oldest entries to stay under %d bytes", count, m.maxBytes)
}
