package httpclient

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v5"

	cherr "github.com/chartscope/chartscope/pkg/errors"
)

const (
	// DefaultMaxAttempts is the total attempt budget for a retried request.
	DefaultMaxAttempts = 3

	defaultInitialBackoff = 400 * time.Millisecond
)

type retryConfig struct {
	maxAttempts    uint
	initialBackoff time.Duration
}

// RetryOption adjusts retry behavior for a single call.
type RetryOption func(*retryConfig)

// WithMaxAttempts overrides the total attempt budget.
func WithMaxAttempts(n uint) RetryOption {
	return func(c *retryConfig) {
		if n > 0 {
			c.maxAttempts = n
		}
	}
}

// WithInitialBackoff overrides the first retry delay. Mostly for tests.
func WithInitialBackoff(d time.Duration) RetryOption {
	return func(c *retryConfig) {
		if d > 0 {
			c.initialBackoff = d
		}
	}
}

// GetWithRetry performs a GET with bounded retries. Only transient failures
// (network, timeout) are retried, with exponential backoff and jitter.
// Not-found, rate-limited and validation errors surface on the first attempt.
func GetWithRetry(ctx context.Context, client Client, url string, headers map[string]string, opts ...RetryOption) ([]byte, error) {
	cfg := retryConfig{
		maxAttempts:    DefaultMaxAttempts,
		initialBackoff: defaultInitialBackoff,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	operation := func() ([]byte, error) {
		body, err := client.Get(ctx, url, headers)
		if err != nil && !cherr.IsTransient(err) {
			return nil, backoff.Permanent(err)
		}
		return body, err
	}

	expo := backoff.NewExponentialBackOff()
	expo.InitialInterval = cfg.initialBackoff
	expo.Multiplier = 2
	expo.RandomizationFactor = 0.5

	return backoff.Retry(ctx, operation,
		backoff.WithBackOff(expo),
		backoff.WithMaxTries(cfg.maxAttempts),
	)
}
