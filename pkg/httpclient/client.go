// Package httpclient provides HTTP client functionality for upstream API operations
package httpclient

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"strconv"
	"time"

	cherr "github.com/chartscope/chartscope/pkg/errors"
)

const (
	// DefaultTimeout is the default timeout for HTTP requests
	DefaultTimeout = 10 * time.Second

	// MaxResponseSize is the maximum allowed response size (100MB)
	MaxResponseSize = 100 * 1024 * 1024

	// UserAgent is the user agent string for HTTP requests
	UserAgent = "chartscope/1.0"
)

// Client is an interface for HTTP operations
type Client interface {
	// Get performs an HTTP GET request and returns the response body.
	// Request-specific headers override client defaults for the same key.
	Get(ctx context.Context, url string, headers map[string]string) ([]byte, error)
}

// DefaultClient is the default HTTP client implementation
type DefaultClient struct {
	client  *http.Client
	headers map[string]string
}

// NewDefaultClient creates a new default HTTP client with the specified timeout
// and default headers applied to every request. If timeout is 0, uses
// DefaultTimeout. Pass nil for headers if no defaults are needed.
func NewDefaultClient(timeout time.Duration, headers map[string]string) Client {
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	return &DefaultClient{
		client: &http.Client{
			Timeout: timeout,
		},
		headers: headers,
	}
}

// Get performs an HTTP GET request
func (c *DefaultClient) Get(ctx context.Context, url string, headers map[string]string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, cherr.Wrap(cherr.ErrCodeInternal, err, "failed to create request for %s", url)
	}

	req.Header.Set("User-Agent", UserAgent)
	req.Header.Set("Accept", "application/json")
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, classifyTransportError(err, url)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, classifyStatus(resp, url)
	}

	// Check Content-Length header if available
	if resp.ContentLength > MaxResponseSize {
		return nil, cherr.New(cherr.ErrCodeInternal,
			"response size %d bytes exceeds maximum allowed size of %d bytes", resp.ContentLength, MaxResponseSize)
	}

	// Read response body with size limit.
	// Use LimitReader to prevent reading more than MaxResponseSize.
	limitedReader := io.LimitReader(resp.Body, MaxResponseSize+1) // +1 to detect if limit exceeded
	body, err := io.ReadAll(limitedReader)
	if err != nil {
		return nil, cherr.Wrap(cherr.ErrCodeNetwork, err, "failed to read response body from %s", url)
	}

	if int64(len(body)) > MaxResponseSize {
		return nil, cherr.New(cherr.ErrCodeInternal,
			"response size exceeds maximum allowed size of %d bytes", MaxResponseSize)
	}

	return body, nil
}

// classifyTransportError maps request execution failures onto the error
// taxonomy. Timeouts are distinguished from other network failures so the
// retry layer and callers can report them separately.
func classifyTransportError(err error, url string) error {
	var netErr net.Error
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return cherr.Wrap(cherr.ErrCodeTimeout, err, "request to %s timed out", url)
	case errors.As(err, &netErr) && netErr.Timeout():
		return cherr.Wrap(cherr.ErrCodeTimeout, err, "request to %s timed out", url)
	case errors.Is(err, context.Canceled):
		return cherr.Wrap(cherr.ErrCodeNetwork, err, "request to %s canceled", url)
	default:
		return cherr.Wrap(cherr.ErrCodeNetwork, err, "request to %s failed", url)
	}
}

// classifyStatus maps non-200 responses onto the error taxonomy:
// 404 is not-found and never retried, 429 carries the Retry-After hint,
// 408 and 5xx are transient, everything else folds into the network family.
func classifyStatus(resp *http.Response, url string) error {
	code := resp.StatusCode
	switch {
	case code == http.StatusNotFound:
		return cherr.New(cherr.ErrCodeNotFound, "resource not found: %s", url)
	case code == http.StatusTooManyRequests:
		return cherr.Wrap(cherr.ErrCodeRateLimited,
			&cherr.RateLimitedError{RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After"))},
			"rate limited by %s", url)
	case code == http.StatusRequestTimeout:
		return cherr.New(cherr.ErrCodeTimeout, "HTTP %d for %s", code, url)
	case code >= 500:
		return cherr.New(cherr.ErrCodeNetwork, "HTTP %d for %s", code, url)
	default:
		return cherr.New(cherr.ErrCodeNetwork, "unexpected HTTP %d for %s", code, url)
	}
}

// parseRetryAfter reads a Retry-After header value in delta-seconds form.
// HTTP-date form and malformed values yield 0 (no hint).
func parseRetryAfter(value string) int {
	if value == "" {
		return 0
	}
	seconds, err := strconv.Atoi(value)
	if err != nil || seconds < 0 {
		return 0
	}
	return seconds
}
