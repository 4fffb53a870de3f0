package telemetry

import (
	"context"
	"net/url"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/chartscope/chartscope/internal/service"
	"github.com/chartscope/chartscope/pkg/httpclient"
)

// ToolMetricsMeterName is the name used for the tool metrics meter.
const ToolMetricsMeterName = "github.com/chartscope/chartscope/tools"

// ToolMetrics holds the OpenTelemetry instruments for tool invocations,
// cache lookups, and upstream registry traffic.
type ToolMetrics struct {
	invocations      metric.Int64Counter
	duration         metric.Float64Histogram
	cacheLookups     metric.Int64Counter
	upstreamRequests metric.Int64Counter
}

var _ service.Recorder = (*ToolMetrics)(nil)

// NewToolMetrics creates a ToolMetrics instance with the given meter
// provider. If provider is nil, it returns nil (no-op metrics).
func NewToolMetrics(provider metric.MeterProvider) (*ToolMetrics, error) {
	if provider == nil {
		return nil, nil
	}

	meter := provider.Meter(ToolMetricsMeterName)

	invocations, err := meter.Int64Counter(
		"chartscope_tool_invocations_total",
		metric.WithDescription("Total number of tool invocations"),
		metric.WithUnit("{invocation}"),
	)
	if err != nil {
		return nil, err
	}

	duration, err := meter.Float64Histogram(
		"chartscope_tool_duration_seconds",
		metric.WithDescription("Duration of tool invocations in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30),
	)
	if err != nil {
		return nil, err
	}

	cacheLookups, err := meter.Int64Counter(
		"chartscope_cache_lookups_total",
		metric.WithDescription("Cache lookups by operation and result"),
		metric.WithUnit("{lookup}"),
	)
	if err != nil {
		return nil, err
	}

	upstreamRequests, err := meter.Int64Counter(
		"chartscope_upstream_requests_total",
		metric.WithDescription("Upstream HTTP requests by host and outcome"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, err
	}

	return &ToolMetrics{
		invocations:      invocations,
		duration:         duration,
		cacheLookups:     cacheLookups,
		upstreamRequests: upstreamRequests,
	}, nil
}

// RecordInvocation records one tool invocation and its duration.
func (m *ToolMetrics) RecordInvocation(ctx context.Context, tool, outcome string, duration time.Duration) {
	if m == nil {
		return
	}

	attrs := []attribute.KeyValue{
		attribute.String("tool", tool),
		attribute.String("outcome", outcome),
	}

	m.invocations.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.duration.Record(ctx, duration.Seconds(), metric.WithAttributes(attribute.String("tool", tool)))
}

// CacheEvent implements service.Recorder.
func (m *ToolMetrics) CacheEvent(ctx context.Context, operation string, hit bool) {
	if m == nil {
		return
	}

	result := "miss"
	if hit {
		result = "hit"
	}
	m.cacheLookups.Add(ctx, 1, metric.WithAttributes(
		attribute.String("operation", operation),
		attribute.String("result", result),
	))
}

// RecordUpstreamRequest records one upstream HTTP request.
func (m *ToolMetrics) RecordUpstreamRequest(ctx context.Context, host string, success bool) {
	if m == nil {
		return
	}

	m.upstreamRequests.Add(ctx, 1, metric.WithAttributes(
		attribute.String("host", host),
		attribute.Bool("success", success),
	))
}

// InstrumentHTTPClient wraps an upstream HTTP client so every request is
// counted by host and outcome. A nil receiver returns the client
// unchanged.
func (m *ToolMetrics) InstrumentHTTPClient(inner httpclient.Client) httpclient.Client {
	if m == nil {
		return inner
	}
	return &countingClient{inner: inner, metrics: m}
}

type countingClient struct {
	inner   httpclient.Client
	metrics *ToolMetrics
}

func (c *countingClient) Get(ctx context.Context, rawURL string, headers map[string]string) ([]byte, error) {
	data, err := c.inner.Get(ctx, rawURL, headers)
	c.metrics.RecordUpstreamRequest(ctx, hostOf(rawURL), err == nil)
	return data, err
}

// hostOf keeps the host attribute low-cardinality; unparseable URLs all
// map to one bucket.
func hostOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return "unknown"
	}
	return u.Host
}
