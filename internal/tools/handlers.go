package tools

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"go.opentelemetry.io/otel/trace"

	chartotel "github.com/chartscope/chartscope/internal/otel"
	"github.com/chartscope/chartscope/internal/service"
	"github.com/chartscope/chartscope/internal/telemetry"
	cherr "github.com/chartscope/chartscope/pkg/errors"
	"github.com/chartscope/chartscope/pkg/logger"
)

// Invocation outcome labels recorded on the tool metrics.
const (
	outcomeSuccess = "success"
	outcomeError   = "error"
)

// Handlers binds the chart service to the MCP tool handlers. Metrics and
// tracer are optional; nil values degrade to no-ops.
type Handlers struct {
	svc     service.ChartService
	metrics *telemetry.ToolMetrics
	tracer  trace.Tracer
}

// NewHandlers creates the tool handlers around a chart service.
func NewHandlers(svc service.ChartService, opts ...Option) (*Handlers, error) {
	if svc == nil {
		return nil, cherr.New(cherr.ErrCodeInternal, "chart service is required")
	}

	h := &Handlers{svc: svc}
	for _, opt := range opts {
		opt(h)
	}
	return h, nil
}

// GetChartReadme handles the get_chart_readme tool call.
func (h *Handlers) GetChartReadme(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	start := time.Now()
	requestID := uuid.NewString()

	repository := req.GetString("repository", "")
	name := req.GetString("name", "")
	version := req.GetString("version", "")

	ctx, span := chartotel.StartSpan(ctx, h.tracer, "tools.GetChartReadme",
		trace.WithSpanKind(trace.SpanKindServer),
		trace.WithAttributes(
			chartotel.AttrChartRepository.String(repository),
			chartotel.AttrChartName.String(name),
			chartotel.AttrChartVersion.String(version),
		),
	)
	defer span.End()

	logger.Debug("Tool invocation",
		"tool", service.OpGetChartReadme, "request_id", requestID,
		"repository", repository, "name", name, "version", version)

	readme, err := h.svc.GetChartReadme(ctx, repository, name, version)
	if err != nil {
		return h.failure(ctx, span, service.OpGetChartReadme, requestID, start, err)
	}

	span.SetAttributes(
		chartotel.AttrChartFound.Bool(readme.Found),
		chartotel.AttrReadmeSource.String(readme.Source),
	)
	return h.success(ctx, span, service.OpGetChartReadme, requestID, start, readme)
}

// GetChartInfo handles the get_chart_info tool call.
func (h *Handlers) GetChartInfo(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	start := time.Now()
	requestID := uuid.NewString()

	repository := req.GetString("repository", "")
	name := req.GetString("name", "")
	version := req.GetString("version", "")

	ctx, span := chartotel.StartSpan(ctx, h.tracer, "tools.GetChartInfo",
		trace.WithSpanKind(trace.SpanKindServer),
		trace.WithAttributes(
			chartotel.AttrChartRepository.String(repository),
			chartotel.AttrChartName.String(name),
			chartotel.AttrChartVersion.String(version),
		),
	)
	defer span.End()

	logger.Debug("Tool invocation",
		"tool", service.OpGetChartInfo, "request_id", requestID,
		"repository", repository, "name", name, "version", version)

	info, err := h.svc.GetChartInfo(ctx, repository, name, version)
	if err != nil {
		return h.failure(ctx, span, service.OpGetChartInfo, requestID, start, err)
	}

	span.SetAttributes(chartotel.AttrChartFound.Bool(info.Found))
	return h.success(ctx, span, service.OpGetChartInfo, requestID, start, info)
}

// SearchCharts handles the search_charts tool call.
func (h *Handlers) SearchCharts(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	start := time.Now()
	requestID := uuid.NewString()

	query := req.GetString("query", "")
	limit := req.GetInt("limit", 0)
	offset := req.GetInt("offset", 0)

	ctx, span := chartotel.StartSpan(ctx, h.tracer, "tools.SearchCharts",
		trace.WithSpanKind(trace.SpanKindServer),
		trace.WithAttributes(
			chartotel.AttrSearchQuery.String(query),
			chartotel.AttrSearchLimit.Int(limit),
			chartotel.AttrSearchOffset.Int(offset),
		),
	)
	defer span.End()

	logger.Debug("Tool invocation",
		"tool", service.OpSearchCharts, "request_id", requestID,
		"query", query, "limit", limit, "offset", offset)

	results, err := h.svc.SearchCharts(ctx, query, limit, offset)
	if err != nil {
		return h.failure(ctx, span, service.OpSearchCharts, requestID, start, err)
	}

	span.SetAttributes(chartotel.AttrResultCount.Int(len(results.Results)))
	return h.success(ctx, span, service.OpSearchCharts, requestID, start, results)
}

// success serializes the payload as the tool result. A marshal failure of
// our own response types is unexpected and reported as an invocation error.
func (h *Handlers) success(
	ctx context.Context,
	span trace.Span,
	tool, requestID string,
	start time.Time,
	payload any,
) (*mcp.CallToolResult, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return h.failure(ctx, span, tool, requestID, start, cherr.Wrap(cherr.ErrCodeInternal, err, "failed to encode result"))
	}

	duration := time.Since(start)
	h.metrics.RecordInvocation(ctx, tool, outcomeSuccess, duration)
	logger.Debug("Tool invocation completed",
		"tool", tool, "request_id", requestID, "duration", duration)
	return mcp.NewToolResultText(string(data)), nil
}

// failure maps a service error to a tool error result. Invalid arguments
// get a distinct prefix so clients can tell a caller mistake from an
// upstream failure; the transport-level error stays nil either way so the
// protocol session survives.
func (h *Handlers) failure(
	ctx context.Context,
	span trace.Span,
	tool, requestID string,
	start time.Time,
	err error,
) (*mcp.CallToolResult, error) {
	chartotel.RecordError(span, err)
	h.metrics.RecordInvocation(ctx, tool, outcomeError, time.Since(start))
	logger.Warn("Tool invocation failed",
		"tool", tool, "request_id", requestID, "code", cherr.GetCode(err), "error", err)

	switch cherr.GetCode(err) {
	case cherr.ErrCodeInvalidInput, cherr.ErrCodeInvalidVersion:
		return invalidParamsResult(err), nil
	default:
		return mcp.NewToolResultError(cherr.UserMessage(err)), nil
	}
}
