// Package tools exposes the chart lookup operations as MCP tools.
//
// The server speaks the Model Context Protocol over stdio: a tool-calling
// client spawns the process, sends JSON-RPC requests on stdin and reads
// responses from stdout. Logs therefore always go to stderr. Three tools
// are registered, one per service operation, all read-only.
package tools

import (
	"context"
	"log"
	"os"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.opentelemetry.io/otel/trace"

	"github.com/chartscope/chartscope/internal/service"
	"github.com/chartscope/chartscope/internal/telemetry"
	cherr "github.com/chartscope/chartscope/pkg/errors"
	"github.com/chartscope/chartscope/pkg/versions"
)

// TracerName is the instrumentation scope for tool handler spans.
const TracerName = "github.com/chartscope/chartscope/tools"

const serverName = "chartscope"

const serverInstructions = "ChartScope answers questions about Helm charts from a " +
	"package registry. Use search_charts to find charts by keyword, " +
	"get_chart_info for metadata about a specific chart, and " +
	"get_chart_readme for its documentation with extracted usage examples. " +
	"Lookups for charts that do not exist return found=false rather than an error."

// Server wraps the MCP server with the registered chart tools.
type Server struct {
	mcpServer *server.MCPServer
}

// Option configures the tool handlers.
type Option func(*Handlers)

// WithMetrics wires tool invocation metrics. A nil recorder disables them.
func WithMetrics(metrics *telemetry.ToolMetrics) Option {
	return func(h *Handlers) {
		h.metrics = metrics
	}
}

// WithTracerProvider enables tracing of tool invocations.
func WithTracerProvider(provider trace.TracerProvider) Option {
	return func(h *Handlers) {
		if provider != nil {
			h.tracer = provider.Tracer(TracerName)
		}
	}
}

// NewServer creates the MCP server and registers the three chart tools.
func NewServer(svc service.ChartService, opts ...Option) (*Server, error) {
	handlers, err := NewHandlers(svc, opts...)
	if err != nil {
		return nil, err
	}

	mcpServer := server.NewMCPServer(
		serverName,
		versions.GetVersionInfo().Version,
		server.WithToolCapabilities(false),
		server.WithRecovery(),
		server.WithInstructions(serverInstructions),
	)

	mcpServer.AddTool(getChartReadmeTool(), handlers.GetChartReadme)
	mcpServer.AddTool(getChartInfoTool(), handlers.GetChartInfo)
	mcpServer.AddTool(searchChartsTool(), handlers.SearchCharts)

	return &Server{mcpServer: mcpServer}, nil
}

// ServeStdio serves the MCP protocol on stdin/stdout until ctx is
// cancelled or the client closes the stream.
func (s *Server) ServeStdio(ctx context.Context) error {
	stdio := server.NewStdioServer(s.mcpServer)
	// Transport-level errors cannot go through stdout, it carries the
	// protocol stream.
	stdio.SetErrorLogger(log.New(os.Stderr, "mcp: ", log.LstdFlags))
	return stdio.Listen(ctx, os.Stdin, os.Stdout)
}

func getChartReadmeTool() mcp.Tool {
	return mcp.NewTool(service.OpGetChartReadme,
		mcp.WithDescription("Fetch a Helm chart's README together with usage examples "+
			"extracted from it. A chart that cannot be found yields found=false, not an error."),
		mcp.WithString("repository",
			mcp.Required(),
			mcp.Description("Registry repository the chart belongs to, for example \"bitnami\"."),
		),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Chart name, for example \"nginx\"."),
		),
		mcp.WithString("version",
			mcp.Description("Chart version. Omit or pass \"latest\" for the newest release."),
		),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithOpenWorldHintAnnotation(true),
	)
}

func getChartInfoTool() mcp.Tool {
	return mcp.NewTool(service.OpGetChartInfo,
		mcp.WithDescription("Fetch assembled metadata for a Helm chart: description, "+
			"versions, maintainers, links, dependencies, an install command and estimated "+
			"download counts. A chart that cannot be found yields found=false, not an error."),
		mcp.WithString("repository",
			mcp.Required(),
			mcp.Description("Registry repository the chart belongs to, for example \"bitnami\"."),
		),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Chart name, for example \"nginx\"."),
		),
		mcp.WithString("version",
			mcp.Description("Chart version. Omit or pass \"latest\" for the newest release."),
		),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithOpenWorldHintAnnotation(true),
	)
}

func searchChartsTool() mcp.Tool {
	return mcp.NewTool(service.OpSearchCharts,
		mcp.WithDescription("Search the registry for Helm charts matching a free-text "+
			"query. Returns a page of matches; an empty list is a normal result."),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("Free-text search terms, for example \"postgres operator\"."),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum results to return, 1-100. Defaults to 20."),
			mcp.Min(1),
			mcp.Max(100),
		),
		mcp.WithNumber("offset",
			mcp.Description("Number of results to skip, for paging. Defaults to 0."),
			mcp.Min(0),
		),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithOpenWorldHintAnnotation(true),
	)
}

// invalidParamsResult builds the tool error returned for rejected
// arguments, keeping the wording consistent across handlers.
func invalidParamsResult(err error) *mcp.CallToolResult {
	return mcp.NewToolResultError("invalid parameters: " + cherr.UserMessage(err))
}
