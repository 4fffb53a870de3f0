package tools

import (
	"context"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	tracenoop "go.opentelemetry.io/otel/trace/noop"
	"go.uber.org/mock/gomock"

	"github.com/chartscope/chartscope/internal/extractor"
	"github.com/chartscope/chartscope/internal/service"
	"github.com/chartscope/chartscope/internal/service/mocks"
	"github.com/chartscope/chartscope/internal/telemetry"
	cherr "github.com/chartscope/chartscope/pkg/errors"
)

func TestNewServer(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	srv, err := NewServer(mocks.NewMockChartService(ctrl))
	require.NoError(t, err)
	assert.NotNil(t, srv)
}

func TestNewServer_NilService(t *testing.T) {
	t.Parallel()

	srv, err := NewServer(nil)
	require.Error(t, err)
	assert.Nil(t, srv)
}

func TestToolSchemas(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		tool     mcp.Tool
		required []string
		optional []string
	}{
		{
			name:     "get_chart_readme",
			tool:     getChartReadmeTool(),
			required: []string{"repository", "name"},
			optional: []string{"version"},
		},
		{
			name:     "get_chart_info",
			tool:     getChartInfoTool(),
			required: []string{"repository", "name"},
			optional: []string{"version"},
		},
		{
			name:     "search_charts",
			tool:     searchChartsTool(),
			required: []string{"query"},
			optional: []string{"limit", "offset"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.name, tt.tool.Name)
			assert.NotEmpty(t, tt.tool.Description)
			assert.ElementsMatch(t, tt.required, tt.tool.InputSchema.Required)

			for _, param := range append(tt.required, tt.optional...) {
				assert.Contains(t, tt.tool.InputSchema.Properties, param)
			}

			require.NotNil(t, tt.tool.Annotations.ReadOnlyHint)
			assert.True(t, *tt.tool.Annotations.ReadOnlyHint)
		})
	}
}

func TestHandlers_RecordsInvocationMetrics(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	reader := metric.NewManualReader()
	provider := metric.NewMeterProvider(metric.WithReader(reader))
	t.Cleanup(func() {
		require.NoError(t, provider.Shutdown(context.Background()))
	})

	toolMetrics, err := telemetry.NewToolMetrics(provider)
	require.NoError(t, err)

	svc := mocks.NewMockChartService(ctrl)
	svc.EXPECT().GetChartReadme(gomock.Any(), "bitnami", "nginx", "").Return(&service.ChartReadme{
		Found:      true,
		Repository: "bitnami",
		Name:       "nginx",
		Version:    "latest",
		Examples:   []extractor.Example{},
	}, nil)
	svc.EXPECT().SearchCharts(gomock.Any(), "nginx", 0, 0).
		Return(nil, cherr.New(cherr.ErrCodeNetwork, "boom"))

	h, err := NewHandlers(svc,
		WithMetrics(toolMetrics),
		WithTracerProvider(tracenoop.NewTracerProvider()),
	)
	require.NoError(t, err)

	ctx := context.Background()
	_, err = h.GetChartReadme(ctx, callRequest(map[string]any{"repository": "bitnami", "name": "nginx"}))
	require.NoError(t, err)
	_, err = h.SearchCharts(ctx, callRequest(map[string]any{"query": "nginx"}))
	require.NoError(t, err)

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(ctx, &rm))

	counts := map[string]int64{}
	for _, scope := range rm.ScopeMetrics {
		for _, m := range scope.Metrics {
			if m.Name != "chartscope_tool_invocations_total" {
				continue
			}
			sum, ok := m.Data.(metricdata.Sum[int64])
			require.True(t, ok)
			for _, dp := range sum.DataPoints {
				tool, _ := dp.Attributes.Value("tool")
				outcome, _ := dp.Attributes.Value("outcome")
				counts[tool.AsString()+"/"+outcome.AsString()] += dp.Value
			}
		}
	}

	assert.Equal(t, int64(1), counts[service.OpGetChartReadme+"/success"])
	assert.Equal(t, int64(1), counts[service.OpSearchCharts+"/error"])
}
