package integration

import (
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	chartapp "github.com/chartscope/chartscope/internal/app"
	"github.com/chartscope/chartscope/internal/service"
	"github.com/chartscope/chartscope/internal/tools"
	"github.com/chartscope/chartscope/test-integration/mcp/helpers"
)

// toolRequest builds a tool call with the given arguments.
func toolRequest(args map[string]any) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	return req
}

// resultText extracts the single text payload of a tool result.
func resultText(result *mcp.CallToolResult) string {
	Expect(result).NotTo(BeNil())
	Expect(result.Content).To(HaveLen(1))
	text, ok := result.Content[0].(mcp.TextContent)
	Expect(ok).To(BeTrue(), "expected text content")
	return text.Text
}

var _ = Describe("MCP tool surface", Label("tools"), func() {
	var (
		upstream *helpers.Upstream
		chartApp *chartapp.App
		handlers *tools.Handlers
	)

	BeforeEach(func() {
		upstream = helpers.NewUpstream()
		upstream.AddChart(helpers.NginxChart())
		chartApp = startApp(testConfig(upstream))

		var err error
		handlers, err = tools.NewHandlers(chartApp.Service())
		Expect(err).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		stopApp(chartApp)
		upstream.Close()
	})

	It("serves get_chart_readme as JSON text", func() {
		result, err := handlers.GetChartReadme(ctx, toolRequest(map[string]any{
			"repository": "bitnami",
			"name":       "nginx",
		}))
		Expect(err).NotTo(HaveOccurred())
		Expect(result.IsError).To(BeFalse())

		var readme service.ChartReadme
		Expect(json.Unmarshal([]byte(resultText(result)), &readme)).To(Succeed())
		Expect(readme.Found).To(BeTrue())
		Expect(readme.Source).To(Equal("registry"))
		Expect(readme.Examples).To(HaveLen(1))
	})

	It("serves get_chart_info as JSON text", func() {
		result, err := handlers.GetChartInfo(ctx, toolRequest(map[string]any{
			"repository": "bitnami",
			"name":       "nginx",
			"version":    "15.0.2",
		}))
		Expect(err).NotTo(HaveOccurred())
		Expect(result.IsError).To(BeFalse())

		var info service.ChartInfo
		Expect(json.Unmarshal([]byte(resultText(result)), &info)).To(Succeed())
		Expect(info.Found).To(BeTrue())
		Expect(info.Version).To(Equal("15.0.2"))
		Expect(info.InstallCommand).To(ContainSubstring("--version 15.0.2"))
	})

	It("serves search_charts as JSON text", func() {
		result, err := handlers.SearchCharts(ctx, toolRequest(map[string]any{
			"query": "nginx",
			"limit": float64(5),
		}))
		Expect(err).NotTo(HaveOccurred())
		Expect(result.IsError).To(BeFalse())

		var results service.SearchResults
		Expect(json.Unmarshal([]byte(resultText(result)), &results)).To(Succeed())
		Expect(results.Limit).To(Equal(5))
		Expect(results.Total).To(Equal(1))
		Expect(results.Results[0].Name).To(Equal("nginx"))
	})

	It("rejects invalid arguments with a tool error", func() {
		result, err := handlers.GetChartReadme(ctx, toolRequest(map[string]any{
			"repository": "bitnami",
			"name":       "",
		}))
		Expect(err).NotTo(HaveOccurred())
		Expect(result.IsError).To(BeTrue())
		Expect(resultText(result)).To(ContainSubstring("invalid parameters"))
	})
})
