package integration

import (
	"net/http"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	chartapp "github.com/chartscope/chartscope/internal/app"
	cherr "github.com/chartscope/chartscope/pkg/errors"
	"github.com/chartscope/chartscope/test-integration/mcp/helpers"
)

var _ = Describe("Chart search", Label("search"), func() {
	const searchPath = "/api/v1/packages/search"

	var (
		upstream *helpers.Upstream
		chartApp *chartapp.App
	)

	BeforeEach(func() {
		upstream = helpers.NewUpstream()
		for _, fixture := range helpers.SearchSet() {
			upstream.AddChart(fixture)
		}
	})

	AfterEach(func() {
		stopApp(chartApp)
		upstream.Close()
	})

	Context("with the default configuration", func() {
		BeforeEach(func() {
			chartApp = startApp(testConfig(upstream))
		})

		It("returns matching charts with repository attribution", func() {
			results, err := chartApp.Service().SearchCharts(ctx, "nginx", 0, 0)
			Expect(err).NotTo(HaveOccurred())

			Expect(results.Query).To(Equal("nginx"))
			Expect(results.Limit).To(Equal(20))
			Expect(results.Offset).To(Equal(0))
			Expect(results.Total).To(Equal(3))
			Expect(results.Results).To(HaveLen(3))

			first := results.Results[0]
			Expect(first.Name).To(Equal("nginx"))
			Expect(first.Repository).To(Equal("bitnami"))
			Expect(first.RepositoryDisplayName).To(Equal("bitnami"))
			Expect(first.Version).To(Equal("15.1.0"))
			Expect(first.Stars).To(Equal(400))
			Expect(first.CreatedAt).To(Equal("2023-11-14T22:13:20Z"))

			second := results.Results[1]
			Expect(second.Name).To(Equal("nginx-edge"))
			Expect(second.Deprecated).To(BeTrue())

			third := results.Results[2]
			Expect(third.Name).To(Equal("ingress-nginx"))
			Expect(third.RepositoryDisplayName).To(Equal("Ingress NGINX"))
			Expect(third.Official).To(BeTrue())
		})

		It("passes limit and offset through to the registry", func() {
			results, err := chartApp.Service().SearchCharts(ctx, "nginx", 1, 1)
			Expect(err).NotTo(HaveOccurred())

			Expect(results.Limit).To(Equal(1))
			Expect(results.Offset).To(Equal(1))
			Expect(results.Total).To(Equal(1))
			Expect(results.Results).To(HaveLen(1))
			Expect(results.Results[0].Name).To(Equal("nginx-edge"))
		})

		It("serves repeated queries from the cache", func() {
			svc := chartApp.Service()

			first, err := svc.SearchCharts(ctx, "redis", 0, 0)
			Expect(err).NotTo(HaveOccurred())
			second, err := svc.SearchCharts(ctx, "redis", 0, 0)
			Expect(err).NotTo(HaveOccurred())

			Expect(second).To(Equal(first))
			Expect(upstream.RequestCount(searchPath)).To(Equal(1))
		})

		It("propagates upstream failures after exhausting retries", func() {
			upstream.FailNext(searchPath, 3, http.StatusBadGateway)

			_, err := chartApp.Service().SearchCharts(ctx, "nginx", 0, 0)
			Expect(err).To(HaveOccurred())
			Expect(cherr.IsTransient(err)).To(BeTrue())
			Expect(upstream.RequestCount(searchPath)).To(Equal(3))
		})
	})

	Context("with an exclusion filter", func() {
		BeforeEach(func() {
			cfg := testConfig(upstream)
			cfg.Search.Exclude = []string{"experimental/*"}
			chartApp = startApp(cfg)
		})

		It("drops excluded repositories from the results", func() {
			results, err := chartApp.Service().SearchCharts(ctx, "nginx", 0, 0)
			Expect(err).NotTo(HaveOccurred())

			Expect(results.Total).To(Equal(2))
			names := make([]string, 0, len(results.Results))
			for _, result := range results.Results {
				names = append(names, result.Repository+"/"+result.Name)
			}
			Expect(names).To(Equal([]string{"bitnami/nginx", "ingress-nginx/ingress-nginx"}))
		})
	})
})
