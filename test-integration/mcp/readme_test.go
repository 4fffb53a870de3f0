package integration

import (
	"net/http"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	chartapp "github.com/chartscope/chartscope/internal/app"
	"github.com/chartscope/chartscope/test-integration/mcp/helpers"
)

var _ = Describe("Chart readme lookup", Label("readme"), func() {
	const packagePath = "/api/v1/packages/helm/bitnami/nginx"

	var (
		upstream *helpers.Upstream
		chartApp *chartapp.App
	)

	BeforeEach(func() {
		upstream = helpers.NewUpstream()
		chartApp = startApp(testConfig(upstream))
	})

	AfterEach(func() {
		stopApp(chartApp)
		upstream.Close()
	})

	Context("when the registry provides a readme", func() {
		It("serves it with extracted usage examples", func() {
			upstream.AddChart(helpers.NginxChart())

			readme, err := chartApp.Service().GetChartReadme(ctx, "bitnami", "nginx", "")
			Expect(err).NotTo(HaveOccurred())

			Expect(readme.Found).To(BeTrue())
			Expect(readme.Version).To(Equal("latest"))
			Expect(readme.Source).To(Equal("registry"))
			Expect(readme.Readme).To(Equal(helpers.NginxReadme))
			Expect(readme.Examples).To(HaveLen(1))
			Expect(readme.Examples[0].Language).To(Equal("bash"))
			Expect(readme.Examples[0].Code).To(ContainSubstring("helm install my-nginx"))
		})

		It("serves repeat lookups from the cache", func() {
			upstream.AddChart(helpers.NginxChart())
			svc := chartApp.Service()

			first, err := svc.GetChartReadme(ctx, "bitnami", "nginx", "")
			Expect(err).NotTo(HaveOccurred())
			second, err := svc.GetChartReadme(ctx, "bitnami", "nginx", "")
			Expect(err).NotTo(HaveOccurred())

			Expect(second).To(Equal(first))
			Expect(upstream.RequestCount(packagePath)).To(Equal(1))
		})
	})

	Context("when the registry has no readme", func() {
		It("falls back to the readme of the source repository", func() {
			fixture := helpers.NginxChart()
			fixture.Package.Readme = ""
			upstream.AddChart(fixture)
			upstream.SetReadme("bitnami", "charts", "main", "README.md", helpers.SourceRepoReadme)

			readme, err := chartApp.Service().GetChartReadme(ctx, "bitnami", "nginx", "")
			Expect(err).NotTo(HaveOccurred())

			Expect(readme.Found).To(BeTrue())
			Expect(readme.Source).To(Equal("github"))
			Expect(readme.Readme).To(Equal(helpers.SourceRepoReadme))
			Expect(readme.Examples).To(HaveLen(1))
			Expect(upstream.RequestCount("/bitnami/charts/main/README.md")).To(Equal(1))
		})

		It("extracts configuration examples from the annotated values file", func() {
			fixture := helpers.NginxChart()
			fixture.Package.Readme = ""
			fixture.Package.HomeURL = ""
			upstream.AddChart(fixture)
			upstream.SetValues("bitnami", "nginx", "15.1.0", helpers.AnnotatedValues)

			readme, err := chartApp.Service().GetChartReadme(ctx, "bitnami", "nginx", "")
			Expect(err).NotTo(HaveOccurred())

			Expect(readme.Found).To(BeTrue())
			Expect(readme.Readme).To(BeEmpty())
			Expect(readme.Source).To(Equal("values"))
			Expect(readme.Examples).To(HaveLen(2))
			Expect(readme.Examples[0].Title).To(Equal("Replica Count"))
			Expect(readme.Examples[0].Language).To(Equal("yaml"))
			Expect(readme.Examples[0].Description).To(ContainSubstring("replicas"))
		})

		It("reports an absent chart without erroring", func() {
			readme, err := chartApp.Service().GetChartReadme(ctx, "bitnami", "nginx", "")
			Expect(err).NotTo(HaveOccurred())

			Expect(readme.Found).To(BeFalse())
			Expect(readme.Version).To(Equal("latest"))
			Expect(readme.Readme).To(BeEmpty())
			Expect(readme.Source).To(BeEmpty())
			Expect(readme.Examples).To(BeEmpty())

			// Absence is terminal, not transient, so the lookup must not
			// have been retried.
			Expect(upstream.RequestCount(packagePath)).To(Equal(1))
		})
	})

	Context("when the registry is briefly unavailable", func() {
		It("retries within the attempt budget and succeeds", func() {
			upstream.AddChart(helpers.NginxChart())
			upstream.FailNext(packagePath, 2, http.StatusInternalServerError)

			readme, err := chartApp.Service().GetChartReadme(ctx, "bitnami", "nginx", "")
			Expect(err).NotTo(HaveOccurred())

			Expect(readme.Found).To(BeTrue())
			Expect(upstream.RequestCount(packagePath)).To(Equal(3))
		})

		It("exhausts the attempt budget and reports the chart absent", func() {
			upstream.AddChart(helpers.NginxChart())
			upstream.FailNext(packagePath, 3, http.StatusInternalServerError)

			readme, err := chartApp.Service().GetChartReadme(ctx, "bitnami", "nginx", "")
			Expect(err).NotTo(HaveOccurred())

			Expect(readme.Found).To(BeFalse())
			Expect(upstream.RequestCount(packagePath)).To(Equal(3))
		})
	})
})
