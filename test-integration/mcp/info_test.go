package integration

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	chartapp "github.com/chartscope/chartscope/internal/app"
	"github.com/chartscope/chartscope/test-integration/mcp/helpers"
)

var _ = Describe("Chart info lookup", Label("info"), func() {
	const (
		packagePath   = "/api/v1/packages/helm/bitnami/nginx"
		valuesPath    = "/api/v1/packages/helm/bitnami/nginx/15.1.0/values"
		changelogPath = "/api/v1/packages/nginx-pkg-1/changelog.md"
	)

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

	Context("when the chart exists", func() {
		BeforeEach(func() {
			upstream.AddChart(helpers.NginxChart())
			upstream.SetValues("bitnami", "nginx", "15.1.0", helpers.DependencyValues)
			upstream.SetChangelog("nginx-pkg-1", helpers.NginxChangelog)
		})

		It("assembles the full chart record", func() {
			info, err := chartApp.Service().GetChartInfo(ctx, "bitnami", "nginx", "")
			Expect(err).NotTo(HaveOccurred())

			Expect(info.Found).To(BeTrue())
			Expect(info.PackageID).To(Equal("nginx-pkg-1"))
			Expect(info.Name).To(Equal("nginx"))
			Expect(info.DisplayName).To(Equal("NGINX"))
			Expect(info.Version).To(Equal("15.1.0"))
			Expect(info.AppVersion).To(Equal("1.27.0"))
			Expect(info.CreatedAt).To(Equal("2023-11-14T22:13:20Z"))
			Expect(info.Keywords).To(ContainElement("nginx"))
			Expect(info.Maintainers).To(HaveLen(1))

			Expect(info.Repository.Name).To(Equal("bitnami"))
			Expect(info.Repository.DisplayName).To(Equal("Bitnami by VMware"))

			Expect(info.AvailableVersions).To(Equal([]string{"15.1.0", "15.0.2", "14.2.1"}))
			Expect(info.InstallCommand).To(Equal("helm install my-nginx bitnami/nginx"))

			Expect(info.Downloads.Estimated).To(BeTrue())
			Expect(info.Downloads.Day).To(Equal(int64(20000)))
			Expect(info.Downloads.Week).To(Equal(int64(140000)))
			Expect(info.Downloads.Month).To(Equal(int64(600000)))

			Expect(info.Dependencies).To(HaveLen(1))
			Expect(info.Dependencies[0].Name).To(Equal("common"))
			Expect(info.Dependencies[0].Version).To(Equal("2.x.x"))
			Expect(info.Dependencies[0].Condition).To(Equal("common.enabled"))

			Expect(info.Security).NotTo(BeNil())
			Expect(info.Security.High).To(Equal(1))
			Expect(info.Changelog).To(Equal(helpers.NginxChangelog))
		})

		It("pins the install command to the requested version", func() {
			info, err := chartApp.Service().GetChartInfo(ctx, "bitnami", "nginx", "15.0.2")
			Expect(err).NotTo(HaveOccurred())

			Expect(info.Found).To(BeTrue())
			Expect(info.Version).To(Equal("15.0.2"))
			Expect(info.InstallCommand).To(Equal("helm install my-nginx bitnami/nginx --version 15.0.2"))
		})

		It("serves repeat lookups from the cache, enrichment included", func() {
			svc := chartApp.Service()

			first, err := svc.GetChartInfo(ctx, "bitnami", "nginx", "")
			Expect(err).NotTo(HaveOccurred())
			second, err := svc.GetChartInfo(ctx, "bitnami", "nginx", "")
			Expect(err).NotTo(HaveOccurred())

			Expect(second).To(Equal(first))
			Expect(upstream.RequestCount(packagePath)).To(Equal(1))
			Expect(upstream.RequestCount(valuesPath)).To(Equal(1))
			Expect(upstream.RequestCount(changelogPath)).To(Equal(1))
		})
	})

	Context("when the chart does not exist", func() {
		It("reports it absent without erroring", func() {
			info, err := chartApp.Service().GetChartInfo(ctx, "bitnami", "missing", "")
			Expect(err).NotTo(HaveOccurred())

			Expect(info.Found).To(BeFalse())
			Expect(info.Repository.Name).To(Equal("bitnami"))
			Expect(info.Name).To(Equal("missing"))
			Expect(info.Version).To(Equal("latest"))
			Expect(info.AvailableVersions).NotTo(BeNil())
			Expect(info.AvailableVersions).To(BeEmpty())
			Expect(info.InstallCommand).To(BeEmpty())
			Expect(info.Downloads.Estimated).To(BeFalse())
		})
	})
})
