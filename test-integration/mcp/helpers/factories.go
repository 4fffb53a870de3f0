package helpers

import "github.com/chartscope/chartscope/internal/registry"

// NginxReadme is a registry README with one recognized usage section.
const NginxReadme = "# NGINX\n\n" +
	"NGINX Open Source packaged by Bitnami.\n\n" +
	"## Installing the Chart\n\n" +
	"To install the chart with the release name `my-nginx`:\n\n" +
	"```bash\n" +
	"helm install my-nginx oci://registry-1.docker.io/bitnamicharts/nginx\n" +
	"```\n"

// SourceRepoReadme is a README served from the chart's source repository.
const SourceRepoReadme = "# Bitnami Charts\n\n" +
	"## Usage\n\n" +
	"```console\n" +
	"helm repo add bitnami https://charts.bitnami.com/bitnami\n" +
	"```\n"

// AnnotatedValues is a values file whose comments yield configuration
// examples.
const AnnotatedValues = "## @param replicaCount Number of replicas to deploy\n" +
	"replicaCount: 1\n\n" +
	"## @param image.pullPolicy Image pull policy\n" +
	"image:\n" +
	"  pullPolicy: IfNotPresent\n"

// DependencyValues is a values file declaring one chart dependency.
const DependencyValues = "dependencies:\n" +
	"  - name: common\n" +
	"    version: 2.x.x\n" +
	"    repository: oci://registry-1.docker.io/bitnamicharts\n" +
	"    condition: common.enabled\n"

// NginxChangelog is the rendered changelog for the nginx fixture.
const NginxChangelog = "## 15.1.0\n\n- Bump nginx to 1.27.0\n"

// NginxChart returns a fully populated chart fixture, including the
// enrichment fields only present in the raw registry payload.
func NginxChart() ChartFixture {
	return ChartFixture{
		Package: registry.Package{
			PackageID:   "nginx-pkg-1",
			Name:        "nginx",
			DisplayName: "NGINX",
			Description: "NGINX Open Source packaged by Bitnami",
			Keywords:    []string{"nginx", "http", "web"},
			HomeURL:     "https://github.com/bitnami/charts",
			Readme:      NginxReadme,
			Version:     "15.1.0",
			AppVersion:  "1.27.0",
			AvailableVersions: []registry.AvailableVersion{
				{Version: "14.2.1", CreatedAt: 1690000000},
				{Version: "15.1.0", CreatedAt: 1700000000},
				{Version: "15.0.2", CreatedAt: 1695000000},
			},
			Stars:     400,
			CreatedAt: 1700000000,
			Maintainers: []registry.Maintainer{
				{Name: "Bitnami", Email: "containers@bitnami.com"},
			},
			Repository: registry.Repository{
				Name: "bitnami",
				URL:  "https://charts.bitnami.com/bitnami",
			},
		},
		Security:       &registry.SecuritySummary{High: 1, Medium: 3, Low: 7},
		OrgDisplayName: "Bitnami by VMware",
	}
}

// SearchSet returns charts across several repositories for search and
// filtering scenarios. Three of the four match the query "nginx".
func SearchSet() []ChartFixture {
	return []ChartFixture{
		NginxChart(),
		{
			Package: registry.Package{
				PackageID:   "ingress-pkg-1",
				Name:        "ingress-nginx",
				Description: "Ingress controller for Kubernetes using NGINX",
				Version:     "4.11.2",
				AppVersion:  "1.11.2",
				Official:    true,
				Stars:       1700,
				CreatedAt:   1718000000,
				Repository: registry.Repository{
					Name:        "ingress-nginx",
					DisplayName: "Ingress NGINX",
					URL:         "https://kubernetes.github.io/ingress-nginx",
				},
			},
		},
		{
			Package: registry.Package{
				PackageID:   "edge-pkg-1",
				Name:        "nginx-edge",
				Description: "Nightly nginx builds, not for production",
				Version:     "0.3.0",
				Deprecated:  true,
				Stars:       3,
				CreatedAt:   1716000000,
				Repository: registry.Repository{
					Name: "experimental",
					URL:  "https://charts.example.com/experimental",
				},
			},
		},
		{
			Package: registry.Package{
				PackageID:   "redis-pkg-1",
				Name:        "redis",
				Description: "Redis is an open source in-memory data store",
				Version:     "19.5.0",
				AppVersion:  "7.2.5",
				Stars:       900,
				CreatedAt:   1712000000,
				Repository: registry.Repository{
					Name: "bitnami",
					URL:  "https://charts.bitnami.com/bitnami",
				},
			},
		},
	}
}
