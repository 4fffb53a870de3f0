package service

import (
	"github.com/chartscope/chartscope/internal/converters"
	"github.com/chartscope/chartscope/internal/extractor"
	"github.com/chartscope/chartscope/internal/registry"
)

// Operation labels used for cache metrics and logging. They match the
// tool names registered on the MCP server.
const (
	OpGetChartReadme = "get_chart_readme"
	OpGetChartInfo   = "get_chart_info"
	OpSearchCharts   = "search_charts"
)

// Readme source labels, recorded on ChartReadme.Source.
const (
	readmeFromRegistry = "registry"
	readmeFromGitHub   = "github"
	readmeFromValues   = "values"
)

// ChartReadme is the result of a readme lookup. Found=false means the
// chart could not be resolved; the identifying fields still echo the
// request so the caller can tell what was asked for.
type ChartReadme struct {
	Found      bool                `json:"found"`
	Repository string              `json:"repository"`
	Name       string              `json:"name"`
	Version    string              `json:"version"`
	Readme     string              `json:"readme"`
	Source     string              `json:"source,omitempty"`
	Examples   []extractor.Example `json:"examples"`
}

// ChartInfo is the assembled metadata for one chart version.
//
// Downloads are synthetic estimates derived from registry stars, not
// analytics; they are always labeled estimated.
type ChartInfo struct {
	Found             bool                      `json:"found"`
	PackageID         string                    `json:"package_id,omitempty"`
	Repository        registry.Repository       `json:"repository"`
	Name              string                    `json:"name"`
	DisplayName       string                    `json:"display_name,omitempty"`
	Description       string                    `json:"description,omitempty"`
	Version           string                    `json:"version"`
	AppVersion        string                    `json:"app_version,omitempty"`
	CreatedAt         string                    `json:"created_at,omitempty"`
	Deprecated        bool                      `json:"deprecated"`
	Official          bool                      `json:"official"`
	AvailableVersions []string                  `json:"available_versions"`
	Keywords          []string                  `json:"keywords,omitempty"`
	HomeURL           string                    `json:"home_url,omitempty"`
	Links             []registry.Link           `json:"links,omitempty"`
	Maintainers       []registry.Maintainer     `json:"maintainers,omitempty"`
	InstallCommand    string                    `json:"install_command,omitempty"`
	Dependencies      []converters.Dependency   `json:"dependencies,omitempty"`
	Downloads         converters.DownloadStats  `json:"downloads"`
	Security          *registry.SecuritySummary `json:"security,omitempty"`
	Changelog         string                    `json:"changelog,omitempty"`
}

// SearchResults is a page of search matches after filtering.
type SearchResults struct {
	Query   string         `json:"query"`
	Limit   int            `json:"limit"`
	Offset  int            `json:"offset"`
	Total   int            `json:"total"`
	Results []SearchResult `json:"results"`
}

// SearchResult is one chart in a search response, flattened for tool
// consumers.
type SearchResult struct {
	PackageID             string `json:"package_id,omitempty"`
	Repository            string `json:"repository"`
	RepositoryDisplayName string `json:"repository_display_name,omitempty"`
	Name                  string `json:"name"`
	DisplayName           string `json:"display_name"`
	Description           string `json:"description,omitempty"`
	Version               string `json:"version"`
	AppVersion            string `json:"app_version,omitempty"`
	CreatedAt             string `json:"created_at,omitempty"`
	Deprecated            bool   `json:"deprecated"`
	Official              bool   `json:"official"`
	Stars                 int    `json:"stars"`
}
