package service

import (
	"context"

	"github.com/chartscope/chartscope/internal/github"
	"github.com/chartscope/chartscope/internal/registry"
)

//go:generate mockgen -destination=mocks/mock_provider.go -package=mocks -source=provider.go ChartRegistry,ReadmeSource,Recorder

// ChartRegistry abstracts the chart registry API. The service only needs
// these four calls, which keeps the interface small enough to mock and
// leaves transport concerns to the implementation.
type ChartRegistry interface {
	// Search returns charts matching a free-text query within the given
	// result window.
	Search(ctx context.Context, query string, limit, offset int) ([]registry.SearchResult, error)

	// GetPackage fetches the detail record for a chart version. The
	// version "latest" resolves to the newest published version.
	GetPackage(ctx context.Context, repository, name, version string) (*registry.Package, error)

	// GetValues fetches the default values file for a concrete version.
	// Failures report ok=false rather than an error.
	GetValues(ctx context.Context, repository, name, version string) (string, bool)

	// GetChangelog fetches the rendered changelog for a package ID.
	// Failures report ok=false rather than an error.
	GetChangelog(ctx context.Context, packageID string) (string, bool)
}

// ReadmeSource fetches README content from a chart's source hosting when
// the registry payload carries none.
type ReadmeSource interface {
	// GetReadme fetches the README for a source repository URL, optionally
	// scoped to a subdirectory. ok=false means no README was found.
	GetReadme(ctx context.Context, repoURL, directory string) (string, bool)
}

// Recorder receives cache lookup outcomes for metrics. Implementations
// must be safe for concurrent use.
type Recorder interface {
	CacheEvent(ctx context.Context, operation string, hit bool)
}

var (
	_ ChartRegistry = (*registry.Client)(nil)
	_ ReadmeSource  = (*github.Client)(nil)
)
