package service

import (
	"context"
	"strings"

	"github.com/chartscope/chartscope/internal/cache"
	"github.com/chartscope/chartscope/internal/converters"
	"github.com/chartscope/chartscope/internal/extractor"
	"github.com/chartscope/chartscope/internal/filtering"
	"github.com/chartscope/chartscope/internal/registry"
	"github.com/chartscope/chartscope/internal/validators"
	"github.com/chartscope/chartscope/internal/versions"
	cherr "github.com/chartscope/chartscope/pkg/errors"
	"github.com/chartscope/chartscope/pkg/logger"
)

//go:generate mockgen -destination=mocks/mock_service.go -package=mocks -source=service.go ChartService

// Dependency sources for GetChartInfo. The default feeds the chart's
// default values file to the Chart.yaml-syntax dependency parser, matching
// upstream registries that expose no Chart.yaml endpoint; "none" disables
// dependency parsing entirely.
const (
	DependencySourceValues = "values"
	DependencySourceNone   = "none"
)

// ChartService defines the chart lookup operations exposed as tools.
type ChartService interface {
	// GetChartReadme returns the chart's README with extracted usage
	// examples. A chart that cannot be resolved yields Found=false, not an
	// error.
	GetChartReadme(ctx context.Context, repository, name, version string) (*ChartReadme, error)

	// GetChartInfo returns assembled chart metadata. A chart that cannot
	// be resolved yields Found=false, not an error.
	GetChartInfo(ctx context.Context, repository, name, version string) (*ChartInfo, error)

	// SearchCharts returns charts matching the query. An empty result list
	// is a normal result.
	SearchCharts(ctx context.Context, query string, limit, offset int) (*SearchResults, error)
}

type chartSvc struct {
	charts       ChartRegistry
	readmes      ReadmeSource
	store        cache.Store
	filter       *filtering.RefFilter
	depSource    string
	defaultLimit int
	recorder     Recorder
}

var _ ChartService = (*chartSvc)(nil)

// Option is a functional option for configuring the service.
type Option func(*chartSvc)

// WithReadmeSource enables README fallback fetches from source hosting.
func WithReadmeSource(src ReadmeSource) Option {
	return func(s *chartSvc) {
		s.readmes = src
	}
}

// WithRefFilter applies include/exclude filtering to search results.
func WithRefFilter(filter *filtering.RefFilter) Option {
	return func(s *chartSvc) {
		s.filter = filter
	}
}

// WithDependencySource selects where GetChartInfo parses dependencies
// from. Unknown values keep the default.
func WithDependencySource(source string) Option {
	return func(s *chartSvc) {
		if source == DependencySourceValues || source == DependencySourceNone {
			s.depSource = source
		}
	}
}

// WithDefaultSearchLimit overrides the page size used when a search
// request omits the limit. Out-of-range values keep the default.
func WithDefaultSearchLimit(limit int) Option {
	return func(s *chartSvc) {
		if limit >= 1 && limit <= validators.MaxSearchLimit {
			s.defaultLimit = limit
		}
	}
}

// WithRecorder wires cache hit/miss metrics.
func WithRecorder(recorder Recorder) Option {
	return func(s *chartSvc) {
		s.recorder = recorder
	}
}

// New creates the chart service. The registry client and cache store are
// required; everything else is optional.
func New(charts ChartRegistry, store cache.Store, opts ...Option) (ChartService, error) {
	if charts == nil {
		return nil, cherr.New(cherr.ErrCodeInternal, "chart registry is required")
	}
	if store == nil {
		return nil, cherr.New(cherr.ErrCodeInternal, "cache store is required")
	}

	s := &chartSvc{
		charts:       charts,
		store:        store,
		depSource:    DependencySourceValues,
		defaultLimit: validators.DefaultSearchLimit,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// GetChartReadme implements ChartService.
func (s *chartSvc) GetChartReadme(ctx context.Context, repository, name, version string) (*ChartReadme, error) {
	repo, chart, err := validators.ValidateChartRef(repository, name)
	if err != nil {
		return nil, err
	}
	requested := validators.NormalizeVersion(version)

	key := ReadmeCacheKey(repo, chart, requested)
	if hit, ok := cache.GetJSON[ChartReadme](ctx, s.store, key); ok {
		s.cacheEvent(ctx, OpGetChartReadme, true)
		return &hit, nil
	}
	s.cacheEvent(ctx, OpGetChartReadme, false)

	pkg, err := s.charts.GetPackage(ctx, repo, chart, requested)
	if err != nil {
		logger.Warnf("Readme lookup for %s/%s %s failed: %v", repo, chart, requested, err)
		return &ChartReadme{
			Repository: repo,
			Name:       chart,
			Version:    requested,
			Examples:   []extractor.Example{},
		}, nil
	}

	result := &ChartReadme{
		Found:      true,
		Repository: repo,
		Name:       chart,
		Version:    requested,
		Examples:   []extractor.Example{},
	}

	readme, source := pkg.Readme, readmeFromRegistry
	if readme == "" && s.readmes != nil {
		for _, candidate := range sourceURLs(pkg) {
			if text, ok := s.readmes.GetReadme(ctx, candidate, ""); ok {
				readme, source = text, readmeFromGitHub
				break
			}
		}
	}

	if readme != "" {
		result.Readme = readme
		result.Source = source
		if examples := extractor.ExtractExamples(readme); len(examples) > 0 {
			result.Examples = examples
		}
	} else if values, ok := s.charts.GetValues(ctx, repo, chart, concreteVersion(requested, pkg.Version)); ok {
		if examples := extractor.ExtractValuesExamples(values); len(examples) > 0 {
			result.Source = readmeFromValues
			result.Examples = examples
		}
	}

	cache.SetJSON(ctx, s.store, key, *result)
	return result, nil
}

// GetChartInfo implements ChartService.
func (s *chartSvc) GetChartInfo(ctx context.Context, repository, name, version string) (*ChartInfo, error) {
	repo, chart, err := validators.ValidateChartRef(repository, name)
	if err != nil {
		return nil, err
	}
	requested := validators.NormalizeVersion(version)

	key := InfoCacheKey(repo, chart, requested)
	if hit, ok := cache.GetJSON[ChartInfo](ctx, s.store, key); ok {
		s.cacheEvent(ctx, OpGetChartInfo, true)
		return &hit, nil
	}
	s.cacheEvent(ctx, OpGetChartInfo, false)

	pkg, err := s.charts.GetPackage(ctx, repo, chart, requested)
	if err != nil {
		logger.Warnf("Info lookup for %s/%s %s failed: %v", repo, chart, requested, err)
		return &ChartInfo{
			Repository:        registry.Repository{Name: repo},
			Name:              chart,
			Version:           requested,
			AvailableVersions: []string{},
		}, nil
	}

	info := s.buildInfo(ctx, repo, chart, requested, pkg)
	cache.SetJSON(ctx, s.store, key, *info)
	return info, nil
}

func (s *chartSvc) buildInfo(ctx context.Context, repo, chart, requested string, pkg *registry.Package) *ChartInfo {
	repoInfo := pkg.Repository
	if repoInfo.Name == "" {
		repoInfo.Name = repo
	}
	repoFallback := repoInfo.Name
	if pkg.OrgDisplayName != "" {
		repoFallback = pkg.OrgDisplayName
	}
	repoInfo.DisplayName = converters.DisplayName(repoInfo.DisplayName, repoFallback)

	available := make([]string, 0, len(pkg.AvailableVersions))
	for _, av := range pkg.AvailableVersions {
		available = append(available, av.Version)
	}
	available = versions.SortDescending(available)
	if available == nil {
		available = []string{}
	}

	installVersion := ""
	if requested != validators.LatestVersion {
		installVersion = requested
	}

	chartName := pkg.Name
	if chartName == "" {
		chartName = chart
	}

	info := &ChartInfo{
		Found:             true,
		PackageID:         pkg.PackageID,
		Repository:        repoInfo,
		Name:              chartName,
		DisplayName:       converters.DisplayName(pkg.DisplayName, chartName),
		Description:       pkg.Description,
		Version:           pkg.Version,
		AppVersion:        pkg.AppVersion,
		CreatedAt:         converters.FormatTimestamp(pkg.CreatedAt),
		Deprecated:        pkg.Deprecated,
		Official:          pkg.Official,
		AvailableVersions: available,
		Keywords:          pkg.Keywords,
		HomeURL:           pkg.HomeURL,
		Links:             pkg.Links,
		Maintainers:       pkg.Maintainers,
		InstallCommand:    converters.InstallCommand(repo, chartName, installVersion),
		Downloads:         converters.SyntheticDownloads(pkg.Stars),
		Security:          pkg.Security,
	}

	if s.depSource == DependencySourceValues {
		if values, ok := s.charts.GetValues(ctx, repo, chart, concreteVersion(requested, pkg.Version)); ok {
			info.Dependencies = converters.ParseDependencies([]byte(values))
		}
	}
	if pkg.PackageID != "" {
		if changelog, ok := s.charts.GetChangelog(ctx, pkg.PackageID); ok {
			info.Changelog = changelog
		}
	}
	return info
}

// SearchCharts implements ChartService.
func (s *chartSvc) SearchCharts(ctx context.Context, query string, limit, offset int) (*SearchResults, error) {
	query, err := validators.ValidateSearchQuery(query)
	if err != nil {
		return nil, err
	}
	if limit == 0 {
		limit = s.defaultLimit
	}
	limit, offset, err = validators.ValidateSearchWindow(limit, offset)
	if err != nil {
		return nil, err
	}

	key := SearchCacheKey(query, limit, offset)
	if hit, ok := cache.GetJSON[SearchResults](ctx, s.store, key); ok {
		s.cacheEvent(ctx, OpSearchCharts, true)
		return &hit, nil
	}
	s.cacheEvent(ctx, OpSearchCharts, false)

	matches, err := s.charts.Search(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}

	results := make([]SearchResult, 0, len(matches))
	for _, match := range matches {
		ref := match.Repository.Name + "/" + match.Name
		if s.filter != nil && !s.filter.Empty() && !s.filter.Allow(ref) {
			continue
		}
		results = append(results, SearchResult{
			PackageID:             match.PackageID,
			Repository:            match.Repository.Name,
			RepositoryDisplayName: converters.DisplayName(match.Repository.DisplayName, match.Repository.Name),
			Name:                  match.Name,
			DisplayName:           converters.DisplayName(match.DisplayName, match.Name),
			Description:           match.Description,
			Version:               match.Version,
			AppVersion:            match.AppVersion,
			CreatedAt:             converters.FormatTimestamp(match.CreatedAt),
			Deprecated:            match.Deprecated,
			Official:              match.Official,
			Stars:                 match.Stars,
		})
	}

	out := &SearchResults{
		Query:   query,
		Limit:   limit,
		Offset:  offset,
		Total:   len(results),
		Results: results,
	}
	cache.SetJSON(ctx, s.store, key, *out)
	return out, nil
}

func (s *chartSvc) cacheEvent(ctx context.Context, operation string, hit bool) {
	if s.recorder != nil {
		s.recorder.CacheEvent(ctx, operation, hit)
	}
}

// concreteVersion resolves "latest" to the version the registry actually
// returned, for endpoints that require a pinned version.
func concreteVersion(requested, resolved string) string {
	if requested == validators.LatestVersion {
		return resolved
	}
	return requested
}

// sourceURLs orders candidate source-hosting URLs for a package: links
// explicitly named "source" first, then the home page, then everything
// else. Non-GitHub URLs are cheap to try since the fetcher rejects them
// without a request.
func sourceURLs(pkg *registry.Package) []string {
	urls := make([]string, 0, len(pkg.Links)+1)
	seen := make(map[string]struct{}, len(pkg.Links)+1)
	add := func(u string) {
		if u == "" {
			return
		}
		if _, dup := seen[u]; dup {
			return
		}
		seen[u] = struct{}{}
		urls = append(urls, u)
	}

	for _, link := range pkg.Links {
		if strings.EqualFold(link.Name, "source") {
			add(link.URL)
		}
	}
	add(pkg.HomeURL)
	for _, link := range pkg.Links {
		add(link.URL)
	}
	return urls
}
