// Package helpers provides a fake chart registry for integration tests. The
// fake serves the search, package detail, values and changelog endpoints of
// the real registry API plus the raw content paths README fallbacks probe,
// so a full application can run against it without touching the network.
package helpers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/chartscope/chartscope/internal/registry"
)

// ChartFixture is one chart the fake upstream serves. Security and
// OrgDisplayName mirror the enrichment fields the real API carries in the
// raw payload only.
type ChartFixture struct {
	Package        registry.Package
	Security       *registry.SecuritySummary
	OrgDisplayName string
}

// repositoryDocument adds the organization display name the typed
// repository struct does not carry.
type repositoryDocument struct {
	registry.Repository
	OrganizationDisplayName string `json:"organization_display_name,omitempty"`
}

// packageDocument is the wire form of a package detail response, restoring
// the enrichment fields the client reads from the raw payload.
type packageDocument struct {
	registry.Package
	Repository            repositoryDocument        `json:"repository"`
	SecurityReportSummary *registry.SecuritySummary `json:"security_report_summary,omitempty"`
}

// failurePlan makes the next N requests to a path fail with a status.
type failurePlan struct {
	remaining int
	status    int
}

// Upstream fakes the chart registry API and the raw content host behind a
// single httptest server. It records per-path request counts and supports
// scripted failures for retry scenarios. All methods are safe for
// concurrent use.
type Upstream struct {
	server *httptest.Server

	mu         sync.Mutex
	charts     map[string]ChartFixture
	values     map[string]string
	changelogs map[string]string
	readmes    map[string]string
	requests   map[string]int
	failures   map[string]*failurePlan
}

// NewUpstream starts the fake upstream. Callers must Close it.
func NewUpstream() *Upstream {
	u := &Upstream{
		charts:     make(map[string]ChartFixture),
		values:     make(map[string]string),
		changelogs: make(map[string]string),
		readmes:    make(map[string]string),
		requests:   make(map[string]int),
		failures:   make(map[string]*failurePlan),
	}
	u.server = httptest.NewServer(http.HandlerFunc(u.handle))
	return u
}

// URL returns the base URL of the fake upstream.
func (u *Upstream) URL() string {
	return u.server.URL
}

// Close shuts the fake upstream down.
func (u *Upstream) Close() {
	u.server.Close()
}

// AddChart registers a chart under its repository and name.
func (u *Upstream) AddChart(fixture ChartFixture) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.charts[fixture.Package.Repository.Name+"/"+fixture.Package.Name] = fixture
}

// SetValues registers the values file for a concrete chart version.
func (u *Upstream) SetValues(repo, name, version, values string) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.values[repo+"/"+name+"/"+version] = values
}

// SetChangelog registers the rendered changelog for a package ID.
func (u *Upstream) SetChangelog(packageID, markdown string) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.changelogs[packageID] = markdown
}

// SetReadme registers a raw content file the README fallback can fetch.
func (u *Upstream) SetReadme(owner, repo, branch, path, content string) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.readmes[owner+"/"+repo+"/"+branch+"/"+path] = content
}

// RequestCount returns how many requests hit the given URL path, counting
// scripted failures.
func (u *Upstream) RequestCount(path string) int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.requests[path]
}

// FailNext makes the next times requests to path fail with status before
// normal handling resumes.
func (u *Upstream) FailNext(path string, times, status int) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.failures[path] = &failurePlan{remaining: times, status: status}
}

func (u *Upstream) handle(w http.ResponseWriter, r *http.Request) {
	u.mu.Lock()
	u.requests[r.URL.Path]++
	if plan, ok := u.failures[r.URL.Path]; ok && plan.remaining > 0 {
		plan.remaining--
		status := plan.status
		u.mu.Unlock()
		http.Error(w, http.StatusText(status), status)
		return
	}
	u.mu.Unlock()

	switch {
	case r.URL.Path == "/api/v1/packages/search":
		u.handleSearch(w, r)
	case strings.HasPrefix(r.URL.Path, "/api/v1/packages/helm/"):
		u.handleHelm(w, r)
	case strings.HasPrefix(r.URL.Path, "/api/v1/packages/"):
		u.handleChangelog(w, r)
	default:
		u.handleRawContent(w, r)
	}
}

func (u *Upstream) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := strings.ToLower(r.URL.Query().Get("ts_query_web"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	u.mu.Lock()
	keys := make([]string, 0, len(u.charts))
	for key := range u.charts {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	matches := make([]registry.SearchResult, 0, len(keys))
	for _, key := range keys {
		pkg := u.charts[key].Package
		if query != "" && !strings.Contains(strings.ToLower(pkg.Name), query) {
			continue
		}
		matches = append(matches, searchResultFrom(pkg))
	}
	u.mu.Unlock()

	if offset > len(matches) {
		offset = len(matches)
	}
	matches = matches[offset:]
	if limit > 0 && limit < len(matches) {
		matches = matches[:limit]
	}

	writeJSON(w, registry.SearchResponse{Packages: matches})
}

func (u *Upstream) handleHelm(w http.ResponseWriter, r *http.Request) {
	parts := strings.Split(strings.TrimPrefix(r.URL.Path, "/api/v1/packages/helm/"), "/")
	switch {
	case len(parts) == 2:
		u.servePackage(w, r, parts[0], parts[1], "")
	case len(parts) == 3:
		u.servePackage(w, r, parts[0], parts[1], parts[2])
	case len(parts) == 4 && parts[3] == "values":
		u.serveValues(w, r, parts[0], parts[1], parts[2])
	default:
		http.NotFound(w, r)
	}
}

func (u *Upstream) servePackage(w http.ResponseWriter, r *http.Request, repo, name, version string) {
	u.mu.Lock()
	fixture, ok := u.charts[repo+"/"+name]
	u.mu.Unlock()
	if !ok {
		http.NotFound(w, r)
		return
	}

	pkg := fixture.Package
	if version != "" && version != pkg.Version {
		if !hasVersion(pkg, version) {
			http.NotFound(w, r)
			return
		}
		pkg.Version = version
	}

	writeJSON(w, packageDocument{
		Package: pkg,
		Repository: repositoryDocument{
			Repository:              pkg.Repository,
			OrganizationDisplayName: fixture.OrgDisplayName,
		},
		SecurityReportSummary: fixture.Security,
	})
}

func (u *Upstream) serveValues(w http.ResponseWriter, r *http.Request, repo, name, version string) {
	u.mu.Lock()
	values, ok := u.values[repo+"/"+name+"/"+version]
	u.mu.Unlock()
	if !ok {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "application/yaml")
	_, _ = w.Write([]byte(values))
}

func (u *Upstream) handleChangelog(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/v1/packages/")
	packageID, ok := strings.CutSuffix(rest, "/changelog.md")
	if !ok {
		http.NotFound(w, r)
		return
	}

	u.mu.Lock()
	changelog, found := u.changelogs[packageID]
	u.mu.Unlock()
	if !found {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/markdown")
	_, _ = w.Write([]byte(changelog))
}

func (u *Upstream) handleRawContent(w http.ResponseWriter, r *http.Request) {
	parts := strings.SplitN(strings.TrimPrefix(r.URL.Path, "/"), "/", 4)
	if len(parts) != 4 {
		http.NotFound(w, r)
		return
	}

	u.mu.Lock()
	content, ok := u.readmes[strings.Join(parts, "/")]
	u.mu.Unlock()
	if !ok {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(content))
}

func searchResultFrom(pkg registry.Package) registry.SearchResult {
	return registry.SearchResult{
		PackageID:      pkg.PackageID,
		Name:           pkg.Name,
		NormalizedName: pkg.NormalizedName,
		DisplayName:    pkg.DisplayName,
		Description:    pkg.Description,
		Version:        pkg.Version,
		AppVersion:     pkg.AppVersion,
		Deprecated:     pkg.Deprecated,
		Official:       pkg.Official,
		Stars:          pkg.Stars,
		CreatedAt:      pkg.CreatedAt,
		Repository:     pkg.Repository,
	}
}

func hasVersion(pkg registry.Package, version string) bool {
	for _, av := range pkg.AvailableVersions {
		if av.Version == version {
			return true
		}
	}
	return false
}

func writeJSON(w http.ResponseWriter, payload any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(payload)
}
