// Package registry implements the read-only client for an
// Artifact-Hub-compatible chart registry API: package search, package
// detail lookup, and the optional values/changelog enrichment fetches.
package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	cherr "github.com/chartscope/chartscope/pkg/errors"
	"github.com/chartscope/chartscope/pkg/httpclient"
	"github.com/chartscope/chartscope/pkg/logger"

	"github.com/chartscope/chartscope/internal/validators"
)

const (
	// DefaultBaseURL points at the public Artifact Hub instance.
	DefaultBaseURL = "https://artifacthub.io"

	// helmKind is the package kind the search API uses for Helm charts.
	helmKind = 0
)

// Client talks to the registry API. All methods are read-only.
type Client struct {
	http    httpclient.Client
	baseURL string
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL points the client at a different registry instance.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		if baseURL != "" {
			c.baseURL = strings.TrimRight(baseURL, "/")
		}
	}
}

// WithHTTPClient swaps the HTTP layer, mainly for tests.
func WithHTTPClient(hc httpclient.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// New creates a registry client.
func New(opts ...Option) *Client {
	c := &Client{
		http:    httpclient.NewDefaultClient(httpclient.DefaultTimeout, nil),
		baseURL: DefaultBaseURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Search queries the registry for charts matching query.
func (c *Client) Search(ctx context.Context, query string, limit, offset int) ([]SearchResult, error) {
	params := url.Values{}
	params.Set("kind", strconv.Itoa(helmKind))
	params.Set("ts_query_web", query)
	params.Set("limit", strconv.Itoa(limit))
	params.Set("offset", strconv.Itoa(offset))

	endpoint := fmt.Sprintf("%s/api/v1/packages/search?%s", c.baseURL, params.Encode())
	data, err := httpclient.GetWithRetry(ctx, c.http, endpoint, nil)
	if err != nil {
		return nil, err
	}

	var resp SearchResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, cherr.Wrap(cherr.ErrCodeInternal, err, "decoding search response")
	}
	return resp.Packages, nil
}

// GetPackage fetches the detail record for a chart. An empty or "latest"
// version resolves to the newest release. A registry 404 maps to
// ErrCodeChartNotFound so callers can apply the soft not-found contract.
func (c *Client) GetPackage(ctx context.Context, repository, name, version string) (*Package, error) {
	endpoint := fmt.Sprintf("%s/api/v1/packages/helm/%s/%s",
		c.baseURL, url.PathEscape(repository), url.PathEscape(name))
	if version != "" && version != validators.LatestVersion {
		endpoint += "/" + url.PathEscape(version)
	}

	data, err := httpclient.GetWithRetry(ctx, c.http, endpoint, nil)
	if err != nil {
		if cherr.Is(err, cherr.ErrCodeNotFound) {
			return nil, cherr.Wrap(cherr.ErrCodeChartNotFound, err,
				"chart %s/%s not found", repository, name)
		}
		return nil, err
	}

	var pkg Package
	if err := json.Unmarshal(data, &pkg); err != nil {
		return nil, cherr.Wrap(cherr.ErrCodeInternal, err, "decoding package response")
	}
	enrichPackage(&pkg, data)
	return &pkg, nil
}

// GetValues fetches the default values file for a concrete chart version.
// It is an enrichment fetch: any failure reports ok=false, never an error.
func (c *Client) GetValues(ctx context.Context, repository, name, version string) (string, bool) {
	endpoint := fmt.Sprintf("%s/api/v1/packages/helm/%s/%s/%s/values",
		c.baseURL, url.PathEscape(repository), url.PathEscape(name), url.PathEscape(version))

	data, err := httpclient.GetWithRetry(ctx, c.http, endpoint, map[string]string{
		"Accept": "application/yaml",
	})
	if err != nil {
		logger.Debugf("No values file for %s/%s %s: %v", repository, name, version, err)
		return "", false
	}
	return string(data), true
}

// GetChangelog fetches the rendered changelog for a package ID. Enrichment
// fetch: failures report ok=false.
func (c *Client) GetChangelog(ctx context.Context, packageID string) (string, bool) {
	endpoint := fmt.Sprintf("%s/api/v1/packages/%s/changelog.md", c.baseURL, url.PathEscape(packageID))

	data, err := httpclient.GetWithRetry(ctx, c.http, endpoint, map[string]string{
		"Accept": "text/markdown",
	})
	if err != nil {
		logger.Debugf("No changelog for package %s: %v", packageID, err)
		return "", false
	}
	return string(data), true
}
