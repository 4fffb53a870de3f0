// Package github fetches chart READMEs from their source repositories via
// the raw content host. The registry payload often omits the README body,
// so this client probes the conventional filename variants across the
// default branches instead of requiring the exact path.
package github

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/chartscope/chartscope/pkg/httpclient"
	"github.com/chartscope/chartscope/pkg/logger"
)

// DefaultBaseURL is the raw content host for github.com repositories.
const DefaultBaseURL = "https://raw.githubusercontent.com"

var (
	// readmeVariants are probed in order; charts in the wild use all of
	// these spellings.
	readmeVariants = []string{"README.md", "README.MD", "readme.md", "Readme.md", "README"}

	// branches are probed in order.
	branches = []string{"main", "master"}
)

// Client fetches raw files from GitHub-hosted repositories.
type Client struct {
	http    httpclient.Client
	baseURL string
	token   string
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the raw content host, mainly for tests.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		if baseURL != "" {
			c.baseURL = strings.TrimRight(baseURL, "/")
		}
	}
}

// WithHTTPClient swaps the HTTP layer.
func WithHTTPClient(hc httpclient.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// WithToken attaches a bearer token to every request. Anonymous access
// works but is rate-limited much more aggressively.
func WithToken(token string) Option {
	return func(c *Client) {
		c.token = token
	}
}

// New creates a GitHub raw content client.
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

// ParseRepoURL extracts the owner and repository from a github.com URL.
// Anything that is not a GitHub repository URL reports ok=false.
func ParseRepoURL(repoURL string) (owner, repo string, ok bool) {
	u, err := url.Parse(repoURL)
	if err != nil {
		return "", "", false
	}

	host := strings.ToLower(u.Host)
	if host != "github.com" && host != "www.github.com" {
		return "", "", false
	}

	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(parts) < 2 {
		return "", "", false
	}
	owner = parts[0]
	repo = strings.TrimSuffix(parts[1], ".git")
	if owner == "" || repo == "" {
		return "", "", false
	}
	return owner, repo, true
}

// GetReadme fetches the README for a repository, optionally under a
// subdirectory (charts commonly live in a monorepo path). It probes each
// filename variant on the main branch, then on master. Every failure moves
// to the next candidate; when all candidates miss it reports ok=false,
// never an error.
func (c *Client) GetReadme(ctx context.Context, repoURL, directory string) (string, bool) {
	owner, repo, ok := ParseRepoURL(repoURL)
	if !ok {
		logger.Debugf("Not a GitHub source URL, skipping README probe: %s", repoURL)
		return "", false
	}

	var headers map[string]string
	if c.token != "" {
		headers = map[string]string{"Authorization": "Bearer " + c.token}
	}

	dir := strings.Trim(directory, "/")
	for _, branch := range branches {
		for _, variant := range readmeVariants {
			path := variant
			if dir != "" {
				path = dir + "/" + variant
			}
			endpoint := fmt.Sprintf("%s/%s/%s/%s/%s", c.baseURL, owner, repo, branch, path)

			data, err := httpclient.GetWithRetry(ctx, c.http, endpoint, headers)
			if err != nil {
				// Misses are expected while probing; only the final
				// outcome matters.
				continue
			}
			return string(data), true
		}
	}

	logger.Debugf("No README found for %s/%s", owner, repo)
	return "", false
}
