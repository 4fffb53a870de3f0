package github

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chartscope/chartscope/pkg/httpclient"
)

func TestParseRepoURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		url       string
		wantOwner string
		wantRepo  string
		wantOK    bool
	}{
		{name: "plain https", url: "https://github.com/bitnami/charts", wantOwner: "bitnami", wantRepo: "charts", wantOK: true},
		{name: "trailing path", url: "https://github.com/bitnami/charts/tree/main/bitnami/nginx", wantOwner: "bitnami", wantRepo: "charts", wantOK: true},
		{name: "dot git suffix", url: "https://github.com/bitnami/charts.git", wantOwner: "bitnami", wantRepo: "charts", wantOK: true},
		{name: "www host", url: "https://www.github.com/bitnami/charts", wantOwner: "bitnami", wantRepo: "charts", wantOK: true},
		{name: "other host", url: "https://gitlab.com/group/project", wantOK: false},
		{name: "owner only", url: "https://github.com/bitnami", wantOK: false},
		{name: "not a url", url: "://bad", wantOK: false},
		{name: "empty", url: "", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			owner, repo, ok := ParseRepoURL(tt.url)
			require.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.wantOwner, owner)
				assert.Equal(t, tt.wantRepo, repo)
			}
		})
	}
}

// readmeServer serves the given path→content table and counts requests.
func readmeServer(files map[string]string, requests *atomic.Int32) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if requests != nil {
			requests.Add(1)
		}
		content, ok := files[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(content))
	}))
}

func newTestClient(srv *httptest.Server, opts ...Option) *Client {
	opts = append([]Option{
		WithBaseURL(srv.URL),
		WithHTTPClient(httpclient.NewDefaultClient(2*time.Second, nil)),
	}, opts...)
	return New(opts...)
}

func TestGetReadmeFirstVariant(t *testing.T) {
	t.Parallel()

	var requests atomic.Int32
	srv := readmeServer(map[string]string{
		"/bitnami/charts/main/README.md": "# Charts",
	}, &requests)
	defer srv.Close()

	readme, ok := newTestClient(srv).GetReadme(context.Background(), "https://github.com/bitnami/charts", "")
	require.True(t, ok)
	assert.Equal(t, "# Charts", readme)
	assert.Equal(t, int32(1), requests.Load(), "first candidate hit should stop the probe")
}

func TestGetReadmeFallsBackToMaster(t *testing.T) {
	t.Parallel()

	srv := readmeServer(map[string]string{
		"/legacy/chart/master/readme.md": "# Legacy",
	}, nil)
	defer srv.Close()

	readme, ok := newTestClient(srv).GetReadme(context.Background(), "https://github.com/legacy/chart", "")
	require.True(t, ok)
	assert.Equal(t, "# Legacy", readme)
}

func TestGetReadmeDirectoryPrefix(t *testing.T) {
	t.Parallel()

	srv := readmeServer(map[string]string{
		"/bitnami/charts/main/bitnami/nginx/README.md": "# nginx chart",
	}, nil)
	defer srv.Close()

	readme, ok := newTestClient(srv).GetReadme(context.Background(),
		"https://github.com/bitnami/charts", "/bitnami/nginx/")
	require.True(t, ok)
	assert.Equal(t, "# nginx chart", readme)
}

func TestGetReadmeAllCandidatesMiss(t *testing.T) {
	t.Parallel()

	var requests atomic.Int32
	srv := readmeServer(map[string]string{}, &requests)
	defer srv.Close()

	readme, ok := newTestClient(srv).GetReadme(context.Background(), "https://github.com/no/readme", "")
	assert.False(t, ok)
	assert.Empty(t, readme)
	// Five variants across two branches.
	assert.Equal(t, int32(10), requests.Load())
}

func TestGetReadmeNonGitHubURL(t *testing.T) {
	t.Parallel()

	var requests atomic.Int32
	srv := readmeServer(map[string]string{}, &requests)
	defer srv.Close()

	_, ok := newTestClient(srv).GetReadme(context.Background(), "https://gitlab.com/group/project", "")
	assert.False(t, ok)
	assert.Equal(t, int32(0), requests.Load(), "non-GitHub URLs must not be probed")
}

func TestGetReadmeSendsToken(t *testing.T) {
	t.Parallel()

	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte("# ok"))
	}))
	defer srv.Close()

	_, ok := newTestClient(srv, WithToken("ghp_secret")).GetReadme(
		context.Background(), "https://github.com/o/r", "")
	require.True(t, ok)
	assert.Equal(t, "Bearer ghp_secret", gotAuth)
}
