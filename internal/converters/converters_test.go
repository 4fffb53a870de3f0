package converters

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatTimestamp(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		unix     int64
		expected string
	}{
		{name: "epoch second", unix: 1, expected: "1970-01-01T00:00:01Z"},
		{name: "typical release date", unix: 1700000000, expected: "2023-11-14T22:13:20Z"},
		{name: "zero renders empty", unix: 0, expected: ""},
		{name: "negative renders empty", unix: -5, expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, FormatTimestamp(tt.unix))
		})
	}
}

func TestDisplayName(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Nginx Ingress", DisplayName("Nginx Ingress", "nginx-ingress"))
	assert.Equal(t, "nginx-ingress", DisplayName("", "nginx-ingress"))
	assert.Equal(t, "nginx-ingress", DisplayName("   ", "nginx-ingress"))
}

func TestInstallCommand(t *testing.T) {
	t.Parallel()

	assert.Equal(t,
		"helm install my-postgresql bitnami/postgresql",
		InstallCommand("bitnami", "postgresql", ""))
	assert.Equal(t,
		"helm install my-postgresql bitnami/postgresql --version 12.5.8",
		InstallCommand("bitnami", "postgresql", "12.5.8"))
}

func TestSyntheticDownloads(t *testing.T) {
	t.Parallel()

	stats := SyntheticDownloads(100)
	assert.Equal(t, int64(5000), stats.Day)
	assert.Equal(t, int64(35000), stats.Week)
	assert.Equal(t, int64(150000), stats.Month)
	assert.True(t, stats.Estimated)

	zero := SyntheticDownloads(0)
	assert.Equal(t, DownloadStats{Estimated: true}, zero)

	// Negative stars clamp rather than producing negative estimates.
	assert.Equal(t, DownloadStats{Estimated: true}, SyntheticDownloads(-3))
}

func TestParseDependencies(t *testing.T) {
	t.Parallel()

	t.Run("chart yaml style list", func(t *testing.T) {
		t.Parallel()

		data := []byte(`
dependencies:
  - name: postgresql
    version: 12.x.x
    repository: https://charts.bitnami.com/bitnami
    condition: postgresql.enabled
  - name: redis
    version: 17.x.x
`)
		deps := ParseDependencies(data)
		require.Len(t, deps, 2)
		assert.Equal(t, Dependency{
			Name:       "postgresql",
			Version:    "12.x.x",
			Repository: "https://charts.bitnami.com/bitnami",
			Condition:  "postgresql.enabled",
		}, deps[0])
		assert.Equal(t, "redis", deps[1].Name)
	})

	t.Run("nameless entries skipped", func(t *testing.T) {
		t.Parallel()

		data := []byte(`
dependencies:
  - version: 1.0.0
  - name: kept
`)
		deps := ParseDependencies(data)
		require.Len(t, deps, 1)
		assert.Equal(t, "kept", deps[0].Name)
	})

	t.Run("values file without dependencies key", func(t *testing.T) {
		t.Parallel()

		data := []byte("replicaCount: 2\nimage:\n  repository: nginx\n")
		assert.Nil(t, ParseDependencies(data))
	})

	t.Run("malformed yaml yields nothing", func(t *testing.T) {
		t.Parallel()

		assert.Nil(t, ParseDependencies([]byte("dependencies: [::")))
	})

	t.Run("empty input", func(t *testing.T) {
		t.Parallel()

		assert.Nil(t, ParseDependencies(nil))
	})
}
