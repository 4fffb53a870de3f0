package versions

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsNewerVersion(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		newVersion string
		oldVersion string
		expected   bool
	}{
		{name: "newer major version", newVersion: "2.0.0", oldVersion: "1.0.0", expected: true},
		{name: "newer patch version", newVersion: "1.0.2", oldVersion: "1.0.1", expected: true},
		{name: "older version", newVersion: "1.0.0", oldVersion: "2.0.0", expected: false},
		{name: "equal versions", newVersion: "1.0.0", oldVersion: "1.0.0", expected: false},
		{name: "prerelease vs release", newVersion: "1.0.0", oldVersion: "1.0.0-alpha", expected: true},
		{name: "newer prerelease", newVersion: "1.0.0-beta", oldVersion: "1.0.0-alpha", expected: true},
		{name: "non-semver string comparison", newVersion: "version-b", oldVersion: "version-a", expected: true},
		{name: "empty new version", newVersion: "", oldVersion: "1.0.0", expected: false},
		{name: "v prefix newer", newVersion: "v2.0.0", oldVersion: "v1.0.0", expected: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			result := IsNewerVersion(tt.newVersion, tt.oldVersion)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestSortDescending(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		versions []string
		expected []string
	}{
		{
			name:     "empty",
			versions: nil,
			expected: nil,
		},
		{
			name:     "semver newest first",
			versions: []string{"1.0.0", "2.1.0", "1.5.3"},
			expected: []string{"2.1.0", "1.5.3", "1.0.0"},
		},
		{
			name:     "prereleases before their release",
			versions: []string{"2.0.0-rc.1", "2.0.0", "1.9.0"},
			expected: []string{"2.0.0", "2.0.0-rc.1", "1.9.0"},
		},
		{
			name:     "v prefix parses as semver",
			versions: []string{"v1.0.0", "2.0.0"},
			expected: []string{"2.0.0", "v1.0.0"},
		},
		{
			name:     "non-semver after semver, strings descending",
			versions: []string{"nightly", "1.0.0", "edge", "2.0.0"},
			expected: []string{"2.0.0", "1.0.0", "nightly", "edge"},
		},
		{
			name:     "only non-semver",
			versions: []string{"alpha", "charlie", "bravo"},
			expected: []string{"charlie", "bravo", "alpha"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := SortDescending(tt.versions)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestSortDescendingDoesNotMutateInput(t *testing.T) {
	t.Parallel()

	in := []string{"1.0.0", "3.0.0", "2.0.0"}
	_ = SortDescending(in)
	assert.Equal(t, []string{"1.0.0", "3.0.0", "2.0.0"}, in)
}
