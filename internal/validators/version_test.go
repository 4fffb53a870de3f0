package validators

import "testing"

func TestNormalizeVersion(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		version  string
		expected string
	}{
		{name: "empty maps to latest", version: "", expected: "latest"},
		{name: "whitespace maps to latest", version: "   ", expected: "latest"},
		{name: "latest stays latest", version: "latest", expected: "latest"},
		{name: "latest is case insensitive", version: "Latest", expected: "latest"},
		{name: "v prefix before digit is stripped", version: "v1.2.3", expected: "1.2.3"},
		{name: "v prefix with surrounding space", version: " v2.0.0 ", expected: "2.0.0"},
		{name: "plain semver unchanged", version: "1.2.3", expected: "1.2.3"},
		{name: "v not followed by digit unchanged", version: "version-1", expected: "version-1"},
		{name: "bare v unchanged", version: "v", expected: "v"},
		{name: "prerelease preserved", version: "v1.0.0-rc.1", expected: "1.0.0-rc.1"},
		{name: "non-semver passthrough trimmed", version: "  stable  ", expected: "stable"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := NormalizeVersion(tt.version); got != tt.expected {
				t.Errorf("NormalizeVersion(%q) = %q, want %q", tt.version, got, tt.expected)
			}
		})
	}
}
