// Package converters holds the pure transforms applied to registry payloads
// before they are returned to callers: timestamp and name normalization,
// install command synthesis, synthetic download stats, and Chart.yaml-style
// dependency parsing.
package converters

import (
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Per-star multipliers for the synthetic download estimate.
const (
	downloadsPerStarDay   = 50
	downloadsPerStarWeek  = 350
	downloadsPerStarMonth = 1500
)

// DownloadStats is a synthetic popularity proxy derived from the chart's
// star count. The registry exposes no real download analytics; Estimated is
// always true so consumers cannot mistake these for measured numbers.
type DownloadStats struct {
	Day       int64 `json:"day"`
	Week      int64 `json:"week"`
	Month     int64 `json:"month"`
	Estimated bool  `json:"estimated"`
}

// Dependency is one entry of a Chart.yaml-style dependencies list.
type Dependency struct {
	Name       string `json:"name" yaml:"name"`
	Version    string `json:"version,omitempty" yaml:"version"`
	Repository string `json:"repository,omitempty" yaml:"repository"`
	Condition  string `json:"condition,omitempty" yaml:"condition"`
}

// FormatTimestamp renders a Unix-seconds timestamp as an ISO 8601 UTC string
// at second precision ("2006-01-02T15:04:05Z"). Non-positive timestamps
// render as the empty string.
func FormatTimestamp(unixSeconds int64) string {
	if unixSeconds <= 0 {
		return ""
	}
	return time.Unix(unixSeconds, 0).UTC().Format(time.RFC3339)
}

// DisplayName returns displayName, falling back to name when displayName is
// empty or whitespace.
func DisplayName(displayName, name string) string {
	if strings.TrimSpace(displayName) == "" {
		return name
	}
	return displayName
}

// InstallCommand synthesizes the helm install command for a chart. A
// non-empty version adds an explicit --version flag.
func InstallCommand(repository, name, version string) string {
	cmd := fmt.Sprintf("helm install my-%s %s/%s", name, repository, name)
	if version != "" {
		cmd += " --version " + version
	}
	return cmd
}

// SyntheticDownloads estimates download stats from a star count using fixed
// per-star day/week/month multipliers. Negative star counts clamp to zero.
func SyntheticDownloads(stars int) DownloadStats {
	if stars < 0 {
		stars = 0
	}
	s := int64(stars)
	return DownloadStats{
		Day:       s * downloadsPerStarDay,
		Week:      s * downloadsPerStarWeek,
		Month:     s * downloadsPerStarMonth,
		Estimated: true,
	}
}

// ParseDependencies extracts a Chart.yaml-style dependencies list from YAML
// text. It is an enrichment parser: malformed YAML, a missing dependencies
// key, or nameless entries yield fewer dependencies, never an error. The
// caller decides which document to feed it (see config compat.dependency_source).
func ParseDependencies(data []byte) []Dependency {
	if len(data) == 0 {
		return nil
	}

	var doc struct {
		Dependencies []Dependency `yaml:"dependencies"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil
	}

	var deps []Dependency
	for _, d := range doc.Dependencies {
		if strings.TrimSpace(d.Name) == "" {
			continue
		}
		deps = append(deps, d)
	}
	return deps
}
