package validators

import "strings"

// LatestVersion is the canonical marker for "newest published version".
const LatestVersion = "latest"

// NormalizeVersion canonicalizes a requested chart version:
// "latest", "" and whitespace-only all map to "latest"; a leading 'v'
// followed by a digit is stripped ("v1.2.3" becomes "1.2.3"); anything
// else is returned trimmed.
func NormalizeVersion(version string) string {
	version = strings.TrimSpace(version)
	if version == "" || strings.EqualFold(version, LatestVersion) {
		return LatestVersion
	}
	if len(version) >= 2 && version[0] == 'v' && version[1] >= '0' && version[1] <= '9' {
		return version[1:]
	}
	return version
}
