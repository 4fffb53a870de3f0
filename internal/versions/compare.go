package versions

import (
	"sort"

	"github.com/Masterminds/semver/v3"
)

// IsNewerVersion reports whether newVersion is strictly greater than oldVersion.
// It uses semantic versioning for comparison when both strings are valid semver,
// and falls back to lexicographic string comparison otherwise.
func IsNewerVersion(newVersion, oldVersion string) bool {
	newSemver, errNew := semver.NewVersion(newVersion)
	oldSemver, errOld := semver.NewVersion(oldVersion)

	if errNew != nil || errOld != nil {
		// Fallback to string comparison if semver parsing fails
		return newVersion > oldVersion
	}

	return newSemver.GreaterThan(oldSemver)
}

// SortDescending returns the versions ordered newest first. Valid semver
// entries sort by semantic version; entries that fail semver parsing sort
// after all parseable ones, compared as plain strings descending. The input
// slice is not modified.
func SortDescending(versions []string) []string {
	if len(versions) == 0 {
		return nil
	}

	type parsed struct {
		raw string
		sv  *semver.Version
	}

	valid := make([]parsed, 0, len(versions))
	var invalid []string
	for _, v := range versions {
		sv, err := semver.NewVersion(v)
		if err != nil {
			invalid = append(invalid, v)
			continue
		}
		valid = append(valid, parsed{raw: v, sv: sv})
	}

	sort.SliceStable(valid, func(i, j int) bool {
		return valid[i].sv.GreaterThan(valid[j].sv)
	})
	sort.SliceStable(invalid, func(i, j int) bool {
		return invalid[i] > invalid[j]
	})

	out := make([]string, 0, len(versions))
	for _, p := range valid {
		out = append(out, p.raw)
	}
	return append(out, invalid...)
}
