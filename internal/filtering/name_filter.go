// Package filtering decides which search results are surfaced, using glob
// patterns over `repo/name` chart refs. Include and exclude lists follow
// the usual precedence: exclude wins, a non-empty include list is a
// whitelist, and no patterns at all include everything.
package filtering

import (
	"fmt"
	"path/filepath"

	"github.com/gobwas/glob"
)

// NameFilter decides whether a chart ref passes include/exclude patterns.
type NameFilter interface {
	// ShouldInclude reports whether ref passes, with a human-readable
	// reason for the decision.
	ShouldInclude(ref string, include, exclude []string) (bool, string)
}

type defaultNameFilter struct{}

var _ NameFilter = (*defaultNameFilter)(nil)

// NewDefaultNameFilter creates the glob-based NameFilter.
func NewDefaultNameFilter() NameFilter {
	return &defaultNameFilter{}
}

// matchPattern matches a glob pattern against a ref. Uses gobwas/glob so
// `*` matches across the `/` separating repository and chart name, which
// filepath.Match would not allow; filepath.Match still runs first purely
// to reject malformed patterns.
func matchPattern(pattern, ref string) (bool, error) {
	if _, err := filepath.Match(pattern, "probe"); err != nil {
		return false, err
	}

	compiled, err := glob.Compile(pattern)
	if err != nil {
		return false, fmt.Errorf("invalid glob pattern: %v", err)
	}
	return compiled.Match(ref), nil
}

// ValidatePatterns reports the first malformed pattern in the list. Run
// at config load so a bad pattern fails startup instead of silently
// dropping every result.
func ValidatePatterns(patterns []string) error {
	for _, pattern := range patterns {
		if _, err := matchPattern(pattern, "probe/probe"); err != nil {
			return fmt.Errorf("pattern %q: %w", pattern, err)
		}
	}
	return nil
}

// ShouldInclude applies the precedence rules:
//
//  1. A matching exclude pattern excludes, regardless of includes.
//  2. With include patterns present, the ref must match one of them.
//  3. Only excludes present and none matched: include.
//  4. No patterns at all: include.
func (*defaultNameFilter) ShouldInclude(ref string, include, exclude []string) (bool, string) {
	for _, pattern := range exclude {
		matches, err := matchPattern(pattern, ref)
		if err != nil {
			return false, fmt.Sprintf("invalid exclude pattern %q: %v", pattern, err)
		}
		if matches {
			return false, fmt.Sprintf("excluded by pattern %q", pattern)
		}
	}

	if len(include) > 0 {
		for _, pattern := range include {
			matches, err := matchPattern(pattern, ref)
			if err != nil {
				return false, fmt.Sprintf("invalid include pattern %q: %v", pattern, err)
			}
			if matches {
				return true, fmt.Sprintf("included by pattern %q", pattern)
			}
		}
		return false, fmt.Sprintf("no match in include patterns %v", include)
	}

	if len(exclude) > 0 {
		return true, fmt.Sprintf("no match in exclude patterns %v", exclude)
	}
	return true, "no filters configured"
}
