// Package validators provides validation functions for chart query inputs.
package validators

import (
	"regexp"
	"strings"

	cherr "github.com/chartscope/chartscope/pkg/errors"
)

const (
	maxSegmentLength = 100
	maxQueryLength   = 250

	// MaxSearchLimit bounds the page size accepted from callers.
	MaxSearchLimit = 100
	// DefaultSearchLimit applies when the caller omits a limit.
	DefaultSearchLimit = 20
)

// segmentPattern restricts repository and chart name segments to the
// registry-safe character set.
var segmentPattern = regexp.MustCompile(`^[A-Za-z0-9_.-]+$`)

// reservedWords are segment values rejected regardless of charset, matched
// case-insensitively. Mostly filesystem-hostile names.
var reservedWords = map[string]struct{}{
	".": {}, "..": {},
	"con": {}, "prn": {}, "aux": {}, "nul": {},
	"com1": {}, "com2": {}, "com3": {}, "com4": {}, "com5": {},
	"com6": {}, "com7": {}, "com8": {}, "com9": {},
	"lpt1": {}, "lpt2": {}, "lpt3": {}, "lpt4": {}, "lpt5": {},
	"lpt6": {}, "lpt7": {}, "lpt8": {}, "lpt9": {},
}

// ValidateChartRef validates a repository and chart name pair.
// Each segment must be non-empty after trimming, at most 100 characters,
// restricted to [A-Za-z0-9_.-], and not a reserved word.
// Returns the trimmed segments and an INVALID_INPUT error on violation.
func ValidateChartRef(repository, name string) (string, string, error) {
	repository = strings.TrimSpace(repository)
	name = strings.TrimSpace(name)

	if err := validateSegment("repository", repository); err != nil {
		return "", "", err
	}
	if err := validateSegment("chart name", name); err != nil {
		return "", "", err
	}
	return repository, name, nil
}

// SplitChartRef splits a combined "repository/name" reference and validates
// both segments. Zero or multiple slashes are rejected.
func SplitChartRef(ref string) (string, string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", "", cherr.New(cherr.ErrCodeInvalidInput, "chart reference cannot be empty")
	}

	switch strings.Count(ref, "/") {
	case 1:
		// expected form
	case 0:
		return "", "", cherr.New(cherr.ErrCodeInvalidInput,
			"chart reference must be in format 'repository/name' (e.g., 'bitnami/redis')")
	default:
		return "", "", cherr.New(cherr.ErrCodeInvalidInput,
			"chart reference must contain exactly one '/' separator")
	}

	parts := strings.SplitN(ref, "/", 2)
	return ValidateChartRef(parts[0], parts[1])
}

func validateSegment(field, value string) error {
	if value == "" {
		return cherr.New(cherr.ErrCodeInvalidInput, "%s cannot be empty", field)
	}
	if len(value) > maxSegmentLength {
		return cherr.New(cherr.ErrCodeInvalidInput,
			"%s exceeds maximum length of %d characters", field, maxSegmentLength)
	}
	if !segmentPattern.MatchString(value) {
		return cherr.New(cherr.ErrCodeInvalidInput,
			"%s '%s' contains invalid characters; allowed: letters, digits, '_', '.', '-'", field, value)
	}
	if _, reserved := reservedWords[strings.ToLower(value)]; reserved {
		return cherr.New(cherr.ErrCodeInvalidInput, "%s '%s' is a reserved word", field, value)
	}
	return nil
}

// IsValidChartRef checks if a combined chart reference is valid.
// This is a convenience wrapper around SplitChartRef for boolean checks.
func IsValidChartRef(ref string) bool {
	_, _, err := SplitChartRef(ref)
	return err == nil
}

// ValidateSearchQuery validates and trims a free-text search query.
func ValidateSearchQuery(query string) (string, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return "", cherr.New(cherr.ErrCodeInvalidInput, "search query cannot be empty")
	}
	if len(query) > maxQueryLength {
		return "", cherr.New(cherr.ErrCodeInvalidInput,
			"search query exceeds maximum length of %d characters", maxQueryLength)
	}
	return query, nil
}

// ValidateSearchWindow validates limit and offset, applying the default
// limit when zero. Negative offsets and out-of-range limits are rejected.
func ValidateSearchWindow(limit, offset int) (int, int, error) {
	if limit == 0 {
		limit = DefaultSearchLimit
	}
	if limit < 1 || limit > MaxSearchLimit {
		return 0, 0, cherr.New(cherr.ErrCodeInvalidInput,
			"limit must be between 1 and %d", MaxSearchLimit)
	}
	if offset < 0 {
		return 0, 0, cherr.New(cherr.ErrCodeInvalidInput, "offset cannot be negative")
	}
	return limit, offset, nil
}
