package filtering

import (
	"github.com/chartscope/chartscope/pkg/logger"
)

// RefFilter is a NameFilter bound to a configured pattern set, applied to
// every search result before it is returned.
type RefFilter struct {
	include []string
	exclude []string
	filter  NameFilter
}

// NewRefFilter binds include/exclude patterns to the default NameFilter.
func NewRefFilter(include, exclude []string) *RefFilter {
	return &RefFilter{
		include: include,
		exclude: exclude,
		filter:  NewDefaultNameFilter(),
	}
}

// Allow reports whether the `repo/name` ref passes the configured
// patterns, logging the reason for dropped refs.
func (f *RefFilter) Allow(ref string) bool {
	ok, reason := f.filter.ShouldInclude(ref, f.include, f.exclude)
	if !ok {
		logger.Debugf("Filtered search result %s: %s", ref, reason)
	}
	return ok
}

// Empty reports whether no patterns are configured, letting callers skip
// the filter pass entirely.
func (f *RefFilter) Empty() bool {
	return len(f.include) == 0 && len(f.exclude) == 0
}
