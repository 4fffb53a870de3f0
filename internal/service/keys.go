// Package service implements the chart lookup operations behind the tools:
// readme retrieval with usage-example extraction, chart metadata assembly,
// and search. Each operation validates its inputs, consults the shared
// cache, and only then reaches out to the registry.
package service

import "fmt"

// Cache keys are namespaced per operation so all operations share a single
// store. Inputs are already validated, so the separators cannot collide
// with key content.

// ReadmeCacheKey builds the cache key for a readme lookup.
func ReadmeCacheKey(repository, name, version string) string {
	return fmt.Sprintf("readme:%s/%s:%s", repository, name, version)
}

// InfoCacheKey builds the cache key for a chart metadata lookup.
func InfoCacheKey(repository, name, version string) string {
	return fmt.Sprintf("info:%s/%s:%s", repository, name, version)
}

// SearchCacheKey builds the cache key for a search, including the window
// so paged queries cache independently.
func SearchCacheKey(query string, limit, offset int) string {
	return fmt.Sprintf("search:%s:%d:%d", query, limit, offset)
}
