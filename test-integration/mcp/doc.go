// Package integration provides integration tests for the ChartScope MCP
// server. These tests run the assembled application against a fake chart
// registry, covering the three tools end to end: readme fallbacks, info
// assembly, search filtering, caching and retry behavior.
package integration
