package service_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/chartscope/chartscope/internal/service"
)

func TestCacheKeys(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "readme:bitnami/nginx:latest", service.ReadmeCacheKey("bitnami", "nginx", "latest"))
	assert.Equal(t, "info:bitnami/nginx:1.2.3", service.InfoCacheKey("bitnami", "nginx", "1.2.3"))
	assert.Equal(t, "search:nginx web:20:40", service.SearchCacheKey("nginx web", 20, 40))
}

func TestCacheKeysDistinctAcrossOperations(t *testing.T) {
	t.Parallel()

	readme := service.ReadmeCacheKey("bitnami", "nginx", "latest")
	info := service.InfoCacheKey("bitnami", "nginx", "latest")
	assert.NotEqual(t, readme, info)
}
