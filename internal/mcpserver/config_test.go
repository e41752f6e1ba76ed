package mcpserver

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// clearMCPEnv clears all ASYNCFORGE_MCP_* env vars to isolate tests from the ambient environment.
func clearMCPEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"ASYNCFORGE_MCP_CACHE_ENABLED", "ASYNCFORGE_MCP_CACHE_MAX_SIZE",
		"ASYNCFORGE_MCP_CACHE_FILE_TTL", "ASYNCFORGE_MCP_CACHE_CONTENT_TTL",
		"ASYNCFORGE_MCP_CACHE_SWEEP_INTERVAL", "ASYNCFORGE_MCP_LIST_LIMIT",
		"ASYNCFORGE_MCP_MAX_LIMIT", "ASYNCFORGE_MCP_MAX_INLINE_SIZE",
		"ASYNCFORGE_MCP_VALIDATE_STRICT", "ASYNCFORGE_MCP_VALIDATE_NO_WARNINGS",
		"ASYNCFORGE_MCP_COLLISION", "ASYNCFORGE_MCP_CONCURRENCY",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	clearMCPEnv(t)

	c := loadConfig()

	assert.True(t, c.CacheEnabled)
	assert.Equal(t, 10, c.CacheMaxSize)
	assert.Equal(t, 15*time.Minute, c.CacheFileTTL)
	assert.Equal(t, 15*time.Minute, c.CacheContentTTL)
	assert.Equal(t, 60*time.Second, c.CacheSweepInterval)
	assert.Equal(t, 100, c.ListLimit)
	assert.Equal(t, 1000, c.MaxLimit)
	assert.Equal(t, int64(10*1024*1024), c.MaxInlineSize)
	assert.False(t, c.ValidateStrict)
	assert.False(t, c.ValidateNoWarnings)
	assert.Empty(t, c.Collision)
	assert.Equal(t, 1, c.Concurrency)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	clearMCPEnv(t)
	t.Setenv("ASYNCFORGE_MCP_CACHE_ENABLED", "false")
	t.Setenv("ASYNCFORGE_MCP_CACHE_MAX_SIZE", "50")
	t.Setenv("ASYNCFORGE_MCP_CACHE_FILE_TTL", "30m")
	t.Setenv("ASYNCFORGE_MCP_CACHE_CONTENT_TTL", "10m")
	t.Setenv("ASYNCFORGE_MCP_CACHE_SWEEP_INTERVAL", "30s")
	t.Setenv("ASYNCFORGE_MCP_LIST_LIMIT", "20")
	t.Setenv("ASYNCFORGE_MCP_MAX_INLINE_SIZE", "1024")
	t.Setenv("ASYNCFORGE_MCP_VALIDATE_STRICT", "true")
	t.Setenv("ASYNCFORGE_MCP_VALIDATE_NO_WARNINGS", "1")
	t.Setenv("ASYNCFORGE_MCP_COLLISION", "warn")
	t.Setenv("ASYNCFORGE_MCP_CONCURRENCY", "4")

	c := loadConfig()

	assert.False(t, c.CacheEnabled)
	assert.Equal(t, 50, c.CacheMaxSize)
	assert.Equal(t, 30*time.Minute, c.CacheFileTTL)
	assert.Equal(t, 10*time.Minute, c.CacheContentTTL)
	assert.Equal(t, 30*time.Second, c.CacheSweepInterval)
	assert.Equal(t, 20, c.ListLimit)
	assert.Equal(t, int64(1024), c.MaxInlineSize)
	assert.True(t, c.ValidateStrict)
	assert.True(t, c.ValidateNoWarnings)
	assert.Equal(t, "warn", c.Collision)
	assert.Equal(t, 4, c.Concurrency)
}

func TestLoadConfig_InvalidValuesFallBack(t *testing.T) {
	clearMCPEnv(t)
	t.Setenv("ASYNCFORGE_MCP_CACHE_ENABLED", "maybe")
	t.Setenv("ASYNCFORGE_MCP_CACHE_MAX_SIZE", "-3")
	t.Setenv("ASYNCFORGE_MCP_CACHE_FILE_TTL", "soon")
	t.Setenv("ASYNCFORGE_MCP_LIST_LIMIT", "many")
	t.Setenv("ASYNCFORGE_MCP_COLLISION", "merge")

	c := loadConfig()

	assert.True(t, c.CacheEnabled)
	assert.Equal(t, 10, c.CacheMaxSize)
	assert.Equal(t, 15*time.Minute, c.CacheFileTTL)
	assert.Equal(t, 100, c.ListLimit)
	assert.Empty(t, c.Collision)
}
