package mcpserver

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/erraggy/asyncforge/processing"
)

// serverConfig holds all configurable MCP server defaults.
// Loaded once at startup from environment variables via loadConfig().
type serverConfig struct {
	// Cache settings.
	CacheEnabled       bool
	CacheMaxSize       int
	CacheFileTTL       time.Duration
	CacheContentTTL    time.Duration
	CacheSweepInterval time.Duration

	// Result list defaults.
	ListLimit int
	MaxLimit  int

	// Input limits.
	MaxInlineSize int64

	// Validation defaults.
	ValidateStrict     bool
	ValidateNoWarnings bool

	// Processing defaults.
	Collision   string
	Concurrency int
}

// cfg is the active server configuration, initialized at package load time.
var cfg = loadConfig()

// loadConfig reads configuration from ASYNCFORGE_MCP_* environment variables.
// Invalid values log a warning and fall back to the hardcoded default.
func loadConfig() *serverConfig {
	return &serverConfig{
		CacheEnabled:       envBool("ASYNCFORGE_MCP_CACHE_ENABLED", true),
		CacheMaxSize:       envInt("ASYNCFORGE_MCP_CACHE_MAX_SIZE", 10),
		CacheFileTTL:       envDuration("ASYNCFORGE_MCP_CACHE_FILE_TTL", 15*time.Minute),
		CacheContentTTL:    envDuration("ASYNCFORGE_MCP_CACHE_CONTENT_TTL", 15*time.Minute),
		CacheSweepInterval: envDuration("ASYNCFORGE_MCP_CACHE_SWEEP_INTERVAL", 60*time.Second),
		ListLimit:          envInt("ASYNCFORGE_MCP_LIST_LIMIT", 100),
		MaxLimit:           envInt("ASYNCFORGE_MCP_MAX_LIMIT", 1000),
		MaxInlineSize:      int64(envInt("ASYNCFORGE_MCP_MAX_INLINE_SIZE", 10*1024*1024)),
		ValidateStrict:     envBool("ASYNCFORGE_MCP_VALIDATE_STRICT", false),
		ValidateNoWarnings: envBool("ASYNCFORGE_MCP_VALIDATE_NO_WARNINGS", false),
		Collision:          envCollision("ASYNCFORGE_MCP_COLLISION"),
		Concurrency:        envInt("ASYNCFORGE_MCP_CONCURRENCY", 1),
	}
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		slog.Warn("invalid bool env var, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return b
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		slog.Warn("invalid int env var, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return n
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		slog.Warn("invalid duration env var, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return d
}

// envCollision reads a collision policy name. Unknown names are ignored.
func envCollision(key string) string {
	v := os.Getenv(key)
	if v == "" {
		return ""
	}
	if _, err := processing.ParseCollisionPolicy(v); err != nil {
		slog.Warn("invalid collision policy env var, ignoring", "key", key, "value", v)
		return ""
	}
	return v
}
