package mcpserver

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/erraggy/oasrebase/rebase"
)

// serverConfig holds all configurable MCP server defaults.
// Loaded once at startup from environment variables via loadConfig().
type serverConfig struct {
	// NamingPolicy is the default policy for rebase_definitions.
	NamingPolicy rebase.NamingPolicy

	// Input limits.
	MaxInlineSize int64

	// External reference settings.
	ResolveExternal bool
	HTTPTimeout     time.Duration
	MaxRefDepth     int
	AllowPrivateIPs bool
}

// cfg is the active server configuration, initialized at package load time.
var cfg = loadConfig()

// loadConfig reads configuration from OASREBASE_* environment variables.
// Invalid values log a warning and fall back to the hardcoded default.
func loadConfig() *serverConfig {
	return &serverConfig{
		NamingPolicy:    envPolicy("OASREBASE_NAMING_POLICY", rebase.NamingLeaf),
		MaxInlineSize:   int64(envInt("OASREBASE_MAX_INLINE_SIZE", 10*1024*1024)),
		ResolveExternal: envBool("OASREBASE_RESOLVE_EXTERNAL", false),
		HTTPTimeout:     envDuration("OASREBASE_HTTP_TIMEOUT", 30*time.Second),
		MaxRefDepth:     envInt("OASREBASE_MAX_REF_DEPTH", 100),
		AllowPrivateIPs: envBool("OASREBASE_ALLOW_PRIVATE_IPS", false),
	}
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		slog.Warn("invalid bool env var, using default", "key", key, "value", v, "default", fallback) //nolint:gosec // G706: values are structured log fields, not format strings
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
		slog.Warn("invalid int env var, using default", "key", key, "value", v, "default", fallback) //nolint:gosec // G706: values are structured log fields, not format strings
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
		slog.Warn("invalid duration env var, using default", "key", key, "value", v, "default", fallback) //nolint:gosec // G706: values are structured log fields, not format strings
		return fallback
	}
	return d
}

func envPolicy(key string, fallback rebase.NamingPolicy) rebase.NamingPolicy {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	p, err := rebase.ParseNamingPolicy(v)
	if err != nil {
		slog.Warn("invalid naming policy env var, using default", "key", key, "value", v, "default", fallback.String()) //nolint:gosec // G706: values are structured log fields, not format strings
		return fallback
	}
	return p
}
