package mcpserver

import (
	"testing"
	"time"

	"github.com/erraggy/oasrebase/rebase"
	"github.com/stretchr/testify/assert"
)

// clearOASREBASEEnv clears all OASREBASE_* env vars to isolate tests from the ambient environment.
func clearOASREBASEEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"OASREBASE_NAMING_POLICY", "OASREBASE_MAX_INLINE_SIZE",
		"OASREBASE_RESOLVE_EXTERNAL", "OASREBASE_HTTP_TIMEOUT",
		"OASREBASE_MAX_REF_DEPTH", "OASREBASE_ALLOW_PRIVATE_IPS",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	clearOASREBASEEnv(t)

	c := loadConfig()

	assert.Equal(t, rebase.NamingLeaf, c.NamingPolicy)
	assert.Equal(t, int64(10*1024*1024), c.MaxInlineSize)
	assert.False(t, c.ResolveExternal)
	assert.Equal(t, 30*time.Second, c.HTTPTimeout)
	assert.Equal(t, 100, c.MaxRefDepth)
	assert.False(t, c.AllowPrivateIPs)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	clearOASREBASEEnv(t)
	t.Setenv("OASREBASE_NAMING_POLICY", "qualified")
	t.Setenv("OASREBASE_MAX_INLINE_SIZE", "1024")
	t.Setenv("OASREBASE_RESOLVE_EXTERNAL", "true")
	t.Setenv("OASREBASE_HTTP_TIMEOUT", "5s")
	t.Setenv("OASREBASE_MAX_REF_DEPTH", "7")
	t.Setenv("OASREBASE_ALLOW_PRIVATE_IPS", "1")

	c := loadConfig()

	assert.Equal(t, rebase.NamingQualified, c.NamingPolicy)
	assert.Equal(t, int64(1024), c.MaxInlineSize)
	assert.True(t, c.ResolveExternal)
	assert.Equal(t, 5*time.Second, c.HTTPTimeout)
	assert.Equal(t, 7, c.MaxRefDepth)
	assert.True(t, c.AllowPrivateIPs)
}

func TestLoadConfig_InvalidValuesFallBack(t *testing.T) {
	clearOASREBASEEnv(t)
	t.Setenv("OASREBASE_NAMING_POLICY", "shortest")
	t.Setenv("OASREBASE_MAX_INLINE_SIZE", "-1")
	t.Setenv("OASREBASE_RESOLVE_EXTERNAL", "maybe")
	t.Setenv("OASREBASE_HTTP_TIMEOUT", "soon")
	t.Setenv("OASREBASE_MAX_REF_DEPTH", "zero")

	c := loadConfig()

	assert.Equal(t, rebase.NamingLeaf, c.NamingPolicy)
	assert.Equal(t, int64(10*1024*1024), c.MaxInlineSize)
	assert.False(t, c.ResolveExternal)
	assert.Equal(t, 30*time.Second, c.HTTPTimeout)
	assert.Equal(t, 100, c.MaxRefDepth)
}
