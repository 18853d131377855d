package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "storefront.db", c.DatabaseDSN)
	assert.Equal(t, 800*time.Millisecond, c.AuthLatency)
	assert.Equal(t, "http://localhost:8000/api", c.OrderAPIAddr)
	assert.Equal(t, 10*time.Second, c.OrderAPITimeout)
}

func TestLoadConfig_UsesDefaultsBeforeParsing(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"app"}

	cfg := LoadConfig()

	require.NotNil(t, cfg, "LoadConfig must not return nil")
	assert.Equal(t, "storefront.db", cfg.DatabaseDSN)
	assert.Equal(t, 800*time.Millisecond, cfg.AuthLatency)
}

func TestLoadConfig_FlagsOverrideDefaults(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"app", "-d", "alt.db", "-l", "0", "-o", "http://api.example:9000"}

	cfg := LoadConfig()

	assert.Equal(t, "alt.db", cfg.DatabaseDSN)
	assert.Equal(t, time.Duration(0), cfg.AuthLatency)
	assert.Equal(t, "http://api.example:9000", cfg.OrderAPIAddr)
}
