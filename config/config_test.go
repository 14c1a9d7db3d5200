package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/a-sync/fnf-presets/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "servers-and-mods", cfg.Source.Base)
	assert.Equal(t, "presets.json", cfg.Source.Manifest)
	assert.Equal(t, 30*time.Second, cfg.Source.Timeout())
	assert.True(t, cfg.Source.Cache)
	assert.Equal(t, time.Hour, cfg.Source.CacheMaxAge())
	assert.Equal(t, "pogreb", cfg.Store.Driver)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "localhost:9000", cfg.Storage.Endpoint)
	assert.True(t, cfg.Storage.UseSSL)
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("PRESETS_SOURCE_BASE", "https://a-sync.github.io/fnf-presets/servers-and-mods")
	t.Setenv("PRESETS_SOURCE_TIMEOUT_SECONDS", "5")
	t.Setenv("PRESETS_STORE_DRIVER", "bolt")
	t.Setenv("PRESETS_STORAGE_USE_SSL", "false")

	cfg, err := config.Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "https://a-sync.github.io/fnf-presets/servers-and-mods", cfg.Source.Base)
	assert.Equal(t, 5*time.Second, cfg.Source.Timeout())
	assert.Equal(t, "bolt", cfg.Store.Driver)
	assert.False(t, cfg.Storage.UseSSL)
}

func TestLoad_DotEnv(t *testing.T) {
	dir := t.TempDir()
	env := "PRESETS_SOURCE_MANIFEST=presets.pack\nPRESETS_LOG_LEVEL=debug\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(env), 0644))
	t.Cleanup(func() {
		os.Unsetenv("PRESETS_SOURCE_MANIFEST")
		os.Unsetenv("PRESETS_LOG_LEVEL")
	})

	cfg, err := config.Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "presets.pack", cfg.Source.Manifest)
	assert.Equal(t, "debug", cfg.Log.Level)
}
