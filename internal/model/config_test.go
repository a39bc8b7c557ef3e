package model

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, StorageSQLite, cfg.Storage.Backend)
	assert.Equal(t, "en", cfg.Locale)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "SAILCHECK_REVENUECAT_API_KEY", cfg.Subscription.APIKeyEnv)
}

func TestLoadConfigReadsYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte("storage:\n  backend: memory\nlocale: fr\nlog:\n  level: debug\n")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, StorageMemory, cfg.Storage.Backend)
	assert.Equal(t, "fr", cfg.Locale)
	assert.Equal(t, "debug", cfg.Log.Level)
	// Unset keys keep their defaults.
	assert.NotEmpty(t, cfg.Storage.Path)
}

func TestLoadConfigEnvOverride(t *testing.T) {
	t.Setenv("SAILCHECK_LOCALE", "es")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "es", cfg.Locale)
}

func TestLoadConfigRejectsUnknownBackend(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("storage:\n  backend: postgres\n"), 0o644))

	_, err := LoadConfig(path)
	assert.ErrorContains(t, err, "unknown storage backend")
}

func TestSaveConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := DefaultAppConfig()
	cfg.Locale = "fr"
	cfg.Storage.Backend = StorageMemory

	require.NoError(t, SaveConfig(path, cfg))

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "fr", loaded.Locale)
	assert.Equal(t, StorageMemory, loaded.Storage.Backend)
}
