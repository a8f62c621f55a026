package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetDefaultConfig(t *testing.T) {
	cfg := GetDefaultConfig()
	assert.Equal(t, "info", cfg.Global.LogLevel)
	assert.Equal(t, 20, cfg.Demo.SeedItems)
	assert.Equal(t, "auto", cfg.Flyout.Placement)
	assert.Equal(t, 48, cfg.Flyout.MaxWidth)
}

func TestLoadConfig_NoUserFile(t *testing.T) {
	orig := getUserConfigPath
	defer func() { getUserConfigPath = orig }()
	getUserConfigPath = func() (string, error) {
		return filepath.Join(t.TempDir(), "missing", "config.yaml"), nil
	}

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, GetDefaultConfig(), cfg)
}

func TestLoadConfig_UserOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := []byte(`
globalSettings:
  logLevel: debug
demo:
  seedItems: 5
flyout:
  placement: top
`)
	require.NoError(t, os.WriteFile(path, content, 0o644))

	orig := getUserConfigPath
	defer func() { getUserConfigPath = orig }()
	getUserConfigPath = func() (string, error) { return path, nil }

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Global.LogLevel)
	assert.Equal(t, 5, cfg.Demo.SeedItems)
	assert.Equal(t, "top", cfg.Flyout.Placement)
	// Untouched fields keep their defaults.
	assert.Equal(t, 10, cfg.Demo.WindowBefore)
	assert.Equal(t, "start", cfg.Flyout.Alignment)
}

func TestLoadConfig_MalformedFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("demo: [not a map"), 0o644))

	orig := getUserConfigPath
	defer func() { getUserConfigPath = orig }()
	getUserConfigPath = func() (string, error) { return path, nil }

	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestMergeConfigs_ZeroValuesDoNotOverride(t *testing.T) {
	base := GetDefaultConfig()
	merged := mergeConfigs(base, Config{})
	assert.Equal(t, base, merged)
}
