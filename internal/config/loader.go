package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// For mocking in tests
var osUserHomeDir = os.UserHomeDir

const (
	userConfigDir  = ".config/glide"
	configFileName = "config.yaml"
)

// LoadConfig loads the glide configuration by layering the user file
// over the built-in defaults. A missing user file is not an error.
func LoadConfig() (Config, error) {
	config := GetDefaultConfig()

	userConfigPath, err := getUserConfigPath()
	if err != nil {
		// User config is optional; fall back to defaults.
		fmt.Fprintf(os.Stderr, "Warning: could not determine user config path: %v\n", err)
		return config, nil
	}

	if _, err := os.Stat(userConfigPath); os.IsNotExist(err) {
		return config, nil
	}

	userConfig, err := loadConfigFromFile(userConfigPath)
	if err != nil {
		return Config{}, fmt.Errorf("loading user config from %s: %w", userConfigPath, err)
	}
	return mergeConfigs(config, userConfig), nil
}

var getUserConfigPath = func() (string, error) {
	homeDir, err := osUserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(homeDir, userConfigDir, configFileName), nil
}

func loadConfigFromFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config file: %w", err)
	}
	return cfg, nil
}

// mergeConfigs overlays non-zero fields of override onto base.
func mergeConfigs(base, override Config) Config {
	if override.Global.LogLevel != "" {
		base.Global.LogLevel = override.Global.LogLevel
	}
	if override.Demo.SeedItems != 0 {
		base.Demo.SeedItems = override.Demo.SeedItems
	}
	if override.Demo.WindowBefore != 0 {
		base.Demo.WindowBefore = override.Demo.WindowBefore
	}
	if override.Demo.WindowAfter != 0 {
		base.Demo.WindowAfter = override.Demo.WindowAfter
	}
	if override.Flyout.Placement != "" {
		base.Flyout.Placement = override.Flyout.Placement
	}
	if override.Flyout.Alignment != "" {
		base.Flyout.Alignment = override.Flyout.Alignment
	}
	if override.Flyout.MaxWidth != 0 {
		base.Flyout.MaxWidth = override.Flyout.MaxWidth
	}
	return base
}
