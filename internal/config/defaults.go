package config

// GetDefaultConfig returns the built-in configuration used when no
// user file overrides it.
func GetDefaultConfig() Config {
	return Config{
		Global: GlobalSettings{
			LogLevel: "info",
		},
		Demo: DemoConfig{
			SeedItems:    20,
			WindowBefore: 10,
			WindowAfter:  10,
		},
		Flyout: FlyoutConfig{
			Placement: "auto",
			Alignment: "start",
			MaxWidth:  48,
		},
	}
}
