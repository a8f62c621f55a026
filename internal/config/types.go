package config

// Config is the top-level configuration structure for glide.
type Config struct {
	Global GlobalSettings `yaml:"globalSettings"`
	Demo   DemoConfig     `yaml:"demo"`
	Flyout FlyoutConfig   `yaml:"flyout"`
}

// GlobalSettings holds settings that apply across commands.
type GlobalSettings struct {
	LogLevel string `yaml:"logLevel,omitempty"` // debug, info, warn, error
}

// DemoConfig configures the demo TUI.
type DemoConfig struct {
	// SeedItems is how many sample rows the demo vector starts with.
	SeedItems int `yaml:"seedItems,omitempty"`
	// WindowBefore and WindowAfter size the fetch window around the
	// cursor when paging.
	WindowBefore int `yaml:"windowBefore,omitempty"`
	WindowAfter  int `yaml:"windowAfter,omitempty"`
}

// FlyoutConfig sets defaults applied to flyouts the demo opens.
type FlyoutConfig struct {
	Placement string `yaml:"placement,omitempty"` // auto, top, bottom, left, right
	Alignment string `yaml:"alignment,omitempty"` // start, center, end
	MaxWidth  int    `yaml:"maxWidth,omitempty"`
}
