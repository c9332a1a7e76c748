// Package config provides configuration types, defaults and validation for deff.
package config

import "time"

// Theme modes
const (
	ThemeAuto  = "auto"
	ThemeDark  = "dark"
	ThemeLight = "light"
)

// Config holds all configuration options for deff
type Config struct {
	// Comparison
	Strategy           string `mapstructure:"strategy"`
	StrategyExplicit   bool   `mapstructure:"-"`
	Base               string `mapstructure:"base"`
	Head               string `mapstructure:"head"`
	IncludeUncommitted bool   `mapstructure:"include_uncommitted"`

	// Presentation
	Theme            string `mapstructure:"theme"` // "auto" (default), "dark" or "light"
	SyntaxStyleDark  string `mapstructure:"syntax_style_dark"`
	SyntaxStyleLight string `mapstructure:"syntax_style_light"`

	Wheel WheelConfig `mapstructure:"wheel"`
	Watch WatchConfig `mapstructure:"watch"`
	Log   LogConfig   `mapstructure:"log"`
}

// WheelConfig holds mouse wheel step sizes
type WheelConfig struct {
	Lines   int `mapstructure:"lines"`   // vertical step
	Columns int `mapstructure:"columns"` // horizontal step for shift+wheel
}

// WatchConfig controls the working tree watcher
type WatchConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Debounce time.Duration `mapstructure:"debounce"`
}

// LogConfig controls the file logger
type LogConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

// Defaults returns the default configuration
func Defaults() Config {
	return Config{
		Head:             "HEAD",
		Theme:            ThemeAuto,
		SyntaxStyleDark:  "monokai",
		SyntaxStyleLight: "github",
		Wheel: WheelConfig{
			Lines:   3,
			Columns: 8,
		},
		Watch: WatchConfig{
			Enabled:  true,
			Debounce: 300 * time.Millisecond,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// EffectiveStrategy returns the strategy to use: explicit, else range when a
// base is given, else upstream-ahead.
func (c Config) EffectiveStrategy() string {
	if c.Strategy != "" {
		return c.Strategy
	}
	if c.Base != "" {
		return "range"
	}
	return "upstream-ahead"
}
