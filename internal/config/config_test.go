package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDefaults_Valid(t *testing.T) {
	cfg := Defaults()
	require.NoError(t, cfg.Validate())
	require.Equal(t, "upstream-ahead", cfg.EffectiveStrategy())
	require.Equal(t, 3, cfg.Wheel.Lines)
	require.Equal(t, 8, cfg.Wheel.Columns)
}

func TestEffectiveStrategy(t *testing.T) {
	cfg := Defaults()
	cfg.Base = "main"
	require.Equal(t, "range", cfg.EffectiveStrategy())

	cfg.Strategy = "upstream-ahead"
	require.Equal(t, "upstream-ahead", cfg.EffectiveStrategy())
}

func TestValidate_ComparisonRules(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "range without base",
			mutate:  func(c *Config) { c.Strategy, c.StrategyExplicit = "range", true },
			wantErr: "--strategy range requires --base <git-ref>",
		},
		{
			name: "base with explicit upstream-ahead",
			mutate: func(c *Config) {
				c.Strategy, c.StrategyExplicit, c.Base = "upstream-ahead", true, "main"
			},
			wantErr: "--base can only be used with --strategy range",
		},
		{
			name:    "uncommitted needs HEAD",
			mutate:  func(c *Config) { c.IncludeUncommitted, c.Head = true, "feature" },
			wantErr: "--include-uncommitted currently requires --head HEAD",
		},
		{
			name:    "unknown strategy",
			mutate:  func(c *Config) { c.Strategy, c.StrategyExplicit = "sideways", true },
			wantErr: `invalid strategy "sideways"`,
		},
		{
			name:   "base implies range",
			mutate: func(c *Config) { c.Base = "main" },
		},
		{
			name:   "uncommitted with HEAD",
			mutate: func(c *Config) { c.IncludeUncommitted = true },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, ErrConfiguration)
			require.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestValidate_Settings(t *testing.T) {
	cfg := Defaults()
	cfg.Theme = "sepia"
	cfg.Wheel.Lines = 0
	cfg.Log.Level = "loud"
	cfg.Watch.Debounce = 0

	err := cfg.Validate()
	require.ErrorIs(t, err, ErrConfiguration)
	require.ErrorContains(t, err, `got "sepia"`)
	require.ErrorContains(t, err, "must be at least 1, got 0")
	require.ErrorContains(t, err, `unknown level "loud"`)
	require.ErrorContains(t, err, "must be positive")

	cfg = Defaults()
	cfg.Watch.Enabled = false
	cfg.Watch.Debounce = -time.Second
	require.NoError(t, cfg.Validate())
}

func TestResolveDark(t *testing.T) {
	env := func(vals map[string]string) func(string) string {
		return func(k string) string { return vals[k] }
	}
	probeLight := func() bool { return false }

	tests := []struct {
		name string
		mode string
		env  map[string]string
		want bool
	}{
		{"explicit dark", "dark", map[string]string{"DEFF_THEME": "light"}, true},
		{"explicit light", "light", nil, false},
		{"env light", "auto", map[string]string{"DEFF_THEME": " Light "}, false},
		{"env dark beats colorfgbg", "auto", map[string]string{"DEFF_THEME": "dark", "COLORFGBG": "0;15"}, true},
		{"colorfgbg dark background", "auto", map[string]string{"COLORFGBG": "15;0"}, true},
		{"colorfgbg light background", "auto", map[string]string{"COLORFGBG": "0;default;15"}, false},
		{"colorfgbg colon separated", "", map[string]string{"COLORFGBG": "7:6"}, true},
		{"colorfgbg unparsable falls to probe", "auto", map[string]string{"COLORFGBG": "x;y"}, false},
		{"probe", "auto", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, ResolveDark(tt.mode, env(tt.env), probeLight))
		})
	}

	require.True(t, ResolveDark("auto", env(nil), nil))
}
