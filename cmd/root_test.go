package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/kmacinski/deff/internal/config"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

// execute runs the root command with fresh flag values and an isolated config
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	viper.Reset()
	t.Cleanup(viper.Reset)

	for _, name := range []string{"strategy", "base", "head", "include-uncommitted", "theme", "log-level", "log-file"} {
		f := rootCmd.Flags().Lookup(name)
		require.NoError(t, f.Value.Set(f.DefValue))
		f.Changed = false
		_ = viper.BindPFlag(flagKey(name), f)
	}
	cfg = config.Config{}
	cfgFile = ""

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func flagKey(name string) string {
	switch name {
	case "include-uncommitted":
		return "include_uncommitted"
	case "log-level":
		return "log.level"
	case "log-file":
		return "log.file"
	default:
		return name
	}
}

func TestRoot_ConfigurationErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{
			name: "range without base",
			args: []string{"--strategy", "range"},
			want: "--strategy range requires --base <git-ref>",
		},
		{
			name: "base with upstream-ahead",
			args: []string{"--strategy", "upstream-ahead", "--base", "main"},
			want: "--base can only be used with --strategy range",
		},
		{
			name: "uncommitted with other head",
			args: []string{"--include-uncommitted", "--head", "main"},
			want: "--include-uncommitted currently requires --head HEAD",
		},
		{
			name: "unknown strategy",
			args: []string{"--strategy", "sideways"},
			want: `invalid strategy "sideways"`,
		},
		{
			name: "unknown theme",
			args: []string{"--theme", "purple"},
			want: `must be one of auto, dark, light; got "purple"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, tt.args...)
			require.ErrorIs(t, err, config.ErrConfiguration)
			require.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestRoot_RejectsPositionalArgs(t *testing.T) {
	_, err := execute(t, "some/dir")
	require.Error(t, err)
}

func TestRoot_ConfigFileSettings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("strategy: range\nwheel:\n  lines: 0\n"), 0o644))

	_, err := execute(t, "--config", path, "--base", "main")
	require.ErrorIs(t, err, config.ErrConfiguration)
	require.Contains(t, err.Error(), "must be at least 1, got 0")
	require.Equal(t, "range", cfg.Strategy)
	require.Equal(t, 8, cfg.Wheel.Columns)
}

func TestRoot_EnvOverridesSettings(t *testing.T) {
	t.Setenv("DEFF_WHEEL_COLUMNS", "3")
	t.Setenv("DEFF_WHEEL_LINES", "0")

	_, err := execute(t)
	require.ErrorIs(t, err, config.ErrConfiguration)
	require.Contains(t, err.Error(), "must be at least 1, got 0")
	require.Equal(t, 3, cfg.Wheel.Columns)
}

func TestRoot_EnvThemeIsLenient(t *testing.T) {
	tests := []struct {
		env  string
		dark bool
	}{
		{env: "Light", dark: false},
		{env: " DARK ", dark: true},
		{env: "neon", dark: true},
	}
	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			t.Setenv("DEFF_THEME", tt.env)
			t.Setenv("COLORFGBG", "")
			// Fail on a later setting so the run stops before touching git.
			t.Setenv("DEFF_WHEEL_LINES", "0")

			_, err := execute(t)
			require.ErrorIs(t, err, config.ErrConfiguration)
			require.Contains(t, err.Error(), "must be at least 1, got 0")
			require.NotContains(t, err.Error(), "theme")
			require.Equal(t, config.ThemeAuto, cfg.Theme)
			require.Equal(t, tt.dark, config.ResolveDark(cfg.Theme, os.Getenv, func() bool { return true }))
		})
	}
}

func TestRoot_ThemeFlagIsCaseInsensitive(t *testing.T) {
	t.Setenv("DEFF_WHEEL_LINES", "0")

	_, err := execute(t, "--theme", " Light ")
	require.ErrorIs(t, err, config.ErrConfiguration)
	require.NotContains(t, err.Error(), "theme")
	require.Equal(t, config.ThemeLight, cfg.Theme)
}
