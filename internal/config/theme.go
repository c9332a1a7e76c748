package config

import (
	"strconv"
	"strings"
)

// ResolveDark decides whether to use the dark palette. An explicit mode wins,
// then the DEFF_THEME environment variable, then the background index in
// COLORFGBG (0-6 are dark), then probe, which asks the terminal.
func ResolveDark(mode string, getenv func(string) string, probe func() bool) bool {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case ThemeDark:
		return true
	case ThemeLight:
		return false
	}

	switch strings.ToLower(strings.TrimSpace(getenv("DEFF_THEME"))) {
	case ThemeDark:
		return true
	case ThemeLight:
		return false
	}

	if v := getenv("COLORFGBG"); v != "" {
		fields := strings.FieldsFunc(v, func(r rune) bool { return r == ';' || r == ':' })
		if len(fields) > 0 {
			if idx, err := strconv.Atoi(strings.TrimSpace(fields[len(fields)-1])); err == nil && idx >= 0 {
				return idx <= 6
			}
		}
	}

	if probe != nil {
		return probe()
	}
	return true
}
