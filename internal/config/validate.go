package config

import (
	"errors"
	"fmt"
	"slices"

	"github.com/hay-kot/criterio"
	"github.com/kmacinski/deff/internal/git"
	"github.com/rs/zerolog"
)

// ErrConfiguration marks invalid or conflicting options
var ErrConfiguration = errors.New("invalid configuration")

// Validate checks the comparison flags and settings. Comparison rule
// violations are reported alone since they are what the user typed; setting
// errors are collected per field.
func (c Config) Validate() error {
	if err := c.validateComparison(); err != nil {
		return fmt.Errorf("%w: %w", ErrConfiguration, err)
	}

	if err := criterio.ValidateStruct(
		criterio.Run("theme", c.Theme, validTheme),
		criterio.Run("log.level", c.Log.Level, validLevel),
		c.validateSteps(),
	); err != nil {
		return fmt.Errorf("%w: %w", ErrConfiguration, err)
	}
	return nil
}

func (c Config) validateComparison() error {
	strategy, err := git.ParseStrategy(c.EffectiveStrategy())
	if err != nil {
		return err
	}

	if strategy == git.StrategyRange && c.Base == "" {
		return errors.New("--strategy range requires --base <git-ref>")
	}
	if c.StrategyExplicit && strategy != git.StrategyRange && c.Base != "" {
		return errors.New("--base can only be used with --strategy range")
	}
	if c.IncludeUncommitted && c.Head != "HEAD" {
		return errors.New("--include-uncommitted currently requires --head HEAD")
	}
	return nil
}

func (c Config) validateSteps() error {
	var errs criterio.FieldErrorsBuilder
	if err := positive(c.Wheel.Lines); err != nil {
		errs = errs.Append("wheel.lines", err)
	}
	if err := positive(c.Wheel.Columns); err != nil {
		errs = errs.Append("wheel.columns", err)
	}
	if c.Watch.Enabled && c.Watch.Debounce <= 0 {
		errs = errs.Append("watch.debounce", fmt.Errorf("must be positive, got %s", c.Watch.Debounce))
	}
	return errs.ToError()
}

func validTheme(theme string) error {
	if slices.Contains([]string{ThemeAuto, ThemeDark, ThemeLight}, theme) {
		return nil
	}
	return fmt.Errorf("must be one of auto, dark, light; got %q", theme)
}

func positive(n int) error {
	if n < 1 {
		return fmt.Errorf("must be at least 1, got %d", n)
	}
	return nil
}

func validLevel(level string) error {
	if _, err := zerolog.ParseLevel(level); err != nil {
		return fmt.Errorf("unknown level %q", level)
	}
	return nil
}
