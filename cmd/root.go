// Package cmd wires configuration, git and the review UI into the deff command.
package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/kmacinski/deff/internal/app"
	"github.com/kmacinski/deff/internal/config"
	"github.com/kmacinski/deff/internal/diff"
	"github.com/kmacinski/deff/internal/git"
	"github.com/kmacinski/deff/internal/logutil"
	"github.com/kmacinski/deff/internal/review"
	"github.com/kmacinski/deff/internal/syntax"
	"github.com/kmacinski/deff/internal/ui"
	"github.com/kmacinski/deff/internal/watcher"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"
)

func init() {
	// Query the terminal background before the program owns stdin, otherwise
	// the OSC 11 reply can land in the input loop.
	_ = lipgloss.HasDarkBackground()
}

// ErrNoTTY is returned when stdin or stdout is not a terminal
var ErrNoTTY = errors.New("interactive TTY is required to run deff")

var (
	version = "dev"
	cfgFile string
	cfg     config.Config
)

var rootCmd = &cobra.Command{
	Use:   "deff",
	Short: "Side-by-side review of git changes in the terminal",
	Long: `deff shows every file changed between two revisions side by side, with
changed lines tinted, and remembers which files you have marked reviewed.

With no flags it compares the current branch with its upstream. Use
--strategy range --base <ref> to review an explicit range.`,
	Version:       version,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runReview,
}

func init() {
	cobra.OnInitialize(initConfig)

	defaults := config.Defaults()
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: .deff/config.yaml, then ~/.config/deff/config.yaml)")
	rootCmd.Flags().StringP("strategy", "s", "",
		"comparison strategy: upstream-ahead or range (default: range when --base is set, else upstream-ahead)")
	rootCmd.Flags().StringP("base", "b", "", "base git ref for --strategy range")
	rootCmd.Flags().String("head", defaults.Head, "head git ref")
	rootCmd.Flags().BoolP("include-uncommitted", "u", false,
		"compare the working tree, including untracked files, instead of --head")
	rootCmd.Flags().String("theme", defaults.Theme, "color theme: auto, dark or light")
	rootCmd.Flags().String("log-level", defaults.Log.Level, "log level: debug, info, warn or error")
	rootCmd.Flags().String("log-file", "", "write JSON logs to this file")

	_ = viper.BindPFlag("strategy", rootCmd.Flags().Lookup("strategy"))
	_ = viper.BindPFlag("base", rootCmd.Flags().Lookup("base"))
	_ = viper.BindPFlag("head", rootCmd.Flags().Lookup("head"))
	_ = viper.BindPFlag("include_uncommitted", rootCmd.Flags().Lookup("include-uncommitted"))
	_ = viper.BindPFlag("theme", rootCmd.Flags().Lookup("theme"))
	_ = viper.BindPFlag("log.level", rootCmd.Flags().Lookup("log-level"))
	_ = viper.BindPFlag("log.file", rootCmd.Flags().Lookup("log-file"))
}

// envKeys are the settings that DEFF_<KEY> environment variables override
var envKeys = []string{
	"strategy", "base", "head", "include_uncommitted",
	"syntax_style_dark", "syntax_style_light",
	"wheel.lines", "wheel.columns",
	"watch.enabled", "watch.debounce",
	"log.level", "log.file",
}

func initConfig() {
	defaults := config.Defaults()
	viper.SetDefault("strategy", defaults.Strategy)
	viper.SetDefault("base", defaults.Base)
	viper.SetDefault("head", defaults.Head)
	viper.SetDefault("include_uncommitted", defaults.IncludeUncommitted)
	viper.SetDefault("theme", defaults.Theme)
	viper.SetDefault("syntax_style_dark", defaults.SyntaxStyleDark)
	viper.SetDefault("syntax_style_light", defaults.SyntaxStyleLight)
	viper.SetDefault("wheel.lines", defaults.Wheel.Lines)
	viper.SetDefault("wheel.columns", defaults.Wheel.Columns)
	viper.SetDefault("watch.enabled", defaults.Watch.Enabled)
	viper.SetDefault("watch.debounce", defaults.Watch.Debounce)
	viper.SetDefault("log.level", defaults.Log.Level)
	viper.SetDefault("log.file", defaults.Log.File)

	// DEFF_THEME is read leniently by config.ResolveDark, so theme is not
	// bound here.
	for _, key := range envKeys {
		_ = viper.BindEnv(key, "DEFF_"+strings.ToUpper(strings.ReplaceAll(key, ".", "_")))
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		// Config lookup order:
		// 1. .deff/config.yaml (current directory)
		// 2. ~/.config/deff/config.yaml (user config)
		if _, err := os.Stat(".deff/config.yaml"); err == nil {
			viper.SetConfigFile(".deff/config.yaml")
		} else {
			home, _ := os.UserHomeDir()
			viper.AddConfigPath(filepath.Join(home, ".config", "deff"))
			viper.SetConfigName("config")
			viper.SetConfigType("yaml")
		}
	}

	// A missing config file is fine; defaults and flags still apply
	_ = viper.ReadInConfig()
	_ = viper.Unmarshal(&cfg)
}

func runReview(cmd *cobra.Command, _ []string) error {
	cfg.StrategyExplicit = cfg.Strategy != ""
	cfg.Theme = strings.ToLower(strings.TrimSpace(cfg.Theme))
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, closeLog, err := logutil.New(cfg.Log.Level, cfg.Log.File)
	if err != nil {
		return err
	}
	defer closeLog()
	logger.Debug().Str("config", viper.ConfigFileUsed()).Msg("configuration loaded")

	client, err := git.NewClient(".", logger)
	if err != nil {
		return err
	}

	strategy, err := git.ParseStrategy(cfg.EffectiveStrategy())
	if err != nil {
		return fmt.Errorf("%w: %w", config.ErrConfiguration, err)
	}
	cmp, err := client.ResolveComparison(git.Options{
		Strategy:           strategy,
		BaseRef:            cfg.Base,
		HeadRef:            cfg.Head,
		IncludeUncommitted: cfg.IncludeUncommitted,
	})
	if err != nil {
		return err
	}
	if cmp.NothingAhead() {
		fmt.Fprintf(cmd.OutOrStdout(), "No local commits ahead of %s.\n", cmp.BaseRef)
		return nil
	}

	descriptors, err := client.Descriptors(cmp)
	if err != nil {
		return err
	}
	if len(descriptors) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "No changed files found for %s.\n", cmp.Summary)
		return nil
	}

	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return ErrNoTTY
	}

	dark := config.ResolveDark(cfg.Theme, os.Getenv, lipgloss.HasDarkBackground)
	styleName := cfg.SyntaxStyleDark
	if !dark {
		styleName = cfg.SyntaxStyleLight
	}
	classifier := syntax.New(dark, styleName)
	logger.Debug().Bool("dark", dark).Str("syntax_style", classifier.StyleName()).Msg("theme resolved")

	files := diff.NewBuilder(client, classifier, logger).Build(cmp, descriptors)

	gitDir, err := client.GitDir()
	if err != nil {
		return fmt.Errorf("locate git directory: %w", err)
	}
	store, err := review.Load(review.Path(gitDir, cmp))
	if err != nil {
		return err
	}

	var changes <-chan struct{}
	if cmp.IncludesUncommitted && cfg.Watch.Enabled {
		stop, ch := startWatcher(client.RepoRoot(), descriptors, logger)
		defer stop()
		changes = ch
	}

	a := app.New(app.Deps{
		Comparison:  cmp,
		Files:       files,
		Store:       store,
		Styles:      ui.ForTheme(dark),
		Highlighter: classifier,
		Config:      cfg,
		Logger:      logger,
		Changes:     changes,
	})
	p := tea.NewProgram(
		a,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	return a.Err()
}

// startWatcher watches working tree files of the comparison. Watching is best
// effort: on failure the session runs without the stale marker.
func startWatcher(root string, descriptors []git.Descriptor, logger zerolog.Logger) (func(), <-chan struct{}) {
	var paths []string
	for _, d := range descriptors {
		if d.HeadSource == git.SourceWorkingTree {
			paths = append(paths, d.HeadPath)
		}
	}
	if len(paths) == 0 {
		return func() {}, nil
	}

	wcfg := watcher.DefaultConfig(root, paths)
	wcfg.DebounceDur = cfg.Watch.Debounce
	w, err := watcher.New(wcfg, logger)
	if err != nil {
		logger.Warn().Err(err).Msg("watcher unavailable")
		return func() {}, nil
	}
	ch, err := w.Start()
	if err != nil {
		logger.Warn().Err(err).Msg("watcher unavailable")
		_ = w.Stop()
		return func() {}, nil
	}
	return func() { _ = w.Stop() }, ch
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string (called from main with ldflags)
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}
