package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/kamusis/deck-cli/internal/catalog"
	"github.com/kamusis/deck-cli/internal/config"
	"github.com/kamusis/deck-cli/internal/dashboard"
	"github.com/kamusis/deck-cli/internal/logging"
	"github.com/kamusis/deck-cli/internal/prefs"
	"github.com/spf13/cobra"
)

var (
	flagCatalog   string
	flagEphemeral bool
	flagLogLevel  string
	flagNoColor   bool
)

var rootCmd = &cobra.Command{
	Use:          "deck",
	Short:        "Deck — app-shortcut dashboard with instant search",
	SilenceUsage: true, // don't print usage on operational errors
	Long: `Deck groups your web apps into categories and finds any of them
from a few keystrokes, typos and accents included.

State lives in ~/.deck/: deck.yaml (settings), .env (overrides) and
prefs.yaml (favorites, history, usage, display choices).`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		setupColor(flagNoColor)
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagCatalog, "catalog", "", "Directory of category files (default: built-in catalog)")
	pf.BoolVar(&flagEphemeral, "ephemeral", false, "Keep preferences in memory; nothing is written to ~/.deck")
	pf.StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")
	pf.BoolVar(&flagNoColor, "no-color", false, "Disable coloured output")
}

// Execute is called by main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig reads ~/.deck/deck.yaml and applies the global flags on top.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("cannot load config: %w\nRun 'deck doctor' for details.", err)
	}
	if flagCatalog != "" {
		dir, err := config.ExpandPath(flagCatalog)
		if err != nil {
			return nil, err
		}
		cfg.CatalogDir = dir
	}
	if flagLogLevel != "" {
		cfg.LogLevel = flagLogLevel
	}
	return cfg, nil
}

func newLogger(cfg *config.Config) *slog.Logger {
	return logging.New(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
}

func loadCatalog(cfg *config.Config, logger *slog.Logger) (*catalog.Catalog, error) {
	c, err := catalog.Load(cfg.CatalogDir, cfg.CategoryOrder, catalog.WithLogger(logger))
	if err != nil {
		return nil, fmt.Errorf("cannot load catalog: %w", err)
	}
	return c, nil
}

// openStore returns the preference store selected by --ephemeral.
func openStore() (prefs.Store, error) {
	if flagEphemeral {
		return prefs.NewMemStore(), nil
	}
	path, err := config.PrefsPath()
	if err != nil {
		return nil, err
	}
	return prefs.NewFileStore(path), nil
}

// session bundles what most commands need.
type session struct {
	cfg    *config.Config
	logger *slog.Logger
	dash   *dashboard.Dashboard
}

func openSession() (*session, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	logger := newLogger(cfg)

	c, err := loadCatalog(cfg, logger)
	if err != nil {
		return nil, err
	}
	store, err := openStore()
	if err != nil {
		return nil, err
	}
	dash, err := dashboard.New(dashboard.Options{
		Catalog:         c,
		Store:           store,
		Logger:          logger,
		HistorySize:     cfg.HistorySize,
		DefaultCategory: cfg.DefaultCategory,
	})
	if err != nil {
		return nil, err
	}
	return &session{cfg: cfg, logger: logger, dash: dash}, nil
}
