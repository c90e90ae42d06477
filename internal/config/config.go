package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/kamusis/deck-cli/internal/catalog"
	"github.com/kamusis/deck-cli/internal/history"
)

// Environment keys read from the process environment or ~/.deck/.env.
const (
	EnvCatalogDir = "DECK_CATALOG_DIR"
	EnvLogLevel   = "DECK_LOG_LEVEL"
	EnvNoColor    = "DECK_NO_COLOR"
)

// LogLevels lists the accepted values of log_level.
var LogLevels = []string{"debug", "info", "warn", "error"}

// Config is the in-memory representation of ~/.deck/deck.yaml.
type Config struct {
	// CatalogDir holds category files. Empty means the built-in catalog.
	CatalogDir      string   `yaml:"catalog_dir,omitempty"`
	CategoryOrder   []string `yaml:"category_order,omitempty"`
	DefaultCategory string   `yaml:"default_category,omitempty"`
	HistorySize     int      `yaml:"history_size"`
	Fuzzy           bool     `yaml:"fuzzy"`
	UsageBoost      bool     `yaml:"usage_boost"`
	LogLevel        string   `yaml:"log_level,omitempty"`
	LogFormat       string   `yaml:"log_format,omitempty"`
}

// DeckDir returns the absolute path to ~/.deck/.
func DeckDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".deck"), nil
}

// ConfigPath returns the absolute path to ~/.deck/deck.yaml.
func ConfigPath() (string, error) {
	return inDeckDir("deck.yaml")
}

// PrefsPath returns the absolute path to ~/.deck/prefs.yaml.
func PrefsPath() (string, error) {
	return inDeckDir("prefs.yaml")
}

func inDeckDir(name string) (string, error) {
	dir, err := DeckDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, name), nil
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(p string) (string, error) {
	if !strings.HasPrefix(p, "~") {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot expand ~: %w", err)
	}
	return filepath.Join(home, p[1:]), nil
}

// DefaultConfig returns the configuration used when deck.yaml is absent.
func DefaultConfig() *Config {
	return &Config{
		CategoryOrder:   slices.Clone(catalog.DefaultOrder),
		DefaultCategory: "gestion",
		HistorySize:     history.DefaultMax,
		Fuzzy:           true,
		LogLevel:        "warn",
		LogFormat:       "text",
	}
}

// Load reads ~/.deck/deck.yaml on top of the defaults and applies
// environment overrides. A missing file is not an error.
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("cannot read config %s: %w", path, err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("invalid YAML in %s: %w", path, err)
		}
	}

	if v, err := GetConfigValue(EnvCatalogDir); err != nil {
		return nil, err
	} else if v != "" {
		cfg.CatalogDir = v
	}
	if v, err := GetConfigValue(EnvLogLevel); err != nil {
		return nil, err
	} else if v != "" {
		cfg.LogLevel = v
	}

	// Expand ~ in CatalogDir at load time.
	cfg.CatalogDir, err = ExpandPath(cfg.CatalogDir)
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if c.HistorySize < 1 {
		return fmt.Errorf("history_size must be at least 1, got %d", c.HistorySize)
	}
	if c.LogLevel != "" && !slices.Contains(LogLevels, strings.ToLower(c.LogLevel)) {
		return fmt.Errorf("log_level must be one of %v, got %q", LogLevels, c.LogLevel)
	}
	switch c.LogFormat {
	case "", "text", "json":
	default:
		return fmt.Errorf("log_format must be text or json, got %q", c.LogFormat)
	}
	if c.CatalogDir != "" {
		info, err := os.Stat(c.CatalogDir)
		if err != nil {
			return fmt.Errorf("catalog_dir: %w", err)
		}
		if !info.IsDir() {
			return fmt.Errorf("catalog_dir is not a directory: %s", c.CatalogDir)
		}
	}
	return nil
}

// Save marshals cfg and writes it to ~/.deck/deck.yaml.
func Save(cfg *Config) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("cannot create %s: %w", filepath.Dir(path), err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("cannot marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("cannot write config %s: %w", path, err)
	}
	return nil
}
