package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeDeckFile(t *testing.T, home, name, body string) {
	t.Helper()
	dir := filepath.Join(home, ".deck")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
}

func TestLoad_MissingFileGivesDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv(EnvCatalogDir, "")
	t.Setenv(EnvLogLevel, "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
	assert.True(t, cfg.Fuzzy)
	assert.Equal(t, 10, cfg.HistorySize)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv(EnvCatalogDir, "")
	t.Setenv(EnvLogLevel, "")
	writeDeckFile(t, home, "deck.yaml", "catalog_dir: ~/cats\nfuzzy: false\nhistory_size: 3\n")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "cats"), cfg.CatalogDir)
	assert.False(t, cfg.Fuzzy)
	assert.Equal(t, 3, cfg.HistorySize)
	assert.Equal(t, "gestion", cfg.DefaultCategory)
	assert.Equal(t, "warn", cfg.LogLevel)
}

func TestLoad_EnvironmentWins(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	writeDeckFile(t, home, "deck.yaml", "log_level: info\n")
	writeDeckFile(t, home, ".env", EnvLogLevel+"=error\n"+EnvCatalogDir+"=/from/dotenv\n")
	t.Setenv(EnvLogLevel, "debug")
	t.Setenv(EnvCatalogDir, "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "/from/dotenv", cfg.CatalogDir)
}

func TestLoad_InvalidYAML(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	writeDeckFile(t, home, "deck.yaml", "fuzzy: [\n")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "deck.yaml")
}

func TestSave_RoundTrip(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv(EnvCatalogDir, "")
	t.Setenv(EnvLogLevel, "")

	cfg := DefaultConfig()
	cfg.UsageBoost = true
	cfg.CategoryOrder = []string{"outils", "gestion"}
	require.NoError(t, Save(cfg))

	got, err := Load()
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}

func TestValidate(t *testing.T) {
	t.Parallel()

	cases := map[string]func(*Config){
		"history":    func(c *Config) { c.HistorySize = 0 },
		"log level":  func(c *Config) { c.LogLevel = "loud" },
		"log format": func(c *Config) { c.LogFormat = "xml" },
		"catalog":    func(c *Config) { c.CatalogDir = filepath.Join(os.TempDir(), "deck-missing-catalog-dir") },
	}
	for name, mutate := range cases {
		cfg := DefaultConfig()
		mutate(cfg)
		assert.Error(t, cfg.Validate(), name)
	}
}

func TestExpandPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	p, err := ExpandPath("~/x")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "x"), p)

	p, err = ExpandPath("/abs")
	require.NoError(t, err)
	assert.Equal(t, "/abs", p)
}
