package cmd

import (
	"fmt"
	"os"

	"github.com/kamusis/deck-cli/internal/catalog"
	"github.com/kamusis/deck-cli/internal/config"
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init [catalog-dir]",
	Short: "Create ~/.deck and write the default configuration",
	Long: `Initialize deck's state directory at ~/.deck/.

Two modes:
  deck init              use the built-in catalog
  deck init ~/catalog    use a directory of category files; when the
                         directory holds none, the built-in catalog is
                         exported into it as a starting point`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func runInit(_ *cobra.Command, args []string) error {
	// ── 1. Resolve ~/.deck directory ──────────────────────────────────────────
	deckDir, err := config.DeckDir()
	if err != nil {
		return err
	}
	cfgPath, err := config.ConfigPath()
	if err != nil {
		return err
	}

	// ── 2. Create ~/.deck/ if it doesn't exist ────────────────────────────────
	if err := os.MkdirAll(deckDir, 0o755); err != nil {
		return fmt.Errorf("cannot create %s: %w", deckDir, err)
	}
	printOK("", fmt.Sprintf("deck directory ready: %s", deckDir))

	var catalogDir string
	if len(args) == 1 {
		if catalogDir, err = config.ExpandPath(args[0]); err != nil {
			return err
		}
	}

	// ── 3. Write deck.yaml if missing ─────────────────────────────────────────
	if _, err := os.Stat(cfgPath); os.IsNotExist(err) {
		cfg := config.DefaultConfig()
		cfg.CatalogDir = catalogDir
		if err := config.Save(cfg); err != nil {
			return err
		}
		printOK("", fmt.Sprintf("Config written: %s", cfgPath))
	} else {
		printSkip("", fmt.Sprintf("Config already exists: %s", cfgPath))
		if catalogDir != "" {
			printWarn("", fmt.Sprintf("set catalog_dir: %s in %s to use the new catalog", catalogDir, cfgPath))
		}
	}

	// ── 4. Write the .env template ────────────────────────────────────────────
	if err := config.EnsureDotEnvTemplate(); err != nil {
		return err
	}
	envPath, _ := config.DotEnvPath()
	printOK("", fmt.Sprintf("Environment template ready: %s", envPath))

	// ── 5. Seed the catalog directory ─────────────────────────────────────────
	if catalogDir != "" {
		cats, err := catalog.LoadDir(catalogDir)
		switch {
		case err == nil && len(cats) > 0:
			printSkip("", fmt.Sprintf("Catalog already has %d categor(ies): %s", len(cats), catalogDir))
		default:
			def, err := catalog.Default()
			if err != nil {
				return err
			}
			n, err := exportCatalog(def, catalogDir)
			if err != nil {
				return err
			}
			printOK("", fmt.Sprintf("Built-in catalog exported: %d file(s) in %s", n, catalogDir))
		}
	}

	fmt.Println("\n✓  deck init complete. Run 'deck doctor' to verify your environment.")
	return nil
}
