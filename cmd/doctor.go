package cmd

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/kamusis/deck-cli/internal/catalog"
	"github.com/kamusis/deck-cli/internal/config"
	"github.com/kamusis/deck-cli/internal/importer"
	"github.com/kamusis/deck-cli/internal/logging"
	"github.com/kamusis/deck-cli/internal/prefs"
	"github.com/kamusis/deck-cli/internal/search"
	"github.com/spf13/cobra"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Run environment checks",
	Long: `Check that deck's configuration, catalog and preference file are usable.
Run this command when something seems wrong, or before filing a bug report.`,
	RunE: runDoctor,
}

var doctorFixCmd = &cobra.Command{
	Use:   "fix",
	Short: "Automatically fix detected issues",
	Long: `Fix detected issues in the deck environment.

Currently fixes:
  - Unresolved import conflicts: deletes all .conflict-* files from the catalog directory

Run 'deck doctor' first to see what will be fixed.`,
	RunE: runDoctorFix,
}

func init() {
	doctorCmd.AddCommand(doctorFixCmd)
	rootCmd.AddCommand(doctorCmd)
}

func runDoctorFix(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	printSection("deck doctor fix")

	fmt.Println("\n[ Unresolved conflicts ]")
	if cfg.CatalogDir == "" {
		printSkip("", "built-in catalog in use — nothing to fix")
		return nil
	}
	conflicts, err := importer.FindConflicts(cfg.CatalogDir)
	if err != nil {
		return fmt.Errorf("cannot scan %s: %w", cfg.CatalogDir, err)
	}
	if len(conflicts) == 0 {
		printOK("", "no conflict files found — nothing to fix")
		return nil
	}

	var failed int
	for _, path := range conflicts {
		name := filepath.Base(path)
		if err := os.Remove(path); err != nil {
			printErr("", fmt.Sprintf("cannot delete %s: %v", name, err))
			failed++
		} else {
			printOK("", fmt.Sprintf("deleted %s", name))
		}
	}

	fmt.Println()
	if failed > 0 {
		return fmt.Errorf("%d file(s) could not be deleted", failed)
	}
	fmt.Printf("  ✓  %d conflict file(s) removed.\n", len(conflicts))
	return nil
}

func runDoctor(_ *cobra.Command, _ []string) error {
	allOK := true
	failD := func(format string, args ...any) {
		printErr("", fmt.Sprintf(format, args...))
		allOK = false
	}

	printSection("deck doctor")
	fmt.Println()

	// ── Check 1: deck.yaml ────────────────────────────────────────────────────
	fmt.Println("[ deck.yaml ]")
	cfgPath, err := config.ConfigPath()
	if err != nil {
		failD("cannot determine home directory: %v", err)
	} else if _, err := os.Stat(cfgPath); os.IsNotExist(err) {
		printSkip("", fmt.Sprintf("%s not found — using defaults (run 'deck init' to create it)", cfgPath))
	}
	cfg, loadErr := loadConfig()
	if loadErr != nil {
		failD("%v", loadErr)
	} else if err := cfg.Validate(); err != nil {
		failD("invalid setting: %v", err)
	} else {
		printOK("", fmt.Sprintf("valid — fuzzy %t, usage boost %t, history %d", cfg.Fuzzy, cfg.UsageBoost, cfg.HistorySize))
	}
	fmt.Println()

	// ── Check 2: catalog ──────────────────────────────────────────────────────
	fmt.Println("[ Catalog ]")
	var cat *catalog.Catalog
	if loadErr == nil {
		cat = checkCatalog(cfg, failD)
	} else {
		printWarn("", "skipped (deck.yaml not loaded)")
	}
	fmt.Println()

	// ── Check 3: search index ─────────────────────────────────────────────────
	fmt.Println("[ Search index ]")
	if cat != nil {
		st := search.BuildIndex(cat).Stats()
		if st.Items == 0 {
			failD("no searchable apps in the catalog")
		} else {
			printOK("", fmt.Sprintf("%d app(s), %d term(s), %d posting(s)", st.Items, st.Terms, st.Postings))
		}
	} else {
		printWarn("", "skipped (catalog not loaded)")
	}
	fmt.Println()

	// ── Check 4: preferences ──────────────────────────────────────────────────
	fmt.Println("[ Preferences ]")
	if prefsPath, err := config.PrefsPath(); err != nil {
		failD("cannot determine home directory: %v", err)
	} else if _, err := os.Stat(prefsPath); os.IsNotExist(err) {
		printSkip("", fmt.Sprintf("%s not created yet", prefsPath))
	} else if keys, err := prefs.NewFileStore(prefsPath).Keys(); err != nil {
		failD("cannot read %s: %v", prefsPath, err)
	} else {
		printOK("", fmt.Sprintf("%s readable — %d key(s)", prefsPath, len(keys)))
	}
	fmt.Println()

	// ── Check 5: unresolved import conflicts ──────────────────────────────────
	fmt.Println("[ Unresolved conflicts ]")
	switch {
	case loadErr != nil:
		printWarn("", "skipped (deck.yaml not loaded)")
	case cfg.CatalogDir == "":
		printSkip("", "built-in catalog in use")
	default:
		conflicts, err := importer.FindConflicts(cfg.CatalogDir)
		switch {
		case err != nil:
			failD("cannot scan %s: %v", cfg.CatalogDir, err)
		case len(conflicts) == 0:
			printOK("", "no unresolved conflict files found")
		default:
			for _, c := range conflicts {
				printWarn("", filepath.Base(c))
			}
			fmt.Printf("\n  ⚠  %d unresolved conflict file(s) found in the catalog directory.\n", len(conflicts))
			fmt.Println("     Merge what you need into the original files,")
			fmt.Println("     then run 'deck doctor fix' to delete the rest.")
			allOK = false
		}
	}
	fmt.Println()

	// ── Check 6: browser launcher ─────────────────────────────────────────────
	fmt.Println("[ Browser ]")
	if path, err := checkOpener(); err != nil {
		printWarn("", fmt.Sprintf("%v — 'deck open' cannot launch a browser, use --print", err))
	} else {
		printOK("", path)
	}
	fmt.Println()

	// ── Summary ──────────────────────────────────────────────────────────────────
	fmt.Println("===================")
	if allOK {
		fmt.Println("✓  All checks passed. deck is ready to use.")
	} else {
		fmt.Fprintln(os.Stderr, "✗  One or more checks failed. See details above.")
		return fmt.Errorf("doctor found issues")
	}
	return nil
}

// checkCatalog loads the configured catalog and prints the warnings the
// loader emits for malformed entries.
func checkCatalog(cfg *config.Config, failD func(string, ...any)) *catalog.Catalog {
	var buf bytes.Buffer
	logger := logging.New(logging.Config{Level: "warn", Output: &buf})

	source := "built-in"
	if cfg.CatalogDir != "" {
		source = cfg.CatalogDir
	}
	c, err := loadCatalog(cfg, logger)
	if err != nil {
		failD("%v", err)
		return nil
	}
	printOK("", fmt.Sprintf("%s — %s", source, describeCatalog(c, nil)))

	sc := bufio.NewScanner(&buf)
	for sc.Scan() {
		if line := strings.TrimSpace(sc.Text()); line != "" {
			printWarn("", line)
		}
	}
	return c
}
