package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/kamusis/deck-cli/internal/catalog"
	"github.com/kamusis/deck-cli/internal/importer"
	"github.com/spf13/cobra"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Export or import category files",
}

var catalogExportCmd = &cobra.Command{
	Use:   "export <dir>",
	Short: "Write the current catalog as one YAML file per category",
	Args:  cobra.ExactArgs(1),
	RunE:  runCatalogExport,
}

var catalogImportCmd = &cobra.Command{
	Use:   "import <src-dir>",
	Short: "Copy category files into the configured catalog directory",
	Long: `Copy the category files of <src-dir> into catalog_dir.

Files that do not parse are reported and left out. A file that already
exists with different content is kept, and the incoming version is stored
next to it as <name>.conflict-<source>.yaml for manual review.
Run 'deck doctor fix' to delete leftover conflict files.`,
	Args: cobra.ExactArgs(1),
	RunE: runCatalogImport,
}

var (
	flagExportForce  bool
	flagImportSource string
)

func init() {
	catalogExportCmd.Flags().BoolVar(&flagExportForce, "force", false, "Overwrite existing files")
	catalogImportCmd.Flags().StringVar(&flagImportSource, "source", "", "Name used in conflict file names (default: source directory name)")
	catalogCmd.AddCommand(catalogExportCmd, catalogImportCmd)
	rootCmd.AddCommand(catalogCmd)
}

func runCatalogExport(_ *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	c, err := loadCatalog(cfg, newLogger(cfg))
	if err != nil {
		return err
	}
	n, err := exportCatalog(c, args[0])
	if err != nil {
		return err
	}
	printOK("", fmt.Sprintf("%d file(s) written to %s", n, args[0]))
	return nil
}

// exportCatalog writes one NN-<id>.yaml file per category, numbered in
// catalog order so that a directory load keeps it. Existing files are left
// alone unless --force is set.
func exportCatalog(c *catalog.Catalog, dir string) (int, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return 0, fmt.Errorf("cannot create %s: %w", dir, err)
	}
	written := 0
	for i, cat := range c.List() {
		name := fmt.Sprintf("%02d-%s.yaml", i+1, cat.ID)
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil && !flagExportForce {
			printSkip(cat.ID, fmt.Sprintf("%s exists", name))
			continue
		}
		data, err := catalog.Marshal(cat)
		if err != nil {
			return written, err
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return written, fmt.Errorf("cannot write %s: %w", path, err)
		}
		written++
	}
	return written, nil
}

func runCatalogImport(_ *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.CatalogDir == "" {
		return fmt.Errorf("no catalog directory configured\nRun 'deck init <dir>' or pass --catalog <dir>.")
	}
	src := args[0]
	source := flagImportSource
	if source == "" {
		source = filepath.Base(filepath.Clean(src))
	}

	r, err := importer.ImportDir(src, cfg.CatalogDir, source)
	if err != nil {
		return fmt.Errorf("import [%s]: %w", source, err)
	}

	printSection("Import Categories")
	printOK(source, fmt.Sprintf("%d file(s) imported, %d skipped, %d conflict(s), %d new categor(ies)",
		r.Imported, r.Skipped, len(r.Conflicts), r.Categories))
	for _, p := range r.Invalid {
		printWarn(source, fmt.Sprintf("not a valid category file: %s", p))
	}

	if len(r.Conflicts) > 0 {
		fmt.Printf("\n⚠  %d conflict(s) detected during import.\n", len(r.Conflicts))
		fmt.Println("   Please review and resolve the following files manually:")
		for _, c := range r.Conflicts {
			fmt.Printf("     - %s  ← conflicts with %s\n", c.Conflict, c.Original)
		}
	}
	return nil
}
