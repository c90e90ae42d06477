package cmd

import (
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/kamusis/deck-cli/internal/catalog"
	"github.com/spf13/cobra"
)

var (
	version   = "dev"
	commit    = ""
	buildDate = ""
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show deck version, build information and catalog source",
	RunE:  runVersion,
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

func runVersion(_ *cobra.Command, _ []string) error {
	printVersion(os.Stdout)
	return nil
}

func printVersion(w io.Writer) {
	fmt.Fprintf(w, "Version:    %s\n", version)
	fmt.Fprintf(w, "Commit:     %s\n", emptyAsNA(commit))
	fmt.Fprintf(w, "Build Date: %s\n", emptyAsNA(buildDate))
	fmt.Fprintf(w, "Go Version: %s\n", runtime.Version())
	fmt.Fprintf(w, "OS/Arch:    %s/%s\n", runtime.GOOS, runtime.GOARCH)
	fmt.Fprintf(w, "Built-in:   %s\n", describeCatalog(catalog.Default()))

	// The active catalog is best effort: version must work with a broken config.
	cfg, err := loadConfig()
	switch {
	case err != nil:
		fmt.Fprintf(w, "Catalog:    n/a (%v)\n", err)
	case cfg.CatalogDir == "":
		fmt.Fprintln(w, "Catalog:    built-in")
	default:
		c, err := loadCatalog(cfg, newLogger(cfg))
		fmt.Fprintf(w, "Catalog:    %s, %s\n", cfg.CatalogDir, describeCatalog(c, err))
	}
}

// describeCatalog summarizes c as "N categories, M apps".
func describeCatalog(c *catalog.Catalog, err error) string {
	if err != nil {
		return fmt.Sprintf("unreadable (%v)", err)
	}
	apps := 0
	for _, cat := range c.List() {
		apps += len(cat.Apps)
	}
	return fmt.Sprintf("%d categories, %d apps", c.Len(), apps)
}

func emptyAsNA(s string) string {
	if s == "" {
		return "n/a"
	}
	return s
}
