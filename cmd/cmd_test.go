package cmd

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kamusis/deck-cli/internal/catalog"
	"github.com/kamusis/deck-cli/internal/config"
	"github.com/kamusis/deck-cli/internal/search"
)

// isolate points HOME at a temp dir, clears DECK_* overrides and restores
// the global flags after the test.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv(config.EnvCatalogDir, "")
	t.Setenv(config.EnvLogLevel, "")
	t.Setenv(config.EnvNoColor, "")

	saved := struct {
		catalog   string
		ephemeral bool
		logLevel  string
		force     bool
	}{flagCatalog, flagEphemeral, flagLogLevel, flagExportForce}
	t.Cleanup(func() {
		flagCatalog = saved.catalog
		flagEphemeral = saved.ephemeral
		flagLogLevel = saved.logLevel
		flagExportForce = saved.force
	})
	return home
}

func writeCategory(t *testing.T, dir, name, body string) {
	t.Helper()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
}

const toolsCategory = `id: tools
name: Tools
apps:
  - id: notion
    name: Notion
    url: https://notion.so
    tags: [wiki]
  - id: figma
    name: Figma
    url: https://figma.com
`

func TestWantColor(t *testing.T) {
	isolate(t)
	t.Setenv("NO_COLOR", "")

	if wantColor(false, false) {
		t.Error("no colour expected when stdout is not a terminal")
	}
	if wantColor(true, true) {
		t.Error("--no-color must win")
	}
	if !wantColor(false, true) {
		t.Error("colour expected on a terminal")
	}

	t.Setenv("NO_COLOR", "1")
	if wantColor(false, true) {
		t.Error("NO_COLOR must disable colour")
	}
	t.Setenv("NO_COLOR", "")
	t.Setenv(config.EnvNoColor, "true")
	if wantColor(false, true) {
		t.Errorf("%s must disable colour", config.EnvNoColor)
	}
}

func TestPrintSearchResults(t *testing.T) {
	colorEnabled = false
	results := []search.Result{
		{Item: search.Item{ID: "deepl", Name: "DeepL", Description: "Traduction", CategoryName: "Outils"}, Score: 25.33},
		{Item: search.Item{ID: "notion", Name: "Notion", CategoryName: "Gestion"}, Score: 3},
	}
	var buf bytes.Buffer
	printSearchResults(&buf, "deep", results, len(results), func(id string) bool { return id == "deepl" })
	out := buf.String()

	for _, want := range []string{`deck search "deep"`, "Results (2 found):", "[25.33]", "★ deepl", "- Traduction", "Notion", "Gestion"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Index(out, "deepl") > strings.Index(out, "notion") {
		t.Errorf("results printed out of order:\n%s", out)
	}

	buf.Reset()
	printSearchResults(&buf, "deep", results[:1], 7, func(string) bool { return false })
	if !strings.Contains(buf.String(), "Results (7 found, showing 1):") {
		t.Errorf("truncated output must report the total:\n%s", buf.String())
	}

	buf.Reset()
	printSearchResults(&buf, "zzz", nil, 0, func(string) bool { return false })
	if !strings.Contains(buf.String(), "Results (0 found):") {
		t.Errorf("unexpected empty output:\n%s", buf.String())
	}
}

func TestTopTerms(t *testing.T) {
	idx := search.BuildIndex(search.CorpusFunc(func() []search.Category {
		return []search.Category{{ID: "tools", Name: "Tools", Apps: []search.Item{
			{ID: "a", Name: "Alpha"},
			{ID: "b", Name: "Beta"},
		}}}
	}))
	top := topTerms(idx, 3)
	if len(top) != 3 {
		t.Fatalf("want 3 terms, got %d", len(top))
	}
	// Every item carries the category id, so its fragments lead.
	if top[0].postings != 2 {
		t.Errorf("want the most shared term first, got %+v", top)
	}
	for i := 1; i < len(top); i++ {
		if top[i].postings > top[i-1].postings {
			t.Errorf("terms not sorted by postings: %+v", top)
		}
	}
}

func TestOpenSession_BuiltinEphemeral(t *testing.T) {
	home := isolate(t)
	flagEphemeral = true
	flagCatalog = ""

	s, err := openSession()
	if err != nil {
		t.Fatalf("openSession: %v", err)
	}
	if got := s.dash.Catalog().Len(); got != len(catalog.DefaultOrder) {
		t.Errorf("want %d built-in categories, got %d", len(catalog.DefaultOrder), got)
	}
	if _, err := s.dash.AddFavorite("github", "gestion"); err != nil {
		t.Fatalf("AddFavorite: %v", err)
	}
	if _, err := os.Stat(filepath.Join(home, ".deck", "prefs.yaml")); !os.IsNotExist(err) {
		t.Error("--ephemeral must not write preferences")
	}
}

func TestOpenSession_CatalogFlag(t *testing.T) {
	home := isolate(t)
	dir := filepath.Join(home, "cats")
	writeCategory(t, dir, "10-tools.yaml", toolsCategory)
	flagCatalog = dir
	flagEphemeral = true

	s, err := openSession()
	if err != nil {
		t.Fatalf("openSession: %v", err)
	}
	if s.cfg.CatalogDir != dir {
		t.Errorf("CatalogDir: got %q want %q", s.cfg.CatalogDir, dir)
	}
	ids := s.dash.Catalog().IDs()
	if len(ids) != 1 || ids[0] != "tools" {
		t.Errorf("unexpected categories %v", ids)
	}
}

func TestOpenSession_PersistsPreferences(t *testing.T) {
	home := isolate(t)
	flagEphemeral = false

	s, err := openSession()
	if err != nil {
		t.Fatalf("openSession: %v", err)
	}
	if err := s.dash.Display.SetDensity("compact"); err != nil {
		t.Fatalf("SetDensity: %v", err)
	}
	if _, err := os.Stat(filepath.Join(home, ".deck", "prefs.yaml")); err != nil {
		t.Fatalf("prefs.yaml not written: %v", err)
	}

	again, err := openSession()
	if err != nil {
		t.Fatalf("openSession: %v", err)
	}
	if got := again.dash.Display.Density(); got != "compact" {
		t.Errorf("density not persisted: got %q", got)
	}
}

func TestExportCatalog_RoundTrip(t *testing.T) {
	isolate(t)
	def, err := catalog.Default()
	if err != nil {
		t.Fatal(err)
	}
	dir := filepath.Join(t.TempDir(), "export")

	n, err := exportCatalog(def, dir)
	if err != nil {
		t.Fatalf("exportCatalog: %v", err)
	}
	if n != def.Len() {
		t.Errorf("want %d files, got %d", def.Len(), n)
	}

	cats, err := catalog.LoadDir(dir)
	if err != nil {
		t.Fatalf("LoadDir: %v", err)
	}
	back, err := catalog.New(cats, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if strings.Join(back.IDs(), ",") != strings.Join(def.IDs(), ",") {
		t.Errorf("order lost: got %v want %v", back.IDs(), def.IDs())
	}

	// A second export leaves existing files alone.
	n, err = exportCatalog(def, dir)
	if err != nil {
		t.Fatalf("second export: %v", err)
	}
	if n != 0 {
		t.Errorf("want 0 files rewritten, got %d", n)
	}
}

func TestRunDoctorFix_RemovesConflicts(t *testing.T) {
	home := isolate(t)
	dir := filepath.Join(home, "cats")
	writeCategory(t, dir, "10-tools.yaml", toolsCategory)
	writeCategory(t, dir, "10-tools.conflict-laptop.yaml", toolsCategory)
	flagCatalog = dir

	if err := runDoctorFix(nil, nil); err != nil {
		t.Fatalf("runDoctorFix: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "10-tools.conflict-laptop.yaml")); !os.IsNotExist(err) {
		t.Error("conflict file should have been deleted")
	}
	if _, err := os.Stat(filepath.Join(dir, "10-tools.yaml")); err != nil {
		t.Errorf("original file must stay: %v", err)
	}
}

func TestPrintVersion(t *testing.T) {
	home := isolate(t)

	var buf bytes.Buffer
	printVersion(&buf)
	out := buf.String()
	builtin := fmt.Sprintf("Built-in:   %d categories", len(catalog.DefaultOrder))
	for _, want := range []string{"Version:    dev", builtin, "Catalog:    built-in"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	dir := filepath.Join(home, "cats")
	writeCategory(t, dir, "10-tools.yaml", toolsCategory)
	flagCatalog = dir
	buf.Reset()
	printVersion(&buf)
	if want := "Catalog:    " + dir + ", 1 categories, 2 apps"; !strings.Contains(buf.String(), want) {
		t.Errorf("output missing %q:\n%s", want, buf.String())
	}
}
