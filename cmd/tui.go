package cmd

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/kamusis/deck-cli/internal/dashboard"
	"github.com/kamusis/deck-cli/internal/tui"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

var (
	flagTUICategory string
	flagTUIPrint    bool
	flagTUINoWatch  bool
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Search as you type and open the selected app",
	Long: `Open the interactive search screen.

Results refresh shortly after you stop typing. When the catalog is a
directory, edits to its category files are picked up while the screen
is open.`,
	Args: cobra.NoArgs,
	RunE: runTUI,
}

func init() {
	tuiCmd.Flags().StringVar(&flagTUICategory, "category", "", "Only search this category")
	tuiCmd.Flags().BoolVar(&flagTUIPrint, "print", false, "Print the chosen URL instead of opening it")
	tuiCmd.Flags().BoolVar(&flagTUINoWatch, "no-watch", false, "Do not reload the catalog when its files change")
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(_ *cobra.Command, _ []string) error {
	if !isatty.IsTerminal(os.Stdin.Fd()) || !isatty.IsTerminal(os.Stdout.Fd()) {
		return fmt.Errorf("deck tui needs an interactive terminal\nUse 'deck search <query>' instead.")
	}
	s, err := openSession()
	if err != nil {
		return err
	}

	opts := tui.Options{
		Backend: s.dash,
		Search: dashboard.SearchOptions{
			CategoryID:   flagTUICategory,
			DisableFuzzy: !s.cfg.Fuzzy,
			UsageBoost:   s.cfg.UsageBoost,
		},
	}
	if !flagTUIPrint {
		opts.Launch = openURL
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if s.cfg.CatalogDir != "" && !flagTUINoWatch {
		w, err := tui.WatchCatalog(ctx, s.cfg.CatalogDir, s.logger)
		if err != nil {
			s.logger.Warn("catalog hot reload disabled", "err", err)
		} else {
			defer w.Close()
			opts.Changes = w.Changes()
			opts.Reload = func() error {
				c, err := loadCatalog(s.cfg, s.logger)
				if err != nil {
					return err
				}
				return s.dash.ReplaceCatalog(c)
			}
		}
	}

	final, err := tea.NewProgram(tui.NewModel(opts), tea.WithAltScreen()).Run()
	if err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	if m, ok := final.(tui.Model); ok {
		if r, ok := m.Chosen(); ok {
			if flagTUIPrint {
				fmt.Println(r.URL)
			} else {
				printOK(r.ID, fmt.Sprintf("opened %s", r.URL))
			}
		}
	}
	return nil
}
