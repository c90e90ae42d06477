package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/kamusis/deck-cli/internal/dashboard"
	"github.com/kamusis/deck-cli/internal/search"
	"github.com/spf13/cobra"
)

var (
	flagSearchCategory  string
	flagSearchNoFuzzy   bool
	flagSearchK         int
	flagSearchUsage     bool
	flagSearchAll       bool
	flagSearchNoHistory bool
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search apps by name, tag, description or category",
	Long: `Search the catalog. Every word of the query is matched exactly, as a
prefix and, unless --no-fuzzy is given, with a small number of typos.
Accents and case are ignored.`,
	Args: cobra.MinimumNArgs(0),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().StringVar(&flagSearchCategory, "category", "", "Only return apps of this category")
	searchCmd.Flags().BoolVar(&flagSearchNoFuzzy, "no-fuzzy", false, "Disable typo-tolerant matching")
	searchCmd.Flags().IntVar(&flagSearchK, "k", 10, "Number of results to show (0 = all)")
	searchCmd.Flags().BoolVar(&flagSearchUsage, "usage", false, "Boost apps you open often")
	searchCmd.Flags().BoolVar(&flagSearchAll, "all", false, "Include hidden categories")
	searchCmd.Flags().BoolVar(&flagSearchNoHistory, "no-history", false, "Do not record the query in the search history")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return cmd.Help()
	}
	query := strings.Join(args, " ")

	s, err := openSession()
	if err != nil {
		return err
	}
	if flagSearchCategory != "" {
		if _, err := s.dash.Catalog().Category(flagSearchCategory); err != nil {
			return err
		}
	}

	results := s.dash.Search(query, dashboard.SearchOptions{
		CategoryID:    flagSearchCategory,
		DisableFuzzy:  flagSearchNoFuzzy || !s.cfg.Fuzzy,
		IncludeHidden: flagSearchAll,
		UsageBoost:    flagSearchUsage || s.cfg.UsageBoost,
		Record:        !flagSearchNoHistory,
	})
	total := len(results)
	if flagSearchK > 0 && total > flagSearchK {
		results = results[:flagSearchK]
	}
	printSearchResults(os.Stdout, query, results, total, s.dash.Favorites.IsFavorite)
	return nil
}

// printSearchResults prints the first results of total matches.
func printSearchResults(out io.Writer, query string, results []search.Result, total int, isFav func(string) bool) {
	fmt.Fprintf(out, "\ndeck search %q\n\n", query)
	if total > len(results) {
		fmt.Fprintf(out, "Results (%d found, showing %d):\n", total, len(results))
	} else {
		fmt.Fprintf(out, "Results (%d found):\n", total)
	}
	if len(results) == 0 {
		return
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	for i, r := range results {
		fmt.Fprintf(w, "  %d.\t[%.2f]\t%s %s\t%s\t%s\n",
			i+1, r.Score, favMark(isFav(r.ID)), r.ID, r.Name, r.CategoryName)
		if d := strings.TrimSpace(r.Description); d != "" {
			fmt.Fprintf(w, "  \t\t  - %s\n", d)
		}
	}
	_ = w.Flush()
}
