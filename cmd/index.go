package cmd

import (
	"fmt"
	"os"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/kamusis/deck-cli/internal/search"
	"github.com/spf13/cobra"
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Inspect the in-memory search index",
}

var indexStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Build the index and print its size",
	Args:  cobra.NoArgs,
	RunE:  runIndexStats,
}

var flagIndexTerms int

func init() {
	indexStatsCmd.Flags().IntVar(&flagIndexTerms, "terms", 0, "Also list the n terms with the most postings")
	indexCmd.AddCommand(indexStatsCmd)
	rootCmd.AddCommand(indexCmd)
}

func runIndexStats(_ *cobra.Command, _ []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}

	start := time.Now()
	s.dash.Engine().Rebuild()
	elapsed := time.Since(start)

	idx := s.dash.Engine().Snapshot()
	st := idx.Stats()
	printSection("Search index")
	printInfo("categories", fmt.Sprintf("%d", s.dash.Catalog().Len()))
	printInfo("apps", fmt.Sprintf("%d", st.Items))
	printInfo("terms", fmt.Sprintf("%d", st.Terms))
	printInfo("postings", fmt.Sprintf("%d", st.Postings))
	printInfo("build", elapsed.Round(time.Microsecond).String())

	if flagIndexTerms > 0 {
		printBullet("Most shared terms:")
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		for _, tc := range topTerms(idx, flagIndexTerms) {
			fmt.Fprintf(w, "  %s\t%d\n", tc.term, tc.postings)
		}
		_ = w.Flush()
	}
	return nil
}

type termCount struct {
	term     string
	postings int
}

// topTerms returns the n terms with the most postings, ties by term.
func topTerms(idx *search.Index, n int) []termCount {
	terms := idx.Terms()
	out := make([]termCount, 0, len(terms))
	for _, t := range terms {
		out = append(out, termCount{term: t, postings: len(idx.Postings(t))})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].postings != out[j].postings {
			return out[i].postings > out[j].postings
		}
		return out[i].term < out[j].term
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}
