package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var flagUsageLimit int

var usageCmd = &cobra.Command{
	Use:   "usage",
	Short: "Show the most opened apps and their usage score",
	Args:  cobra.NoArgs,
	RunE:  runUsage,
}

func init() {
	usageCmd.Flags().IntVar(&flagUsageLimit, "limit", 10, "Number of apps to show (0 = all)")
	rootCmd.AddCommand(usageCmd)
}

func runUsage(_ *cobra.Command, _ []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	printSection("Most used")
	ranked := s.dash.Usage.MostUsed(flagUsageLimit)
	if len(ranked) == 0 {
		printSkip("", "no app opened yet")
		return nil
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for i, r := range ranked {
		last := "-"
		if !r.LastUsed.IsZero() {
			last = r.LastUsed.Local().Format("2006-01-02 15:04")
		}
		fmt.Fprintf(w, "  %d.\t%s\t%s\t%d launch(es)\tscore %.1f\tlast %s\n",
			i+1, r.AppID, r.CategoryID, r.Count, s.dash.Usage.Score(r.AppID, r.CategoryID), last)
	}
	_ = w.Flush()
	return nil
}
