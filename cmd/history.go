package cmd

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show or edit the search history",
	RunE:  runHistoryList,
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List past searches, newest first",
	Args:  cobra.NoArgs,
	RunE:  runHistoryList,
}

var historyRmCmd = &cobra.Command{
	Use:   "rm <term>",
	Short: "Forget one search term",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runHistoryRm,
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Forget every search term",
	Args:  cobra.NoArgs,
	RunE:  runHistoryClear,
}

var historySuggestCmd = &cobra.Command{
	Use:   "suggest [input]",
	Short: "Suggest past searches matching input",
	Args:  cobra.ArbitraryArgs,
	RunE:  runHistorySuggest,
}

var flagHistoryLimit int

func init() {
	historySuggestCmd.Flags().IntVar(&flagHistoryLimit, "limit", 5, "Maximum number of suggestions")
	historyCmd.AddCommand(historyListCmd, historyRmCmd, historyClearCmd, historySuggestCmd)
	rootCmd.AddCommand(historyCmd)
}

func runHistoryList(_ *cobra.Command, _ []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	printSection("Search history")
	entries := s.dash.History.List()
	if len(entries) == 0 {
		printSkip("", "no searches yet")
		return nil
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for i, e := range entries {
		fmt.Fprintf(w, "  %d.\t%s\t%s\n", i+1, e.Term, e.Timestamp.Local().Format("2006-01-02 15:04"))
	}
	_ = w.Flush()
	return nil
}

func runHistoryRm(_ *cobra.Command, args []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	term := strings.Join(args, " ")
	removed, err := s.dash.History.Remove(term)
	if err != nil {
		return err
	}
	if !removed {
		printMiss("", fmt.Sprintf("%q is not in the history", term))
		return nil
	}
	printOK("", fmt.Sprintf("removed %q", term))
	return nil
}

func runHistoryClear(_ *cobra.Command, _ []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	if err := s.dash.History.Clear(); err != nil {
		return err
	}
	printOK("", "search history cleared")
	return nil
}

func runHistorySuggest(_ *cobra.Command, args []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	for _, term := range s.dash.History.Suggest(strings.Join(args, " "), flagHistoryLimit) {
		fmt.Println(term)
	}
	return nil
}
