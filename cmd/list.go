package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/kamusis/deck-cli/internal/catalog"
	"github.com/spf13/cobra"
)

var flagListAll bool

var listCmd = &cobra.Command{
	Use:   "list [category]",
	Short: "List categories and their apps",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runList,
}

func init() {
	listCmd.Flags().BoolVar(&flagListAll, "all", false, "Include hidden categories")
	rootCmd.AddCommand(listCmd)
}

func runList(_ *cobra.Command, args []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}

	var cats []catalog.Category
	if len(args) == 1 {
		c, err := s.dash.Catalog().Category(args[0])
		if err != nil {
			return err
		}
		cats = []catalog.Category{c}
		if err := s.dash.SelectCategory(c.ID); err != nil {
			s.logger.Warn("cannot remember category", "category", c.ID, "err", err)
		}
	} else {
		cats = s.dash.Categories(flagListAll)
	}

	for _, c := range cats {
		printCategory(c, s.dash.Favorites.IsFavorite, s.dash.Display.IsVisible(c.ID))
	}
	return nil
}

func printCategory(c catalog.Category, isFav func(string) bool, visible bool) {
	title := fmt.Sprintf("%s (%s)", c.Name, c.ID)
	if !visible {
		title += " [hidden]"
	}
	printSection(title)
	if c.Description != "" {
		fmt.Printf("  %s\n", c.Description)
	}
	if len(c.Apps) == 0 {
		printSkip("", "no apps")
		return
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for _, a := range c.Apps {
		fmt.Fprintf(w, "  %s %s\t%s\t%s\n", favMark(isFav(a.ID)), a.ID, a.Name, a.URL)
	}
	_ = w.Flush()
}
