package cmd

import (
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/kamusis/deck-cli/internal/catalog"
	"github.com/spf13/cobra"
)

var favCmd = &cobra.Command{
	Use:   "fav",
	Short: "Manage favorite apps",
	RunE:  runFavList,
}

var favListCmd = &cobra.Command{
	Use:   "list",
	Short: "List favorites in order",
	Args:  cobra.NoArgs,
	RunE:  runFavList,
}

var favAddCmd = &cobra.Command{
	Use:   "add <app-id>",
	Short: "Add an app to the favorites",
	Args:  cobra.ExactArgs(1),
	RunE:  runFavAdd,
}

var favRmCmd = &cobra.Command{
	Use:   "rm <app-id>",
	Short: "Remove an app from the favorites",
	Args:  cobra.ExactArgs(1),
	RunE:  runFavRm,
}

var favMoveCmd = &cobra.Command{
	Use:   "move <app-id> <position>",
	Short: "Move a favorite to a 1-based position",
	Args:  cobra.ExactArgs(2),
	RunE:  runFavMove,
}

var flagFavCategory string

func init() {
	favAddCmd.Flags().StringVar(&flagFavCategory, "category", "", "Category of the app when its id is not unique")
	favCmd.AddCommand(favListCmd, favAddCmd, favRmCmd, favMoveCmd)
	rootCmd.AddCommand(favCmd)
}

func runFavList(_ *cobra.Command, _ []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	printSection("Favorites")
	resolved := s.dash.Favorites.Resolve(s.dash.Catalog())
	if len(resolved) == 0 {
		printSkip("", "no favorites")
		return nil
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for i, r := range resolved {
		fmt.Fprintf(w, "  %d.\t%s\t%s\t%s\n", i+1, r.ID, r.Name, r.CategoryName)
	}
	_ = w.Flush()
	if n := len(s.dash.Favorites.List()) - len(resolved); n > 0 {
		printWarn("", fmt.Sprintf("%d favorite(s) point to apps no longer in the catalog", n))
	}
	return nil
}

func runFavAdd(_ *cobra.Command, args []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	appID, categoryID := args[0], flagFavCategory
	if categoryID == "" {
		_, cat, ok := s.dash.Catalog().FindApp(appID)
		if !ok {
			return fmt.Errorf("%w: %s", catalog.ErrAppNotFound, appID)
		}
		categoryID = cat.ID
	}
	added, err := s.dash.AddFavorite(appID, categoryID)
	if err != nil {
		return err
	}
	if !added {
		printSkip(appID, "already a favorite")
		return nil
	}
	printOK(appID, "added to favorites")
	return nil
}

func runFavRm(_ *cobra.Command, args []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	removed, err := s.dash.Favorites.Remove(args[0])
	if err != nil {
		return err
	}
	if !removed {
		printMiss(args[0], "not a favorite")
		return nil
	}
	printOK(args[0], "removed from favorites")
	return nil
}

func runFavMove(_ *cobra.Command, args []string) error {
	pos, err := strconv.Atoi(args[1])
	if err != nil || pos < 1 {
		return fmt.Errorf("position must be a positive number, got %q", args[1])
	}
	s, err := openSession()
	if err != nil {
		return err
	}
	if err := s.dash.Favorites.Move(args[0], pos-1); err != nil {
		return err
	}
	printInfo(args[0], fmt.Sprintf("moved to position %d", pos))
	return nil
}
