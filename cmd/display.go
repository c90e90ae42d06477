package cmd

import (
	"fmt"
	"strings"

	"github.com/kamusis/deck-cli/internal/display"
	"github.com/spf13/cobra"
)

var displayCmd = &cobra.Command{
	Use:   "display",
	Short: "Show or change display preferences",
	RunE:  runDisplayShow,
}

var displayShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current display preferences",
	Args:  cobra.NoArgs,
	RunE:  runDisplayShow,
}

var displayDensityCmd = &cobra.Command{
	Use:   "density <" + strings.Join(display.Densities, "|") + ">",
	Short: "Set the card density",
	Args:  cobra.ExactArgs(1),
	RunE:  runDisplayDensity,
}

var displayLayoutCmd = &cobra.Command{
	Use:   "layout <" + strings.Join(display.Layouts, "|") + ">",
	Short: "Set the card layout",
	Args:  cobra.ExactArgs(1),
	RunE:  runDisplayLayout,
}

var displayHideCmd = &cobra.Command{
	Use:   "hide [category...]",
	Short: "Hide categories from lists and search results",
	Args:  cobra.ArbitraryArgs,
	RunE:  runDisplayHide,
}

var displayShowCategoryCmd = &cobra.Command{
	Use:   "show-category [category...]",
	Short: "Make hidden categories visible again",
	Args:  cobra.ArbitraryArgs,
	RunE:  runDisplayShowCategory,
}

var displayDockCmd = &cobra.Command{
	Use:       "dock [open|closed|toggle]",
	Short:     "Show or set the favorites dock state",
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{"open", "closed", "toggle"},
	RunE:      runDisplayDock,
}

var displayResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restore the default density and layout",
	Args:  cobra.NoArgs,
	RunE:  runDisplayReset,
}

var flagDisplayAll bool

func init() {
	displayHideCmd.Flags().BoolVar(&flagDisplayAll, "all", false, "Apply to every category")
	displayShowCategoryCmd.Flags().BoolVar(&flagDisplayAll, "all", false, "Apply to every category")
	displayCmd.AddCommand(displayShowCmd, displayDensityCmd, displayLayoutCmd,
		displayHideCmd, displayShowCategoryCmd, displayDockCmd, displayResetCmd)
	rootCmd.AddCommand(displayCmd)
}

func runDisplayShow(_ *cobra.Command, _ []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	d := s.dash.Display
	printSection("Display")
	printInfo("density", d.Density())
	printInfo("layout", d.Layout())
	dock := "closed"
	if d.DockOpen() {
		dock = "open"
	}
	printInfo("dock", dock)
	printInfo("category", s.dash.CurrentCategory())

	printBullet("Categories:")
	for _, c := range s.dash.Categories(true) {
		if d.IsVisible(c.ID) {
			printOK(c.ID, c.Name)
		} else {
			printSkip(c.ID, c.Name+" (hidden)")
		}
	}
	return nil
}

func runDisplayDensity(_ *cobra.Command, args []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	if err := s.dash.Display.SetDensity(args[0]); err != nil {
		return err
	}
	printOK("density", args[0])
	return nil
}

func runDisplayLayout(_ *cobra.Command, args []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	if err := s.dash.Display.SetLayout(args[0]); err != nil {
		return err
	}
	printOK("layout", args[0])
	return nil
}

func runDisplayHide(_ *cobra.Command, args []string) error {
	return setVisibility(args, false)
}

func runDisplayShowCategory(_ *cobra.Command, args []string) error {
	return setVisibility(args, true)
}

func setVisibility(ids []string, visible bool) error {
	if len(ids) == 0 && !flagDisplayAll {
		return fmt.Errorf("name at least one category, or pass --all")
	}
	s, err := openSession()
	if err != nil {
		return err
	}
	d := s.dash.Display
	if flagDisplayAll {
		if visible {
			err = d.ShowAll()
		} else {
			err = d.HideAll(s.dash.Catalog().IDs())
		}
		if err != nil {
			return err
		}
		printOK("", fmt.Sprintf("all categories %s", visibilityWord(visible)))
		return nil
	}
	for _, id := range ids {
		if _, err := s.dash.Catalog().Category(id); err != nil {
			return err
		}
		if err := d.SetVisible(id, visible); err != nil {
			return err
		}
		printOK(id, visibilityWord(visible))
	}
	return nil
}

func visibilityWord(visible bool) string {
	if visible {
		return "visible"
	}
	return "hidden"
}

func runDisplayDock(_ *cobra.Command, args []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	d := s.dash.Display
	open := d.DockOpen()
	if len(args) == 1 {
		switch args[0] {
		case "open":
			open, err = true, d.SetDockOpen(true)
		case "closed":
			open, err = false, d.SetDockOpen(false)
		case "toggle":
			open, err = d.ToggleDock()
		default:
			return fmt.Errorf("dock state must be open, closed or toggle, got %q", args[0])
		}
		if err != nil {
			return err
		}
	}
	if open {
		printInfo("dock", "open")
	} else {
		printInfo("dock", "closed")
	}
	return nil
}

func runDisplayReset(_ *cobra.Command, _ []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	if err := s.dash.Display.Reset(); err != nil {
		return err
	}
	printOK("", fmt.Sprintf("density %s, layout %s", display.Densities[0], display.Layouts[0]))
	return nil
}
