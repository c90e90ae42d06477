package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	flagOpenCategory string
	flagOpenPrint    bool
)

var openCmd = &cobra.Command{
	Use:   "open <app-id>",
	Short: "Open an app in the browser and count the launch",
	Args:  cobra.ExactArgs(1),
	RunE:  runOpen,
}

func init() {
	openCmd.Flags().StringVar(&flagOpenCategory, "category", "", "Category of the app when its id is not unique")
	openCmd.Flags().BoolVar(&flagOpenPrint, "print", false, "Print the URL instead of opening it")
	rootCmd.AddCommand(openCmd)
}

func runOpen(_ *cobra.Command, args []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	app, cat, err := s.dash.Open(args[0], flagOpenCategory)
	if err != nil {
		return err
	}
	if app.URL == "" {
		return fmt.Errorf("app %q in %s has no URL", app.ID, cat.ID)
	}
	if flagOpenPrint {
		fmt.Println(app.URL)
		return nil
	}
	if err := openURL(app.URL); err != nil {
		return fmt.Errorf("cannot open %s: %w", app.URL, err)
	}
	printOK(app.ID, fmt.Sprintf("opened %s", app.URL))
	return nil
}
