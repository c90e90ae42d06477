package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/kamusis/deck-cli/internal/catalog"
	"github.com/spf13/cobra"
)

var appCmd = &cobra.Command{
	Use:   "app",
	Short: "Manage your own apps on top of the catalog",
	RunE:  runAppList,
}

var appListCmd = &cobra.Command{
	Use:   "list",
	Short: "List custom apps",
	Args:  cobra.NoArgs,
	RunE:  runAppList,
}

var appAddCmd = &cobra.Command{
	Use:   "add <category> <app-id> <url>",
	Short: "Add a custom app to a category",
	Args:  cobra.ExactArgs(3),
	RunE:  runAppAdd,
}

var appRmCmd = &cobra.Command{
	Use:   "rm <category> <app-id>",
	Short: "Remove a custom app",
	Args:  cobra.ExactArgs(2),
	RunE:  runAppRm,
}

var (
	flagAppName        string
	flagAppDescription string
	flagAppTags        []string
	flagAppIcon        string
	flagAppColor       string
)

func init() {
	appAddCmd.Flags().StringVar(&flagAppName, "name", "", "Display name (default: app id)")
	appAddCmd.Flags().StringVar(&flagAppDescription, "description", "", "Short description, searchable")
	appAddCmd.Flags().StringSliceVar(&flagAppTags, "tag", nil, "Search tag (repeatable)")
	appAddCmd.Flags().StringVar(&flagAppIcon, "icon", "", "Icon name")
	appAddCmd.Flags().StringVar(&flagAppColor, "color", "", "Accent colour")
	appCmd.AddCommand(appListCmd, appAddCmd, appRmCmd)
	rootCmd.AddCommand(appCmd)
}

func runAppList(_ *cobra.Command, _ []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	printSection("Custom apps")
	apps := s.dash.CustomApps()
	if len(apps) == 0 {
		printSkip("", "no custom apps")
		return nil
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for _, a := range apps {
		fmt.Fprintf(w, "  %s\t%s\t%s\t%s\n", a.CategoryID, a.ID, a.Name, a.URL)
	}
	_ = w.Flush()
	return nil
}

func runAppAdd(_ *cobra.Command, args []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	app := catalog.App{
		ID:          args[1],
		Name:        flagAppName,
		URL:         args[2],
		Icon:        flagAppIcon,
		Color:       flagAppColor,
		Description: flagAppDescription,
		Tags:        flagAppTags,
	}
	if err := s.dash.AddApp(args[0], app); err != nil {
		return err
	}
	printOK(args[1], fmt.Sprintf("added to %s", args[0]))
	return nil
}

func runAppRm(_ *cobra.Command, args []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	if err := s.dash.RemoveApp(args[0], args[1]); err != nil {
		return err
	}
	printOK(args[1], fmt.Sprintf("removed from %s", args[0]))
	return nil
}
