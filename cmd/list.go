package cmd

import (
	"github.com/spf13/cobra"

	"github.com/winauto/windows-mcp/internal/output"
	"github.com/winauto/windows-mcp/internal/platform"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List windows or monitors",
	Long:  "List visible top-level windows with handle, title, app, PID, and bounds, or attached monitors with --monitors.",
	RunE:  runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().Bool("monitors", false, "List attached monitors instead of windows")
	listCmd.Flags().String("app", "", "Filter windows by app name or title substring")
	listCmd.Flags().Int("pid", 0, "Filter windows by PID")
}

func runList(cmd *cobra.Command, args []string) error {
	provider, err := platform.NewProvider()
	if err != nil {
		return err
	}

	monitors, _ := cmd.Flags().GetBool("monitors")
	if monitors {
		list, err := provider.Reader.ListMonitors()
		if err != nil {
			return err
		}
		return output.Print(list)
	}

	app, _ := cmd.Flags().GetString("app")
	pid, _ := cmd.Flags().GetInt("pid")
	windows, err := provider.Reader.ListWindows(platform.ListOptions{App: app, PID: pid})
	if err != nil {
		return err
	}
	return output.Print(windows)
}
