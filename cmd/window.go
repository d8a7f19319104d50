package cmd

import (
	"github.com/spf13/cobra"

	"github.com/winauto/windows-mcp/internal/platform"
)

var windowCmd = &cobra.Command{
	Use:   "window [action]",
	Short: "Manage a window",
	Long:  "Perform a window-management action: focus, minimize, maximize, restore, close, move, resize.",
	Args:  cobra.ExactArgs(1),
	RunE:  runWindow,
}

func init() {
	rootCmd.AddCommand(windowCmd)
	windowCmd.Flags().Uint64("window", 0, "Window handle from `list`")
	windowCmd.Flags().Int("x", 0, "Target X for move")
	windowCmd.Flags().Int("y", 0, "Target Y for move")
	windowCmd.Flags().Int("width", 0, "Target width for resize")
	windowCmd.Flags().Int("height", 0, "Target height for resize")
	windowCmd.MarkFlagRequired("window")
}

func runWindow(cmd *cobra.Command, args []string) error {
	provider, err := platform.NewProvider()
	if err != nil {
		return err
	}
	action, err := platform.ParseWindowAction(args[0])
	if err != nil {
		return err
	}
	window, _ := cmd.Flags().GetUint64("window")
	x, _ := cmd.Flags().GetInt("x")
	y, _ := cmd.Flags().GetInt("y")
	w, _ := cmd.Flags().GetInt("width")
	h, _ := cmd.Flags().GetInt("height")
	return provider.WindowManager.Perform(uintptr(window), action, x, y, w, h)
}
