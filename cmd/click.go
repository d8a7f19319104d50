package cmd

import (
	"github.com/spf13/cobra"

	"github.com/winauto/windows-mcp/internal/platform"
)

var clickCmd = &cobra.Command{
	Use:   "click",
	Short: "Click the mouse",
	Long:  "Click the mouse at the given screen coordinates, or at the current position when no coordinates are given.",
	RunE:  runClick,
}

func init() {
	rootCmd.AddCommand(clickCmd)
	clickCmd.Flags().Int("x", 0, "X coordinate")
	clickCmd.Flags().Int("y", 0, "Y coordinate")
	clickCmd.Flags().String("button", "left", "Mouse button: left, right, middle")
	clickCmd.Flags().Bool("double", false, "Double-click")
}

func runClick(cmd *cobra.Command, args []string) error {
	provider, err := platform.NewProvider()
	if err != nil {
		return err
	}

	buttonStr, _ := cmd.Flags().GetString("button")
	button, err := platform.ParseMouseButton(buttonStr)
	if err != nil {
		return err
	}
	double, _ := cmd.Flags().GetBool("double")

	if cmd.Flags().Changed("x") && cmd.Flags().Changed("y") {
		x, _ := cmd.Flags().GetInt("x")
		y, _ := cmd.Flags().GetInt("y")
		return provider.Inputter.MouseClickAt(x, y, button, double)
	}
	return provider.Inputter.MouseClick(button, double)
}
