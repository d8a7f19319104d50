package cmd

import (
	"github.com/spf13/cobra"

	"github.com/winauto/windows-mcp/internal/output"
	"github.com/winauto/windows-mcp/internal/platform"
)

var moveCmd = &cobra.Command{
	Use:   "move",
	Short: "Move the mouse cursor",
	RunE:  runMove,
}

var positionCmd = &cobra.Command{
	Use:   "position",
	Short: "Report the current mouse cursor position",
	RunE:  runPosition,
}

func init() {
	rootCmd.AddCommand(moveCmd)
	rootCmd.AddCommand(positionCmd)
	moveCmd.Flags().Int("x", 0, "X coordinate")
	moveCmd.Flags().Int("y", 0, "Y coordinate")
	moveCmd.MarkFlagRequired("x")
	moveCmd.MarkFlagRequired("y")
}

func runMove(cmd *cobra.Command, args []string) error {
	provider, err := platform.NewProvider()
	if err != nil {
		return err
	}
	x, _ := cmd.Flags().GetInt("x")
	y, _ := cmd.Flags().GetInt("y")
	return provider.Inputter.MouseMove(x, y)
}

func runPosition(cmd *cobra.Command, args []string) error {
	provider, err := platform.NewProvider()
	if err != nil {
		return err
	}
	x, y := provider.Inputter.MousePosition()
	return output.Print(map[string]int{"x": x, "y": y})
}
