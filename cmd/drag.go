package cmd

import (
	"github.com/spf13/cobra"

	"github.com/winauto/windows-mcp/internal/platform"
)

var dragCmd = &cobra.Command{
	Use:   "drag",
	Short: "Drag the mouse between two points",
	Long:  "Drag the mouse from one screen point to another with the left button held.",
	RunE:  runDrag,
}

func init() {
	rootCmd.AddCommand(dragCmd)
	dragCmd.Flags().Int("from-x", 0, "Start X coordinate")
	dragCmd.Flags().Int("from-y", 0, "Start Y coordinate")
	dragCmd.Flags().Int("to-x", 0, "End X coordinate")
	dragCmd.Flags().Int("to-y", 0, "End Y coordinate")
	dragCmd.MarkFlagRequired("from-x")
	dragCmd.MarkFlagRequired("from-y")
	dragCmd.MarkFlagRequired("to-x")
	dragCmd.MarkFlagRequired("to-y")
}

func runDrag(cmd *cobra.Command, args []string) error {
	provider, err := platform.NewProvider()
	if err != nil {
		return err
	}
	fromX, _ := cmd.Flags().GetInt("from-x")
	fromY, _ := cmd.Flags().GetInt("from-y")
	toX, _ := cmd.Flags().GetInt("to-x")
	toY, _ := cmd.Flags().GetInt("to-y")
	return provider.Inputter.MouseDrag(fromX, fromY, toX, toY)
}
