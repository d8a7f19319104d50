package cmd

import (
	"github.com/spf13/cobra"

	"github.com/winauto/windows-mcp/internal/platform"
)

var scrollCmd = &cobra.Command{
	Use:   "scroll",
	Short: "Scroll the mouse wheel",
	RunE:  runScroll,
}

func init() {
	rootCmd.AddCommand(scrollCmd)
	scrollCmd.Flags().String("direction", "", "Scroll direction: up, down, left, right")
	scrollCmd.Flags().Int("amount", 3, "Scroll clicks")
	scrollCmd.Flags().Int("x", 0, "Scroll at X coordinate")
	scrollCmd.Flags().Int("y", 0, "Scroll at Y coordinate")
	scrollCmd.MarkFlagRequired("direction")
}

func runScroll(cmd *cobra.Command, args []string) error {
	provider, err := platform.NewProvider()
	if err != nil {
		return err
	}
	direction, _ := cmd.Flags().GetString("direction")
	amount, _ := cmd.Flags().GetInt("amount")
	x, _ := cmd.Flags().GetInt("x")
	y, _ := cmd.Flags().GetInt("y")
	return provider.Inputter.MouseScroll(direction, amount, x, y)
}
