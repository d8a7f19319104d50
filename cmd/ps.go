package cmd

import (
	"github.com/spf13/cobra"

	"github.com/winauto/windows-mcp/internal/output"
	"github.com/winauto/windows-mcp/internal/platform"
)

var psCmd = &cobra.Command{
	Use:   "ps",
	Short: "List running processes",
	RunE:  runPs,
}

func init() {
	rootCmd.AddCommand(psCmd)
	psCmd.Flags().String("name", "", "Filter by image name substring")
}

func runPs(cmd *cobra.Command, args []string) error {
	provider, err := platform.NewProvider()
	if err != nil {
		return err
	}
	name, _ := cmd.Flags().GetString("name")
	procs, err := provider.Processes.List(name)
	if err != nil {
		return err
	}
	return output.Print(procs)
}
