package cmd

import (
	"github.com/spf13/cobra"

	"github.com/winauto/windows-mcp/internal/output"
	"github.com/winauto/windows-mcp/internal/platform"
)

var launchCmd = &cobra.Command{
	Use:   "launch [path] [args...]",
	Short: "Launch an executable",
	Long:  "Launch an executable detached from this process and print its PID.",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runLaunch,
}

func init() {
	rootCmd.AddCommand(launchCmd)
}

func runLaunch(cmd *cobra.Command, args []string) error {
	provider, err := platform.NewProvider()
	if err != nil {
		return err
	}
	info, err := provider.Processes.Launch(args[0], args[1:])
	if err != nil {
		return err
	}
	return output.Print(info)
}
