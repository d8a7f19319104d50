package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/winauto/windows-mcp/internal/platform"
)

var keyCmd = &cobra.Command{
	Use:   "key [combo]",
	Short: "Press a key or key combination",
	Long:  "Press a key or key combination, e.g. 'enter', 'ctrl+shift+s', 'alt+f4'.",
	Args:  cobra.ExactArgs(1),
	RunE:  runKey,
}

func init() {
	rootCmd.AddCommand(keyCmd)
}

func runKey(cmd *cobra.Command, args []string) error {
	provider, err := platform.NewProvider()
	if err != nil {
		return err
	}
	if args[0] == "" {
		return fmt.Errorf("no key given")
	}
	return provider.Inputter.TapKey(args[0])
}
