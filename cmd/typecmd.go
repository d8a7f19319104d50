package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/winauto/windows-mcp/internal/platform"
)

var typeCmd = &cobra.Command{
	Use:   "type [text]",
	Short: "Type text into the focused element",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runType,
}

func init() {
	rootCmd.AddCommand(typeCmd)
	typeCmd.Flags().String("text", "", "Text to type (alternative to positional argument)")
	typeCmd.Flags().Int("delay", 0, "Delay between keystrokes in milliseconds")
}

func runType(cmd *cobra.Command, args []string) error {
	provider, err := platform.NewProvider()
	if err != nil {
		return err
	}
	text, _ := cmd.Flags().GetString("text")
	if text == "" && len(args) > 0 {
		text = args[0]
	}
	if text == "" {
		return fmt.Errorf("no text given")
	}
	delayMs, _ := cmd.Flags().GetInt("delay")
	return provider.Inputter.TypeText(text, time.Duration(delayMs)*time.Millisecond)
}
