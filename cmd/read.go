package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/winauto/windows-mcp/internal/annotate"
	"github.com/winauto/windows-mcp/internal/model"
	"github.com/winauto/windows-mcp/internal/output"
	"github.com/winauto/windows-mcp/internal/platform"
)

var readCmd = &cobra.Command{
	Use:   "read",
	Short: "Read a window's UI element tree",
	Long:  "Read a window's UI Automation tree with control types, names, automation IDs, bounds, and clickable points. Use --flat for a pre-order list, --filter to keep only matching control types.",
	RunE:  runRead,
}

func init() {
	rootCmd.AddCommand(readCmd)
	readCmd.Flags().Uint64("window", 0, "Window handle from `list`")
	readCmd.Flags().Int("depth", 15, "Max tree depth 1-20")
	readCmd.Flags().String("filter", "", "Comma-separated control types (e.g. 'Button,Edit')")
	readCmd.Flags().Bool("flat", false, "Output a flat pre-order list instead of a tree")
	readCmd.Flags().Int("max-elements", 0, "Max elements in flat output (0 = unlimited)")
	readCmd.MarkFlagRequired("window")
}

func runRead(cmd *cobra.Command, args []string) error {
	provider, err := platform.NewProvider()
	if err != nil {
		return err
	}

	window, _ := cmd.Flags().GetUint64("window")
	depth, _ := cmd.Flags().GetInt("depth")
	filter, _ := cmd.Flags().GetString("filter")
	flat, _ := cmd.Flags().GetBool("flat")
	maxElements, _ := cmd.Flags().GetInt("max-elements")

	tree, err := provider.Reader.WindowTree(cmd.Context(), uintptr(window), annotate.ClampDepth(depth))
	if err != nil {
		return err
	}

	if flat || filter != "" {
		elements := model.FlattenElements(tree)
		if filter != "" {
			elements = model.FilterInteractive(elements, model.ParseControlTypes(filter))
		}
		if maxElements > 0 {
			elements = model.Truncate(elements, maxElements)
		}
		return output.Print(output.ReadFlatResult{
			Window:   fmt.Sprintf("%d", window),
			TS:       time.Now().Unix(),
			Elements: elements,
		})
	}
	return output.Print(output.ReadResult{
		Window:   fmt.Sprintf("%d", window),
		TS:       time.Now().Unix(),
		Elements: tree,
	})
}
