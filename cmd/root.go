// Package cmd implements the windows-mcp command-line interface. Every MCP
// tool is also reachable as a subcommand so behavior can be exercised from a
// shell without an MCP client.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/winauto/windows-mcp/internal/output"
	"github.com/winauto/windows-mcp/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "windows-mcp",
	Short: "Automate the Windows desktop for AI agents",
	Long:  "An MCP server and CLI that lets AI agents see and control the Windows desktop: annotated screenshots, UI Automation trees, mouse, keyboard, windows, and OCR.",
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", version.Version, version.Commit, version.BuildDate)
	rootCmd.PersistentFlags().String("format", "yaml", "Output format: yaml, json")
	rootCmd.PersistentFlags().Bool("pretty", false, "Pretty-print JSON output")
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		// Use the root persistent flag directly to avoid conflicts with
		// subcommand local flags (e.g. screenshot --format png/jpg).
		format, _ := rootCmd.PersistentFlags().GetString("format")
		switch format {
		case "", "yaml":
			output.OutputFormat = output.FormatYAML
		case "json":
			output.OutputFormat = output.FormatJSON
		default:
			return fmt.Errorf("unsupported format: %s (use yaml or json)", format)
		}
		pretty, _ := rootCmd.PersistentFlags().GetBool("pretty")
		output.PrettyOutput = pretty
		return nil
	}
}
