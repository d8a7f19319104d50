package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/winauto/windows-mcp/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start a Model Context Protocol (MCP) server exposing all windows-mcp
tools. AI agents can call tools directly without shell overhead.

Supported transports:
  stdio             Standard I/O (default, for MCP clients)
  streamable-http   Streamable HTTP transport (for remote agents)

The log level can also be set with the WINDOWS_MCP_LOG_LEVEL environment
variable, which takes precedence over --log-level.

Examples:
  windows-mcp serve
  windows-mcp serve --transport streamable-http --port 8080
  windows-mcp serve --cache-ttl 0`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("transport", "stdio", "Transport: stdio, streamable-http")
	serveCmd.Flags().Int("port", 8080, "HTTP port for streamable-http transport")
	serveCmd.Flags().Int("cache-ttl", 500, "Element tree cache TTL in milliseconds (0 to disable)")
	serveCmd.Flags().String("log-level", "info", "Log level: debug, info, warn, error")
}

func runServe(cmd *cobra.Command, args []string) error {
	transport, _ := cmd.Flags().GetString("transport")
	port, _ := cmd.Flags().GetInt("port")
	cacheTTLMs, _ := cmd.Flags().GetInt("cache-ttl")
	logLevel, _ := cmd.Flags().GetString("log-level")

	cfg := server.Config{
		Transport: transport,
		Port:      port,
		CacheTTL:  time.Duration(cacheTTLMs) * time.Millisecond,
		LogLevel:  logLevel,
	}

	srv, err := server.New(cfg)
	if err != nil {
		return fmt.Errorf("failed to create MCP server: %w", err)
	}
	return srv.Serve(cfg)
}
