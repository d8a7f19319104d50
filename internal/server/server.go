// Package server exposes the automation tools over the Model Context
// Protocol. One process serves a single desktop session; concurrent tool
// calls are serialized through the provider mutex because synthetic input
// and COM tree walks must not interleave.
package server

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/sirupsen/logrus"

	"github.com/winauto/windows-mcp/internal/platform"
	"github.com/winauto/windows-mcp/internal/version"
)

// logLevelEnv overrides the log level without a flag, for MCP clients that
// only let users edit the server command line.
const logLevelEnv = "WINDOWS_MCP_LOG_LEVEL"

// Config holds server configuration.
type Config struct {
	Transport string
	Port      int
	CacheTTL  time.Duration
	LogLevel  string
}

// Server wraps the MCP server with the platform provider and tree cache.
type Server struct {
	provider   *platform.Provider
	cache      *TreeCache
	providerMu sync.Mutex
	mcp        *mcpserver.MCPServer
	log        *logrus.Logger
}

// New creates and configures an MCP server with all tools registered.
func New(cfg Config) (*Server, error) {
	provider, err := platform.NewProvider()
	if err != nil {
		return nil, err
	}

	s := &Server{
		provider: provider,
		cache:    NewTreeCache(cfg.CacheTTL),
		log:      newLogger(cfg.LogLevel),
	}

	s.mcp = mcpserver.NewMCPServer(
		"windows-mcp",
		version.Version,
		mcpserver.WithToolCapabilities(true),
		mcpserver.WithRecovery(),
	)

	s.registerTools()
	return s, nil
}

// Serve starts the MCP server with the configured transport and blocks until
// the client disconnects or the listener fails.
func (s *Server) Serve(cfg Config) error {
	switch cfg.Transport {
	case "stdio":
		s.log.WithField("transport", "stdio").Info("serving")
		return mcpserver.ServeStdio(s.mcp)
	case "streamable-http":
		httpServer := mcpserver.NewStreamableHTTPServer(s.mcp)
		s.log.WithFields(logrus.Fields{"transport": "streamable-http", "port": cfg.Port}).Info("serving")
		return httpServer.Start(fmt.Sprintf(":%d", cfg.Port))
	default:
		return fmt.Errorf("unsupported transport: %s (use stdio or streamable-http)", cfg.Transport)
	}
}

// newLogger builds the server logger. Logs go to stderr so the stdio
// transport keeps stdout clean for protocol frames.
func newLogger(level string) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	if env := os.Getenv(logLevelEnv); env != "" {
		level = env
	}
	if level == "" {
		level = "info"
	}
	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		parsed = logrus.InfoLevel
	}
	log.SetLevel(parsed)
	return log
}

func (s *Server) registerTools() {
	// capture_annotated
	s.mcp.AddTool(
		mcp.NewTool("capture_annotated",
			mcp.WithDescription("Capture a window screenshot with interactive elements outlined and numbered. Returns the image plus an index of elements with their labels, bounds, and clickable points."),
			mcp.WithNumber("window", mcp.Description("Window handle from list_windows (default: the foreground window)")),
			mcp.WithString("control-types", mcp.Description("Comma-separated control types to include (default: interactive types)")),
			mcp.WithNumber("max-elements", mcp.Description("Max labeled elements (default: 50)")),
			mcp.WithNumber("depth", mcp.Description("Tree search depth 1-20 (default: 15)")),
			mcp.WithString("format", mcp.Description("Image format: jpeg, png (default: jpeg)")),
			mcp.WithNumber("quality", mcp.Description("JPEG quality 1-100 (default: 85)")),
		),
		s.handleCaptureAnnotated,
	)

	// list_windows
	s.mcp.AddTool(
		mcp.NewTool("list_windows",
			mcp.WithDescription("List visible top-level windows with handles, titles, owning apps, and bounds"),
			mcp.WithString("app", mcp.Description("Filter by application or title substring")),
			mcp.WithNumber("pid", mcp.Description("Filter by process ID")),
		),
		s.handleListWindows,
	)

	// list_monitors
	s.mcp.AddTool(
		mcp.NewTool("list_monitors",
			mcp.WithDescription("List attached displays with bounds, work areas, and the primary flag"),
		),
		s.handleListMonitors,
	)

	// read_elements
	s.mcp.AddTool(
		mcp.NewTool("read_elements",
			mcp.WithDescription("Read a window's UI Automation element tree. Returns control types, names, automation IDs, bounds, and clickable points."),
			mcp.WithNumber("window", mcp.Description("Window handle from list_windows"), mcp.Required()),
			mcp.WithNumber("depth", mcp.Description("Max depth to traverse 1-20 (default: 15)")),
			mcp.WithString("control-types", mcp.Description("Comma-separated control types to include (empty: full tree)")),
			mcp.WithBoolean("flat", mcp.Description("Return a flat pre-order list instead of a tree")),
			mcp.WithNumber("max-elements", mcp.Description("Max elements in flat output (0 = unlimited)")),
		),
		s.handleReadElements,
	)

	// screenshot
	s.mcp.AddTool(
		mcp.NewTool("screenshot",
			mcp.WithDescription("Capture a window, a screen region, or the whole screen"),
			mcp.WithNumber("window", mcp.Description("Window handle to capture")),
			mcp.WithString("region", mcp.Description("Screen region as 'x,y,width,height'")),
			mcp.WithString("format", mcp.Description("Image format: png, jpeg (default: png)")),
			mcp.WithNumber("quality", mcp.Description("JPEG quality 1-100 (default: 85)")),
		),
		s.handleScreenshot,
	)

	// mouse_move
	s.mcp.AddTool(
		mcp.NewTool("mouse_move",
			mcp.WithDescription("Move the mouse cursor to screen coordinates"),
			mcp.WithNumber("x", mcp.Description("X coordinate"), mcp.Required()),
			mcp.WithNumber("y", mcp.Description("Y coordinate"), mcp.Required()),
		),
		s.handleMouseMove,
	)

	// mouse_click
	s.mcp.AddTool(
		mcp.NewTool("mouse_click",
			mcp.WithDescription("Click the mouse, optionally moving to coordinates first"),
			mcp.WithNumber("x", mcp.Description("X coordinate (omit to click at current position)")),
			mcp.WithNumber("y", mcp.Description("Y coordinate")),
			mcp.WithString("button", mcp.Description("Mouse button: left, right, middle (default: left)")),
			mcp.WithBoolean("double", mcp.Description("Double-click")),
		),
		s.handleMouseClick,
	)

	// mouse_drag
	s.mcp.AddTool(
		mcp.NewTool("mouse_drag",
			mcp.WithDescription("Drag the mouse from one point to another with the left button held"),
			mcp.WithNumber("from-x", mcp.Description("Start X"), mcp.Required()),
			mcp.WithNumber("from-y", mcp.Description("Start Y"), mcp.Required()),
			mcp.WithNumber("to-x", mcp.Description("End X"), mcp.Required()),
			mcp.WithNumber("to-y", mcp.Description("End Y"), mcp.Required()),
		),
		s.handleMouseDrag,
	)

	// mouse_scroll
	s.mcp.AddTool(
		mcp.NewTool("mouse_scroll",
			mcp.WithDescription("Scroll the mouse wheel, optionally at specific coordinates"),
			mcp.WithString("direction", mcp.Description("Scroll direction: up, down, left, right"), mcp.Required()),
			mcp.WithNumber("amount", mcp.Description("Scroll clicks (default: 3)")),
			mcp.WithNumber("x", mcp.Description("Scroll at X coordinate")),
			mcp.WithNumber("y", mcp.Description("Scroll at Y coordinate")),
		),
		s.handleMouseScroll,
	)

	// mouse_position
	s.mcp.AddTool(
		mcp.NewTool("mouse_position",
			mcp.WithDescription("Report the current mouse cursor position"),
		),
		s.handleMousePosition,
	)

	// keyboard_type
	s.mcp.AddTool(
		mcp.NewTool("keyboard_type",
			mcp.WithDescription("Type literal text into the focused element"),
			mcp.WithString("text", mcp.Description("Text to type"), mcp.Required()),
			mcp.WithNumber("delay", mcp.Description("Delay between keystrokes in ms")),
		),
		s.handleKeyboardType,
	)

	// keyboard_key
	s.mcp.AddTool(
		mcp.NewTool("keyboard_key",
			mcp.WithDescription("Press a key or key combination (e.g. 'enter', 'ctrl+shift+s', 'alt+f4')"),
			mcp.WithString("key", mcp.Description("Key or combo to press"), mcp.Required()),
		),
		s.handleKeyboardKey,
	)

	// window_manage
	s.mcp.AddTool(
		mcp.NewTool("window_manage",
			mcp.WithDescription("Manage a window: focus, minimize, maximize, restore, close, move, resize"),
			mcp.WithNumber("window", mcp.Description("Window handle from list_windows"), mcp.Required()),
			mcp.WithString("action", mcp.Description("One of: focus, minimize, maximize, restore, close, move, resize"), mcp.Required()),
			mcp.WithNumber("x", mcp.Description("Target X for move")),
			mcp.WithNumber("y", mcp.Description("Target Y for move")),
			mcp.WithNumber("width", mcp.Description("Target width for resize")),
			mcp.WithNumber("height", mcp.Description("Target height for resize")),
		),
		s.handleWindowManage,
	)

	// launch
	s.mcp.AddTool(
		mcp.NewTool("launch",
			mcp.WithDescription("Launch an executable and return its process ID"),
			mcp.WithString("path", mcp.Description("Executable path or name on PATH"), mcp.Required()),
			mcp.WithArray("args", mcp.Description("Command-line arguments")),
		),
		s.handleLaunch,
	)

	// list_processes
	s.mcp.AddTool(
		mcp.NewTool("list_processes",
			mcp.WithDescription("List running processes with PIDs, names, and executable paths"),
			mcp.WithString("name", mcp.Description("Filter by image name substring")),
		),
		s.handleListProcesses,
	)

	// ocr
	s.mcp.AddTool(
		mcp.NewTool("ocr",
			mcp.WithDescription("Recognize text in a window or screen region and return fragments with positions"),
			mcp.WithNumber("window", mcp.Description("Window handle to read text from")),
			mcp.WithString("region", mcp.Description("Screen region as 'x,y,width,height'")),
			mcp.WithString("find", mcp.Description("Return only the first fragment containing this text")),
		),
		s.handleOCR,
	)
}
