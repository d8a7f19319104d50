package server

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"time"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/winauto/windows-mcp/internal/annotate"
	"github.com/winauto/windows-mcp/internal/model"
	"github.com/winauto/windows-mcp/internal/ocr"
	"github.com/winauto/windows-mcp/internal/platform"
)

// actionResult is the YAML body returned by tools that change desktop state.
type actionResult struct {
	OK     bool   `yaml:"ok"               json:"ok"`
	Action string `yaml:"action"           json:"action"`
	Detail string `yaml:"detail,omitempty" json:"detail,omitempty"`
	Error  string `yaml:"error,omitempty"  json:"error,omitempty"`
}

// resultToText serializes a value to YAML for an MCP text response.
func resultToText(v interface{}) string {
	b, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Sprintf("error: %v", err)
	}
	return string(b)
}

// requestLog returns a log entry scoped to one tool call.
func (s *Server) requestLog(tool string) *logrus.Entry {
	return s.log.WithFields(logrus.Fields{
		"tool":      tool,
		"requestId": uuid.NewString(),
	})
}

// writeAction wraps a state-changing call: locks the provider, executes, and
// invalidates cached trees. A zero window invalidates everything because
// free-form input can change any window's tree.
func (s *Server) writeAction(action string, window uintptr, detail string, fn func(*platform.Provider) error) (*mcp.CallToolResult, error) {
	log := s.requestLog(action)

	s.providerMu.Lock()
	defer s.providerMu.Unlock()

	if err := fn(s.provider); err != nil {
		log.WithError(err).Warn("action failed")
		return mcp.NewToolResultError(resultToText(actionResult{Action: action, Error: err.Error()})), nil
	}

	if window != 0 {
		s.cache.InvalidateWindow(window)
	} else {
		s.cache.InvalidateAll()
	}

	log.Debug("action ok")
	return mcp.NewToolResultText(resultToText(actionResult{OK: true, Action: action, Detail: detail})), nil
}

// cachedTree adapts the tree cache to the annotate pipeline's tree source.
type cachedTree struct {
	cache  *TreeCache
	reader platform.Reader
}

func (t cachedTree) WindowTree(ctx context.Context, handle uintptr, maxDepth int) ([]model.Element, error) {
	return t.cache.WindowTree(ctx, t.reader, handle, maxDepth)
}

func (s *Server) handleCaptureAnnotated(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	window := uintptr(IntParam(params, "window", 0))

	s.providerMu.Lock()
	defer s.providerMu.Unlock()

	if window == 0 {
		fg, err := s.provider.Reader.ForegroundWindow()
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("window not given and foreground window unavailable: %v", err)), nil
		}
		window = fg
	}
	opts := annotate.Options{
		Window:       window,
		ControlTypes: StringParam(params, "control-types", ""),
		MaxElements:  IntParam(params, "max-elements", 0),
		SearchDepth:  annotate.ClampDepth(IntParam(params, "depth", 0)),
		Format:       StringParam(params, "format", ""),
		Quality:      IntParam(params, "quality", 0),
	}

	log := s.requestLog("capture_annotated").WithField("window", window)

	capturer := &annotate.Capturer{
		Tree:     cachedTree{cache: s.cache, reader: s.provider.Reader},
		Shot:     s.provider.Screenshotter,
		Geometry: s.provider.Reader,
	}
	res := capturer.Capture(ctx, opts)
	if !res.Success {
		log.WithField("error", res.Error).Warn("capture failed")
		return mcp.NewToolResultError(resultToText(res)), nil
	}
	log.WithField("elements", len(res.Elements)).Debug("capture ok")

	mimeType := "image/jpeg"
	if res.Format == "png" {
		mimeType = "image/png"
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{Type: "text", Text: resultToText(res)},
			mcp.ImageContent{
				Type:     "image",
				Data:     base64.StdEncoding.EncodeToString(res.Image),
				MIMEType: mimeType,
			},
		},
	}, nil
}

func (s *Server) handleListWindows(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()

	s.providerMu.Lock()
	defer s.providerMu.Unlock()

	windows, err := s.provider.Reader.ListWindows(platform.ListOptions{
		App: StringParam(params, "app", ""),
		PID: IntParam(params, "pid", 0),
	})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(resultToText(windows)), nil
}

func (s *Server) handleListMonitors(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.providerMu.Lock()
	defer s.providerMu.Unlock()

	monitors, err := s.provider.Reader.ListMonitors()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(resultToText(monitors)), nil
}

func (s *Server) handleReadElements(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	window := uintptr(IntParam(params, "window", 0))
	if window == 0 {
		return mcp.NewToolResultError("window parameter is required"), nil
	}
	depth := annotate.ClampDepth(IntParam(params, "depth", 0))
	controlTypes := StringParam(params, "control-types", "")
	flat := BoolParam(params, "flat", false)
	maxElements := IntParam(params, "max-elements", 0)

	s.providerMu.Lock()
	defer s.providerMu.Unlock()

	tree, err := s.cache.WindowTree(ctx, s.provider.Reader, window, depth)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	// A control-type filter implies the flat projection: a filtered tree
	// would have dangling parents.
	if flat || controlTypes != "" {
		elements := model.FlattenElements(tree)
		if controlTypes != "" {
			elements = model.FilterInteractive(elements, model.ParseControlTypes(controlTypes))
		}
		if maxElements > 0 {
			elements = model.Truncate(elements, maxElements)
		}
		return mcp.NewToolResultText(resultToText(elements)), nil
	}
	return mcp.NewToolResultText(resultToText(tree)), nil
}

func (s *Server) handleScreenshot(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	window := uintptr(IntParam(params, "window", 0))
	regionStr := StringParam(params, "region", "")
	format := StringParam(params, "format", "png")
	quality := IntParam(params, "quality", annotate.DefaultQuality)

	s.providerMu.Lock()
	defer s.providerMu.Unlock()

	img, err := s.captureTarget(ctx, window, regionStr)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	data, mimeType, err := encodeScreenshot(img, format, quality)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.ImageContent{
				Type:     "image",
				Data:     base64.StdEncoding.EncodeToString(data),
				MIMEType: mimeType,
			},
		},
	}, nil
}

// captureTarget captures a window, a parsed region, or the full screen.
// The caller must hold the provider mutex.
func (s *Server) captureTarget(ctx context.Context, window uintptr, regionStr string) (image.Image, error) {
	shot := s.provider.Screenshotter
	switch {
	case window != 0:
		return shot.CaptureWindow(ctx, window)
	case regionStr != "":
		region, err := platform.ParseRegion(regionStr)
		if err != nil {
			return nil, err
		}
		return shot.CaptureRegion(ctx, *region)
	default:
		return shot.CaptureScreen(ctx)
	}
}

func encodeScreenshot(img image.Image, format string, quality int) ([]byte, string, error) {
	var buf bytes.Buffer
	switch format {
	case "jpg", "jpeg":
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
			return nil, "", err
		}
		return buf.Bytes(), "image/jpeg", nil
	default:
		if err := png.Encode(&buf, img); err != nil {
			return nil, "", err
		}
		return buf.Bytes(), "image/png", nil
	}
}

func (s *Server) handleMouseMove(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	x := IntParam(params, "x", 0)
	y := IntParam(params, "y", 0)
	return s.writeAction("mouse_move", 0, fmt.Sprintf("(%d,%d)", x, y), func(p *platform.Provider) error {
		return p.Inputter.MouseMove(x, y)
	})
}

func (s *Server) handleMouseClick(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	button, err := platform.ParseMouseButton(StringParam(params, "button", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	double := BoolParam(params, "double", false)
	_, hasX := params["x"]
	_, hasY := params["y"]
	x := IntParam(params, "x", 0)
	y := IntParam(params, "y", 0)
	return s.writeAction("mouse_click", 0, "", func(p *platform.Provider) error {
		if hasX && hasY {
			return p.Inputter.MouseClickAt(x, y, button, double)
		}
		return p.Inputter.MouseClick(button, double)
	})
}

func (s *Server) handleMouseDrag(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	fromX := IntParam(params, "from-x", 0)
	fromY := IntParam(params, "from-y", 0)
	toX := IntParam(params, "to-x", 0)
	toY := IntParam(params, "to-y", 0)
	return s.writeAction("mouse_drag", 0, "", func(p *platform.Provider) error {
		return p.Inputter.MouseDrag(fromX, fromY, toX, toY)
	})
}

func (s *Server) handleMouseScroll(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	direction := StringParam(params, "direction", "")
	amount := IntParam(params, "amount", 0)
	x := IntParam(params, "x", 0)
	y := IntParam(params, "y", 0)
	return s.writeAction("mouse_scroll", 0, "", func(p *platform.Provider) error {
		return p.Inputter.MouseScroll(direction, amount, x, y)
	})
}

func (s *Server) handleMousePosition(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.providerMu.Lock()
	defer s.providerMu.Unlock()

	x, y := s.provider.Inputter.MousePosition()
	return mcp.NewToolResultText(resultToText(map[string]int{"x": x, "y": y})), nil
}

func (s *Server) handleKeyboardType(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	text := StringParam(params, "text", "")
	if text == "" {
		return mcp.NewToolResultError("text parameter is required"), nil
	}
	delay := time.Duration(IntParam(params, "delay", 0)) * time.Millisecond
	return s.writeAction("keyboard_type", 0, "", func(p *platform.Provider) error {
		return p.Inputter.TypeText(text, delay)
	})
}

func (s *Server) handleKeyboardKey(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	key := StringParam(params, "key", "")
	if key == "" {
		return mcp.NewToolResultError("key parameter is required"), nil
	}
	return s.writeAction("keyboard_key", 0, key, func(p *platform.Provider) error {
		return p.Inputter.TapKey(key)
	})
}

func (s *Server) handleWindowManage(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	window := uintptr(IntParam(params, "window", 0))
	if window == 0 {
		return mcp.NewToolResultError("window parameter is required"), nil
	}
	action, err := platform.ParseWindowAction(StringParam(params, "action", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	x := IntParam(params, "x", 0)
	y := IntParam(params, "y", 0)
	w := IntParam(params, "width", 0)
	h := IntParam(params, "height", 0)
	return s.writeAction("window_"+string(action), window, "", func(p *platform.Provider) error {
		return p.WindowManager.Perform(window, action, x, y, w, h)
	})
}

func (s *Server) handleLaunch(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	path := StringParam(params, "path", "")
	if path == "" {
		return mcp.NewToolResultError("path parameter is required"), nil
	}
	var args []string
	if raw, ok := params["args"].([]interface{}); ok {
		for _, item := range raw {
			if arg, ok := item.(string); ok {
				args = append(args, arg)
			}
		}
	}

	s.providerMu.Lock()
	defer s.providerMu.Unlock()

	info, err := s.provider.Processes.Launch(path, args)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	s.requestLog("launch").WithFields(logrus.Fields{"path": path, "pid": info.PID}).Info("launched")
	return mcp.NewToolResultText(resultToText(info)), nil
}

func (s *Server) handleListProcesses(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()

	s.providerMu.Lock()
	defer s.providerMu.Unlock()

	procs, err := s.provider.Processes.List(StringParam(params, "name", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(resultToText(procs)), nil
}

func (s *Server) handleOCR(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	window := uintptr(IntParam(params, "window", 0))
	regionStr := StringParam(params, "region", "")
	find := StringParam(params, "find", "")

	recognizer, err := ocr.Global()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("OCR is not available: %v", err)), nil
	}

	s.providerMu.Lock()
	defer s.providerMu.Unlock()

	img, err := s.captureTarget(ctx, window, regionStr)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if find != "" {
		pos, err := recognizer.FindText(img, find)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		if pos == nil {
			return mcp.NewToolResultError(fmt.Sprintf("text %q not found", find)), nil
		}
		return mcp.NewToolResultText(resultToText(pos)), nil
	}

	results, err := recognizer.Recognize(img)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(resultToText(results)), nil
}
