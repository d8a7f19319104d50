package platform

import (
	"context"
	"fmt"
	"image"
	"runtime"
	"time"

	"github.com/winauto/windows-mcp/internal/model"
)

// Reader exposes the OS accessibility layer: window enumeration, monitor
// geometry, and UI Automation element trees.
type Reader interface {
	ListWindows(opts ListOptions) ([]model.Window, error)
	ListMonitors() ([]model.Monitor, error)
	// WindowTree returns the full element tree of a window down to maxDepth.
	// No control-type filtering happens here; callers filter after flattening.
	WindowTree(ctx context.Context, handle uintptr, maxDepth int) ([]model.Element, error)
	WindowRect(handle uintptr) (model.RECT, error)
	// ForegroundWindow returns the handle of the window holding input focus.
	ForegroundWindow() (uintptr, error)
}

// Inputter sends synthetic mouse and keyboard events.
type Inputter interface {
	MouseMove(x, y int) error
	MouseClick(button MouseButton, double bool) error
	MouseClickAt(x, y int, button MouseButton, double bool) error
	MouseDrag(fromX, fromY, toX, toY int) error
	MouseScroll(direction string, amount int, x, y int) error
	MousePosition() (x, y int)
	TypeText(text string, delay time.Duration) error
	TapKey(combo string) error
}

// WindowManager performs window-management verbs on a window handle.
type WindowManager interface {
	Perform(handle uintptr, action WindowAction, x, y, w, h int) error
}

// Screenshotter captures window, screen, or region bitmaps.
type Screenshotter interface {
	CaptureWindow(ctx context.Context, handle uintptr) (image.Image, error)
	CaptureScreen(ctx context.Context) (image.Image, error)
	CaptureRegion(ctx context.Context, r Region) (image.Image, error)
}

// ProcessManager lists and launches processes.
type ProcessManager interface {
	List(nameFilter string) ([]model.ProcessInfo, error)
	Launch(path string, args []string) (model.ProcessInfo, error)
}

// Provider bundles all platform backends for the current OS.
type Provider struct {
	Reader        Reader
	Inputter      Inputter
	WindowManager WindowManager
	Screenshotter Screenshotter
	Processes     ProcessManager
}

// ErrUnsupported is returned on unsupported platforms.
var ErrUnsupported = fmt.Errorf("windows-mcp is not supported on %s/%s; supported: windows/amd64, windows/arm64", runtime.GOOS, runtime.GOARCH)

// NewProviderFunc is set by platform-specific packages via init().
// See internal/platform/windows/init.go for the Windows registration.
var NewProviderFunc func() (*Provider, error)

// NewProvider returns a Provider for the current OS.
func NewProvider() (*Provider, error) {
	if NewProviderFunc == nil {
		return nil, ErrUnsupported
	}
	return NewProviderFunc()
}
