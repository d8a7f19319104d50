//go:build windows

package windows

import (
	"fmt"

	"golang.org/x/sys/windows"

	"github.com/winauto/windows-mcp/internal/platform"
)

var (
	procSetForegroundWindow = user32.NewProc("SetForegroundWindow")
	procShowWindow          = user32.NewProc("ShowWindow")
	procBringWindowToTop    = user32.NewProc("BringWindowToTop")
	procPostMessageW        = user32.NewProc("PostMessageW")
	procMoveWindow          = user32.NewProc("MoveWindow")
	procIsIconic            = user32.NewProc("IsIconic")
)

const (
	swMaximize = 3
	swMinimize = 6
	swRestore  = 9

	wmClose = 0x0010
)

// WindowManager performs window-management verbs via user32.
type WindowManager struct{}

// NewWindowManager creates the Windows window-management backend.
func NewWindowManager() *WindowManager {
	return &WindowManager{}
}

// Perform executes a window action. x/y/w/h are only read for move and resize.
func (m *WindowManager) Perform(handle uintptr, action platform.WindowAction, x, y, w, h int) error {
	if handle == 0 {
		return fmt.Errorf("window handle is required")
	}
	switch action {
	case platform.WindowFocus:
		return m.focus(handle)
	case platform.WindowMinimize:
		procShowWindow.Call(handle, swMinimize)
	case platform.WindowMaximize:
		procShowWindow.Call(handle, swMaximize)
	case platform.WindowRestore:
		procShowWindow.Call(handle, swRestore)
	case platform.WindowClose:
		ret, _, _ := procPostMessageW.Call(handle, wmClose, 0, 0)
		if ret == 0 {
			return fmt.Errorf("failed to post close message to window %d", handle)
		}
	case platform.WindowMove:
		return m.reposition(handle, &x, &y, nil, nil)
	case platform.WindowResize:
		if w <= 0 || h <= 0 {
			return fmt.Errorf("resize requires positive width and height")
		}
		return m.reposition(handle, nil, nil, &w, &h)
	default:
		return fmt.Errorf("unknown window action: %q", action)
	}
	return nil
}

// focus restores a minimized window and brings it to the foreground.
func (m *WindowManager) focus(handle uintptr) error {
	if iconic, _, _ := procIsIconic.Call(handle); iconic != 0 {
		procShowWindow.Call(handle, swRestore)
	}
	procBringWindowToTop.Call(handle)
	ret, _, _ := procSetForegroundWindow.Call(handle)
	if ret == 0 {
		return fmt.Errorf("failed to bring window %d to the foreground", handle)
	}
	return nil
}

// reposition moves and/or resizes a window, keeping whichever of position and
// size the caller did not specify.
func (m *WindowManager) reposition(handle uintptr, x, y, w, h *int) error {
	var rect windows.Rect
	if err := getWindowRect(handle, &rect); err != nil {
		return err
	}
	newX, newY := int(rect.Left), int(rect.Top)
	newW, newH := int(rect.Right-rect.Left), int(rect.Bottom-rect.Top)
	if x != nil {
		newX = *x
	}
	if y != nil {
		newY = *y
	}
	if w != nil {
		newW = *w
	}
	if h != nil {
		newH = *h
	}
	ret, _, _ := procMoveWindow.Call(handle, uintptr(newX), uintptr(newY), uintptr(newW), uintptr(newH), 1)
	if ret == 0 {
		return fmt.Errorf("failed to reposition window %d", handle)
	}
	return nil
}
