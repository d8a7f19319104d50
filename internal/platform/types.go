package platform

import (
	"fmt"
	"strconv"
	"strings"
)

// MouseButton represents a mouse button.
type MouseButton int

const (
	MouseLeft MouseButton = iota
	MouseRight
	MouseMiddle
)

// String returns the robotgo-compatible button name.
func (b MouseButton) String() string {
	switch b {
	case MouseRight:
		return "right"
	case MouseMiddle:
		return "center"
	default:
		return "left"
	}
}

// ParseMouseButton converts a string flag value to MouseButton.
func ParseMouseButton(s string) (MouseButton, error) {
	switch strings.ToLower(s) {
	case "", "left":
		return MouseLeft, nil
	case "right":
		return MouseRight, nil
	case "middle":
		return MouseMiddle, nil
	default:
		return MouseLeft, fmt.Errorf("unknown mouse button: %q (expected left, right, or middle)", s)
	}
}

// Region is a screen rectangle given as x,y,w,h.
type Region struct {
	X, Y, Width, Height int
}

// ParseRegion parses a "x,y,w,h" string into a Region.
func ParseRegion(s string) (*Region, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return nil, fmt.Errorf("invalid region %q: expected x,y,w,h", s)
	}
	vals := make([]int, 4)
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("invalid region %q: %w", s, err)
		}
		vals[i] = v
	}
	if vals[2] <= 0 || vals[3] <= 0 {
		return nil, fmt.Errorf("invalid region %q: width and height must be positive", s)
	}
	return &Region{X: vals[0], Y: vals[1], Width: vals[2], Height: vals[3]}, nil
}

// ListOptions filters window listing.
type ListOptions struct {
	App string // Filter by application (executable) name substring
	PID int    // Filter by process ID (0 = unset)
}

// ScreenshotOptions configures what to capture.
type ScreenshotOptions struct {
	Window  uintptr // Capture this window (0 = full screen or Region)
	Region  *Region // Capture a screen region (nil = whole target)
	Format  string  // "png" or "jpg"
	Quality int     // JPEG quality 1-100 (ignored for PNG)
}

// WindowAction is a window-management verb.
type WindowAction string

const (
	WindowFocus    WindowAction = "focus"
	WindowMinimize WindowAction = "minimize"
	WindowMaximize WindowAction = "maximize"
	WindowRestore  WindowAction = "restore"
	WindowClose    WindowAction = "close"
	WindowMove     WindowAction = "move"
	WindowResize   WindowAction = "resize"
)

// ParseWindowAction validates a window-management verb.
func ParseWindowAction(s string) (WindowAction, error) {
	switch WindowAction(strings.ToLower(s)) {
	case WindowFocus, WindowMinimize, WindowMaximize, WindowRestore, WindowClose, WindowMove, WindowResize:
		return WindowAction(strings.ToLower(s)), nil
	default:
		return "", fmt.Errorf("unknown window action: %q", s)
	}
}
