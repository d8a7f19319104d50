package model

// RECT is a window rectangle in screen coordinates, Win32 style:
// left/top inclusive, right/bottom exclusive (left + width).
type RECT struct {
	Left   int `yaml:"left"   json:"left"`
	Top    int `yaml:"top"    json:"top"`
	Right  int `yaml:"right"  json:"right"`
	Bottom int `yaml:"bottom" json:"bottom"`
}

// Width returns the rectangle width in pixels.
func (r RECT) Width() int { return r.Right - r.Left }

// Height returns the rectangle height in pixels.
func (r RECT) Height() int { return r.Bottom - r.Top }

// Contains reports whether the point lies inside the rectangle.
func (r RECT) Contains(x, y int) bool {
	return x >= r.Left && x < r.Right && y >= r.Top && y < r.Bottom
}

// Window represents a top-level application window.
type Window struct {
	Handle  uintptr `yaml:"handle"            json:"handle"`
	Title   string  `yaml:"title"             json:"title"`
	App     string  `yaml:"app,omitempty"     json:"app,omitempty"`
	PID     int     `yaml:"pid"               json:"pid"`
	Bounds  [4]int  `yaml:"bounds"            json:"bounds"`
	Focused bool    `yaml:"focused,omitempty" json:"focused,omitempty"`
}

// Monitor represents a physical display. Bounds can be negative for monitors
// positioned left of or above the primary display's origin.
type Monitor struct {
	Index    int    `yaml:"index"             json:"index"`
	Name     string `yaml:"name,omitempty"    json:"name,omitempty"`
	Bounds   RECT   `yaml:"bounds"            json:"bounds"`
	WorkArea RECT   `yaml:"workArea"          json:"workArea"`
	Primary  bool   `yaml:"primary,omitempty" json:"primary,omitempty"`
}

// ProcessInfo describes a running process.
type ProcessInfo struct {
	PID  int    `yaml:"pid"            json:"pid"`
	Name string `yaml:"name"           json:"name"`
	Path string `yaml:"path,omitempty" json:"path,omitempty"`
}
