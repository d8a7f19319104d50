package annotate

import "github.com/winauto/windows-mcp/internal/model"

// Box is an element rectangle translated into window-relative pixel
// coordinates. All four edges are clamped into the captured bitmap, so
// Left/Top/Right/Bottom are valid pixel indices.
type Box struct {
	Left, Top, Right, Bottom int
}

// TranslateBounds converts an element's screen-space bounds [x, y, w, h] into
// a window-relative box by subtracting the window's screen origin. Right and
// bottom are derived from left/top plus size rather than trusting separately
// reported edges.
//
// Returns false when the translated rectangle lies entirely outside the
// captured bitmap; such elements are dropped and never receive an index.
// Partially visible elements are clamped to their visible portion.
func TranslateBounds(bounds [4]int, win model.RECT, imgW, imgH int) (Box, bool) {
	left := bounds[0] - win.Left
	top := bounds[1] - win.Top
	right := bounds[0] + bounds[2] - win.Left
	bottom := bounds[1] + bounds[3] - win.Top

	if right < 0 || bottom < 0 || left >= imgW || top >= imgH {
		return Box{}, false
	}

	return Box{
		Left:   clamp(left, 0, imgW-1),
		Top:    clamp(top, 0, imgH-1),
		Right:  clamp(right, 0, imgW-1),
		Bottom: clamp(bottom, 0, imgH-1),
	}, true
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
