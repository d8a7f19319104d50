package annotate

// Rect is a label rectangle in window-relative pixel space: [x, y, w, h].
type Rect struct {
	X, Y, W, H int
}

// intersects checks axis-aligned overlap between two rectangles.
func (r Rect) intersects(o Rect) bool {
	return r.X < o.X+o.W && r.X+r.W > o.X && r.Y < o.Y+o.H && r.Y+r.H > o.Y
}

// FindLabelPosition picks a rectangle of labelW x labelH near the element box
// that does not overlap any previously placed label. It always returns a
// rectangle; when every candidate collides the top-right-outside anchor is
// returned even though it overlaps. Labels are never dropped.
//
// Candidates are tried in fixed preference order: top-right and top-left
// outside the element, bottom-right and bottom-left outside, then top-right
// and top-left overlapping the element's own top edge. If all six collide,
// an offset search walks the anchor down and left in labelH steps until a
// free spot is found or the image height is exhausted.
//
// Earlier elements get first choice of position: the caller appends each
// returned rectangle to placed before processing the next element.
func FindLabelPosition(box Box, labelW, labelH, imgW, imgH int, placed []Rect) Rect {
	maxX := imgW - labelW
	maxY := imgH - labelH

	candidates := []Rect{
		{X: clamp(box.Right-labelW, 0, maxX), Y: clamp(box.Top-labelH, 0, maxY), W: labelW, H: labelH}, // top-right outside
		{X: clamp(box.Left, 0, maxX), Y: clamp(box.Top-labelH, 0, maxY), W: labelW, H: labelH},         // top-left outside
		{X: clamp(box.Right-labelW, 0, maxX), Y: clamp(box.Bottom, 0, maxY), W: labelW, H: labelH},     // bottom-right outside
		{X: clamp(box.Left, 0, maxX), Y: clamp(box.Bottom, 0, maxY), W: labelW, H: labelH},             // bottom-left outside
		{X: clamp(box.Right-labelW, 0, maxX), Y: clamp(box.Top, 0, maxY), W: labelW, H: labelH},        // top-right inside
		{X: clamp(box.Left, 0, maxX), Y: clamp(box.Top, 0, maxY), W: labelW, H: labelH},                // top-left inside
	}

	for _, c := range candidates {
		if !overlapsAny(c, placed) {
			return c
		}
	}

	// Offset search: shift the top-right anchor down, then left, one label
	// height at a time.
	anchor := candidates[0]
	for offset := labelH; offset < imgH; offset += labelH {
		down := anchor
		down.Y = clamp(anchor.Y+offset, 0, maxY)
		if !overlapsAny(down, placed) {
			return down
		}
		left := anchor
		left.X = clamp(anchor.X-offset, 0, maxX)
		if !overlapsAny(left, placed) {
			return left
		}
	}

	// Nothing is free: overlap rather than drop.
	return anchor
}

func overlapsAny(r Rect, placed []Rect) bool {
	for _, p := range placed {
		if r.intersects(p) {
			return true
		}
	}
	return false
}
