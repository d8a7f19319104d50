package annotate

import "image/color"

// palette is the fixed sequence of high-contrast annotation colors. Colors
// repeat every 10 elements; uniqueness across a large capture is not a goal.
var palette = []color.RGBA{
	{R: 255, G: 0, B: 0, A: 255},   // red
	{R: 0, G: 128, B: 0, A: 255},   // green
	{R: 0, G: 0, B: 255, A: 255},   // blue
	{R: 255, G: 140, B: 0, A: 255}, // orange
	{R: 255, G: 0, B: 255, A: 255}, // magenta
	{R: 0, G: 180, B: 180, A: 255}, // teal
	{R: 128, G: 0, B: 128, A: 255}, // purple
	{R: 180, G: 120, B: 0, A: 255}, // brown
	{R: 220, G: 20, B: 60, A: 255}, // crimson
	{R: 0, G: 100, B: 200, A: 255}, // steel blue
}

// ColorFor returns the annotation color for a 1-based element index.
// The index is used as-is modulo the palette length, so index 10 wraps to
// slot 0 while index 1 starts at slot 1. Callers correlate colors across
// repeated captures, so this mapping must not change.
func ColorFor(index int) color.RGBA {
	return palette[index%len(palette)]
}

// PaletteSize returns the number of colors before the cycle repeats.
func PaletteSize() int { return len(palette) }
