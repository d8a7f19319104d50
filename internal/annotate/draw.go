package annotate

import (
	"image"
	"image/color"
	"image/draw"
	"strconv"

	"github.com/winauto/windows-mcp/internal/model"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const (
	boxStroke    = 2 // bounding box outline width in pixels
	labelPadding = 2 // padding around the index text inside the label

	// basicfont.Face7x13 glyph metrics
	glyphWidth  = 7
	glyphHeight = 13
	glyphAscent = 11
)

var labelTextColor = color.RGBA{R: 255, G: 255, B: 255, A: 255}

// labelSize returns the label rectangle dimensions for the given index text.
func labelSize(text string) (w, h int) {
	return len(text)*glyphWidth + 2*labelPadding, glyphHeight + 2*labelPadding
}

// DrawAnnotations draws a numbered, colored annotation for each element onto
// the captured window bitmap and returns the element metadata records.
// Elements whose translated rectangle falls entirely outside the bitmap are
// skipped and receive no index; retained elements are numbered contiguously
// from 1 in discovery order, which is also drawing order.
func DrawAnnotations(rgba *image.RGBA, elements []model.FlatElement, win model.RECT) []AnnotatedElement {
	imgW := rgba.Bounds().Dx()
	imgH := rgba.Bounds().Dy()

	var annotated []AnnotatedElement
	var placed []Rect
	index := 0

	for _, el := range elements {
		box, ok := TranslateBounds(el.Bounds, win, imgW, imgH)
		if !ok {
			continue
		}
		index++
		c := ColorFor(index)

		drawBoxOutline(rgba, box, c)

		text := strconv.Itoa(index)
		labelW, labelH := labelSize(text)
		pos := FindLabelPosition(box, labelW, labelH, imgW, imgH, placed)
		fillRect(rgba, pos, c)
		drawLabelText(rgba, text, pos.X+labelPadding, pos.Y+labelPadding)
		placed = append(placed, pos)

		annotated = append(annotated, AnnotatedElement{
			Index:        index,
			Name:         el.Name,
			ControlType:  el.ControlType,
			AutomationID: el.AutomationID,
			ElementID:    el.ElementID,
			Clickable:    el.Clickable,
			BoundingBox:  el.Bounds,
		})
	}
	return annotated
}

// imageToRGBA converts any image to a mutable RGBA bitmap.
func imageToRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok {
		return rgba
	}
	bounds := img.Bounds()
	rgba := image.NewRGBA(bounds)
	draw.Draw(rgba, bounds, img, bounds.Min, draw.Src)
	return rgba
}

// drawBoxOutline strokes a boxStroke-wide rectangle outline. Box edges are
// inclusive pixel coordinates already clamped into the image.
func drawBoxOutline(img *image.RGBA, b Box, c color.Color) {
	for t := 0; t < boxStroke; t++ {
		x1, y1 := b.Left+t, b.Top+t
		x2, y2 := b.Right-t, b.Bottom-t
		if x2 < x1 || y2 < y1 {
			return
		}
		for x := x1; x <= x2; x++ {
			img.Set(x, y1, c)
			img.Set(x, y2, c)
		}
		for y := y1; y <= y2; y++ {
			img.Set(x1, y, c)
			img.Set(x2, y, c)
		}
	}
}

// fillRect fills a label rectangle solidly.
func fillRect(img *image.RGBA, r Rect, c color.Color) {
	fill := image.Rect(r.X, r.Y, r.X+r.W, r.Y+r.H).Intersect(img.Bounds())
	draw.Draw(img, fill, image.NewUniform(c), image.Point{}, draw.Src)
}

// drawLabelText draws the index text in white, anchored at the label's
// top-left content origin.
func drawLabelText(img *image.RGBA, text string, x, y int) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(labelTextColor),
		Face: basicfont.Face7x13,
		Dot: fixed.Point26_6{
			X: fixed.I(x),
			Y: fixed.I(y + glyphAscent),
		},
	}
	d.DrawString(text)
}
