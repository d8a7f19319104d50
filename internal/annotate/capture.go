// Package annotate implements the annotated-screenshot pipeline: it discovers
// interactive UI elements in a window, captures the window bitmap, and draws
// a numbered, colored marker for each element so an agent can refer to
// on-screen controls by index.
package annotate

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"strings"

	"github.com/winauto/windows-mcp/internal/model"
)

// Defaults and clamps for capture options.
const (
	DefaultMaxElements = 50
	DefaultSearchDepth = 15
	MinSearchDepth     = 1
	MaxSearchDepth     = 20
	DefaultQuality     = 85
)

// TreeProvider supplies the full, unfiltered UI Automation tree of a window.
type TreeProvider interface {
	WindowTree(ctx context.Context, handle uintptr, maxDepth int) ([]model.Element, error)
}

// ScreenshotProvider captures a window's bitmap.
type ScreenshotProvider interface {
	CaptureWindow(ctx context.Context, handle uintptr) (image.Image, error)
}

// GeometryProvider supplies a window's screen-space rectangle.
type GeometryProvider interface {
	WindowRect(handle uintptr) (model.RECT, error)
}

// AnnotatedElement is the metadata record for one numbered marker.
// BoundingBox is the element's original screen-space rectangle, not the
// window-relative one drawn on the image.
type AnnotatedElement struct {
	Index        int                   `yaml:"index"                    json:"index"`
	Name         string                `yaml:"name,omitempty"           json:"name,omitempty"`
	ControlType  string                `yaml:"controlType"              json:"controlType"`
	AutomationID string                `yaml:"automationId,omitempty"   json:"automationId,omitempty"`
	ElementID    string                `yaml:"elementId,omitempty"      json:"elementId,omitempty"`
	Clickable    *model.ClickablePoint `yaml:"clickablePoint,omitempty" json:"clickablePoint,omitempty"`
	BoundingBox  [4]int                `yaml:"boundingBox"              json:"boundingBox"`
}

// Options configures one annotated capture.
type Options struct {
	Window       uintptr
	ControlTypes string // comma-separated filter; empty = default interactive set
	MaxElements  int    // 0 = DefaultMaxElements
	SearchDepth  int    // clamped to [MinSearchDepth, MaxSearchDepth]
	Format       string // "jpeg" (default) or "png"
	Quality      int    // JPEG quality 1-100, 0 = DefaultQuality
}

// Result is the outcome of one capture. Failures are carried in-band: Success
// is false and Error names the failing step. No error crosses the package
// boundary as a Go panic.
type Result struct {
	Success  bool               `yaml:"success"            json:"success"`
	Image    []byte             `yaml:"-"                  json:"-"`
	Width    int                `yaml:"width,omitempty"    json:"width,omitempty"`
	Height   int                `yaml:"height,omitempty"   json:"height,omitempty"`
	Format   string             `yaml:"format,omitempty"   json:"format,omitempty"`
	Elements []AnnotatedElement `yaml:"elements,omitempty" json:"elements,omitempty"`
	Error    string             `yaml:"error,omitempty"    json:"error,omitempty"`
}

// Capturer orchestrates one annotated capture from its three collaborators.
// It holds no state between calls; every capture owns its own bitmap and
// placement list, so concurrent captures do not interfere.
type Capturer struct {
	Tree     TreeProvider
	Shot     ScreenshotProvider
	Geometry GeometryProvider
}

func failure(format string, args ...interface{}) *Result {
	return &Result{Success: false, Error: fmt.Sprintf(format, args...)}
}

// Capture runs discovery, screenshot, annotation, and encoding for one window.
func (c *Capturer) Capture(ctx context.Context, opts Options) (res *Result) {
	// Drawing and encoding must never escape as a panic: convert to a
	// failure result at the operation boundary.
	defer func() {
		if r := recover(); r != nil {
			res = failure("annotation failed: %v", r)
		}
	}()

	opts = normalizeOptions(opts)

	if err := ctx.Err(); err != nil {
		return failure("capture cancelled: %v", err)
	}

	elements, res := c.discoverElements(ctx, opts)
	if res != nil {
		return res
	}

	img, err := c.Shot.CaptureWindow(ctx, opts.Window)
	if err != nil {
		return failure("screenshot failed: %v", err)
	}

	rect, err := c.Geometry.WindowRect(opts.Window)
	if err != nil {
		return failure("could not determine window position for coordinate translation")
	}

	rgba := imageToRGBA(img)
	annotated := DrawAnnotations(rgba, elements, rect)

	if err := ctx.Err(); err != nil {
		return failure("capture cancelled: %v", err)
	}

	data, err := encodeImage(rgba, opts.Format, opts.Quality)
	if err != nil {
		return failure("image encoding failed: %v", err)
	}

	return &Result{
		Success:  true,
		Image:    data,
		Width:    rgba.Bounds().Dx(),
		Height:   rgba.Bounds().Dy(),
		Format:   opts.Format,
		Elements: annotated,
	}
}

// discoverElements fetches the unfiltered tree, flattens it, and filters by
// control type and visibility. The tree is fetched with no control-type
// filter on purpose: filtering during traversal would prune whole branches
// whose parent does not match, hiding deeply nested matching descendants
// (Electron and Chromium apps bury interactive controls under many
// non-matching containers). Returns a failure result instead of elements
// when the tree fetch fails or nothing survives the filter.
func (c *Capturer) discoverElements(ctx context.Context, opts Options) ([]model.FlatElement, *Result) {
	tree, err := c.Tree.WindowTree(ctx, opts.Window, opts.SearchDepth)
	if err != nil {
		return nil, failure("failed to read element tree: %v", err)
	}

	flat := model.FlattenElements(tree)
	filtered := model.FilterInteractive(flat, model.ParseControlTypes(opts.ControlTypes))
	if len(filtered) == 0 {
		return nil, failure("no interactive elements found for control types: %s", describeFilter(opts.ControlTypes))
	}

	return model.Truncate(filtered, opts.MaxElements), nil
}

// describeFilter names the attempted control-type filter for error messages.
func describeFilter(filter string) string {
	if strings.TrimSpace(filter) == "" {
		return strings.Join(model.DefaultInteractiveTypes, ", ")
	}
	return filter
}

// ClampDepth normalizes a tree search depth: zero becomes the default and
// out-of-range values are pulled back into [MinSearchDepth, MaxSearchDepth].
// Callers that pass a depth through to the tree provider or use it as a cache
// key apply this first so equivalent requests coincide.
func ClampDepth(depth int) int {
	if depth == 0 {
		return DefaultSearchDepth
	}
	return clamp(depth, MinSearchDepth, MaxSearchDepth)
}

func normalizeOptions(opts Options) Options {
	if opts.MaxElements <= 0 {
		opts.MaxElements = DefaultMaxElements
	}
	opts.SearchDepth = ClampDepth(opts.SearchDepth)
	switch strings.ToLower(opts.Format) {
	case "png":
		opts.Format = "png"
	default:
		opts.Format = "jpeg"
	}
	if opts.Quality <= 0 {
		opts.Quality = DefaultQuality
	}
	opts.Quality = clamp(opts.Quality, 1, 100)
	return opts
}

// encodeImage serializes the annotated bitmap in the requested format.
func encodeImage(img image.Image, format string, quality int) ([]byte, error) {
	var buf bytes.Buffer
	switch format {
	case "png":
		if err := png.Encode(&buf, img); err != nil {
			return nil, err
		}
	default:
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
			return nil, err
		}
	}
	return buf.Bytes(), nil
}
