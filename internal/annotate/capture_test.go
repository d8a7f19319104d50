package annotate

import (
	"context"
	"errors"
	"fmt"
	"image"
	"strings"
	"testing"

	"github.com/winauto/windows-mcp/internal/model"
)

type fakeTree struct {
	tree     []model.Element
	err      error
	gotDepth int
}

func (f *fakeTree) WindowTree(_ context.Context, _ uintptr, maxDepth int) ([]model.Element, error) {
	f.gotDepth = maxDepth
	return f.tree, f.err
}

type fakeShot struct {
	img image.Image
	err error
}

func (f *fakeShot) CaptureWindow(context.Context, uintptr) (image.Image, error) {
	return f.img, f.err
}

type fakeGeom struct {
	rect model.RECT
	err  error
}

func (f *fakeGeom) WindowRect(uintptr) (model.RECT, error) {
	return f.rect, f.err
}

func testCapturer(tree []model.Element) (*Capturer, *fakeTree) {
	ft := &fakeTree{tree: tree}
	return &Capturer{
		Tree:     ft,
		Shot:     &fakeShot{img: image.NewRGBA(image.Rect(0, 0, 800, 600))},
		Geometry: &fakeGeom{rect: model.RECT{Left: 0, Top: 0, Right: 800, Bottom: 600}},
	}, ft
}

func button(name string, x, y, w, h int) model.Element {
	return model.Element{ControlType: "Button", Name: name, Bounds: [4]int{x, y, w, h}}
}

func TestCapture_EndToEnd(t *testing.T) {
	c, _ := testCapturer([]model.Element{
		{ControlType: "Window", Name: "Main", Bounds: [4]int{0, 0, 800, 600},
			Children: []model.Element{
				button("OK", 50, 50, 100, 30),
				button("Cancel", 200, 50, 100, 30),
			},
		},
	})

	res := c.Capture(context.Background(), Options{Window: 1})
	if !res.Success {
		t.Fatalf("capture failed: %s", res.Error)
	}
	if len(res.Elements) != 2 {
		t.Fatalf("expected 2 elements, got %d", len(res.Elements))
	}
	if res.Width != 800 || res.Height != 600 {
		t.Errorf("dimensions: got %dx%d", res.Width, res.Height)
	}
	if res.Format != "jpeg" {
		t.Errorf("default format: got %q", res.Format)
	}
	if len(res.Image) == 0 {
		t.Error("expected encoded image data")
	}

	for i, el := range res.Elements {
		if el.Index != i+1 {
			t.Errorf("element %d: index %d, want %d", i, el.Index, i+1)
		}
	}
	// BoundingBox carries the original screen-space rect, not the translated one
	if res.Elements[0].BoundingBox != [4]int{50, 50, 100, 30} {
		t.Errorf("bounding box: got %v", res.Elements[0].BoundingBox)
	}
	if res.Elements[0].Name != "OK" || res.Elements[1].Name != "Cancel" {
		t.Errorf("discovery order broken: %q, %q", res.Elements[0].Name, res.Elements[1].Name)
	}
}

func TestCapture_Truncation(t *testing.T) {
	var children []model.Element
	for i := 0; i < 10; i++ {
		children = append(children, button(fmt.Sprintf("b%d", i), 10+i*70, 10, 60, 30))
	}
	c, _ := testCapturer([]model.Element{{ControlType: "Window", Bounds: [4]int{0, 0, 800, 600}, Children: children}})

	res := c.Capture(context.Background(), Options{Window: 1, MaxElements: 3})
	if !res.Success {
		t.Fatalf("capture failed: %s", res.Error)
	}
	if len(res.Elements) != 3 {
		t.Fatalf("expected 3 elements, got %d", len(res.Elements))
	}
	// Pre-order sequence preserved, no priority scheme
	for i, want := range []string{"b0", "b1", "b2"} {
		if res.Elements[i].Name != want {
			t.Errorf("element %d: got %q, want %q", i, res.Elements[i].Name, want)
		}
	}
}

func TestCapture_VisibilityFilter(t *testing.T) {
	c, _ := testCapturer([]model.Element{
		button("tiny", 10, 10, 3, 3),
		button("real", 100, 100, 80, 24),
	})

	res := c.Capture(context.Background(), Options{Window: 1})
	if !res.Success {
		t.Fatalf("capture failed: %s", res.Error)
	}
	if len(res.Elements) != 1 || res.Elements[0].Name != "real" {
		t.Fatalf("degenerate element should be filtered: %+v", res.Elements)
	}
}

func TestCapture_NoElementsFound(t *testing.T) {
	c, _ := testCapturer([]model.Element{
		{ControlType: "Pane", Name: "Background", Bounds: [4]int{0, 0, 800, 600}},
	})

	res := c.Capture(context.Background(), Options{Window: 1})
	if res.Success {
		t.Fatal("expected failure when nothing matches the filter")
	}
	// The message names the attempted (default) filter
	if !strings.Contains(res.Error, "Button") || !strings.Contains(res.Error, "Hyperlink") {
		t.Errorf("error should name the default control types: %q", res.Error)
	}

	res = c.Capture(context.Background(), Options{Window: 1, ControlTypes: "DataGrid,Header"})
	if res.Success {
		t.Fatal("expected failure for custom filter")
	}
	if !strings.Contains(res.Error, "DataGrid,Header") {
		t.Errorf("error should name the attempted filter: %q", res.Error)
	}
}

func TestCapture_TreeFetchFailed(t *testing.T) {
	c, ft := testCapturer(nil)
	ft.err = errors.New("element not available")

	res := c.Capture(context.Background(), Options{Window: 1})
	if res.Success {
		t.Fatal("expected failure")
	}
	if !strings.Contains(res.Error, "element not available") {
		t.Errorf("provider error should propagate: %q", res.Error)
	}
}

func TestCapture_ScreenshotFailed(t *testing.T) {
	c, _ := testCapturer([]model.Element{button("OK", 50, 50, 100, 30)})
	c.Shot = &fakeShot{err: errors.New("capture blt failed")}

	res := c.Capture(context.Background(), Options{Window: 1})
	if res.Success || !strings.Contains(res.Error, "capture blt failed") {
		t.Errorf("screenshot failure should propagate: %+v", res)
	}
}

func TestCapture_GeometryFailed(t *testing.T) {
	c, _ := testCapturer([]model.Element{button("OK", 50, 50, 100, 30)})
	c.Geometry = &fakeGeom{err: errors.New("no rect")}

	res := c.Capture(context.Background(), Options{Window: 1})
	if res.Success {
		t.Fatal("expected failure")
	}
	if !strings.Contains(res.Error, "window position") {
		t.Errorf("unexpected message: %q", res.Error)
	}
}

func TestCapture_Cancelled(t *testing.T) {
	c, _ := testCapturer([]model.Element{button("OK", 50, 50, 100, 30)})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res := c.Capture(ctx, Options{Window: 1})
	if res.Success {
		t.Fatal("cancelled context must fail the capture")
	}
}

func TestCapture_DepthClamping(t *testing.T) {
	c, ft := testCapturer([]model.Element{button("OK", 50, 50, 100, 30)})

	c.Capture(context.Background(), Options{Window: 1, SearchDepth: 99})
	if ft.gotDepth != MaxSearchDepth {
		t.Errorf("depth 99 should clamp to %d, got %d", MaxSearchDepth, ft.gotDepth)
	}

	c.Capture(context.Background(), Options{Window: 1})
	if ft.gotDepth != DefaultSearchDepth {
		t.Errorf("depth 0 should default to %d, got %d", DefaultSearchDepth, ft.gotDepth)
	}

	c.Capture(context.Background(), Options{Window: 1, SearchDepth: -4})
	if ft.gotDepth != MinSearchDepth {
		t.Errorf("negative depth should clamp to %d, got %d", MinSearchDepth, ft.gotDepth)
	}
}

func TestClampDepth(t *testing.T) {
	cases := []struct {
		in, want int
	}{
		{0, DefaultSearchDepth},
		{-4, MinSearchDepth},
		{1, 1},
		{10, 10},
		{20, 20},
		{99, MaxSearchDepth},
	}
	for _, c := range cases {
		if got := ClampDepth(c.in); got != c.want {
			t.Errorf("ClampDepth(%d) = %d, want %d", c.in, got, c.want)
		}
	}
}

func TestCapture_PNGFormat(t *testing.T) {
	c, _ := testCapturer([]model.Element{button("OK", 50, 50, 100, 30)})

	res := c.Capture(context.Background(), Options{Window: 1, Format: "png"})
	if !res.Success {
		t.Fatalf("capture failed: %s", res.Error)
	}
	if res.Format != "png" {
		t.Errorf("format: got %q", res.Format)
	}
	// PNG magic bytes
	if len(res.Image) < 8 || res.Image[1] != 'P' || res.Image[2] != 'N' || res.Image[3] != 'G' {
		t.Error("expected PNG-encoded data")
	}
}
