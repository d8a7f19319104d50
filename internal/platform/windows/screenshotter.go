//go:build windows

package windows

import (
	"context"
	"fmt"
	"image"

	"github.com/go-vgo/robotgo"

	"github.com/winauto/windows-mcp/internal/platform"
)

// Screenshotter captures window and screen bitmaps via robotgo.
type Screenshotter struct {
	reader *Reader
}

// NewScreenshotter creates the Windows capture backend. The reader is used to
// resolve window geometry before capturing.
func NewScreenshotter(reader *Reader) *Screenshotter {
	return &Screenshotter{reader: reader}
}

// CaptureWindow captures the screen region occupied by a window. The window
// is not brought to the foreground first; callers that need an unobscured
// shot should focus it via the window manager.
func (s *Screenshotter) CaptureWindow(ctx context.Context, handle uintptr) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	rect, err := s.reader.WindowRect(handle)
	if err != nil {
		return nil, err
	}
	if rect.Width() <= 0 || rect.Height() <= 0 {
		return nil, fmt.Errorf("window %d has empty bounds", handle)
	}
	img, err := robotgo.CaptureImg(rect.Left, rect.Top, rect.Width(), rect.Height())
	if err != nil {
		return nil, fmt.Errorf("window capture failed: %w", err)
	}
	return img, nil
}

// CaptureScreen captures the primary display.
func (s *Screenshotter) CaptureScreen(ctx context.Context) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	img, err := robotgo.CaptureImg()
	if err != nil {
		return nil, fmt.Errorf("screen capture failed: %w", err)
	}
	return img, nil
}

// CaptureRegion captures an arbitrary screen rectangle.
func (s *Screenshotter) CaptureRegion(ctx context.Context, r platform.Region) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	img, err := robotgo.CaptureImg(r.X, r.Y, r.Width, r.Height)
	if err != nil {
		return nil, fmt.Errorf("region capture failed: %w", err)
	}
	return img, nil
}
