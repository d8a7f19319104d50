package server

import (
	"context"
	"image"
	"io"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/sirupsen/logrus"

	"github.com/winauto/windows-mcp/internal/model"
	"github.com/winauto/windows-mcp/internal/platform"
)

// recordingShot records which window was captured.
type recordingShot struct {
	handle uintptr
}

func (s *recordingShot) CaptureWindow(_ context.Context, handle uintptr) (image.Image, error) {
	s.handle = handle
	return image.NewRGBA(image.Rect(0, 0, 800, 600)), nil
}

func (s *recordingShot) CaptureScreen(context.Context) (image.Image, error) {
	return image.NewRGBA(image.Rect(0, 0, 800, 600)), nil
}

func (s *recordingShot) CaptureRegion(context.Context, platform.Region) (image.Image, error) {
	return image.NewRGBA(image.Rect(0, 0, 800, 600)), nil
}

// recordingReader serves a fixed tree and records the requested handle.
type recordingReader struct {
	countingReader
	treeHandle uintptr
}

func (r *recordingReader) WindowTree(ctx context.Context, handle uintptr, maxDepth int) ([]model.Element, error) {
	r.treeHandle = handle
	return r.countingReader.WindowTree(ctx, handle, maxDepth)
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func captureServer(reader *recordingReader, shot *recordingShot) *Server {
	return &Server{
		provider: &platform.Provider{Reader: reader, Screenshotter: shot},
		cache:    NewTreeCache(0),
		log:      quietLogger(),
	}
}

func captureRequest(args map[string]interface{}) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Name = "capture_annotated"
	req.Params.Arguments = args
	return req
}

func annotatableTree() []model.Element {
	return []model.Element{
		{ControlType: "Window", Name: "Main", Bounds: [4]int{0, 0, 800, 600},
			Children: []model.Element{
				{ControlType: "Button", Name: "OK", Bounds: [4]int{50, 50, 100, 30}},
			},
		},
	}
}

func TestCaptureAnnotatedDefaultsToForegroundWindow(t *testing.T) {
	reader := &recordingReader{countingReader: countingReader{tree: annotatableTree(), foreground: 42}}
	shot := &recordingShot{}
	s := captureServer(reader, shot)

	res, err := s.handleCaptureAnnotated(context.Background(), captureRequest(map[string]interface{}{}))
	if err != nil {
		t.Fatal(err)
	}
	if res.IsError {
		t.Fatalf("expected success, got error result: %+v", res.Content)
	}
	if reader.treeHandle != 42 {
		t.Errorf("tree read from window %d, want foreground window 42", reader.treeHandle)
	}
	if shot.handle != 42 {
		t.Errorf("captured window %d, want foreground window 42", shot.handle)
	}
}

func TestCaptureAnnotatedNoForegroundWindow(t *testing.T) {
	reader := &recordingReader{countingReader: countingReader{tree: annotatableTree()}}
	s := captureServer(reader, &recordingShot{})

	res, err := s.handleCaptureAnnotated(context.Background(), captureRequest(map[string]interface{}{}))
	if err != nil {
		t.Fatal(err)
	}
	if !res.IsError {
		t.Fatal("expected an error result when no window is resolvable")
	}
}

func TestCaptureAnnotatedUsesExplicitWindow(t *testing.T) {
	reader := &recordingReader{countingReader: countingReader{tree: annotatableTree(), foreground: 42}}
	shot := &recordingShot{}
	s := captureServer(reader, shot)

	res, err := s.handleCaptureAnnotated(context.Background(), captureRequest(map[string]interface{}{
		"window": 7.0,
	}))
	if err != nil {
		t.Fatal(err)
	}
	if res.IsError {
		t.Fatalf("expected success, got error result: %+v", res.Content)
	}
	if shot.handle != 7 {
		t.Errorf("captured window %d, want 7", shot.handle)
	}
}
