package ocr

import (
	"os"
	"path/filepath"
	"testing"

	goocr "github.com/getcharzp/go-ocr"
)

func TestConvertResultCenterAndCorners(t *testing.T) {
	rec := goocr.RecResult{
		Box:   [4]int{10, 20, 110, 60},
		Text:  "Submit",
		Score: 0.93,
	}
	got := convertResult(rec)
	if got.Text != "Submit" {
		t.Errorf("text = %q, want Submit", got.Text)
	}
	if got.Position.X != 60 || got.Position.Y != 40 {
		t.Errorf("center = (%d,%d), want (60,40)", got.Position.X, got.Position.Y)
	}
	if len(got.Box) != 4 {
		t.Fatalf("box has %d corners, want 4", len(got.Box))
	}
	wantCorners := []Point{{10, 20}, {110, 20}, {110, 60}, {10, 60}}
	for i, want := range wantCorners {
		if got.Box[i] != want {
			t.Errorf("corner %d = %+v, want %+v", i, got.Box[i], want)
		}
	}
	if got.Confidence < 0.92 || got.Confidence > 0.94 {
		t.Errorf("confidence = %f, want ~0.93", got.Confidence)
	}
}

func TestFindFilePrefersExisting(t *testing.T) {
	dir := t.TempDir()
	present := filepath.Join(dir, "det.onnx")
	if err := os.WriteFile(present, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	missing := filepath.Join(dir, "nope.onnx")

	if got := findFile(missing, present); got != present {
		t.Errorf("findFile = %q, want existing %q", got, present)
	}
}

func TestFindFileFallsBackToLastCandidate(t *testing.T) {
	a := filepath.Join(t.TempDir(), "a.onnx")
	b := filepath.Join(t.TempDir(), "b.onnx")
	if got := findFile(a, b); got != b {
		t.Errorf("findFile = %q, want last candidate %q", got, b)
	}
}
