package model

import "testing"

func TestElementID_RoundTrip(t *testing.T) {
	id := FormatElementID(66242, "42-1051-4")
	if id != "window:66242:runtime:42-1051-4" {
		t.Fatalf("unexpected id format: %q", id)
	}

	handle, runtimeID, err := ParseElementID(id)
	if err != nil {
		t.Fatal(err)
	}
	if handle != 66242 {
		t.Errorf("handle: got %d", handle)
	}
	if runtimeID != "42-1051-4" {
		t.Errorf("runtime id: got %q", runtimeID)
	}
}

func TestParseElementID_Malformed(t *testing.T) {
	for _, id := range []string{"", "window:1", "win:1:runtime:2", "window:abc:runtime:2", "window:1:rt:2"} {
		if _, _, err := ParseElementID(id); err == nil {
			t.Errorf("expected error for %q", id)
		}
	}
}

func TestRECT(t *testing.T) {
	r := RECT{Left: -100, Top: 50, Right: 300, Bottom: 250}
	if r.Width() != 400 || r.Height() != 200 {
		t.Errorf("size: got %dx%d", r.Width(), r.Height())
	}
	if !r.Contains(-100, 50) {
		t.Error("top-left corner should be inside")
	}
	if r.Contains(300, 100) {
		t.Error("right edge is exclusive")
	}
}
