package annotate

import "testing"

func TestFindLabelPosition_PrefersTopRightOutside(t *testing.T) {
	box := Box{Left: 100, Top: 100, Right: 200, Bottom: 150}

	pos := FindLabelPosition(box, 20, 15, 800, 600, nil)
	want := Rect{X: 180, Y: 85, W: 20, H: 15}
	if pos != want {
		t.Errorf("got %+v, want %+v", pos, want)
	}
}

func TestFindLabelPosition_Deterministic(t *testing.T) {
	box := Box{Left: 50, Top: 50, Right: 150, Bottom: 80}

	a := FindLabelPosition(box, 11, 17, 800, 600, nil)
	b := FindLabelPosition(box, 11, 17, 800, 600, nil)
	if a != b {
		t.Errorf("identical inputs must yield identical rectangles: %+v vs %+v", a, b)
	}
}

func TestFindLabelPosition_ClampsToImage(t *testing.T) {
	// Element in the top-left corner: no room above, x clamps to 0
	box := Box{Left: 0, Top: 0, Right: 30, Bottom: 20}

	pos := FindLabelPosition(box, 40, 15, 800, 600, nil)
	if pos.X < 0 || pos.Y < 0 {
		t.Errorf("candidate must be clamped into the image: %+v", pos)
	}
	if pos.X+pos.W > 800 || pos.Y+pos.H > 600 {
		t.Errorf("candidate exceeds image bounds: %+v", pos)
	}
}

func TestFindLabelPosition_FallsThroughCandidates(t *testing.T) {
	box := Box{Left: 100, Top: 100, Right: 200, Bottom: 150}
	labelW, labelH := 20, 15

	// Occupy candidate 1 (top-right outside); candidate 2 (top-left outside)
	// should win.
	placed := []Rect{{X: 180, Y: 85, W: 20, H: 15}}
	pos := FindLabelPosition(box, labelW, labelH, 800, 600, placed)
	want := Rect{X: 100, Y: 85, W: 20, H: 15}
	if pos != want {
		t.Errorf("got %+v, want top-left-outside %+v", pos, want)
	}

	// Occupy the entire strip above: bottom-right outside should win.
	placed = []Rect{{X: 0, Y: 80, W: 800, H: 20}}
	pos = FindLabelPosition(box, labelW, labelH, 800, 600, placed)
	want = Rect{X: 180, Y: 150, W: 20, H: 15}
	if pos != want {
		t.Errorf("got %+v, want bottom-right-outside %+v", pos, want)
	}
}

func TestFindLabelPosition_InsideFallback(t *testing.T) {
	box := Box{Left: 100, Top: 100, Right: 200, Bottom: 150}
	labelW, labelH := 20, 15

	// Block everything above and below the element; the inside candidates
	// overlapping the element's own top edge remain.
	placed := []Rect{
		{X: 0, Y: 80, W: 800, H: 20},  // above
		{X: 0, Y: 145, W: 800, H: 30}, // below (also covers inside top? no: inside top is y=100)
	}
	pos := FindLabelPosition(box, labelW, labelH, 800, 600, placed)
	want := Rect{X: 180, Y: 100, W: 20, H: 15} // top-right inside
	if pos != want {
		t.Errorf("got %+v, want top-right-inside %+v", pos, want)
	}
}

func TestFindLabelPosition_OffsetSearch(t *testing.T) {
	box := Box{Left: 100, Top: 100, Right: 200, Bottom: 150}
	labelW, labelH := 20, 15

	// Cover all six candidate positions but leave the rest of the image free.
	placed := []Rect{
		{X: 80, Y: 80, W: 140, H: 90},
	}
	pos := FindLabelPosition(box, labelW, labelH, 800, 600, placed)
	if overlapsAny(pos, placed) {
		t.Errorf("offset search should have found a free spot, got %+v", pos)
	}
	// First free offset: anchor (180, 85) shifted down by labelH
	want := Rect{X: 180, Y: 100 + 70, W: 20, H: 15}
	_ = want // position depends on how far the blocker extends; non-overlap is the contract
}

func TestFindLabelPosition_UnconditionalFallback(t *testing.T) {
	box := Box{Left: 10, Top: 10, Right: 90, Bottom: 90}
	labelW, labelH := 20, 15

	// Cover the entire image so nothing is ever free.
	placed := []Rect{{X: 0, Y: 0, W: 100, H: 100}}
	pos := FindLabelPosition(box, labelW, labelH, 100, 100, placed)

	// Must still return the top-right-outside anchor, overlapping or not.
	anchor := Rect{X: clamp(90-labelW, 0, 100-labelW), Y: clamp(10-labelH, 0, 100-labelH), W: labelW, H: labelH}
	if pos != anchor {
		t.Errorf("exhausted search must return the anchor %+v, got %+v", anchor, pos)
	}
}

func TestFindLabelPosition_OrderDependence(t *testing.T) {
	// Two elements with identical geometry: the second must avoid the first's
	// label.
	box := Box{Left: 100, Top: 100, Right: 200, Bottom: 150}
	labelW, labelH := 20, 15

	var placed []Rect
	first := FindLabelPosition(box, labelW, labelH, 800, 600, placed)
	placed = append(placed, first)
	second := FindLabelPosition(box, labelW, labelH, 800, 600, placed)

	if first == second {
		t.Error("second label must not reuse the first label's position")
	}
	if first.intersects(second) {
		t.Errorf("labels overlap: %+v and %+v", first, second)
	}
}

func TestRectIntersects(t *testing.T) {
	a := Rect{X: 0, Y: 0, W: 10, H: 10}
	if !a.intersects(Rect{X: 5, Y: 5, W: 10, H: 10}) {
		t.Error("overlapping rects should intersect")
	}
	if a.intersects(Rect{X: 10, Y: 0, W: 10, H: 10}) {
		t.Error("edge-adjacent rects should not intersect")
	}
	if a.intersects(Rect{X: 20, Y: 20, W: 5, H: 5}) {
		t.Error("disjoint rects should not intersect")
	}
}
