package annotate

import "testing"

func TestColorFor_CyclesByOneBasedIndex(t *testing.T) {
	if PaletteSize() != 10 {
		t.Fatalf("palette size: got %d, want 10", PaletteSize())
	}

	// Colors cycle with period 10, keyed by the raw 1-based index: index 10
	// wraps to slot 0, index 11 back to slot 1.
	for k := 1; k <= 25; k++ {
		want := palette[k%10]
		if got := ColorFor(k); got != want {
			t.Errorf("index %d: got %v, want palette[%d] = %v", k, got, k%10, want)
		}
	}

	if ColorFor(10) != palette[0] {
		t.Error("index 10 must map to palette slot 0")
	}
	if ColorFor(1) != palette[1] {
		t.Error("index 1 must map to palette slot 1, not slot 0")
	}
	if ColorFor(11) != ColorFor(1) {
		t.Error("indices 1 and 11 must share a color")
	}
}
