package platform

import "testing"

func TestParseKeyCombo_Single(t *testing.T) {
	key, mods, err := ParseKeyCombo("enter")
	if err != nil {
		t.Fatal(err)
	}
	if key != "enter" || len(mods) != 0 {
		t.Errorf("got key=%q mods=%v", key, mods)
	}
}

func TestParseKeyCombo_Modifiers(t *testing.T) {
	key, mods, err := ParseKeyCombo("Ctrl+Shift+S")
	if err != nil {
		t.Fatal(err)
	}
	if key != "s" {
		t.Errorf("key: got %q", key)
	}
	if len(mods) != 2 || mods[0] != "ctrl" || mods[1] != "shift" {
		t.Errorf("mods: got %v", mods)
	}
}

func TestParseKeyCombo_Aliases(t *testing.T) {
	key, _, err := ParseKeyCombo("esc")
	if err != nil || key != "escape" {
		t.Errorf("esc should alias to escape: %q, %v", key, err)
	}

	key, mods, err := ParseKeyCombo("win+d")
	if err != nil || key != "d" || len(mods) != 1 || mods[0] != "cmd" {
		t.Errorf("win+d: key=%q mods=%v err=%v", key, mods, err)
	}
}

func TestParseKeyCombo_Invalid(t *testing.T) {
	for _, bad := range []string{"", "s+ctrl", "ctrl+", "+s"} {
		if _, _, err := ParseKeyCombo(bad); err == nil {
			t.Errorf("expected error for %q", bad)
		}
	}
}
