package theme

import "testing"

func TestByName(t *testing.T) {
	if got := ByName("catppuccin-mocha"); got.Name != "catppuccin-mocha" {
		t.Errorf("ByName(catppuccin-mocha) = %q", got.Name)
	}
	if got := ByName("no-such-theme"); got.Name != FlexokiDark.Name {
		t.Errorf("unknown theme = %q, want fallback %q", got.Name, FlexokiDark.Name)
	}
}

func TestSetActive(t *testing.T) {
	defer SetActive(FlexokiDark.Name)

	SetActive("terminal")
	if Active.Name != "terminal" {
		t.Errorf("Active = %q, want terminal", Active.Name)
	}
	if len(Names()) != len(All) {
		t.Errorf("Names() has %d entries, want %d", len(Names()), len(All))
	}
}

func TestDelta(t *testing.T) {
	th := FlexokiDark
	if th.Delta(-1) != th.Decrease || th.Delta(5) != th.Increase || th.Delta(0) != th.Increase {
		t.Error("Delta picked the wrong color")
	}
}
