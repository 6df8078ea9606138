package theme

import (
	"testing"
)

func TestGetTheme(t *testing.T) {
	th := GetTheme("mizu")
	if th.Name != "mizu" {
		t.Errorf("expected mizu, got %s", th.Name)
	}

	th = GetTheme("nonexistent")
	if th.Name != "sumi" {
		t.Errorf("expected fallback to sumi, got %s", th.Name)
	}
}

func TestThemeNames(t *testing.T) {
	names := ThemeNames()
	if len(names) != len(Themes) {
		t.Fatalf("expected %d names, got %d", len(Themes), len(names))
	}
	seen := make(map[string]bool)
	for _, n := range names {
		if seen[n] {
			t.Errorf("duplicate theme name %s", n)
		}
		seen[n] = true
	}
}

func TestPalette(t *testing.T) {
	p := Palette()
	if len(p) == 0 {
		t.Fatal("palette is empty")
	}

	// Every main color appears; every non-empty secondary appears.
	want := 0
	for _, th := range Themes {
		want++
		if th.Secondary != "" {
			want++
		}
	}
	if len(p) != want {
		t.Errorf("expected %d palette entries, got %d", want, len(p))
	}
	for _, c := range p {
		if c == "" {
			t.Error("palette contains empty color")
		}
	}
}
