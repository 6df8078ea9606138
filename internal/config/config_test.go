package config

import (
	"path/filepath"
	"sort"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Theme != "" {
		t.Errorf("expected no theme scoping by default, got %s", cfg.Theme)
	}
	if cfg.FPS <= 0 {
		t.Error("fps should be positive")
	}
	if cfg.Pulse.Count <= 0 {
		t.Error("pulse count should be positive")
	}
	if cfg.Pulse.MinOpacity >= cfg.Pulse.MaxOpacity {
		t.Error("min opacity should be below max opacity")
	}
	if cfg.Fonts.Load {
		t.Error("fonts should not load by default")
	}
	if !cfg.Audio.Enabled {
		t.Error("audio should be enabled by default")
	}
}

func TestLoadSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "zengrid.yaml")

	cfg := DefaultConfig()
	cfg.Theme = "mizu"
	cfg.Interactive = true
	cfg.Fonts.Load = true
	cfg.Pulse.PeriodSeconds = 7.0

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if loaded.Theme != "mizu" {
		t.Errorf("theme = %s, want mizu", loaded.Theme)
	}
	if !loaded.Interactive {
		t.Error("interactive flag lost")
	}
	if !loaded.Fonts.Load {
		t.Error("fonts.load flag lost")
	}
	if loaded.Pulse.Period() != 7*time.Second {
		t.Errorf("pulse period = %v, want 7s", loaded.Pulse.Period())
	}
	// Unset fields keep their defaults.
	if loaded.FPS != DefaultFPS {
		t.Errorf("fps = %d, want default %d", loaded.FPS, DefaultFPS)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("zen")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Pulse.Period() != 5*time.Second {
		t.Errorf("expected 5s period, got %v", cfg.Pulse.Period())
	}

	if GetPreset("nonexistent") != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestListPresets(t *testing.T) {
	names := ListPresets()
	if len(names) == 0 {
		t.Fatal("expected presets")
	}
	sort.Strings(names)
	for _, want := range []string{"ripple", "storm", "zen"} {
		i := sort.SearchStrings(names, want)
		if i >= len(names) || names[i] != want {
			t.Errorf("preset %s missing", want)
		}
	}
}
