package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestEmbeddedDefaultsMatchHardCoded(t *testing.T) {
	got := embeddedDefault()
	want := DefaultGameConfig()

	if got != want {
		t.Errorf("embedded defaults = %+v, expected %+v", got, want)
	}
}

func TestDefaultGameConfigValidates(t *testing.T) {
	if err := DefaultGameConfig().Validate(); err != nil {
		t.Errorf("Validate() = %v, expected nil", err)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*GameConfig)
	}{
		{"zero substeps", func(c *GameConfig) { c.Physics.Substeps = 0 }},
		{"zero cell size", func(c *GameConfig) { c.Blocks.CellSize = 0 }},
		{"negative eating range", func(c *GameConfig) { c.Predation.EatingRange = -1 }},
		{"volume above one", func(c *GameConfig) { c.Audio.Volume = 1.5 }},
		{"zero palette columns", func(c *GameConfig) { c.Layout.PaletteColumns = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultGameConfig()
			tt.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Validate() = nil, expected error")
			}
		})
	}
}

func TestDecayDuration(t *testing.T) {
	p := PredationConfig{DecaySeconds: 0.5}
	if got := p.DecayDuration(); got != 500*time.Millisecond {
		t.Errorf("DecayDuration() = %v, expected 500ms", got)
	}
}

func TestLoadCustomPathOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "game.yaml")
	content := "predation:\n  eating_range: 55\nphysics:\n  scale_with_display: true\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Predation.EatingRange != 55 {
		t.Errorf("EatingRange = %v, expected 55", cfg.Predation.EatingRange)
	}
	if !cfg.Physics.ScaleWithDisplay {
		t.Error("ScaleWithDisplay = false, expected true")
	}
	if cfg.Blocks.CellSize != 56.25 {
		t.Errorf("CellSize = %v, expected default 56.25", cfg.Blocks.CellSize)
	}
	if cfg.Predation.DecaySeconds != 0.6 {
		t.Errorf("DecaySeconds = %v, expected default 0.6", cfg.Predation.DecaySeconds)
	}
}

func TestLoadCustomPathErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Load(missing) = nil error, expected failure")
	}

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(bad, []byte("physics: [1, 2"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(bad); err == nil {
		t.Error("Load(malformed) = nil error, expected failure")
	}

	invalid := filepath.Join(t.TempDir(), "invalid.yaml")
	if err := os.WriteFile(invalid, []byte("physics:\n  substeps: 0\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(invalid); err == nil {
		t.Error("Load(substeps=0) = nil error, expected validation failure")
	}
}

func TestTryLoadSkipsInvalidFiles(t *testing.T) {
	base := DefaultGameConfig()
	path := filepath.Join(t.TempDir(), "game.yaml")
	if err := os.WriteFile(path, []byte("blocks:\n  cell_mass: -3\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, ok := tryLoad(path, base)
	if ok {
		t.Error("tryLoad() ok = true for invalid file, expected false")
	}
	if cfg != base {
		t.Error("tryLoad() should return base config on failure")
	}
}
