package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Field != "linear" {
		t.Errorf("expected field linear, got %s", cfg.Field)
	}
	if cfg.Dt != 0.05 {
		t.Errorf("expected dt 0.05, got %f", cfg.Dt)
	}
	if cfg.Threshold != 0.5 {
		t.Errorf("expected threshold 0.5, got %f", cfg.Threshold)
	}
	if cfg.Trail.RadiusScale != 8 {
		t.Errorf("expected radius scale 8, got %f", cfg.Trail.RadiusScale)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero dt", func(c *Config) { c.Dt = 0 }},
		{"negative dt", func(c *Config) { c.Dt = -0.1 }},
		{"zero threshold", func(c *Config) { c.Threshold = 0 }},
		{"inverted x", func(c *Config) { c.Domain.XMin, c.Domain.XMax = 1, -1 }},
		{"flat y", func(c *Config) { c.Domain.YMin, c.Domain.YMax = 2, 2 }},
		{"zero spacing", func(c *Config) { c.Glyphs.Spacing = 0 }},
		{"negative radius scale", func(c *Config) { c.Trail.RadiusScale = -1 }},
		{"zero frame rate", func(c *Config) { c.FrameRate = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalid) {
				t.Errorf("expected ErrInvalid, got %v", err)
			}
		})
	}
}

func TestLoadOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flow.yaml")
	data := []byte("field: sine\ndt: 0.02\nmarker:\n  x: -3\n  y: 1.5\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Field != "sine" {
		t.Errorf("expected field sine, got %s", cfg.Field)
	}
	if cfg.Dt != 0.02 {
		t.Errorf("expected dt 0.02, got %f", cfg.Dt)
	}
	if cfg.Marker.X != -3 || cfg.Marker.Y != 1.5 {
		t.Errorf("unexpected marker start %+v", cfg.Marker)
	}
	if cfg.Threshold != DefaultThreshold {
		t.Errorf("expected default threshold, got %f", cfg.Threshold)
	}
	if cfg.Glyphs.Spacing != DefaultSpacing {
		t.Errorf("expected default spacing, got %f", cfg.Glyphs.Spacing)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	os.WriteFile(path, []byte("dt: [1, 2"), 0644)
	if _, err := Load(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "saved.yaml")
	cfg := DefaultConfig()
	cfg.Field = "decay"
	cfg.Trail.RadiusScale = 4

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if *loaded != *cfg {
		t.Errorf("expected %+v, got %+v", cfg, loaded)
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("linear", "below")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Marker.X != -4 {
		t.Errorf("expected x -4, got %f", cfg.Marker.X)
	}

	if GetPreset("linear", "nonexistent") != nil {
		t.Error("expected nil for nonexistent preset")
	}
	if GetPreset("nonexistent", "origin") != nil {
		t.Error("expected nil for nonexistent field")
	}
}

func TestListPresets(t *testing.T) {
	if len(ListPresets("linear")) == 0 {
		t.Error("expected presets for linear")
	}
	if ListPresets("nonexistent") != nil {
		t.Error("expected nil for nonexistent field")
	}
}

func TestApply(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Apply(GetPreset("quadratic", "steep"))

	if cfg.Field != "quadratic" || cfg.Dt != 0.01 || cfg.Threshold != 1.0 {
		t.Errorf("preset not applied: %+v", cfg)
	}
	if cfg.Marker.X != -3 {
		t.Errorf("expected marker x -3, got %f", cfg.Marker.X)
	}
	if cfg.Trail.RadiusScale != DefaultRadiusScale {
		t.Error("apply should not touch trail settings")
	}

	cfg.Apply(nil)
	if cfg.Field != "quadratic" {
		t.Error("nil preset changed config")
	}
}

func TestGrid(t *testing.T) {
	g := DefaultConfig().Grid()
	if g.XMin != -5 || g.XMax != 5 || g.Spacing != 0.8 {
		t.Errorf("unexpected grid %+v", g)
	}
	if g.Count() != 169 {
		t.Errorf("expected 169 grid points, got %d", g.Count())
	}
}
