package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Effect != "fire" {
		t.Errorf("expected effect fire, got %s", cfg.Effect)
	}
	if cfg.Width != 32 || cfg.Height != 16 {
		t.Errorf("expected 32x16, got %dx%d", cfg.Width, cfg.Height)
	}
	if cfg.Fire.Decay != 192 {
		t.Errorf("expected decay 192, got %d", cfg.Fire.Decay)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero width", func(c *Config) { c.Width = 0 }},
		{"negative height", func(c *Config) { c.Height = -2 }},
		{"oversample", func(c *Config) { c.Fire.Oversample = 0 }},
		{"population", func(c *Config) { c.Spin.Count = 0 }},
		{"emitter", func(c *Config) { c.Fire.Emitter = "smoke" }},
		{"motion", func(c *Config) { c.Spin.Motion = "orbit" }},
		{"blend", func(c *Config) { c.Fire.Blend = "multiply" }},
		{"max ttl", func(c *Config) { c.Fire.MaxTTL = 1 }},
		{"decay", func(c *Config) { c.Fire.Decay = 300 }},
		{"brightness", func(c *Config) { c.Display.Brightness = 40 }},
		{"brightness zero", func(c *Config) { c.Display.Brightness = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("fire", "rainbow")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if !cfg.Fire.CycleHue {
		t.Error("expected hue cycling in rainbow preset")
	}
	if DefaultConfig().Fire.CycleHue {
		t.Error("preset leaked into defaults")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("preset should validate: %v", err)
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if cfg := GetPreset("fire", "nonexistent"); cfg != nil {
		t.Error("expected nil for nonexistent preset")
	}
	if cfg := GetPreset("nonexistent", "embers"); cfg != nil {
		t.Error("expected nil for nonexistent effect")
	}
	if _, err := Preset("fire", "nope"); !errors.Is(err, ErrUnknownPreset) {
		t.Errorf("expected ErrUnknownPreset, got %v", err)
	}
}

func TestAllPresetsValidate(t *testing.T) {
	for effect := range Presets {
		for _, name := range ListPresets(effect) {
			if err := GetPreset(effect, name).Validate(); err != nil {
				t.Errorf("%s/%s: %v", effect, name, err)
			}
		}
	}
}

func TestListPresets(t *testing.T) {
	presets := ListPresets("spin")
	if len(presets) == 0 {
		t.Error("expected presets for spin")
	}
	for i := 1; i < len(presets); i++ {
		if presets[i-1] > presets[i] {
			t.Errorf("presets not sorted: %v", presets)
		}
	}

	if presets := ListPresets("nonexistent"); presets != nil {
		t.Error("expected nil for nonexistent effect")
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledfx.yaml")
	cfg := DefaultConfig()
	cfg.Effect = "spin"
	cfg.Spin.Radius = 9
	cfg.Display.Kind = "null"

	if err := Save(path, cfg); err != nil {
		t.Fatal(err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if got.Effect != "spin" || got.Spin.Radius != 9 || got.Display.Kind != "null" {
		t.Errorf("round trip mismatch: %+v", got)
	}
}

func TestLoadOverKeepsBase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	if err := os.WriteFile(path, []byte("fire:\n  decay: 100\n"), 0644); err != nil {
		t.Fatal(err)
	}
	base := GetPreset("fire", "inferno")
	got, err := LoadOver(base, path)
	if err != nil {
		t.Fatal(err)
	}
	if got.Fire.Decay != 100 {
		t.Errorf("file value not applied: decay %d", got.Fire.Decay)
	}
	if got.Fire.Count != 240 {
		t.Errorf("preset value lost: count %d", got.Fire.Count)
	}
	if base.Fire.Decay == 100 {
		t.Error("base modified")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected not-exist error, got %v", err)
	}
}
