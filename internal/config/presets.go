package config

import (
	"fmt"
	"sort"
)

// Presets holds named variations per effect. Each entry edits a copy of the
// defaults.
var Presets = map[string]map[string]func(*Config){
	"fire": {
		"embers": func(c *Config) {
			c.Fire.Count = 40
			c.Fire.Decay = 224
			c.Fire.BaseHue = 0
			c.Fire.MaxTTL = 100
			c.Fire.Lift = 0
		},
		"inferno": func(c *Config) {
			c.Fire.Count = 240
			c.Fire.Decay = 160
			c.Fire.BaseHue = 8
			c.Fire.MaxSpeed = 10
			c.Fire.Blend = "subpixel"
		},
		"rainbow": func(c *Config) {
			c.Fire.CycleHue = true
			c.Fire.Count = 90
		},
	},
	"spin": {
		"classic": func(c *Config) {},
		"steady": func(c *Config) {
			c.Spin.Oscillate = false
			c.Spin.CycleHue = false
			c.Spin.BaseHue = 160
		},
		"contained": func(c *Config) {
			c.Spin.Overflow = false
			c.Spin.Radius = 3
			c.Spin.Velocity = 11
		},
	},
	"pulse": {
		"slow": func(c *Config) { c.IntervalMs = 20 },
	},
	"plasma": {
		"calm": func(c *Config) { c.IntervalMs = 60 },
	},
}

// GetPreset returns the defaults with the named preset applied, or nil when
// either name is unknown.
func GetPreset(effect, preset string) *Config {
	effectPresets, ok := Presets[effect]
	if !ok {
		return nil
	}
	apply, ok := effectPresets[preset]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	cfg.Effect = effect
	apply(cfg)
	return cfg
}

// Preset is GetPreset with an error for unknown names.
func Preset(effect, preset string) (*Config, error) {
	cfg := GetPreset(effect, preset)
	if cfg == nil {
		return nil, fmt.Errorf("%w: %s/%s", ErrUnknownPreset, effect, preset)
	}
	return cfg, nil
}

func ListPresets(effect string) []string {
	effectPresets, ok := Presets[effect]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(effectPresets))
	for name := range effectPresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
