package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultWidth      = 32
	DefaultHeight     = 16
	DefaultOversample = 8
	DefaultParticles  = 60
	DefaultDecay      = 192
	DefaultBaseHue    = 128
	DefaultMaxTTL     = 128
	DefaultSeed       = 1
	DefaultEffect     = "fire"
)

var (
	ErrInvalidConfig = errors.New("config: invalid configuration")
	ErrUnknownPreset = errors.New("config: unknown preset")
)

var (
	emitterNames = map[string]bool{"fire": true, "spin": true}
	motionNames  = map[string]bool{"drift": true, "rise": true, "bounce": true}
	blendNames   = map[string]bool{"additive": true, "replace": true, "subpixel": true}
)

type Config struct {
	Effect     string         `yaml:"effect"`
	Width      int            `yaml:"width"`
	Height     int            `yaml:"height"`
	Seed       int64          `yaml:"seed"`
	IntervalMs int            `yaml:"interval_ms"`
	Display    DisplayConfig  `yaml:"display"`
	Fire       ParticleConfig `yaml:"fire"`
	Spin       ParticleConfig `yaml:"spin"`
	Scroller   ScrollerConfig `yaml:"scroller"`
}

type DisplayConfig struct {
	Kind          string `yaml:"kind"`
	Scale         int    `yaml:"scale"`
	MinIntervalMs int    `yaml:"min_interval_ms"`
	Port          string `yaml:"port"`
	SpeedMHz      int    `yaml:"speed_mhz"`
	Layout        string `yaml:"layout"`
	Brightness    int    `yaml:"brightness"`
}

type ParticleConfig struct {
	Count      int    `yaml:"count"`
	Oversample int    `yaml:"oversample"`
	Emitter    string `yaml:"emitter"`
	Motion     string `yaml:"motion"`
	Blend      string `yaml:"blend"`
	Overflow   bool   `yaml:"overflow"`
	FlipY      bool   `yaml:"flip_y"`
	Decay      int    `yaml:"decay"`
	BaseHue    int    `yaml:"base_hue"`
	MaxTTL     int    `yaml:"max_ttl"`
	CycleHue   bool   `yaml:"cycle_hue"`
	Lift       int    `yaml:"lift"`
	MaxSpeed   int    `yaml:"max_speed"`
	// Parallel is the population size at which updates fan out across
	// goroutines. Zero keeps the default.
	Parallel  int    `yaml:"parallel"`
	Center    [2]int `yaml:"center"`
	Radius    int    `yaml:"radius"`
	Velocity  int    `yaml:"velocity"`
	Oscillate bool   `yaml:"oscillate"`
}

type ScrollerConfig struct {
	Image string `yaml:"image"`
}

func DefaultConfig() *Config {
	return &Config{
		Effect: DefaultEffect,
		Width:  DefaultWidth,
		Height: DefaultHeight,
		Seed:   DefaultSeed,
		Display: DisplayConfig{
			Kind:       "terminal",
			Scale:      20,
			SpeedMHz:   4,
			Layout:     "serpentine",
			Brightness: 31,
		},
		Fire: ParticleConfig{
			Count:      DefaultParticles,
			Oversample: DefaultOversample,
			Emitter:    "fire",
			Motion:     "rise",
			Blend:      "additive",
			FlipY:      true,
			Decay:      DefaultDecay,
			BaseHue:    DefaultBaseHue,
			MaxTTL:     DefaultMaxTTL,
			Lift:       1,
			MaxSpeed:   6,
		},
		Spin: ParticleConfig{
			Count:      DefaultParticles,
			Oversample: DefaultOversample,
			Emitter:    "spin",
			Motion:     "bounce",
			Blend:      "additive",
			Overflow:   true,
			Decay:      DefaultDecay,
			BaseHue:    DefaultBaseHue,
			MaxTTL:     DefaultMaxTTL,
			CycleHue:   true,
			Center:     [2]int{112, 112},
			Radius:     5,
			Velocity:   7,
			Oscillate:  true,
		},
	}
}

// Load reads a YAML file over the defaults.
func Load(path string) (*Config, error) {
	return LoadOver(DefaultConfig(), path)
}

// LoadOver reads a YAML file over base. base is not modified.
func LoadOver(base *Config, path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := base.Clone()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Clone() *Config {
	cp := *c
	return &cp
}

// Particles returns the particle section used by the named effect, or nil
// when the effect is not particle based.
func (c *Config) Particles(effect string) *ParticleConfig {
	switch effect {
	case "fire":
		return &c.Fire
	case "spin":
		return &c.Spin
	}
	return nil
}

func (c *Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: size %dx%d", ErrInvalidConfig, c.Width, c.Height)
	}
	if c.IntervalMs < 0 {
		return fmt.Errorf("%w: interval_ms %d", ErrInvalidConfig, c.IntervalMs)
	}
	if c.Display.Brightness < 1 || c.Display.Brightness > 31 {
		return fmt.Errorf("%w: brightness %d not in [1,31]", ErrInvalidConfig, c.Display.Brightness)
	}
	for name, p := range map[string]*ParticleConfig{"fire": &c.Fire, "spin": &c.Spin} {
		if err := p.validate(); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	return nil
}

func (p *ParticleConfig) validate() error {
	switch {
	case p.Count < 1:
		return fmt.Errorf("%w: count %d", ErrInvalidConfig, p.Count)
	case p.Oversample < 1:
		return fmt.Errorf("%w: oversample %d", ErrInvalidConfig, p.Oversample)
	case !emitterNames[p.Emitter]:
		return fmt.Errorf("%w: unknown emitter %q", ErrInvalidConfig, p.Emitter)
	case !motionNames[p.Motion]:
		return fmt.Errorf("%w: unknown motion %q", ErrInvalidConfig, p.Motion)
	case !blendNames[p.Blend]:
		return fmt.Errorf("%w: unknown blend %q", ErrInvalidConfig, p.Blend)
	case p.MaxTTL < 2:
		return fmt.Errorf("%w: max_ttl %d", ErrInvalidConfig, p.MaxTTL)
	case p.Decay < 0 || p.Decay > 255:
		return fmt.Errorf("%w: decay %d not in [0,255]", ErrInvalidConfig, p.Decay)
	case p.BaseHue < 0 || p.BaseHue > 255:
		return fmt.Errorf("%w: base_hue %d not in [0,255]", ErrInvalidConfig, p.BaseHue)
	}
	return nil
}
