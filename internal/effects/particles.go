package effects

import (
	"fmt"
	"time"

	"github.com/san-kum/ledfx/internal/config"
	"github.com/san-kum/ledfx/internal/display"
	"github.com/san-kum/ledfx/internal/partmatrix"
	"github.com/san-kum/ledfx/internal/particle"
)

const ParticleInterval = 30 * time.Millisecond

// Particles runs a particle system and composites it into a fading matrix.
type Particles struct {
	name   string
	cfg    config.ParticleConfig
	bounds particle.Bounds
	seed   int64

	emitterFor func(particle.Params, particle.Rand) particle.Emitter
	motion     particle.Motion

	emitter particle.Emitter
	sys     *particle.System
	mat     *partmatrix.Matrix
}

// NewParticles builds a particle effect for a w x h display.
func NewParticles(name string, pc config.ParticleConfig, w, h int, seed int64) (*Particles, error) {
	blend, err := partmatrix.ParseBlend(pc.Blend)
	if err != nil {
		return nil, err
	}
	p := &Particles{
		name:   name,
		cfg:    pc,
		bounds: particle.NewBounds(w, h, pc.Oversample),
		seed:   seed,
		mat: partmatrix.New(partmatrix.Options{
			Width:      w,
			Height:     h,
			Oversample: pc.Oversample,
			Overflow:   pc.Overflow,
			Decay:      uint8(pc.Decay),
			Blend:      blend,
			FlipY:      pc.FlipY,
		}),
	}
	if err := p.resolve(); err != nil {
		return nil, err
	}
	p.build()
	return p, nil
}

// resolve turns the emitter and motion names into constructors. It is the
// only step that can fail, so Reset never has to.
func (p *Particles) resolve() error {
	switch p.cfg.Emitter {
	case "fire":
		p.emitterFor = func(params particle.Params, rng particle.Rand) particle.Emitter {
			return particle.NewFire(p.bounds, params, rng)
		}
	case "spin":
		opts := particle.SpinOptions{
			CenterX:   p.cfg.Center[0],
			CenterY:   p.cfg.Center[1],
			Radius:    p.cfg.Radius,
			Velocity:  p.cfg.Velocity,
			Oscillate: p.cfg.Oscillate,
		}
		p.emitterFor = func(params particle.Params, rng particle.Rand) particle.Emitter {
			return particle.NewSpin(params, opts, rng)
		}
	default:
		return fmt.Errorf("%w: emitter %q", config.ErrInvalidConfig, p.cfg.Emitter)
	}

	switch p.cfg.Motion {
	case "drift":
		p.motion = particle.Drift{}
	case "rise":
		p.motion = particle.Rise{Lift: p.cfg.Lift, MaxSpeed: p.cfg.MaxSpeed}
	case "bounce":
		p.motion = particle.Bounce{Bounds: p.bounds}
	default:
		return fmt.Errorf("%w: motion %q", config.ErrInvalidConfig, p.cfg.Motion)
	}
	return nil
}

func (p *Particles) build() {
	params := particle.Params{
		BaseHue:  uint8(p.cfg.BaseHue),
		MaxTTL:   p.cfg.MaxTTL,
		CycleHue: p.cfg.CycleHue,
	}
	p.emitter = p.emitterFor(params, particle.NewRand(p.seed))

	opts := []particle.Option{particle.WithMotion(p.motion)}
	if p.cfg.Parallel > 0 {
		opts = append(opts, particle.WithParallelThreshold(p.cfg.Parallel))
	}
	p.sys = particle.NewSystem(p.cfg.Count, p.emitter, opts...)
}

func (p *Particles) Name() string            { return p.name }
func (p *Particles) Interval() time.Duration { return ParticleInterval }

func (p *Particles) Step(d display.Display) {
	p.sys.Update()
	p.mat.Fade()
	p.mat.Render(p.sys.Particles())
	p.mat.Blit(d)
}

// Reset kills every particle and clears the trails. Live tuning made through
// Params is kept.
func (p *Particles) Reset() {
	if t, ok := p.emitter.(particle.Tunable); ok {
		cur := *t.Params()
		p.cfg.BaseHue = int(cur.BaseHue)
		p.cfg.MaxTTL = cur.MaxTTL
		p.cfg.CycleHue = cur.CycleHue
	}
	p.mat.Reset()
	p.build()
}

func (p *Particles) LiveCount() int { return p.sys.LiveCount() }

// Params returns the live emitter parameters.
func (p *Particles) Params() *particle.Params {
	if t, ok := p.emitter.(particle.Tunable); ok {
		return t.Params()
	}
	return nil
}

func (p *Particles) System() *particle.System   { return p.sys }
func (p *Particles) Matrix() *partmatrix.Matrix { return p.mat }
func (p *Particles) Bounds() particle.Bounds    { return p.bounds }
func (p *Particles) Emitter() particle.Emitter  { return p.emitter }
func (p *Particles) SetOverflow(on bool)        { p.mat.SetOverflow(on) }
func (p *Particles) Overflow() bool             { return p.mat.Overflow() }
