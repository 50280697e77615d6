package particle

import "math"

// Oscillation limits for the spin emitter's rotational velocity.
const (
	oscillatePeriod = 20
	oscillateLimit  = 6
	minSpinTTL      = 20
)

// SpinOptions configures a Spin emitter.
type SpinOptions struct {
	CenterX, CenterY int
	// Radius is the launch speed in fine units per tick.
	Radius int
	// Velocity is the rotation of the launch direction in degrees per tick.
	Velocity  int
	Oscillate bool
}

// Spin launches particles from a fixed point in a rotating direction.
type Spin struct {
	params    Params
	opts      SpinOptions
	rng       Rand
	counter   uint32
	velocity  int
	direction int
	vx, vy    int
}

func NewSpin(params Params, opts SpinOptions, rng Rand) *Spin {
	return &Spin{
		params:    params,
		opts:      opts,
		rng:       rng,
		velocity:  opts.Velocity,
		direction: -1,
	}
}

func (s *Spin) Params() *Params { return &s.params }

// SetOscillate toggles the rotational velocity sweep.
func (s *Spin) SetOscillate(on bool) { s.opts.Oscillate = on }

// Velocity returns the current rotational velocity in degrees per tick.
func (s *Spin) Velocity() int { return s.velocity }

// Launch returns the velocity vector the next emitted particle receives.
func (s *Spin) Launch() (vx, vy int) { return s.vx, s.vy }

// Update advances the launch angle by one tick.
func (s *Spin) Update() {
	s.counter++
	if s.opts.Oscillate && s.counter%oscillatePeriod == 0 {
		s.velocity += s.direction
		if abs(s.velocity) > oscillateLimit {
			s.direction = -s.direction
		}
	}

	angle := float64(s.counter) * float64(s.velocity) * math.Pi / 180
	sin, cos := math.Sincos(angle)
	r := float64(s.opts.Radius)
	s.vx = int(math.Round(r * cos))
	s.vy = int(math.Round(r * sin))
}

func (s *Spin) Emit(p *Particle) {
	p.X = s.opts.CenterX
	p.Y = s.opts.CenterY
	p.VX = s.vx
	p.VY = s.vy

	if s.params.MaxTTL > minSpinTTL {
		p.TTL = between(s.rng, minSpinTTL, s.params.MaxTTL)
	} else {
		p.TTL = s.params.capTTL(s.params.MaxTTL)
	}

	if s.params.CycleHue {
		p.Hue = uint8(s.counter >> 1)
	} else {
		p.Hue = s.params.BaseHue
	}
	p.Alive = true
}
