package particle

// System owns a fixed population of particles and the emitter that respawns them.
type System struct {
	particles []Particle
	emitter   Emitter
	motion    Motion
	tick      uint64

	parallelThreshold int
	reborn            []bool
}

type Option func(*System)

// WithMotion sets the integration policy. The default is [Drift].
func WithMotion(m Motion) Option {
	return func(s *System) { s.motion = m }
}

// WithParallelThreshold sets the population size from which integration
// runs across goroutines. Zero or negative disables parallel integration.
func WithParallelThreshold(n int) Option {
	return func(s *System) { s.parallelThreshold = n }
}

// NewSystem allocates n dead particles driven by e. The population size is
// fixed for the lifetime of the system.
func NewSystem(n int, e Emitter, opts ...Option) *System {
	if n < 0 {
		n = 0
	}
	s := &System{
		particles:         make([]Particle, n),
		emitter:           e,
		motion:            Drift{},
		parallelThreshold: DefaultParallelThreshold,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Update advances the population by one tick. Dead particles are re-emitted,
// live particles move and age. A particle whose TTL runs out this tick is
// marked dead and respawned on the next Update.
func (s *System) Update() {
	s.tick++
	if u, ok := s.emitter.(Updater); ok {
		u.Update()
	}

	if s.parallelThreshold <= 0 || len(s.particles) < s.parallelThreshold {
		for i := range s.particles {
			p := &s.particles[i]
			if !p.Live() {
				s.emitter.Emit(p)
				continue
			}
			s.integrate(p)
		}
		return
	}

	// Emission mutates emitter state and stays serial; integration is
	// per-particle exclusive and fans out.
	if len(s.reborn) != len(s.particles) {
		s.reborn = make([]bool, len(s.particles))
	}
	for i := range s.particles {
		p := &s.particles[i]
		s.reborn[i] = !p.Live()
		if s.reborn[i] {
			s.emitter.Emit(p)
		}
	}
	parallelFor(len(s.particles), max(1, s.parallelThreshold/4), func(start, end int) {
		for i := start; i < end; i++ {
			if !s.reborn[i] {
				s.integrate(&s.particles[i])
			}
		}
	})
}

func (s *System) integrate(p *Particle) {
	s.motion.Move(p)
	p.TTL--
	if p.TTL <= 0 {
		p.TTL = 0
		p.Alive = false
	}
}

// Particles returns the population. Callers must not modify it.
func (s *System) Particles() []Particle { return s.particles }

func (s *System) Len() int { return len(s.particles) }

func (s *System) Emitter() Emitter { return s.emitter }

// Tick returns the number of completed updates.
func (s *System) Tick() uint64 { return s.tick }

// LiveCount returns the number of particles that would be rendered now.
func (s *System) LiveCount() int {
	n := 0
	for i := range s.particles {
		if s.particles[i].Live() {
			n++
		}
	}
	return n
}
