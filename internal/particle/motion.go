package particle

// Motion integrates one live particle by one tick.
type Motion interface {
	Move(p *Particle)
}

// Drift applies velocity unchanged.
type Drift struct{}

func (Drift) Move(p *Particle) {
	p.X += p.VX
	p.Y += p.VY
}

// Rise accelerates particles upward (towards +Y) until MaxSpeed.
type Rise struct {
	Lift     int
	MaxSpeed int
}

func (r Rise) Move(p *Particle) {
	p.VY += r.Lift
	if r.MaxSpeed > 0 && p.VY > r.MaxSpeed {
		p.VY = r.MaxSpeed
	}
	p.X += p.VX
	p.Y += p.VY
}

// Bounce reflects particles off the edges of the fine space. Reflection is
// elastic: the velocity component flips sign and keeps its magnitude.
type Bounce struct {
	Bounds Bounds
}

func (b Bounce) Move(p *Particle) {
	p.X, p.VX = reflect(p.X+p.VX, p.VX, b.Bounds.MaxX)
	p.Y, p.VY = reflect(p.Y+p.VY, p.VY, b.Bounds.MaxY)
}

func reflect(pos, vel, max int) (int, int) {
	switch {
	case pos < 0:
		return 0, abs(vel)
	case pos > max-1:
		return max - 1, -abs(vel)
	}
	return pos, vel
}
