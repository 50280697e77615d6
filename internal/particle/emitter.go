package particle

const (
	DefaultBaseHue = 128
	DefaultMaxTTL  = 128
)

// Emitter decides how a dead particle is born again.
//
// Emit must overwrite every field of p and never read its previous TTL or
// Alive state.
type Emitter interface {
	Emit(p *Particle)
}

// Updater is implemented by emitters that keep a per-tick clock. The System
// calls Update once at the start of every tick, before any emission.
type Updater interface {
	Update()
}

// Tunable exposes the shared emitter parameters for live adjustment.
type Tunable interface {
	Params() *Params
}

// Params are the tunables common to every emitter.
type Params struct {
	BaseHue  uint8
	MaxTTL   int
	CycleHue bool
}

func DefaultParams() Params {
	return Params{BaseHue: DefaultBaseHue, MaxTTL: DefaultMaxTTL}
}

// capTTL bounds ttl to [1, MaxTTL].
func (p Params) capTTL(ttl int) int {
	if p.MaxTTL > 0 && ttl > p.MaxTTL {
		ttl = p.MaxTTL
	}
	if ttl < 1 {
		ttl = 1
	}
	return ttl
}
