// Package particle implements the fixed-population particle simulation.
//
// The package is built from three pieces:
//
//   - [Particle]: position, velocity, lifetime and hue of one particle
//   - [Emitter]: policy that (re)initializes dead particles ([Fire], [Spin])
//   - [System]: owns the population and one emitter, advanced once per tick
//
// Coordinates live in a fine grid described by [Bounds], oversampled relative
// to the physical display so that several fine positions map to one pixel.
//
// # Example
//
//	b := particle.NewBounds(32, 16, 8)
//	fire := particle.NewFire(b, particle.DefaultParams(), particle.NewRand(42))
//	sys := particle.NewSystem(60, fire, particle.WithMotion(particle.Rise{Lift: 1, MaxSpeed: 6}))
//	for {
//	    sys.Update()
//	    m.Fade()
//	    m.Render(sys.Particles())
//	}
//
// # Thread Safety
//
// A System is NOT safe for concurrent use. It is meant to be driven from a
// single simulation goroutine; large populations are integrated in parallel
// internally while emission stays on the calling goroutine.
package particle
