package particle

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

// countingEmitter records emissions and hands out a fixed TTL.
type countingEmitter struct {
	ttl     int
	emitted int
	updates int
}

func (c *countingEmitter) Emit(p *Particle) {
	c.emitted++
	*p = Particle{X: 10, Y: 10, VX: 1, VY: 2, TTL: c.ttl, Hue: 1, Alive: true}
}

func (c *countingEmitter) Update() { c.updates++ }

var _ = Describe("System", func() {
	var bounds Bounds

	BeforeEach(func() {
		bounds = NewBounds(32, 16, 8)
	})

	It("starts with a fully dead population", func() {
		sys := NewSystem(12, &countingEmitter{ttl: 3})
		Expect(sys.Len()).To(Equal(12))
		Expect(sys.LiveCount()).To(BeZero())
	})

	It("conserves the population size", func() {
		sys := NewSystem(60, NewFire(bounds, DefaultParams(), NewRand(1)))
		for i := 0; i < 200; i++ {
			sys.Update()
			Expect(sys.Particles()).To(HaveLen(60))
		}
	})

	It("respawns every dead particle on the next update", func() {
		sys := NewSystem(60, NewFire(bounds, DefaultParams(), NewRand(2)))
		for i := 0; i < 150; i++ {
			dead := []int{}
			for j, p := range sys.Particles() {
				if !p.Live() {
					dead = append(dead, j)
				}
			}
			sys.Update()
			for _, j := range dead {
				p := sys.Particles()[j]
				Expect(p.Alive).To(BeTrue())
				Expect(p.TTL).To(BeNumerically(">", 0))
			}
		}
	})

	It("decrements live lifetimes by exactly one per tick", func() {
		sys := NewSystem(60, NewFire(bounds, DefaultParams(), NewRand(3)))
		sys.Update()
		for i := 0; i < 100; i++ {
			before := append([]Particle(nil), sys.Particles()...)
			sys.Update()
			for j, p := range sys.Particles() {
				if before[j].Live() {
					Expect(p.TTL).To(Equal(before[j].TTL - 1))
				}
			}
		}
	})

	It("leaves a one-tick corpse before reclaiming the slot", func() {
		em := &countingEmitter{ttl: 1}
		sys := NewSystem(1, em)

		sys.Update()
		Expect(sys.Particles()[0].Live()).To(BeTrue())
		Expect(em.emitted).To(Equal(1))

		sys.Update()
		Expect(sys.Particles()[0].Alive).To(BeFalse())
		Expect(sys.Particles()[0].TTL).To(BeZero())
		Expect(em.emitted).To(Equal(1))

		sys.Update()
		Expect(sys.Particles()[0].Live()).To(BeTrue())
		Expect(em.emitted).To(Equal(2))
	})

	It("integrates velocity through the motion policy", func() {
		sys := NewSystem(1, &countingEmitter{ttl: 10})
		sys.Update()
		sys.Update()
		p := sys.Particles()[0]
		Expect(p.X).To(Equal(11))
		Expect(p.Y).To(Equal(12))
	})

	It("does not integrate a particle in the tick it was born", func() {
		sys := NewSystem(1, &countingEmitter{ttl: 5})
		sys.Update()
		p := sys.Particles()[0]
		Expect(p.X).To(Equal(10))
		Expect(p.TTL).To(Equal(5))
	})

	It("ticks the emitter clock once per update", func() {
		em := &countingEmitter{ttl: 4}
		sys := NewSystem(30, em)
		for i := 0; i < 7; i++ {
			sys.Update()
		}
		Expect(em.updates).To(Equal(7))
		Expect(sys.Tick()).To(Equal(uint64(7)))
	})

	It("matches serial results when integrating in parallel", func() {
		build := func(threshold int) *System {
			spin := NewSpin(DefaultParams(), SpinOptions{CenterX: 112, CenterY: 64, Radius: 5, Velocity: 7, Oscillate: true}, NewRand(9))
			return NewSystem(500, spin, WithMotion(Bounce{Bounds: bounds}), WithParallelThreshold(threshold))
		}
		serial, parallel := build(0), build(8)
		for i := 0; i < 80; i++ {
			serial.Update()
			parallel.Update()
		}
		Expect(parallel.Particles()).To(Equal(serial.Particles()))
	})

	Describe("end to end fire scenario", func() {
		It("emits every particle, never goes negative and only uses the two fire hues", func() {
			params := DefaultParams()
			params.BaseHue = 128
			params.CycleHue = false
			sys := NewSystem(60, NewFire(bounds, params, NewRand(100)))

			emitted := make([]bool, sys.Len())
			for tick := 0; tick < 100; tick++ {
				sys.Update()
				for j, p := range sys.Particles() {
					Expect(p.TTL).To(BeNumerically(">=", 0))
					if p.Alive {
						emitted[j] = true
						Expect(p.Hue).To(BeElementOf(uint8(128), uint8(144)))
					}
				}
			}
			Expect(emitted).NotTo(ContainElement(false))
		})
	})
})
