package particle

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Fire", func() {
	var (
		bounds Bounds
		fire   *Fire
	)

	BeforeEach(func() {
		bounds = NewBounds(32, 16, 8)
		fire = NewFire(bounds, DefaultParams(), NewRand(7))
	})

	It("fully initializes a particle regardless of its prior state", func() {
		p := Particle{X: -500, Y: 900, VX: 3, VY: -9, TTL: -4, Hue: 3, Alive: false}
		fire.Emit(&p)

		Expect(p.Alive).To(BeTrue())
		Expect(p.TTL).To(BeNumerically(">", 0))
		Expect(p.Y).To(Equal(1))
		Expect(p.VX).To(BeZero())
		Expect(p.VY).To(BeZero())
		Expect(p.X).To(BeNumerically(">=", 0))
		Expect(p.X).To(BeNumerically("<", bounds.MaxX))
	})

	It("alternates hot and base hues by emission parity", func() {
		for i := 0; i < 200; i++ {
			var p Particle
			fire.Emit(&p)
			if fire.Counter()%2 == 0 {
				Expect(p.Hue).To(Equal(uint8(DefaultBaseHue + HotHueOffset)))
			} else {
				Expect(p.Hue).To(Equal(uint8(DefaultBaseHue)))
			}
		}
	})

	It("keeps flame particles inside the middle half", func() {
		for i := 0; i < 400; i++ {
			var p Particle
			fire.Emit(&p)
			if fire.Counter()%2 == 0 {
				Expect(p.X).To(BeNumerically(">=", bounds.MaxX/4))
				Expect(p.X).To(BeNumerically("<", 3*(bounds.MaxX/4)))
			}
		}
	})

	It("wraps the hot hue in byte arithmetic", func() {
		fire.Params().BaseHue = 250
		var p Particle
		fire.Emit(&p)
		fire.Emit(&p)
		Expect(p.Hue).To(Equal(uint8(250 + HotHueOffset - 256)))
	})

	It("derives the base hue from the counter when cycling", func() {
		fire.Params().CycleHue = true
		for i := 0; i < 2000; i++ {
			var p Particle
			fire.Emit(&p)
			Expect(fire.Params().BaseHue).To(Equal(uint8((fire.Counter() >> 2) % 240)))
		}
	})

	It("caps lifetimes at MaxTTL", func() {
		fire.Params().MaxTTL = 10
		for i := 0; i < 500; i++ {
			var p Particle
			fire.Emit(&p)
			Expect(p.TTL).To(BeNumerically("<=", 10))
			Expect(p.TTL).To(BeNumerically(">=", 1))
		}
	})

	DescribeTable("zone tiering",
		func(x int, tiers [4][2]int, lo, hi int) {
			for i := 0; i < 300; i++ {
				ttl := fire.lifetime(x, tiers)
				Expect(ttl).To(BeNumerically(">=", lo))
				Expect(ttl).To(BeNumerically("<", hi))
			}
		},
		Entry("flame band 0", 5, flameTiers, 1, 7),
		Entry("flame band 7", 255, flameTiers, 1, 7),
		Entry("flame band 1", 40, flameTiers, 5, 14),
		Entry("flame band 6", 200, flameTiers, 5, 14),
		Entry("flame band 2", 70, flameTiers, 15, 21),
		Entry("flame band 5", 170, flameTiers, 15, 21),
		Entry("flame band 3", 100, flameTiers, 25, 28),
		Entry("flame band 4", 130, flameTiers, 25, 28),
		Entry("ember band 0", 0, emberTiers, 1, 20),
		Entry("ember band 7", 250, emberTiers, 1, 20),
		Entry("ember band 1", 33, emberTiers, 5, 40),
		Entry("ember band 2", 64, emberTiers, 20, 70),
		Entry("ember band 4", 128, emberTiers, 40, 100),
	)

	It("is deterministic for a fixed random source", func() {
		draws := []int{0, 3, 17, 5}
		a := NewFire(bounds, DefaultParams(), &seqRand{vals: draws})
		b := NewFire(bounds, DefaultParams(), &seqRand{vals: draws})
		for i := 0; i < 50; i++ {
			var pa, pb Particle
			a.Emit(&pa)
			b.Emit(&pb)
			Expect(pa).To(Equal(pb))
		}
	})

	It("takes the lowest bound of each range with a zero source", func() {
		f := NewFire(bounds, DefaultParams(), &seqRand{vals: []int{0}})

		var p Particle
		f.Emit(&p) // mode B, x = 0, band 0
		Expect(p.X).To(Equal(0))
		Expect(p.TTL).To(Equal(1))

		f.Emit(&p) // mode A, x = MaxX/4, band 2
		Expect(p.X).To(Equal(bounds.MaxX / 4))
		Expect(p.TTL).To(Equal(15))
	})
})

var _ = Describe("band", func() {
	It("splits the range into eight mirrored zones", func() {
		Expect(zone(band(0, 256))).To(Equal(0))
		Expect(zone(band(31, 256))).To(Equal(0))
		Expect(zone(band(32, 256))).To(Equal(1))
		Expect(zone(band(127, 256))).To(Equal(3))
		Expect(zone(band(128, 256))).To(Equal(3))
		Expect(zone(band(224, 256))).To(Equal(0))
	})

	It("clamps out of range coordinates", func() {
		Expect(band(-10, 256)).To(Equal(0))
		Expect(band(9999, 256)).To(Equal(7))
		Expect(band(3, 4)).To(Equal(3))
	})
})
