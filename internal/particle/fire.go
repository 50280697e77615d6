package particle

// Lifetime ranges per zone, zone 0 being the outermost band pair.
var (
	flameTiers = [4][2]int{{1, 7}, {5, 14}, {15, 21}, {25, 28}}
	emberTiers = [4][2]int{{1, 20}, {5, 40}, {20, 70}, {40, 100}}
)

// HotHueOffset is added to the base hue for the bright flame core.
const HotHueOffset = 16

// Fire emits alternating flame and ember particles along the bottom edge.
//
// Even emissions spawn in the middle half of the width with short lifetimes
// and a lighter hue; odd emissions spawn across the full width with longer
// lifetimes at the base hue. Lifetimes are tiered by eight mirrored bands so
// the centre burns higher than the edges.
type Fire struct {
	params  Params
	bounds  Bounds
	rng     Rand
	counter uint32
}

func NewFire(b Bounds, params Params, rng Rand) *Fire {
	return &Fire{params: params, bounds: b, rng: rng}
}

func (f *Fire) Params() *Params { return &f.params }

// Counter returns the number of particles emitted so far.
func (f *Fire) Counter() uint32 { return f.counter }

func (f *Fire) Emit(p *Particle) {
	f.counter++
	if f.params.CycleHue {
		f.params.BaseHue = uint8((f.counter >> 2) % 240)
	}

	quarter := f.bounds.MaxX / 4
	if f.counter%2 == 0 {
		p.X = between(f.rng, quarter, 3*quarter)
		p.TTL = f.lifetime(p.X, flameTiers)
		p.Hue = f.params.BaseHue + HotHueOffset
	} else {
		p.X = between(f.rng, 0, f.bounds.MaxX)
		p.TTL = f.lifetime(p.X, emberTiers)
		p.Hue = f.params.BaseHue
	}

	p.Y = 1
	p.VX = 0
	p.VY = 0
	p.Alive = true
}

func (f *Fire) lifetime(x int, tiers [4][2]int) int {
	t := tiers[zone(band(x, f.bounds.MaxX))]
	return f.params.capTTL(between(f.rng, t[0], t[1]))
}

// band maps x to one of eight equal-width columns of [0, maxX).
func band(x, maxX int) int {
	w := maxX / 8
	if w < 1 {
		w = 1
	}
	b := x / w
	if b < 0 {
		return 0
	}
	if b > 7 {
		return 7
	}
	return b
}

// zone folds the eight bands onto four mirrored tiers: 0&7, 1&6, 2&5, 3&4.
func zone(b int) int {
	if b > 3 {
		return 7 - b
	}
	return b
}
