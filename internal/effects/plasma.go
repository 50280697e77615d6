package effects

import (
	"math"
	"time"

	"github.com/san-kum/ledfx/internal/display"
	"github.com/san-kum/ledfx/internal/palette"
)

const (
	PlasmaInterval = 15 * time.Millisecond
	plasmaShift0   = 128000
)

// Plasma colors each pixel by a sum of four radial sine waves, two of which
// drift as the shift advances.
type Plasma struct {
	shift   int
	palette *palette.Table
}

func NewPlasma() *Plasma {
	return &Plasma{shift: plasmaShift0, palette: palette.Default}
}

func (p *Plasma) Name() string            { return "plasma" }
func (p *Plasma) Interval() time.Duration { return PlasmaInterval }
func (p *Plasma) Reset()                  { p.shift = plasmaShift0 }

func (p *Plasma) Step(d display.Display) {
	for y := 0; y < d.Height(); y++ {
		for x := 0; x < d.Width(); x++ {
			c := p.palette.At(plasmaHue(x, y, p.shift))
			d.SetPixel(x, y, c.R, c.G, c.B)
		}
	}
	p.shift++
}

func plasmaHue(x, y, shift int) uint8 {
	fx, fy, fs := float64(x), float64(y), float64(shift)
	v := math.Sin(dist(fx+fs, fy, 128, 128)/8) +
		math.Sin(dist(fx, fy, 64, 64)/8) +
		math.Sin(dist(fx, fy+float64(shift/7), 192, 64)/7) +
		math.Sin(dist(fx, fy, 192, 100)/8)
	return uint8(int(v*128) & 0xFF)
}

func dist(a, b, c, d float64) float64 {
	return math.Hypot(c-a, d-b)
}
