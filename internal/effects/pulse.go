package effects

import (
	"time"

	"github.com/san-kum/ledfx/internal/display"
)

const PulseInterval = 5 * time.Millisecond

// Pulse ramps the whole display up and down through red, yellow, green,
// cyan, blue and white.
type Pulse struct {
	count uint32
}

func NewPulse() *Pulse { return &Pulse{} }

func (p *Pulse) Name() string            { return "pulse" }
func (p *Pulse) Interval() time.Duration { return PulseInterval }
func (p *Pulse) Reset()                  { p.count = 0 }

func (p *Pulse) Step(d display.Display) {
	p.count++
	r, g, b := pulseColor(p.count)
	for y := 0; y < d.Height(); y++ {
		for x := 0; x < d.Width(); x++ {
			d.SetPixel(x, y, r, g, b)
		}
	}
}

// pulseColor holds each of six colors for 512 counts, rising for the first
// 256 and falling for the rest.
func pulseColor(count uint32) (r, g, b uint8) {
	v := uint8(count & 0xFF)
	if count&0x100 != 0 {
		v = 255 - v
	}
	switch (count >> 9) % 6 {
	case 0:
		return v, 0, 0
	case 1:
		return v, v, 0
	case 2:
		return 0, v, 0
	case 3:
		return 0, v, v
	case 4:
		return 0, 0, v
	}
	return v, v, v
}
