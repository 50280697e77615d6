package metrics

import "github.com/san-kum/ledfx/internal/effect"

// Brightness is the mean frame luma over all observed frames.
type Brightness struct {
	name    string
	sum     float64
	samples int
}

func NewBrightness() *Brightness {
	return &Brightness{
		name: "brightness",
	}
}

func (b *Brightness) Name() string {
	return b.name
}

func (b *Brightness) Observe(f effect.Frame) {
	if f.Image == nil {
		return
	}
	b.sum += FrameBrightness(f.Image)
	b.samples++
}

func (b *Brightness) Value() float64 {
	if b.samples == 0 {
		return 0
	}
	return b.sum / float64(b.samples)
}

func (b *Brightness) Reset() {
	b.sum = 0
	b.samples = 0
}

// Peak is the brightest frame seen.
type Peak struct {
	name string
	max  float64
}

func NewPeak() *Peak {
	return &Peak{name: "peak_brightness"}
}

func (p *Peak) Name() string { return p.name }

func (p *Peak) Observe(f effect.Frame) {
	if f.Image == nil {
		return
	}
	p.max = max(p.max, FrameBrightness(f.Image))
}

func (p *Peak) Value() float64 { return p.max }
func (p *Peak) Reset()         { p.max = 0 }
