package metrics

import "github.com/san-kum/ledfx/internal/effect"

// DefaultThreshold is the luma above which a pixel counts as lit.
const DefaultThreshold = 8

type Coverage struct {
	name      string
	threshold int
	sum       float64
	samples   int
}

func NewCoverage(threshold int) *Coverage {
	return &Coverage{
		name:      "coverage",
		threshold: threshold,
	}
}

func (c *Coverage) Name() string {
	return c.name
}

func (c *Coverage) Observe(f effect.Frame) {
	if f.Image == nil {
		return
	}
	c.sum += FrameCoverage(f.Image, c.threshold)
	c.samples++
}

func (c *Coverage) Value() float64 {
	if c.samples == 0 {
		return 0
	}
	return c.sum / float64(c.samples)
}

func (c *Coverage) Reset() {
	c.sum = 0
	c.samples = 0
}
