package metrics

import "github.com/san-kum/ledfx/internal/effect"

// Alive is the mean live particle count. Frames from effects without
// particles are ignored.
type Alive struct {
	name    string
	sum     int
	samples int
}

func NewAlive() *Alive {
	return &Alive{name: "alive"}
}

func (a *Alive) Name() string {
	return a.name
}

func (a *Alive) Observe(f effect.Frame) {
	if f.Alive < 0 {
		return
	}
	a.sum += f.Alive
	a.samples++
}

func (a *Alive) Value() float64 {
	if a.samples == 0 {
		return 0
	}
	return float64(a.sum) / float64(a.samples)
}

func (a *Alive) Reset() {
	a.sum = 0
	a.samples = 0
}

// Standard returns the metrics recorded with every run.
func Standard() []effect.Metric {
	return []effect.Metric{
		NewAlive(),
		NewBrightness(),
		NewPeak(),
		NewCoverage(DefaultThreshold),
	}
}
