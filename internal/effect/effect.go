// Package effect runs animations against a display.
//
// An [Effect] draws one frame per Step. A [Runner] owns the goroutine that
// calls Step on the effect's interval and publishes each frame; a [Pump] owns
// a second goroutine that flushes published frames to the display as fast as
// it allows. Both stop with an explicit join so no goroutine touches the
// display after Stop returns.
package effect

import (
	"errors"
	"image"
	"time"

	"github.com/san-kum/ledfx/internal/display"
)

var (
	ErrAlreadyRunning = errors.New("effect: already running")
	ErrUnknownEffect  = errors.New("effect: unknown effect")
)

type Effect interface {
	Name() string
	// Interval is the time between two steps.
	Interval() time.Duration
	// Step draws the next frame. It is only called from the runner goroutine.
	Step(d display.Display)
}

// Resetter is implemented by effects that can restart from their first frame.
type Resetter interface {
	Reset()
}

// Population is implemented by effects backed by a particle system.
type Population interface {
	LiveCount() int
}

// Frame describes one published step.
type Frame struct {
	Tick int
	// Image is the presented frame, or nil when the display keeps none.
	Image *image.RGBA
	// Alive is the live particle count, or -1 for effects without particles.
	Alive int
}

type Observer interface {
	OnFrame(f Frame)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(f Frame)

func (fn ObserverFunc) OnFrame(f Frame) { fn(f) }

// Metric accumulates a single value over frames.
type Metric interface {
	Name() string
	Observe(f Frame)
	Value() float64
	Reset()
}

type framer interface {
	Frame() *image.RGBA
}
