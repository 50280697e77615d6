package effects

import (
	"time"

	"github.com/san-kum/ledfx/internal/display"
)

// Square is a static test pattern: both diagonals, then a red top edge,
// yellow bottom edge, blue left edge and green right edge.
type Square struct{}

func NewSquare() *Square { return &Square{} }

func (Square) Name() string            { return "square" }
func (Square) Interval() time.Duration { return 100 * time.Millisecond }

func (Square) Step(d display.Display) {
	w, h := d.Width(), d.Height()
	for x := 0; x < w; x++ {
		d.SetPixel(x, x, 255, 255, 255)
		d.SetPixel(h-1-x, x, 255, 0, 255)
	}
	for x := 0; x < w; x++ {
		d.SetPixel(x, 0, 255, 0, 0)
		d.SetPixel(x, h-1, 255, 255, 0)
	}
	for y := 0; y < h; y++ {
		d.SetPixel(0, y, 0, 0, 255)
		d.SetPixel(w-1, y, 0, 255, 0)
	}
}
