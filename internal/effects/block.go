package effects

import (
	"math"
	"time"

	"github.com/san-kum/ledfx/internal/display"
)

const BlockInterval = 15 * time.Millisecond

// Block rotates a color gradient square one degree per step around the
// center of the display. The square is framed in black wide enough to cover
// the display at any angle.
type Block struct {
	rotation int
}

func NewBlock() *Block { return &Block{} }

func (b *Block) Name() string            { return "block" }
func (b *Block) Interval() time.Duration { return BlockInterval }
func (b *Block) Reset()                  { b.rotation = 0 }

func (b *Block) Step(d display.Display) {
	b.rotation = (b.rotation + 1) % 360

	w, h := d.Width(), d.Height()
	cx, cy := w/2, h/2
	side := min(w, h)
	rotate := int(float64(side) * 1.41)
	shown := int(float64(side) * 0.7)

	angle := float64(b.rotation) * math.Pi / 180
	sin, cos := math.Sincos(angle)
	minX, maxX := cx-shown/2, cx+shown/2
	minY, maxY := cy-shown/2, cy+shown/2

	for x := cx - rotate/2; x < cx+rotate/2; x++ {
		for y := cy - rotate/2; y < cy+rotate/2; y++ {
			rx, ry := float64(x-cx), float64(y-cy)
			dx := int(rx*cos - ry*sin + float64(cx))
			dy := int(rx*sin + ry*cos + float64(cy))
			if x >= minX && x < maxX && y >= minY && y < maxY {
				yc := scaleCol(y, minY, maxY)
				d.SetPixel(dx, dy, scaleCol(x, minX, maxX), 255-yc, yc)
			} else {
				d.SetPixel(dx, dy, 0, 0, 0)
			}
		}
	}
}

// scaleCol maps val in [lo, hi] onto [0, 255].
func scaleCol(val, lo, hi int) uint8 {
	switch {
	case val < lo:
		return 0
	case val > hi:
		return 255
	}
	return uint8(255 * (val - lo) / (hi - lo))
}
