// Package partmatrix composites particles into a persistent low-resolution
// color buffer.
//
// Each tick the buffer is faded and every live particle is plotted into the
// cell under it. The buffer keeps its contents between ticks, so fading
// produces glow trails instead of hard-cut frames.
package partmatrix

import (
	"fmt"
	"strings"

	"github.com/san-kum/ledfx/internal/palette"
	"github.com/san-kum/ledfx/internal/particle"
)

// DefaultDecay keeps 75% of every channel per fade.
const DefaultDecay = 192

// Blend selects how a particle's color combines with the cell under it.
type Blend int

const (
	// Additive adds the color with per-channel saturation.
	Additive Blend = iota
	// Replace overwrites the cell.
	Replace
	// Subpixel spreads the color over the 2x2 neighbourhood weighted by
	// the particle's offset inside its cell.
	Subpixel
)

var blendNames = map[Blend]string{
	Additive: "additive",
	Replace:  "replace",
	Subpixel: "subpixel",
}

func (b Blend) String() string {
	if s, ok := blendNames[b]; ok {
		return s
	}
	return fmt.Sprintf("blend(%d)", int(b))
}

// ParseBlend converts a blend name to a Blend.
func ParseBlend(s string) (Blend, error) {
	for b, name := range blendNames {
		if strings.EqualFold(s, name) {
			return b, nil
		}
	}
	return Additive, fmt.Errorf("unknown blend mode: %s", s)
}

// Options configures a Matrix.
type Options struct {
	Width, Height int
	// Oversample is the fine-to-cell coordinate factor.
	Oversample int
	// Overflow wraps out-of-range cells modulo the grid instead of dropping them.
	Overflow bool
	// Decay is the fraction of each channel kept per fade, in 1/256 units.
	// Zero keeps nothing: every Fade clears the buffer and trails are off.
	// Use DefaultDecay for the usual glow.
	Decay uint8
	Blend Blend
	// FlipY puts row 0 at the bottom when blitting.
	FlipY   bool
	Palette *palette.Table
}

// Setter is the part of a display the matrix writes to.
type Setter interface {
	SetPixel(x, y int, r, g, b uint8)
}

type Matrix struct {
	opts  Options
	cells []palette.RGB
}

func New(opts Options) *Matrix {
	if opts.Width < 1 {
		opts.Width = 1
	}
	if opts.Height < 1 {
		opts.Height = 1
	}
	if opts.Oversample < 1 {
		opts.Oversample = 1
	}
	if opts.Palette == nil {
		opts.Palette = palette.Default
	}
	return &Matrix{
		opts:  opts,
		cells: make([]palette.RGB, opts.Width*opts.Height),
	}
}

func (m *Matrix) Width() int  { return m.opts.Width }
func (m *Matrix) Height() int { return m.opts.Height }

func (m *Matrix) Overflow() bool      { return m.opts.Overflow }
func (m *Matrix) SetOverflow(on bool) { m.opts.Overflow = on }
func (m *Matrix) Options() Options    { return m.opts }

func (m *Matrix) SetBlend(b Blend)     { m.opts.Blend = b }
func (m *Matrix) SetDecay(decay uint8) { m.opts.Decay = decay }

// Reset zeroes the buffer.
func (m *Matrix) Reset() {
	clear(m.cells)
}

// Fade scales every channel by Decay/256. Channels never increase, and any
// non-zero channel strictly decreases, so an unfed buffer converges to black.
func (m *Matrix) Fade() {
	d := int(m.opts.Decay)
	for i, c := range m.cells {
		m.cells[i] = palette.RGB{
			R: uint8(int(c.R) * d >> 8),
			G: uint8(int(c.G) * d >> 8),
			B: uint8(int(c.B) * d >> 8),
		}
	}
}

// Render plots every live particle. Dead particles, including the one-tick
// corpse left by the system, are skipped.
func (m *Matrix) Render(ps []particle.Particle) {
	o := m.opts.Oversample
	for i := range ps {
		p := &ps[i]
		if !p.Live() {
			continue
		}

		c := m.opts.Palette.At(p.Hue)
		col, dx := floorDivMod(p.X, o)
		row, dy := floorDivMod(p.Y, o)

		if m.opts.Blend != Subpixel {
			m.plot(col, row, c, 256)
			continue
		}

		// Weights of the four covered cells sum to 256.
		lx, ty := o-dx, o-dy
		area := o * o
		m.plot(col, row, c, lx*ty*256/area)
		m.plot(col+1, row, c, dx*ty*256/area)
		m.plot(col, row+1, c, lx*dy*256/area)
		m.plot(col+1, row+1, c, dx*dy*256/area)
	}
}

func (m *Matrix) plot(col, row int, c palette.RGB, weight int) {
	if weight <= 0 {
		return
	}
	w, h := m.opts.Width, m.opts.Height
	if m.opts.Overflow {
		col = mod(col, w)
		row = mod(row, h)
	} else if col < 0 || col >= w || row < 0 || row >= h {
		return
	}

	i := row*w + col
	c = c.Scale(weight)
	if m.opts.Blend == Replace {
		m.cells[i] = c
		return
	}
	m.cells[i] = m.cells[i].Add(c)
}

// At returns the cell at (x, y) in matrix space. Out-of-range reads return black.
func (m *Matrix) At(x, y int) palette.RGB {
	if x < 0 || x >= m.opts.Width || y < 0 || y >= m.opts.Height {
		return palette.Black
	}
	return m.cells[y*m.opts.Width+x]
}

// Blit writes the whole buffer to d, flipping vertically when FlipY is set.
func (m *Matrix) Blit(d Setter) {
	w, h := m.opts.Width, m.opts.Height
	for y := 0; y < h; y++ {
		dy := y
		if m.opts.FlipY {
			dy = h - 1 - y
		}
		row := m.cells[y*w : (y+1)*w]
		for x, c := range row {
			d.SetPixel(x, dy, c.R, c.G, c.B)
		}
	}
}

// Brightness returns the mean luma of the buffer in [0, 255].
func (m *Matrix) Brightness() float64 {
	if len(m.cells) == 0 {
		return 0
	}
	sum := 0.0
	for _, c := range m.cells {
		sum += c.Luma()
	}
	return sum / float64(len(m.cells))
}

func mod(a, n int) int {
	r := a % n
	if r < 0 {
		r += n
	}
	return r
}

func floorDivMod(a, n int) (q, r int) {
	q, r = a/n, a%n
	if r < 0 {
		q--
		r += n
	}
	return q, r
}
