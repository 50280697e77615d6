package partmatrix

import (
	"testing"

	"github.com/san-kum/ledfx/internal/palette"
	"github.com/san-kum/ledfx/internal/particle"
)

const over = 8

func live(x, y int, hue uint8) particle.Particle {
	return particle.Particle{X: x, Y: y, TTL: 5, Hue: hue, Alive: true}
}

func newMatrix(overflow bool, blend Blend) *Matrix {
	return New(Options{Width: 4, Height: 3, Oversample: over, Overflow: overflow, Decay: DefaultDecay, Blend: blend})
}

func TestRenderMapsFineToCell(t *testing.T) {
	m := newMatrix(false, Replace)
	m.Render([]particle.Particle{live(2*over+3, 1*over+7, 0)})

	if got := m.At(2, 1); got != palette.Hue(0) {
		t.Errorf("cell (2,1) = %v, want %v", got, palette.Hue(0))
	}
	if got := m.At(3, 1); got != palette.Black {
		t.Errorf("neighbour cell lit: %v", got)
	}
}

func TestRenderSkipsDeadAndCorpses(t *testing.T) {
	m := newMatrix(false, Additive)
	dead := live(0, 0, 0)
	dead.Alive = false
	corpse := live(over, 0, 0)
	corpse.TTL = 0

	m.Render([]particle.Particle{dead, corpse})

	for y := 0; y < m.Height(); y++ {
		for x := 0; x < m.Width(); x++ {
			if m.At(x, y) != palette.Black {
				t.Fatalf("cell (%d,%d) lit by a non-live particle", x, y)
			}
		}
	}
}

func TestOverflowWrap(t *testing.T) {
	tests := []struct {
		name  string
		x, y  int
		wantX int
		wantY int
	}{
		{"past right edge", (4 + 1) * over, 0, 1, 0},
		{"past bottom edge", 0, (3 + 2) * over, 0, 2},
		{"negative", -1, -1, 3, 2},
		{"far right", 9 * over, over, 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newMatrix(true, Replace)
			m.Render([]particle.Particle{live(tt.x, tt.y, 0)})
			if m.At(tt.wantX, tt.wantY) == palette.Black {
				t.Errorf("expected wrapped particle at (%d,%d)", tt.wantX, tt.wantY)
			}
		})
	}
}

func TestNoOverflowDrops(t *testing.T) {
	m := newMatrix(false, Replace)
	m.Render([]particle.Particle{
		live(4*over, 0, 0),
		live(0, 3*over, 0),
		live(-1, 0, 0),
	})

	for y := 0; y < m.Height(); y++ {
		for x := 0; x < m.Width(); x++ {
			if m.At(x, y) != palette.Black {
				t.Fatalf("out-of-range particle landed on (%d,%d)", x, y)
			}
		}
	}
}

func TestAdditiveSaturates(t *testing.T) {
	m := newMatrix(false, Additive)
	m.Render([]particle.Particle{live(0, 0, 0), live(1, 1, 0), live(2, 2, 85)})

	got := m.At(0, 0)
	if got.R != 255 {
		t.Errorf("red channel %d, want saturated 255", got.R)
	}
	if got.G != 255 {
		t.Errorf("green channel %d, want 255 from the green particle", got.G)
	}
}

func TestSubpixelSpread(t *testing.T) {
	m := newMatrix(false, Subpixel)
	m.Render([]particle.Particle{live(over/2, over/2, 0)})

	full := palette.Hue(0)
	sum := 0
	for _, cell := range [][2]int{{0, 0}, {1, 0}, {0, 1}, {1, 1}} {
		c := m.At(cell[0], cell[1])
		if c == palette.Black {
			t.Errorf("cell %v not covered", cell)
		}
		sum += int(c.R)
	}
	if sum > int(full.R) {
		t.Errorf("spread red sum %d exceeds source %d", sum, full.R)
	}
	if sum < int(full.R)-4 {
		t.Errorf("spread red sum %d lost too much of %d", sum, full.R)
	}
}

func TestSubpixelAligned(t *testing.T) {
	m := newMatrix(false, Subpixel)
	m.Render([]particle.Particle{live(over, over, 0)})

	if got := m.At(1, 1); got != palette.Hue(0) {
		t.Errorf("aligned particle = %v, want full color", got)
	}
	if m.At(2, 1) != palette.Black || m.At(1, 2) != palette.Black {
		t.Error("aligned particle leaked into neighbours")
	}
}

func TestFadeMonotonicDecay(t *testing.T) {
	m := newMatrix(false, Replace)
	m.Render([]particle.Particle{live(0, 0, 0), live(over, over, 140)})

	prev := m.Brightness()
	for i := 0; i < 200; i++ {
		m.Fade()
		b := m.Brightness()
		if b > prev {
			t.Fatalf("fade %d: brightness rose from %f to %f", i, prev, b)
		}
		prev = b
	}
	if prev != 0 {
		t.Errorf("buffer did not converge to black, brightness %f", prev)
	}
}

func TestFadeZeroDecayClears(t *testing.T) {
	m := New(Options{Width: 2, Height: 2, Oversample: 1, Decay: 0})
	m.Render([]particle.Particle{live(1, 1, 30)})
	m.Fade()
	if m.Brightness() != 0 {
		t.Error("zero decay should clear in one fade")
	}
}

func TestReset(t *testing.T) {
	m := newMatrix(false, Replace)
	m.Render([]particle.Particle{live(0, 0, 0)})
	m.Reset()
	if m.Brightness() != 0 {
		t.Error("reset left lit cells")
	}
}

type recorder struct {
	pix map[[2]int]palette.RGB
}

func (r *recorder) SetPixel(x, y int, red, green, blue uint8) {
	r.pix[[2]int{x, y}] = palette.RGB{R: red, G: green, B: blue}
}

func TestBlitFlip(t *testing.T) {
	m := New(Options{Width: 4, Height: 3, Oversample: over, FlipY: true, Blend: Replace})
	m.Render([]particle.Particle{live(0, 0, 0)})

	r := &recorder{pix: map[[2]int]palette.RGB{}}
	m.Blit(r)

	if len(r.pix) != 12 {
		t.Fatalf("blit wrote %d pixels, want 12", len(r.pix))
	}
	if r.pix[[2]int{0, 2}] != palette.Hue(0) {
		t.Error("row 0 should land on the bottom display row")
	}
	if r.pix[[2]int{0, 0}] != palette.Black {
		t.Error("top display row should be dark")
	}
}

func TestParseBlend(t *testing.T) {
	for _, name := range []string{"additive", "Replace", "SUBPIXEL"} {
		if _, err := ParseBlend(name); err != nil {
			t.Errorf("ParseBlend(%q): %v", name, err)
		}
	}
	if _, err := ParseBlend("screen"); err == nil {
		t.Error("expected error for unknown blend")
	}
	if Subpixel.String() != "subpixel" {
		t.Errorf("String() = %s", Subpixel.String())
	}
}
