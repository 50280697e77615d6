// Package palette maps the byte-wide hue wheel used by the effects to RGB.
//
// Hues are stored as a single byte (0-255 covers the full circle) so that
// emitters can do cheap wrapping arithmetic like baseHue+16. Conversion to
// RGB goes through a precomputed [Table].
package palette

import "github.com/lucasb-eyer/go-colorful"

// RGB is an 8-bit per channel color.
type RGB struct {
	R, G, B uint8
}

// Black is the zero color.
var Black = RGB{}

// Luma returns the mean channel value in [0, 255].
func (c RGB) Luma() float64 {
	return (float64(c.R) + float64(c.G) + float64(c.B)) / 3
}

// Scale returns c with every channel multiplied by w/256. w is clamped to [0, 256].
func (c RGB) Scale(w int) RGB {
	if w <= 0 {
		return Black
	}
	if w >= 256 {
		return c
	}
	return RGB{
		R: uint8(int(c.R) * w >> 8),
		G: uint8(int(c.G) * w >> 8),
		B: uint8(int(c.B) * w >> 8),
	}
}

// Add returns the per-channel saturating sum of c and o.
func (c RGB) Add(o RGB) RGB {
	return RGB{R: addSat(c.R, o.R), G: addSat(c.G, o.G), B: addSat(c.B, o.B)}
}

func addSat(a, b uint8) uint8 {
	s := int(a) + int(b)
	if s > 255 {
		return 255
	}
	return uint8(s)
}

// Table holds a precomputed color for every hue byte.
type Table struct {
	entries [256]RGB
}

// Default is the fully saturated, full value wheel.
var Default = NewTable(1, 1)

// NewTable builds a hue table at the given HSV saturation and value, both in [0, 1].
func NewTable(saturation, value float64) *Table {
	t := &Table{}
	for i := range t.entries {
		c := colorful.Hsv(float64(i)*360/256, saturation, value)
		r, g, b := c.Clamped().RGB255()
		t.entries[i] = RGB{R: r, G: g, B: b}
	}
	return t
}

// At returns the color for hue h.
func (t *Table) At(h uint8) RGB {
	return t.entries[h]
}

// Hue looks h up in the default table.
func Hue(h uint8) RGB {
	return Default.At(h)
}
