package display

import (
	"fmt"
	"image"
	"image/color"
	"sync/atomic"
)

// Framebuffer is a double-buffered in-memory display.
//
// SetPixel and ClearScreen touch only the back buffer and must be called from
// a single goroutine. Present copies the back buffer into a new front image
// and swaps it in atomically; Frame and UpdateScreen may run concurrently on
// any goroutine.
type Framebuffer struct {
	width, height int
	back          *image.RGBA
	front         atomic.Pointer[image.RGBA]
	flushes       atomic.Uint64
	presents      atomic.Uint64
}

func NewFramebuffer(width, height int) (*Framebuffer, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}
	f := &Framebuffer{
		width:  width,
		height: height,
		back:   blank(width, height),
	}
	f.front.Store(blank(width, height))
	return f, nil
}

func blank(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := 3; i < len(img.Pix); i += 4 {
		img.Pix[i] = 0xff
	}
	return img
}

func (f *Framebuffer) Width() int  { return f.width }
func (f *Framebuffer) Height() int { return f.height }

func (f *Framebuffer) SetPixel(x, y int, r, g, b uint8) {
	if x < 0 || x >= f.width || y < 0 || y >= f.height {
		return
	}
	i := f.back.PixOffset(x, y)
	f.back.Pix[i] = r
	f.back.Pix[i+1] = g
	f.back.Pix[i+2] = b
	f.back.Pix[i+3] = 0xff
}

func (f *Framebuffer) ClearScreen() {
	pix := f.back.Pix
	for i := 0; i < len(pix); i += 4 {
		pix[i], pix[i+1], pix[i+2], pix[i+3] = 0, 0, 0, 0xff
	}
}

func (f *Framebuffer) Present() {
	img := image.NewRGBA(f.back.Rect)
	copy(img.Pix, f.back.Pix)
	f.front.Store(img)
	f.presents.Add(1)
}

// UpdateScreen counts a flush. Drivers call it after pushing a frame out.
func (f *Framebuffer) UpdateScreen() error {
	f.flushes.Add(1)
	return nil
}

// Frame returns the most recently presented image. It must not be modified.
func (f *Framebuffer) Frame() *image.RGBA {
	return f.front.Load()
}

// At returns the presented color at (x, y).
func (f *Framebuffer) At(x, y int) color.RGBA {
	return f.Frame().RGBAAt(x, y)
}

func (f *Framebuffer) Flushes() uint64  { return f.flushes.Load() }
func (f *Framebuffer) Presents() uint64 { return f.presents.Load() }
