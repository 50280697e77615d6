package effects

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
	"os"
	"time"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "github.com/spakin/netpbm"

	"github.com/san-kum/ledfx/internal/display"
)

const ScrollerInterval = 30 * time.Millisecond

// MaxImagePixels bounds the images the scroller accepts. The header is
// checked before any pixel buffer is allocated.
const MaxImagePixels = 1 << 22

var (
	ErrNoImage  = errors.New("effects: scroller needs an image")
	ErrBadImage = errors.New("effects: bad image")
)

// Scroller scrolls an image horizontally one column per step, wrapping at
// its right edge. The image is drawn upside down for panels mounted that way.
type Scroller struct {
	img image.Image
	pos int
}

// LoadImage decodes a PNG, GIF, JPEG or Netpbm (PPM, PGM, PBM) file.
func LoadImage(path string) (image.Image, error) {
	if path == "" {
		return nil, ErrNoImage
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("effects: open image: %w", err)
	}
	defer f.Close()
	img, err := DecodeImage(f)
	if err != nil {
		return nil, fmt.Errorf("effects: decode %s: %w", path, err)
	}
	return img, nil
}

// DecodeImage decodes any registered image format, rejecting images larger
// than MaxImagePixels from their header alone.
func DecodeImage(r io.Reader) (image.Image, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadImage, err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 || cfg.Width > MaxImagePixels/cfg.Height {
		return nil, fmt.Errorf("%w: %dx%d exceeds %d pixels", ErrBadImage, cfg.Width, cfg.Height, MaxImagePixels)
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadImage, err)
	}
	return img, nil
}

func NewScroller(img image.Image) (*Scroller, error) {
	if img == nil || img.Bounds().Empty() {
		return nil, ErrNoImage
	}
	return &Scroller{img: img}, nil
}

func (s *Scroller) Name() string            { return "scroller" }
func (s *Scroller) Interval() time.Duration { return ScrollerInterval }
func (s *Scroller) Reset()                  { s.pos = 0 }

func (s *Scroller) Step(d display.Display) {
	w, h := d.Width(), d.Height()
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			c := s.pixel(s.pos+x, y)
			d.SetPixel(w-1-x, h-1-y, c.R, c.G, c.B)
		}
	}
	s.pos++
}

// pixel returns column x modulo the image width. Rows past the image are
// black.
func (s *Scroller) pixel(x, y int) color.RGBA {
	b := s.img.Bounds()
	if y >= b.Dy() {
		return color.RGBA{}
	}
	x %= b.Dx()
	return color.RGBAModel.Convert(s.img.At(b.Min.X+x, b.Min.Y+y)).(color.RGBA)
}
