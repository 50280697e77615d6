package display

import (
	"errors"
	"fmt"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/host/v3"
)

const (
	DefaultStripSpeed = 4 * physic.MegaHertz
	MaxBrightness     = 31

	ledStart = 0xE0
)

// StripOptions configures an APA102 LED matrix.
type StripOptions struct {
	Width, Height int
	Layout        Layout
	// Brightness is the 5-bit global brightness sent with every LED. Zero
	// selects MaxBrightness; the config layer rejects it.
	Brightness uint8
}

// Strip drives an APA102 chain wired as a Width x Height matrix.
type Strip struct {
	*Framebuffer
	c      conn.Conn
	port   spi.PortCloser
	opts   StripOptions
	buf    []byte
	closed bool
}

// OpenStrip initializes the host drivers and connects to the named SPI port.
// An empty name selects the first port available.
func OpenStrip(name string, speed physic.Frequency, opts StripOptions) (*Strip, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoDevice, err)
	}
	p, err := spireg.Open(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoDevice, err)
	}
	if speed <= 0 {
		speed = DefaultStripSpeed
	}
	c, err := p.Connect(speed, spi.Mode0, 8)
	if err != nil {
		p.Close()
		return nil, fmt.Errorf("display: spi connect: %w", err)
	}
	s, err := NewStrip(c, opts)
	if err != nil {
		p.Close()
		return nil, err
	}
	s.port = p
	return s, nil
}

// NewStrip wraps an established connection.
func NewStrip(c conn.Conn, opts StripOptions) (*Strip, error) {
	fb, err := NewFramebuffer(opts.Width, opts.Height)
	if err != nil {
		return nil, err
	}
	if opts.Brightness == 0 || opts.Brightness > MaxBrightness {
		opts.Brightness = MaxBrightness
	}
	n := opts.Width * opts.Height
	return &Strip{
		Framebuffer: fb,
		c:           c,
		opts:        opts,
		buf:         make([]byte, frameLen(n)),
	}, nil
}

func (s *Strip) String() string { return "apa102(" + s.c.String() + ")" }

// frameLen is the size of a full transfer: a 4 byte start frame, 4 bytes per
// LED, and one end byte per 16 LEDs so the clock reaches the last LED.
func frameLen(n int) int {
	return 4 + 4*n + (n+15)/16
}

// encode fills buf from the presented frame.
func (s *Strip) encode() []byte {
	frame := s.Frame()
	w, h := s.opts.Width, s.opts.Height
	buf := s.buf
	for i := 0; i < 4; i++ {
		buf[i] = 0
	}
	head := ledStart | s.opts.Brightness
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := frame.RGBAAt(x, y)
			o := 4 + 4*s.opts.Layout.Index(x, y, w)
			buf[o] = head
			buf[o+1] = c.B
			buf[o+2] = c.G
			buf[o+3] = c.R
		}
	}
	for i := 4 + 4*w*h; i < len(buf); i++ {
		buf[i] = 0xFF
	}
	return buf
}

func (s *Strip) UpdateScreen() error {
	if s.closed {
		return errors.New("display: strip closed")
	}
	if err := s.c.Tx(s.encode(), nil); err != nil {
		return fmt.Errorf("display: spi tx: %w", err)
	}
	return s.Framebuffer.UpdateScreen()
}

// Close blanks the LEDs and releases the port.
func (s *Strip) Close() error {
	if s.closed {
		return nil
	}
	s.ClearScreen()
	s.Present()
	err := s.c.Tx(s.encode(), nil)
	s.closed = true
	if s.port != nil {
		if cerr := s.port.Close(); err == nil {
			err = cerr
		}
	}
	return err
}
