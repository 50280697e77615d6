package display

import (
	"fmt"
	"image"
	"image/color"
	"sync"

	"github.com/gdamore/tcell/v2"
)

// upperHalf draws the top pixel in the foreground and the bottom pixel in the
// background, packing two display rows into one character row.
const upperHalf = '▀'

// Terminal renders the display into a terminal with tcell.
type Terminal struct {
	*Framebuffer
	screen tcell.Screen

	quit     chan struct{}
	quitOnce sync.Once
	done     chan struct{}
	closed   sync.Once
}

// NewTerminal takes over the controlling terminal.
func NewTerminal(width, height int) (*Terminal, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoDevice, err)
	}
	return newTerminal(width, height, s)
}

func newTerminal(width, height int, s tcell.Screen) (*Terminal, error) {
	fb, err := NewFramebuffer(width, height)
	if err != nil {
		return nil, err
	}
	if err := s.Init(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoDevice, err)
	}
	s.HideCursor()
	s.SetStyle(tcell.StyleDefault.Background(tcell.ColorBlack))
	s.Clear()

	t := &Terminal{
		Framebuffer: fb,
		screen:      s,
		quit:        make(chan struct{}),
		done:        make(chan struct{}),
	}
	go t.pollEvents()
	return t, nil
}

func (t *Terminal) pollEvents() {
	defer close(t.done)
	for {
		ev := t.screen.PollEvent()
		if ev == nil {
			return
		}
		switch ev := ev.(type) {
		case *tcell.EventKey:
			if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC ||
				(ev.Key() == tcell.KeyRune && (ev.Rune() == 'q' || ev.Rune() == 'Q')) {
				t.quitOnce.Do(func() { close(t.quit) })
			}
		case *tcell.EventResize:
			t.screen.Sync()
		}
	}
}

func (t *Terminal) Quit() <-chan struct{} { return t.quit }

func (t *Terminal) UpdateScreen() error {
	frame := t.Frame()
	rows := (t.Height() + 1) / 2
	for row := 0; row < rows; row++ {
		for x := 0; x < t.Width(); x++ {
			top, bottom := cellColors(frame, x, row)
			style := tcell.StyleDefault.
				Foreground(tcell.NewRGBColor(int32(top.R), int32(top.G), int32(top.B))).
				Background(tcell.NewRGBColor(int32(bottom.R), int32(bottom.G), int32(bottom.B)))
			t.screen.SetContent(x, row, upperHalf, nil, style)
		}
	}
	t.screen.Show()
	return t.Framebuffer.UpdateScreen()
}

// cellColors returns the two display pixels covered by character row row.
// An odd final row pairs with black.
func cellColors(frame *image.RGBA, x, row int) (top, bottom color.RGBA) {
	top = frame.RGBAAt(x, 2*row)
	if 2*row+1 < frame.Rect.Dy() {
		bottom = frame.RGBAAt(x, 2*row+1)
	} else {
		bottom = color.RGBA{A: 0xff}
	}
	return top, bottom
}

// Close restores the terminal.
func (t *Terminal) Close() error {
	t.closed.Do(func() {
		t.screen.Fini()
		<-t.done
	})
	return nil
}
