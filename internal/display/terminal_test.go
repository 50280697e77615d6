package display

import (
	"image"
	"image/color"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
)

func TestCellColors(t *testing.T) {
	frame := image.NewRGBA(image.Rect(0, 0, 2, 3))
	frame.SetRGBA(1, 0, color.RGBA{255, 0, 0, 255})
	frame.SetRGBA(1, 1, color.RGBA{0, 0, 255, 255})
	frame.SetRGBA(0, 2, color.RGBA{0, 255, 0, 255})

	top, bottom := cellColors(frame, 1, 0)
	if top.R != 255 || bottom.B != 255 {
		t.Errorf("row 0 = %v / %v", top, bottom)
	}

	top, bottom = cellColors(frame, 0, 1)
	if top.G != 255 {
		t.Errorf("odd last row top = %v", top)
	}
	if bottom != (color.RGBA{A: 0xff}) {
		t.Errorf("odd last row bottom = %v, want black", bottom)
	}
}

func newSimTerminal(t *testing.T, w, h int) *Terminal {
	t.Helper()
	s := tcell.NewSimulationScreen("")
	term, err := newTerminal(w, h, s)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { term.Close() })
	return term
}

func TestTerminalUpdateScreen(t *testing.T) {
	term := newSimTerminal(t, 4, 4)
	term.SetPixel(0, 0, 200, 0, 0)
	term.Present()
	if err := term.UpdateScreen(); err != nil {
		t.Fatal(err)
	}
	if term.Flushes() != 1 {
		t.Errorf("Flushes() = %d", term.Flushes())
	}
}

func TestTerminalQuitKey(t *testing.T) {
	term := newSimTerminal(t, 2, 2)
	term.screen.(tcell.SimulationScreen).InjectKey(tcell.KeyRune, 'q', tcell.ModNone)

	select {
	case <-term.Quit():
	case <-time.After(2 * time.Second):
		t.Fatal("quit not signalled")
	}
}

func TestTerminalCloseIdempotent(t *testing.T) {
	term := newSimTerminal(t, 2, 2)
	if err := term.Close(); err != nil {
		t.Fatal(err)
	}
	if err := term.Close(); err != nil {
		t.Fatal(err)
	}
}
