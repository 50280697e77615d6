package display

import (
	"sync"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	DefaultScale = 20
	ledFill      = 0.42
)

// Window renders every pixel as a round LED in a desktop window.
//
// raylib is bound to the OS thread that opened the window, so the window is
// created lazily by the first UpdateScreen and torn down by Release, both on
// the pump goroutine.
type Window struct {
	*Framebuffer
	scale  int
	title  string
	opened bool

	quit     chan struct{}
	quitOnce sync.Once
}

func NewWindow(width, height, scale int, title string) (*Window, error) {
	fb, err := NewFramebuffer(width, height)
	if err != nil {
		return nil, err
	}
	if scale < 1 {
		scale = DefaultScale
	}
	return &Window{
		Framebuffer: fb,
		scale:       scale,
		title:       title,
		quit:        make(chan struct{}),
	}, nil
}

func (w *Window) Quit() <-chan struct{} { return w.quit }

func (w *Window) UpdateScreen() error {
	if !w.opened {
		rl.SetTraceLogLevel(rl.LogWarning)
		rl.InitWindow(int32(w.Width()*w.scale), int32(w.Height()*w.scale), w.title)
		rl.SetExitKey(rl.KeyEscape)
		w.opened = true
	}
	if rl.WindowShouldClose() {
		w.quitOnce.Do(func() { close(w.quit) })
	}

	frame := w.Frame()
	s := int32(w.scale)
	radius := float32(w.scale) * ledFill

	rl.BeginDrawing()
	rl.ClearBackground(rl.Black)
	for y := 0; y < w.Height(); y++ {
		for x := 0; x < w.Width(); x++ {
			c := frame.RGBAAt(x, y)
			rl.DrawCircle(int32(x)*s+s/2, int32(y)*s+s/2, radius, rl.NewColor(c.R, c.G, c.B, 255))
		}
	}
	rl.EndDrawing()

	return w.Framebuffer.UpdateScreen()
}

func (w *Window) Release() {
	if w.opened {
		rl.CloseWindow()
		w.opened = false
	}
}
