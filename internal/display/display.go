// Package display provides the pixel sinks effects draw into.
//
// Every driver satisfies [Display] and embeds a [Framebuffer]: effects write
// into a private back buffer, [Presenter.Present] publishes it at the end of
// a tick, and the display pump flushes the published frame with UpdateScreen.
// The two sides never share memory mid-frame.
//
// Drivers:
//
//   - [Framebuffer]: in-memory, used headless and in tests
//   - [Terminal]: half-block characters through tcell
//   - [Window]: desktop window through raylib
//   - [Strip]: APA102 LED matrix over SPI through periph.io
package display

// Display is the pixel grid an effect renders to.
//
// SetPixel ignores coordinates outside the grid. Width and Height are fixed
// for the lifetime of the display.
type Display interface {
	Width() int
	Height() int
	SetPixel(x, y int, r, g, b uint8)
	ClearScreen()
	UpdateScreen() error
}

// Presenter publishes the pixels written since the last Present to the
// flush side.
type Presenter interface {
	Present()
}

// Releaser is implemented by displays holding resources bound to the
// goroutine that flushes them. The pump calls Release on its own goroutine
// before exiting.
type Releaser interface {
	Release()
}

// Quitter is implemented by displays that can receive an exit request from
// the user, such as a key press or a closed window.
type Quitter interface {
	Quit() <-chan struct{}
}
