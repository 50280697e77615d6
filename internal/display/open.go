package display

import (
	"fmt"
	"sort"

	"periph.io/x/conn/v3/physic"
)

// Options selects and sizes a display driver.
type Options struct {
	Kind          string
	Width, Height int

	// Window
	Scale int
	Title string

	// Strip
	Port       string
	Speed      physic.Frequency
	Layout     Layout
	Brightness uint8
}

var opener = map[string]func(Options) (Display, error){
	"null": func(o Options) (Display, error) { return NewFramebuffer(o.Width, o.Height) },
	"terminal": func(o Options) (Display, error) {
		return NewTerminal(o.Width, o.Height)
	},
	"window": func(o Options) (Display, error) {
		title := o.Title
		if title == "" {
			title = "ledfx"
		}
		return NewWindow(o.Width, o.Height, o.Scale, title)
	},
	"apa102": func(o Options) (Display, error) {
		return OpenStrip(o.Port, o.Speed, StripOptions{
			Width:      o.Width,
			Height:     o.Height,
			Layout:     o.Layout,
			Brightness: o.Brightness,
		})
	},
}

// Open builds the driver named by o.Kind.
func Open(o Options) (Display, error) {
	kind := o.Kind
	if kind == "" || kind == "memory" {
		kind = "null"
	}
	fn, ok := opener[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownKind, o.Kind)
	}
	return fn(o)
}

func Kinds() []string {
	kinds := make([]string, 0, len(opener))
	for k := range opener {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}
