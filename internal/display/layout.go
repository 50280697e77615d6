package display

import (
	"fmt"
	"strings"
)

// Layout maps grid coordinates to the position of an LED along the chain.
type Layout int

const (
	// Progressive chains every row left to right.
	Progressive Layout = iota
	// Serpentine reverses every odd row, the usual wiring of LED panels.
	Serpentine
)

func ParseLayout(s string) (Layout, error) {
	switch strings.ToLower(s) {
	case "", "progressive":
		return Progressive, nil
	case "serpentine", "zigzag":
		return Serpentine, nil
	}
	return Progressive, fmt.Errorf("display: unknown layout: %s", s)
}

// Index returns the chain position of (x, y) on a grid width pixels wide.
func (l Layout) Index(x, y, width int) int {
	if l == Serpentine && y%2 == 1 {
		return y*width + (width - 1 - x)
	}
	return y*width + x
}
