// Package viz provides a terminal preview of ledfx effects.
//
// The preview is a Bubble Tea program that steps an effect on its own
// interval and draws the display with half-block characters, two LED rows
// per line, next to a panel of live statistics.
//
// # Key Bindings
//
//	Space - Pause/Resume
//	S     - Single step while paused
//	R     - Reset the effect
//	+/-   - Shift the base hue
//	C     - Toggle hue cycling
//	O     - Toggle overflow wrapping
//	T     - Cycle panel themes
//	?     - Show help
//	Q     - Quit
package viz
