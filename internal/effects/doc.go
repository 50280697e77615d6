// Package effects holds the animations ledfx can run.
//
// Particle effects ([Particles]) drive a particle system through a fading
// partmatrix buffer. The generators ([Pulse], [Plasma], [Block], [Square],
// [Scroller]) draw straight into the display.
package effects
