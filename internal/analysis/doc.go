// Package analysis inspects recorded brightness series.
//
//   - [PowerSpectrum]: windowed magnitude spectrum of a series
//   - [Dominant]: strongest non-DC component of a spectrum
//   - [Flicker]: spectral energy split into slow, mid and fast bands
//   - [Summarize]: mean, spread and range of a series
//
// A series sampled once per effect tick at interval dt has a Nyquist
// frequency of 1/(2*dt):
//
//	spec := analysis.PowerSpectrum(brightness, 30*time.Millisecond)
//	peak := analysis.Dominant(spec)
package analysis
