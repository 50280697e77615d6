package analysis

import (
	"math"
	"math/cmplx"
	"time"

	"github.com/mjibson/go-dsp/fft"
)

// Spectrum is a one-sided magnitude spectrum.
type Spectrum struct {
	// Resolution is the width of one bin in Hz.
	Resolution float64
	Magnitude  []float64
}

// Freq returns the center frequency of bin k in Hz.
func (s Spectrum) Freq(k int) float64 { return float64(k) * s.Resolution }

// PowerSpectrum removes the mean from data, applies a Hann window and returns
// bins 0 through len(data)/2.
func PowerSpectrum(data []float64, dt time.Duration) Spectrum {
	n := len(data)
	if n < 2 || dt <= 0 {
		return Spectrum{}
	}

	mean := 0.0
	for _, v := range data {
		mean += v
	}
	mean /= float64(n)

	buf := make([]float64, n)
	for i, v := range data {
		window := 0.5 * (1 - math.Cos(2*math.Pi*float64(i)/float64(n-1)))
		buf[i] = (v - mean) * window
	}
	out := fft.FFTReal(buf)

	mag := make([]float64, n/2+1)
	for k := range mag {
		mag[k] = cmplx.Abs(out[k]) * 2 / float64(n)
	}
	return Spectrum{
		Resolution: 1 / (dt.Seconds() * float64(n)),
		Magnitude:  mag,
	}
}

// Peak is one spectral component.
type Peak struct {
	Bin       int
	Freq      float64
	Magnitude float64
}

// Dominant returns the largest bin above DC. An empty or flat spectrum gives
// the zero Peak.
func Dominant(s Spectrum) Peak {
	var p Peak
	for k := 1; k < len(s.Magnitude); k++ {
		if s.Magnitude[k] > p.Magnitude {
			p = Peak{Bin: k, Freq: s.Freq(k), Magnitude: s.Magnitude[k]}
		}
	}
	return p
}

// Bands splits spectral energy at two frequencies.
type Bands struct {
	Slow, Mid, Fast float64
}

// Default band edges in Hz. Slow covers breathing, mid the visible shimmer
// of particle birth and death, and fast the frame rate flicker.
const (
	SlowEdge = 1.0
	FastEdge = 8.0
)

// Flicker returns the fraction of non-DC energy in each band.
func Flicker(s Spectrum) Bands {
	var b Bands
	total := 0.0
	for k := 1; k < len(s.Magnitude); k++ {
		e := s.Magnitude[k] * s.Magnitude[k]
		f := s.Freq(k)
		switch {
		case f < SlowEdge:
			b.Slow += e
		case f < FastEdge:
			b.Mid += e
		default:
			b.Fast += e
		}
		total += e
	}
	if total == 0 {
		return Bands{}
	}
	b.Slow /= total
	b.Mid /= total
	b.Fast /= total
	return b
}

type Summary struct {
	Mean, StdDev float64
	Min, Max     float64
}

func Summarize(data []float64) Summary {
	if len(data) == 0 {
		return Summary{}
	}
	s := Summary{Min: data[0], Max: data[0]}
	for _, v := range data {
		s.Mean += v
		s.Min = math.Min(s.Min, v)
		s.Max = math.Max(s.Max, v)
	}
	s.Mean /= float64(len(data))
	for _, v := range data {
		d := v - s.Mean
		s.StdDev += d * d
	}
	s.StdDev = math.Sqrt(s.StdDev / float64(len(data)))
	return s
}
