package storage

import (
	"image"

	"github.com/san-kum/ledfx/internal/effect"
	"github.com/san-kum/ledfx/internal/metrics"
)

// Sample is one row of stats.csv.
type Sample struct {
	Tick       int
	Alive      int
	Brightness float64
	Coverage   float64
}

// Recorder collects samples and frames from a runner.
type Recorder struct {
	// FrameEvery keeps one frame in every FrameEvery. Zero or one keeps all.
	FrameEvery int
	// MaxFrames caps the kept frames. Zero keeps everything.
	MaxFrames int

	Samples []Sample
	Frames  []*image.RGBA
}

func NewRecorder(frameEvery, maxFrames int) *Recorder {
	return &Recorder{FrameEvery: frameEvery, MaxFrames: maxFrames}
}

func (r *Recorder) OnFrame(f effect.Frame) {
	r.Samples = append(r.Samples, Sample{
		Tick:       f.Tick,
		Alive:      f.Alive,
		Brightness: metrics.FrameBrightness(f.Image),
		Coverage:   metrics.FrameCoverage(f.Image, metrics.DefaultThreshold),
	})
	if f.Image == nil {
		return
	}
	if r.MaxFrames > 0 && len(r.Frames) >= r.MaxFrames {
		return
	}
	every := max(r.FrameEvery, 1)
	if (f.Tick-1)%every == 0 {
		r.Frames = append(r.Frames, f.Image)
	}
}
