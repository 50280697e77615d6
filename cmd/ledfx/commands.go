package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/log"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"
	"periph.io/x/conn/v3/physic"

	"github.com/san-kum/ledfx/internal/analysis"
	"github.com/san-kum/ledfx/internal/config"
	"github.com/san-kum/ledfx/internal/display"
	"github.com/san-kum/ledfx/internal/effect"
	"github.com/san-kum/ledfx/internal/effects"
	"github.com/san-kum/ledfx/internal/export"
	"github.com/san-kum/ledfx/internal/metrics"
	"github.com/san-kum/ledfx/internal/storage"
	"github.com/san-kum/ledfx/internal/viz"
)

func ms(n int) time.Duration { return time.Duration(n) * time.Millisecond }

func openDisplay(cfg *config.Config) (display.Display, error) {
	layout, err := display.ParseLayout(cfg.Display.Layout)
	if err != nil {
		return nil, err
	}
	return display.Open(display.Options{
		Kind:       cfg.Display.Kind,
		Width:      cfg.Width,
		Height:     cfg.Height,
		Scale:      cfg.Display.Scale,
		Title:      "ledfx · " + cfg.Effect,
		Port:       cfg.Display.Port,
		Speed:      physic.Frequency(cfg.Display.SpeedMHz) * physic.MegaHertz,
		Layout:     layout,
		Brightness: uint8(cfg.Display.Brightness),
	})
}

func closeDisplay(d display.Display, logger *log.Logger) {
	if c, ok := d.(io.Closer); ok {
		if err := c.Close(); err != nil {
			logger.Warn("display close failed", "err", err)
		}
	}
}

func runEffect(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}
	logger, closeLog, err := newLogger()
	if err != nil {
		return err
	}
	defer closeLog()

	d, err := openDisplay(cfg)
	if err != nil {
		return err
	}
	e, err := newEffect(cfg, d.Width(), d.Height())
	if err != nil {
		closeDisplay(d, logger)
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runner := effect.NewRunner(e, d,
		effect.WithLogger(logger),
		effect.WithInterval(ms(cfg.IntervalMs)),
		effect.WithMaxTicks(runTicks),
	)
	pump := effect.NewPump(d,
		effect.WithPumpLogger(logger),
		effect.WithMinInterval(ms(cfg.Display.MinIntervalMs)),
	)

	if err := pump.Start(ctx); err != nil {
		closeDisplay(d, logger)
		return err
	}
	if err := runner.Start(ctx); err != nil {
		pump.Stop()
		closeDisplay(d, logger)
		return err
	}
	logger.Debug("running", "effect", e.Name(), "display", cfg.Display.Kind, "interval", runner.Interval())

	var quit <-chan struct{}
	if q, ok := d.(display.Quitter); ok {
		quit = q.Quit()
	}
	var timeout <-chan time.Time
	if duration > 0 {
		timeout = time.After(duration)
	}

	reason := "done"
	select {
	case <-ctx.Done():
		reason = "signal"
	case <-quit:
		reason = "quit"
	case <-timeout:
		reason = "duration"
	case <-runner.Done():
	}

	shutdown(runner, pump, d, logger)
	logger.Info("stopped", "effect", e.Name(), "reason", reason, "ticks", runner.Ticks(), "flushes", pump.Flushes(), "flush_errors", pump.Errors())
	return nil
}

// shutdown stops the effect before the pump, blanks the display and closes it.
func shutdown(r *effect.Runner, p *effect.Pump, d display.Display, logger *log.Logger) {
	r.Stop()
	p.Stop()

	// A released window cannot be drawn again.
	if _, ok := d.(display.Releaser); !ok {
		d.ClearScreen()
		if pr, ok := d.(display.Presenter); ok {
			pr.Present()
		}
		if err := d.UpdateScreen(); err != nil {
			logger.Warn("final clear failed", "err", err)
		}
	}
	closeDisplay(d, logger)
}

func previewEffect(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}
	_, closeLog, err := newLogger()
	if err != nil {
		return err
	}
	defer closeLog()

	fb, err := display.NewFramebuffer(cfg.Width, cfg.Height)
	if err != nil {
		return err
	}
	e, err := newEffect(cfg, cfg.Width, cfg.Height)
	if err != nil {
		return err
	}
	return viz.RunPreview(e, fb)
}

// runHeadless steps a fresh effect n times into a framebuffer.
func runHeadless(cfg *config.Config, n int, logger *log.Logger, opts ...effect.RunnerOption) (*effect.Runner, *display.Framebuffer, error) {
	fb, err := display.NewFramebuffer(cfg.Width, cfg.Height)
	if err != nil {
		return nil, nil, err
	}
	e, err := newEffect(cfg, cfg.Width, cfg.Height)
	if err != nil {
		return nil, nil, err
	}
	opts = append([]effect.RunnerOption{
		effect.WithLogger(logger),
		effect.WithInterval(ms(cfg.IntervalMs)),
	}, opts...)
	r := effect.NewRunner(e, fb, opts...)
	if err := r.Run(n); err != nil {
		return nil, nil, err
	}
	return r, fb, nil
}

func recordEffect(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}
	logger, closeLog, err := newLogger()
	if err != nil {
		return err
	}
	defer closeLog()

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	rec := storage.NewRecorder(frameEvery, maxFrames)
	opts := []effect.RunnerOption{effect.WithObserver(rec)}
	for _, m := range metrics.Standard() {
		opts = append(opts, effect.WithMetric(m))
	}

	fmt.Printf("recording %s for %d ticks...\n", cfg.Effect, recordTicks)
	start := time.Now()
	runner, _, err := runHeadless(cfg, recordTicks, logger, opts...)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	values := make(map[string]float64)
	for _, m := range runner.Metrics() {
		values[m.Name()] = m.Value()
	}
	id, err := st.Save(storage.Metadata{
		Effect:   cfg.Effect,
		Preset:   preset,
		Seed:     cfg.Seed,
		Width:    cfg.Width,
		Height:   cfg.Height,
		Interval: runner.Interval(),
		Metrics:  values,
	}, rec)
	if err != nil {
		return err
	}
	logger.Debug("recording saved", "effect", cfg.Effect, "id", id, "ticks", runner.Ticks())

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("recording id: %s\n", id)
	fmt.Printf("ticks: %d, frames: %d\n", len(rec.Samples), len(rec.Frames))
	fmt.Println("\nmetrics:")
	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("  %s: %.4f\n", name, values[name])
	}
	return nil
}

func listRecordings(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	recs, err := st.List()
	if err != nil {
		return err
	}

	if len(recs) == 0 {
		fmt.Println("no recordings found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tEFFECT\tTIME\tTICKS\tFRAMES\tINTERVAL\tSEED")
	for _, m := range recs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%v\t%d\n",
			m.ID,
			m.Effect,
			m.Timestamp.Format("2006-01-02 15:04:05"),
			m.Ticks,
			m.Frames,
			m.Interval,
			m.Seed,
		)
	}
	return w.Flush()
}

func loadRecording(id string) (*storage.Metadata, []storage.Sample, error) {
	st := storage.New(dataDir)
	meta, err := st.Load(id)
	if err != nil {
		return nil, nil, err
	}
	samples, err := st.LoadStats(id)
	if err != nil {
		return nil, nil, err
	}
	if len(samples) == 0 {
		return nil, nil, fmt.Errorf("%w: %s", storage.ErrNoFrames, id)
	}
	return meta, samples, nil
}

type plotSeries struct {
	caption string
	data    []float64
}

func plotRecording(cmd *cobra.Command, args []string) error {
	meta, samples, err := loadRecording(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("recording: %s\n", meta.ID)
	fmt.Printf("effect: %s\n", meta.Effect)
	fmt.Printf("ticks: %d\n\n", len(samples))

	var series []plotSeries
	if samples[0].Alive >= 0 {
		series = append(series, plotSeries{"alive particles", storage.Alive(samples)})
	}
	series = append(series,
		plotSeries{"brightness", storage.Brightness(samples)},
		plotSeries{"coverage (%)", coverage(samples)},
	)

	for _, s := range series {
		graph := asciigraph.Plot(s.data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(s.caption),
		)
		fmt.Println(graph)
		fmt.Println()
	}
	return nil
}

func coverage(samples []storage.Sample) []float64 {
	out := make([]float64, len(samples))
	for i, s := range samples {
		out[i] = s.Coverage * 100
	}
	return out
}

func analyzeRecording(cmd *cobra.Command, args []string) error {
	meta, samples, err := loadRecording(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("flicker analysis: %s\n", meta.ID)
	fmt.Printf("effect: %s\n\n", meta.Effect)

	data := storage.Brightness(samples)
	spec := analysis.PowerSpectrum(data, meta.Interval)
	if len(spec.Magnitude) < 2 {
		return fmt.Errorf("not enough samples: %d", len(data))
	}

	graph := asciigraph.Plot(spec.Magnitude[1:],
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.Caption(fmt.Sprintf("brightness spectrum (%.3f hz per bin)", spec.Resolution)),
	)
	fmt.Println(graph)
	fmt.Println()

	sum := analysis.Summarize(data)
	fmt.Printf("brightness: mean %.2f, stddev %.2f, range [%.1f, %.1f]\n", sum.Mean, sum.StdDev, sum.Min, sum.Max)

	peak := analysis.Dominant(spec)
	fmt.Printf("dominant frequency: %.3f hz\n", peak.Freq)
	if peak.Freq > 0 {
		fmt.Printf("period: %.3f s\n", 1.0/peak.Freq)
	}

	b := analysis.Flicker(spec)
	fmt.Printf("energy: slow (<%.0f hz) %.1f%%, mid %.1f%%, fast (>=%.0f hz) %.1f%%\n",
		analysis.SlowEdge, b.Slow*100, b.Mid*100, analysis.FastEdge, b.Fast*100)
	return nil
}

func exportRecording(cmd *cobra.Command, args []string) error {
	meta, samples, err := loadRecording(args[0])
	if err != nil {
		return err
	}
	if output == "" {
		return export.WriteJSON(os.Stdout, *meta, samples)
	}
	if err := export.ExportJSON(output, *meta, samples); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", output)
	return nil
}

func snapshotEffect(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}
	logger, closeLog, err := newLogger()
	if err != nil {
		return err
	}
	defer closeLog()

	_, fb, err := runHeadless(cfg, snapshotTicks, logger)
	if err != nil {
		return err
	}

	path := output
	if path == "" {
		path = cfg.Effect + ".svg"
	}
	if err := os.WriteFile(path, []byte(export.FrameToSVG(fb.Frame(), scale)), 0644); err != nil {
		return err
	}
	fmt.Printf("wrote %s (%d ticks)\n", path, snapshotTicks)
	return nil
}

func listEffects(cmd *cobra.Command, args []string) error {
	reg := effects.NewRegistry()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "EFFECT\tPRESETS\tDESCRIPTION")
	for _, name := range reg.List() {
		fmt.Fprintf(w, "%s\t%d\t%s\n", name, len(config.ListPresets(name)), reg.Describe(name))
	}
	return w.Flush()
}
