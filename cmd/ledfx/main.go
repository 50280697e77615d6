package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/san-kum/ledfx/internal/config"
	"github.com/san-kum/ledfx/internal/display"
	"github.com/san-kum/ledfx/internal/effect"
	"github.com/san-kum/ledfx/internal/effects"
)

var (
	dataDir       string
	configFile    string
	preset        string
	displayKind   string
	duration      time.Duration
	runTicks      int
	recordTicks   int
	snapshotTicks int
	seed          int64
	width         int
	height        int
	intervalMs    int
	frameEvery    int
	maxFrames     int
	scale         float64
	output        string
	logLevel      string
	logFile       string
)

// main registers the ledfx commands and runs the default effect when no
// subcommand is given. It exits with status 1 if the command fails.
func main() {
	rootCmd := &cobra.Command{
		Use:           "ledfx [effect]",
		Short:         "particle and pattern effects for small LED matrices",
		Args:          cobra.MaximumNArgs(1),
		RunE:          runEffect,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".ledfx", "data directory")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "write logs to this file instead of stderr")
	addEffectFlags(rootCmd)
	addRunFlags(rootCmd)

	runCmd := &cobra.Command{
		Use:   "run [effect]",
		Short: "run an effect on a display",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runEffect,
	}
	addEffectFlags(runCmd)
	addRunFlags(runCmd)

	previewCmd := &cobra.Command{
		Use:   "preview [effect]",
		Short: "interactive terminal preview with live tuning",
		Args:  cobra.MaximumNArgs(1),
		RunE:  previewEffect,
	}
	addEffectFlags(previewCmd)

	recordCmd := &cobra.Command{
		Use:   "record [effect]",
		Short: "run an effect headless and save a recording",
		Args:  cobra.MaximumNArgs(1),
		RunE:  recordEffect,
	}
	addEffectFlags(recordCmd)
	recordCmd.Flags().IntVar(&recordTicks, "ticks", 300, "number of ticks to record")
	recordCmd.Flags().IntVar(&frameEvery, "frame-every", 2, "keep one gif frame in every n ticks")
	recordCmd.Flags().IntVar(&maxFrames, "max-frames", 200, "maximum gif frames (0 for no limit)")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list recordings",
		RunE:  listRecordings,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [id]",
		Short: "plot the statistics of a recording",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRecording,
	}

	analyzeCmd := &cobra.Command{
		Use:   "analyze [id]",
		Short: "flicker spectrum of a recording",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRecording,
	}

	exportCmd := &cobra.Command{
		Use:   "export [id]",
		Short: "export a recording's statistics as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRecording,
	}
	exportCmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")

	snapshotCmd := &cobra.Command{
		Use:   "snapshot [effect]",
		Short: "render an effect for n ticks and write an SVG",
		Args:  cobra.MaximumNArgs(1),
		RunE:  snapshotEffect,
	}
	addEffectFlags(snapshotCmd)
	snapshotCmd.Flags().IntVar(&snapshotTicks, "ticks", 60, "ticks to run before the snapshot")
	snapshotCmd.Flags().Float64Var(&scale, "scale", 20, "pixels per LED")
	snapshotCmd.Flags().StringVarP(&output, "output", "o", "", "output file (default <effect>.svg)")

	effectsCmd := &cobra.Command{
		Use:   "effects",
		Short: "list available effects",
		RunE:  listEffects,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets [effect]",
		Short: "list available presets for an effect",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, err := effects.NewRegistry().ResolveDemo(args[0], effects.Fallback)
			if err != nil {
				return err
			}
			presets := config.ListPresets(name)
			if len(presets) == 0 {
				fmt.Printf("no presets for effect: %s\n", name)
				return nil
			}
			fmt.Printf("presets for %s:\n", name)
			for _, p := range presets {
				fmt.Printf("  %s\n", p)
			}
			return nil
		},
	}

	rootCmd.AddCommand(runCmd, previewCmd, recordCmd, listCmd, plotCmd, analyzeCmd, exportCmd, snapshotCmd, effectsCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "ledfx:", err)
		os.Exit(1)
	}
}

func addEffectFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	cmd.Flags().Int64Var(&seed, "seed", config.DefaultSeed, "random seed")
	cmd.Flags().IntVar(&width, "width", config.DefaultWidth, "display width in LEDs")
	cmd.Flags().IntVar(&height, "height", config.DefaultHeight, "display height in LEDs")
	cmd.Flags().IntVar(&intervalMs, "interval", 0, "tick interval in ms (0 keeps the effect's own)")
}

func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&displayKind, "display", "terminal", fmt.Sprintf("display driver %v", display.Kinds()))
	cmd.Flags().DurationVar(&duration, "duration", 0, "stop after this long (0 runs until quit)")
	cmd.Flags().IntVar(&runTicks, "ticks", 0, "stop after this many ticks (0 runs until quit)")
}

// loadConfig resolves the effect named in args and layers its configuration:
// defaults, then --preset, then --config, then flags set on the command line.
func loadConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	reg := effects.NewRegistry()
	cfg := config.DefaultConfig()

	name := cfg.Effect
	if len(args) > 0 {
		name = args[0]
	}
	name, err := reg.ResolveDemo(name, effects.Fallback)
	if err != nil {
		return nil, err
	}
	cfg.Effect = name

	if preset != "" {
		p, err := config.Preset(name, preset)
		if err != nil {
			return nil, fmt.Errorf("%w (available: %v)", err, config.ListPresets(name))
		}
		cfg = p
	}

	if configFile != "" {
		loaded, err := config.LoadOver(cfg, configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
		if len(args) > 0 {
			cfg.Effect = name
		} else if cfg.Effect, err = reg.ResolveDemo(cfg.Effect, effects.Fallback); err != nil {
			return nil, err
		}
	}

	flags := cmd.Flags()
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("width") {
		cfg.Width = width
	}
	if flags.Changed("height") {
		cfg.Height = height
	}
	if flags.Changed("interval") {
		cfg.IntervalMs = intervalMs
	}
	if flags.Changed("display") {
		cfg.Display.Kind = displayKind
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newEffect(cfg *config.Config, w, h int) (effect.Effect, error) {
	return effects.NewRegistry().Get(cfg.Effect, cfg, w, h)
}

// newLogger builds the process logger. The returned func closes the log
// file, if one was opened.
func newLogger() (*log.Logger, func(), error) {
	level, err := log.ParseLevel(logLevel)
	if err != nil {
		return nil, nil, err
	}
	var w io.Writer = os.Stderr
	closer := func() {}
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		w = f
		closer = func() { f.Close() }
	}
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "ledfx",
		Level:           level,
	})
	log.SetDefault(logger)
	return logger, closer, nil
}
