package effect

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"

	"github.com/san-kum/ledfx/internal/display"
)

// Runner steps an effect on its own goroutine.
type Runner struct {
	effect    Effect
	disp      display.Display
	logger    *log.Logger
	interval  time.Duration
	maxTicks  int
	observers []Observer
	metrics   []Metric

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
	ticks  atomic.Int64
}

type RunnerOption func(*Runner)

func WithLogger(l *log.Logger) RunnerOption {
	return func(r *Runner) { r.logger = l }
}

// WithInterval overrides the effect's own interval. Zero keeps it.
func WithInterval(d time.Duration) RunnerOption {
	return func(r *Runner) {
		if d > 0 {
			r.interval = d
		}
	}
}

// WithMaxTicks ends the loop after n steps. Zero runs until stopped.
func WithMaxTicks(n int) RunnerOption {
	return func(r *Runner) { r.maxTicks = n }
}

func WithObserver(o Observer) RunnerOption {
	return func(r *Runner) { r.observers = append(r.observers, o) }
}

func WithMetric(m Metric) RunnerOption {
	return func(r *Runner) { r.metrics = append(r.metrics, m) }
}

func NewRunner(e Effect, d display.Display, opts ...RunnerOption) *Runner {
	r := &Runner{
		effect:   e,
		disp:     d,
		logger:   log.Default(),
		interval: e.Interval(),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.interval <= 0 {
		r.interval = 30 * time.Millisecond
	}
	return r
}

func (r *Runner) Effect() Effect          { return r.effect }
func (r *Runner) Interval() time.Duration { return r.interval }
func (r *Runner) Ticks() int              { return int(r.ticks.Load()) }
func (r *Runner) Metrics() []Metric       { return r.metrics }

// Start launches the loop. The loop ends when ctx is done, Stop is called,
// or the tick limit is reached.
func (r *Runner) Start(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.done != nil {
		select {
		case <-r.done:
		default:
			return ErrAlreadyRunning
		}
	}
	for _, m := range r.metrics {
		m.Reset()
	}
	ctx, cancel := context.WithCancel(ctx)
	r.cancel = cancel
	r.done = make(chan struct{})
	go r.loop(ctx, r.done)
	r.logger.Debug("effect started", "effect", r.effect.Name(), "interval", r.interval)
	return nil
}

func (r *Runner) loop(ctx context.Context, done chan struct{}) {
	defer close(done)
	t := time.NewTicker(r.interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
		}
		r.step()
		if r.maxTicks > 0 && r.Ticks() >= r.maxTicks {
			return
		}
	}
}

// Stop cancels the loop and waits for it to exit. It is safe to call more
// than once and before Start.
func (r *Runner) Stop() {
	r.mu.Lock()
	cancel, done := r.cancel, r.done
	r.mu.Unlock()
	if cancel == nil {
		return
	}
	cancel()
	<-done
	r.logger.Debug("effect stopped", "effect", r.effect.Name(), "ticks", r.Ticks())
}

// Wait blocks until the loop ends on its own or is stopped.
func (r *Runner) Wait() {
	r.mu.Lock()
	done := r.done
	r.mu.Unlock()
	if done != nil {
		<-done
	}
}

// Done is closed when the loop has exited. It is nil before Start.
func (r *Runner) Done() <-chan struct{} {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.done
}

// Run steps the effect n times on the calling goroutine, without waiting on
// the interval. It must not be used while the loop is running.
func (r *Runner) Run(n int) error {
	r.mu.Lock()
	running := r.done != nil
	if running {
		select {
		case <-r.done:
			running = false
		default:
		}
	}
	r.mu.Unlock()
	if running {
		return ErrAlreadyRunning
	}
	for i := 0; i < n; i++ {
		r.step()
	}
	return nil
}

func (r *Runner) step() {
	r.effect.Step(r.disp)
	if p, ok := r.disp.(display.Presenter); ok {
		p.Present()
	}
	tick := int(r.ticks.Add(1))
	if len(r.observers) == 0 && len(r.metrics) == 0 {
		return
	}

	f := Frame{Tick: tick, Alive: -1}
	if fr, ok := r.disp.(framer); ok {
		f.Image = fr.Frame()
	}
	if p, ok := r.effect.(Population); ok {
		f.Alive = p.LiveCount()
	}
	for _, m := range r.metrics {
		m.Observe(f)
	}
	for _, o := range r.observers {
		o.OnFrame(f)
	}
}
