package effect

import (
	"context"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"

	"github.com/san-kum/ledfx/internal/display"
)

// Pump flushes a display in a loop on a goroutine locked to its OS thread.
type Pump struct {
	disp        display.Display
	logger      *log.Logger
	minInterval time.Duration

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}

	flushes atomic.Uint64
	errs    atomic.Uint64
}

type PumpOption func(*Pump)

func WithPumpLogger(l *log.Logger) PumpOption {
	return func(p *Pump) { p.logger = l }
}

// WithMinInterval spaces flushes at least d apart. Zero flushes back to back.
func WithMinInterval(d time.Duration) PumpOption {
	return func(p *Pump) { p.minInterval = d }
}

func NewPump(d display.Display, opts ...PumpOption) *Pump {
	p := &Pump{disp: d, logger: log.Default()}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Pump) Flushes() uint64 { return p.flushes.Load() }
func (p *Pump) Errors() uint64  { return p.errs.Load() }

func (p *Pump) Start(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.done != nil {
		select {
		case <-p.done:
		default:
			return ErrAlreadyRunning
		}
	}
	ctx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.done = make(chan struct{})
	go p.loop(ctx, p.done)
	return nil
}

func (p *Pump) loop(ctx context.Context, done chan struct{}) {
	defer close(done)
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	if r, ok := p.disp.(display.Releaser); ok {
		defer r.Release()
	}

	var timer *time.Timer
	if p.minInterval > 0 {
		timer = time.NewTimer(0)
		defer timer.Stop()
	}
	for {
		if timer != nil {
			select {
			case <-ctx.Done():
				return
			case <-timer.C:
				timer.Reset(p.minInterval)
			}
		} else {
			select {
			case <-ctx.Done():
				return
			default:
			}
		}
		p.flush()
	}
}

func (p *Pump) flush() {
	if err := p.disp.UpdateScreen(); err != nil {
		n := p.errs.Add(1)
		if n == 1 || n%100 == 0 {
			p.logger.Warn("display flush failed", "err", err, "failures", n)
		}
		if p.minInterval == 0 {
			runtime.Gosched()
		}
		return
	}
	p.flushes.Add(1)
}

// Stop ends the loop and waits for it, including the display release.
func (p *Pump) Stop() {
	p.mu.Lock()
	cancel, done := p.cancel, p.done
	p.mu.Unlock()
	if cancel == nil {
		return
	}
	cancel()
	<-done
}
