package viz

import (
	"image"
	"image/color"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/ledfx/internal/config"
	"github.com/san-kum/ledfx/internal/display"
	"github.com/san-kum/ledfx/internal/effects"
)

type stepEffect struct {
	steps  int
	resets int
}

func (s *stepEffect) Name() string            { return "steps" }
func (s *stepEffect) Interval() time.Duration { return 10 * time.Millisecond }
func (s *stepEffect) Reset()                  { s.resets++ }

func (s *stepEffect) Step(d display.Display) {
	s.steps++
	d.SetPixel(0, 0, 255, 255, 255)
}

func newFB(t *testing.T, w, h int) *display.Framebuffer {
	t.Helper()
	fb, err := display.NewFramebuffer(w, h)
	if err != nil {
		t.Fatal(err)
	}
	return fb
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func TestPreviewTickSteps(t *testing.T) {
	e := &stepEffect{}
	fb := newFB(t, 4, 4)
	m := NewPreview(e, fb)

	m, cmd := update(t, m, TickMsg(time.Now()))
	if cmd == nil {
		t.Fatal("tick did not schedule the next tick")
	}
	if e.steps != 1 || m.Ticks() != 1 {
		t.Fatalf("steps = %d, ticks = %d", e.steps, m.Ticks())
	}
	if c := fb.At(0, 0); c.R != 255 {
		t.Errorf("frame not presented: %v", c)
	}
}

func TestPreviewPauseStopsSteps(t *testing.T) {
	e := &stepEffect{}
	m := NewPreview(e, newFB(t, 4, 4))

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeySpace})
	if m.Running() {
		t.Fatal("space did not pause")
	}
	m, cmd := update(t, m, TickMsg(time.Now()))
	if e.steps != 0 {
		t.Errorf("stepped while paused")
	}
	if cmd == nil {
		t.Error("paused preview stopped ticking")
	}

	m, _ = update(t, m, runes("s"))
	if e.steps != 1 || m.Ticks() != 1 {
		t.Errorf("single step: steps = %d, ticks = %d", e.steps, m.Ticks())
	}
}

func TestPreviewReset(t *testing.T) {
	e := &stepEffect{}
	m := NewPreview(e, newFB(t, 4, 4))
	m, _ = update(t, m, TickMsg(time.Now()))
	m, _ = update(t, m, runes("r"))
	if e.resets != 1 {
		t.Errorf("resets = %d", e.resets)
	}
	if m.Ticks() != 0 {
		t.Errorf("ticks after reset = %d", m.Ticks())
	}
}

func TestPreviewQuit(t *testing.T) {
	m := NewPreview(&stepEffect{}, newFB(t, 4, 4))
	for _, key := range []tea.KeyMsg{runes("q"), {Type: tea.KeyCtrlC}} {
		_, cmd := update(t, m, key)
		if cmd == nil {
			t.Fatalf("%q returned no command", key.String())
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Errorf("%q did not quit", key.String())
		}
	}
}

func TestPreviewTuning(t *testing.T) {
	cfg := config.DefaultConfig()
	fire, err := effects.NewParticles("fire", cfg.Fire, 8, 8, 1)
	if err != nil {
		t.Fatal(err)
	}
	m := NewPreview(fire, newFB(t, 8, 8))
	base := fire.Params().BaseHue

	m, _ = update(t, m, runes("+"))
	if got := fire.Params().BaseHue; got != base+hueStep {
		t.Errorf("hue after + = %d, want %d", got, base+hueStep)
	}
	m, _ = update(t, m, runes("-"))
	m, _ = update(t, m, runes("-"))
	if got := fire.Params().BaseHue; got != base-hueStep {
		t.Errorf("hue after - - = %d, want %d", got, base-hueStep)
	}

	cycle := fire.Params().CycleHue
	m, _ = update(t, m, runes("c"))
	if fire.Params().CycleHue == cycle {
		t.Error("c did not toggle hue cycling")
	}

	wrap := fire.Overflow()
	update(t, m, runes("o"))
	if fire.Overflow() == wrap {
		t.Error("o did not toggle overflow")
	}
}

func TestPreviewThemeCycle(t *testing.T) {
	defer SetTheme(CurrentTheme.Name)
	SetTheme("ember")
	m := NewPreview(&stepEffect{}, newFB(t, 4, 4))
	update(t, m, runes("t"))
	if CurrentTheme.Name != "ice" {
		t.Errorf("theme = %s, want ice", CurrentTheme.Name)
	}
	NextTheme()
	NextTheme()
	if CurrentTheme.Name != "ember" {
		t.Errorf("theme did not wrap: %s", CurrentTheme.Name)
	}
}

func TestRenderFrameLines(t *testing.T) {
	tests := []struct {
		w, h  int
		lines int
	}{
		{32, 16, 8},
		{4, 5, 3},
		{1, 1, 1},
	}
	for _, tt := range tests {
		img := image.NewRGBA(image.Rect(0, 0, tt.w, tt.h))
		img.SetRGBA(0, 0, color.RGBA{R: 255, A: 255})
		out := RenderFrame(img)
		if got := strings.Count(out, "\n") + 1; got != tt.lines {
			t.Errorf("%dx%d: %d lines, want %d", tt.w, tt.h, got, tt.lines)
		}
		if got := strings.Count(out, "▀"); got != tt.w*tt.lines {
			t.Errorf("%dx%d: %d cells, want %d", tt.w, tt.h, got, tt.w*tt.lines)
		}
	}
	if RenderFrame(nil) != "" {
		t.Error("nil frame rendered")
	}
}

func TestSparklineChart(t *testing.T) {
	if got := SparklineChart(nil, 5); got != "─────" {
		t.Errorf("empty sparkline = %q", got)
	}
	vals := make([]float64, 40)
	for i := range vals {
		vals[i] = float64(i)
	}
	out := SparklineChart(vals, 10)
	n := 0
	for _, r := range out {
		if r >= '▁' && r <= '█' {
			n++
		}
	}
	if n != 10 {
		t.Errorf("sparkline has %d bars, want 10", n)
	}
}

func TestViewShowsEffect(t *testing.T) {
	m := NewPreview(&stepEffect{}, newFB(t, 4, 4))
	m, _ = update(t, m, TickMsg(time.Now()))
	m, _ = update(t, m, TickMsg(time.Now()))
	if v := m.View(); !strings.Contains(v, "steps") {
		t.Error("view missing effect name")
	}
	m, _ = update(t, m, runes("?"))
	if v := m.View(); !strings.Contains(v, "keys") {
		t.Error("help view missing")
	}
}
