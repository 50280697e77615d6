package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/ledfx/internal/display"
	"github.com/san-kum/ledfx/internal/effect"
	"github.com/san-kum/ledfx/internal/metrics"
	"github.com/san-kum/ledfx/internal/particle"
)

const (
	historyLen = 120
	hueStep    = 8
)

type TickMsg time.Time

type tunable interface {
	Params() *particle.Params
}

type wrapper interface {
	SetOverflow(on bool)
	Overflow() bool
}

// Model steps an effect into a framebuffer and renders it in the terminal.
type Model struct {
	effect effect.Effect
	fb     *display.Framebuffer

	running  bool
	tick     int
	alive    []float64
	bright   []float64
	showHelp bool
	width    int
}

func NewPreview(e effect.Effect, fb *display.Framebuffer) Model {
	return Model{
		effect:  e,
		fb:      fb,
		running: true,
		width:   80,
	}
}

func (m Model) Ticks() int    { return m.tick }
func (m Model) Running() bool { return m.running }

func (m Model) Init() tea.Cmd {
	return m.next()
}

func (m Model) next() tea.Cmd {
	return tea.Tick(m.effect.Interval(), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
	case TickMsg:
		if m.running {
			m = m.step()
		}
		return m, m.next()
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case " ":
		m.running = !m.running
	case "s":
		if !m.running {
			m = m.step()
		}
	case "r":
		if r, ok := m.effect.(effect.Resetter); ok {
			r.Reset()
		}
		m.fb.ClearScreen()
		m.fb.Present()
		m.tick = 0
		m.alive = m.alive[:0]
		m.bright = m.bright[:0]
	case "+", "=":
		m.shiftHue(hueStep)
	case "-", "_":
		m.shiftHue(-hueStep)
	case "c":
		if p := m.params(); p != nil {
			p.CycleHue = !p.CycleHue
		}
	case "o":
		if w, ok := m.effect.(wrapper); ok {
			w.SetOverflow(!w.Overflow())
		}
	case "t":
		NextTheme()
	case "?":
		m.showHelp = !m.showHelp
	}
	return m, nil
}

func (m Model) params() *particle.Params {
	if t, ok := m.effect.(tunable); ok {
		return t.Params()
	}
	return nil
}

// hue wraps at 256
func (m Model) shiftHue(delta int) {
	if p := m.params(); p != nil {
		p.BaseHue = uint8(int(p.BaseHue) + delta)
	}
}

func (m Model) step() Model {
	m.effect.Step(m.fb)
	m.fb.Present()
	m.tick++

	frame := m.fb.Frame()
	m.bright = appendHistory(m.bright, metrics.FrameBrightness(frame))
	if p, ok := m.effect.(effect.Population); ok {
		m.alive = appendHistory(m.alive, float64(p.LiveCount()))
	}
	return m
}

func appendHistory(h []float64, v float64) []float64 {
	h = append(h, v)
	if len(h) > historyLen {
		h = h[len(h)-historyLen:]
	}
	return h
}

func (m Model) View() string {
	if m.showHelp {
		return m.helpView()
	}
	leds := panelStyle().Render(RenderFrame(m.fb.Frame()))
	side := panelStyle().Render(m.statsView())
	body := lipgloss.JoinHorizontal(lipgloss.Top, leds, " ", side)

	var sb strings.Builder
	sb.WriteString(titleStyle().Render("ledfx · " + m.effect.Name()))
	sb.WriteString("\n")
	sb.WriteString(body)
	sb.WriteString("\n")
	if len(m.bright) > 1 {
		sb.WriteString(asciigraph.Plot(m.bright,
			asciigraph.Height(4),
			asciigraph.Width(min(60, max(20, m.width-12))),
			asciigraph.Caption("brightness"),
		))
		sb.WriteString("\n")
	}
	sb.WriteString(hintStyle().Render("space pause · s step · r reset · +/- hue · c cycle · o wrap · t theme · ? help · q quit"))
	return sb.String()
}

func (m Model) statsView() string {
	status := StatusRunning.Render("● RUNNING")
	if !m.running {
		status = StatusPaused.Render("❚❚ PAUSED")
	}
	rows := []string{
		status,
		"",
		row("tick", fmt.Sprintf("%d", m.tick)),
		row("interval", m.effect.Interval().String()),
	}
	if len(m.bright) > 0 {
		rows = append(rows, row("brightness", fmt.Sprintf("%.1f", m.bright[len(m.bright)-1])))
	}
	if len(m.alive) > 0 {
		rows = append(rows, row("alive", fmt.Sprintf("%.0f", m.alive[len(m.alive)-1])))
	}
	if p := m.params(); p != nil {
		rows = append(rows,
			row("hue", fmt.Sprintf("%d", p.BaseHue)),
			row("cycle", onOff(p.CycleHue)))
	}
	if w, ok := m.effect.(wrapper); ok {
		rows = append(rows, row("wrap", onOff(w.Overflow())))
	}
	rows = append(rows, row("theme", CurrentTheme.Name), "", SparklineChart(m.bright, 24))
	if len(m.alive) > 0 {
		rows = append(rows, SparklineChart(m.alive, 24))
	}
	return strings.Join(rows, "\n")
}

func row(label, value string) string {
	return labelStyle().Render(label) + valueStyle().Render(value)
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

func (m Model) helpView() string {
	keys := [][2]string{
		{"space", "pause / resume"},
		{"s", "single step while paused"},
		{"r", "reset the effect"},
		{"+ / -", "shift base hue"},
		{"c", "toggle hue cycling"},
		{"o", "toggle overflow wrapping"},
		{"t", "next theme"},
		{"?", "close help"},
		{"q", "quit"},
	}
	var sb strings.Builder
	sb.WriteString(titleStyle().Render("keys"))
	sb.WriteString("\n\n")
	for _, k := range keys {
		sb.WriteString(row(k[0], k[1]))
		sb.WriteString("\n")
	}
	return panelStyle().Render(sb.String())
}

// RunPreview runs the preview until the user quits.
func RunPreview(e effect.Effect, fb *display.Framebuffer) error {
	p := tea.NewProgram(NewPreview(e, fb), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
