package viz

import (
	"fmt"
	"log"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/hopalong/internal/sim"
)

const (
	DefaultWidth    = 80
	DefaultHeight   = 24
	statsWidth      = 34
	historyCapacity = 120
)

var (
	canvasStyle = lipgloss.NewStyle().Padding(0, 1)
	statsStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(0, 2).Width(statsWidth)
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(10)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	resetStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

type TickMsg time.Time

// Model runs a sim.Loop inside a Bubble Tea program, one frame per tick.
type Model struct {
	loop     *sim.Loop
	renderer *CanvasRenderer
	recorder *Recorder
	theme    Theme
	interval time.Duration
	frame    string
	visible  int
	info     sim.FrameInfo
	radius   []float64
	resets   int
	err      error
	compact  bool
}

// NewModel wires loop, which must draw into r, to the TUI. Each presented
// canvas is kept for View and passed to rec when it is non-nil.
func NewModel(loop *sim.Loop, r *CanvasRenderer, th Theme, rec *Recorder) *Model {
	m := &Model{
		loop:     loop,
		renderer: r,
		recorder: rec,
		theme:    th,
		interval: loop.Config().Interval(),
		radius:   make([]float64, 0, historyCapacity),
	}
	gain := 1 / loop.Config().AlphaInit
	r.OnPresent(func(c *Canvas) {
		m.frame = c.Render(m.theme, gain)
		m.visible = m.renderer.Plotted()
		if m.recorder != nil {
			m.recorder.Capture(c)
		}
	})
	loop.AddObserver(m)
	return m
}

// OnFrame implements sim.Observer.
func (m *Model) OnFrame(info sim.FrameInfo) {
	m.info = info
	if info.Seed.IsFinite() {
		m.radius = append(m.radius, math.Hypot(info.Seed.X, info.Seed.Y))
		if len(m.radius) > historyCapacity {
			m.radius = m.radius[1:]
		}
	}
	if info.Reset {
		m.resets++
		m.renderer.Refit()
		log.Printf("frame %d: reset, new parameters %s", info.Frame, info.Next)
	}
}

// Err returns the renderer error that stopped the program, if any.
func (m *Model) Err() error { return m.err }

func (m *Model) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m *Model) Init() tea.Cmd {
	return m.tick()
}

// Update handles input events and advances the loop.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		w := msg.Width - statsWidth - 6
		m.compact = w < 20
		if m.compact {
			w = msg.Width - 2
		}
		h := msg.Height - 1
		if w > 0 && h > 0 {
			m.renderer.Resize(w, h)
		}
	case TickMsg:
		if err := m.loop.Frame(); err != nil {
			m.err = err
			log.Printf("stopping: %v", err)
			return m, tea.Quit
		}
		return m, m.tick()
	}
	return m, nil
}

// View renders the last presented canvas and the status panel.
func (m *Model) View() string {
	canvasView := canvasStyle.Render(m.frame)
	if m.compact {
		return canvasView
	}

	var s strings.Builder
	s.WriteString(headerStyle.Render("HOPALONG") + "\n")
	if m.info.Reset {
		s.WriteString(resetStyle.Render("RESET") + "\n\n")
	} else {
		s.WriteString("RUNNING\n\n")
	}

	cfg := m.loop.Config()
	st := m.loop.State()
	row := func(label, value string) {
		s.WriteString(labelStyle.Render(label) + valueStyle.Render(value) + "\n")
	}
	row("Frame", fmt.Sprintf("%d", st.Frame))
	row("a", fmt.Sprintf("%.4f", st.Params.A))
	row("b", fmt.Sprintf("%.4f", st.Params.B))
	row("c", fmt.Sprintf("%.4f", st.Params.C))
	row("Seed", st.Seed.String())
	row("Trail", fmt.Sprintf("%d/%d", len(st.History), cfg.Hist))
	row("Points", fmt.Sprintf("%d/%d", m.visible, m.info.Points))
	row("Resets", fmt.Sprintf("%d", m.resets))

	if len(m.radius) > 1 {
		chart := asciigraph.Plot(m.radius, asciigraph.Height(4), asciigraph.Width(statsWidth-10), asciigraph.Caption("orbit radius"))
		s.WriteString(graphStyle.Render(chart) + "\n")
	}

	s.WriteString(helpStyle.Render("─────────────────────\nQ:Quit  theme: " + m.theme.Name))
	statsView := statsStyle.Render(s.String())
	return lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsView)
}
