package viz

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/dpend/internal/audio"
	"github.com/san-kum/dpend/internal/export"
	"github.com/san-kum/dpend/internal/metrics"
	"github.com/san-kum/dpend/internal/pendulum"
	"github.com/san-kum/dpend/internal/sim"
)

const (
	defaultWidth    = 60
	defaultHeight   = 24
	statsWidth      = 44
	historyCapacity = 300
)

var (
	canvasStyle = lipgloss.NewStyle().Padding(1, 2)
	statsStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(1, 2).Width(statsWidth)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

type TickMsg time.Time

// Options configure the live view. Zero values select defaults.
type Options struct {
	FPS         int
	Dt          float64
	TrailLength int
	Theme       string
	SnapshotDir string
	Title       string
	// Synth, if set, follows the pendulum on every tick.
	Synth *audio.Synth
}

// Model is the Bubble Tea model of the live view. Every tick advances the
// simulator by exactly one step of Dt and redraws.
type Model struct {
	sim      *sim.Simulator
	trail    *sim.Trail
	drift    *metrics.EnergyDrift
	scene    *Scene
	opts     Options
	interval time.Duration

	width, height int
	theme         int
	running       bool
	diverged      bool
	energy        []float64
	status        string
}

func NewModel(s *sim.Simulator, opts Options) Model {
	if opts.FPS <= 0 {
		opts.FPS = 60
	}
	if opts.Dt <= 0 {
		opts.Dt = 1 / float64(opts.FPS)
	}
	if opts.SnapshotDir == "" {
		opts.SnapshotDir = "."
	}
	if opts.Title == "" {
		opts.Title = "double pendulum"
	}

	m := Model{
		sim:      s,
		trail:    sim.NewTrail(opts.TrailLength),
		drift:    metrics.NewEnergyDrift(pendulum.NewModel(s.Params())),
		opts:     opts,
		interval: time.Second / time.Duration(opts.FPS),
		width:    defaultWidth,
		height:   defaultHeight,
		theme:    themeIndex(opts.Theme),
		running:  true,
		energy:   make([]float64, 0, historyCapacity),
	}
	m.scene = NewScene(m.width, m.height, s.Params().Reach())
	m.drift.Observe(s.State().Vector(), s.Time())
	m.trail.Push(s.Positions().Bob2)
	return m
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case " ":
			if !m.diverged {
				m.running = !m.running
			}
		case "r":
			m.reset()
		case "t":
			m.theme = (m.theme + 1) % len(Themes)
		case "s":
			m.status = m.saveSnapshot()
		}
	case tea.WindowSizeMsg:
		w := max(20, msg.Width-statsWidth-8)
		h := max(10, msg.Height-4)
		if w != m.width || h != m.height {
			m.width, m.height = w, h
			m.scene = NewScene(w, h, m.sim.Params().Reach())
		}
	case TickMsg:
		if m.running {
			m.step()
		}
		m.sound()
		return m, m.tick()
	}
	return m, nil
}

// step advances the simulation by one frame.
func (m *Model) step() {
	if err := m.sim.Advance(m.opts.Dt); err != nil {
		m.running = false
		m.status = err.Error()
		return
	}

	st := m.sim.State()
	if !st.IsFinite() {
		m.running = false
		m.diverged = true
		m.status = fmt.Sprintf("diverged at t=%.2fs, press r to reset", m.sim.Time())
		return
	}

	m.trail.Push(m.sim.Positions().Bob2)
	m.drift.Observe(st.Vector(), m.sim.Time())
	m.energy = append(m.energy, m.sim.Energy())
	if len(m.energy) > historyCapacity {
		m.energy = m.energy[1:]
	}
}

func (m *Model) sound() {
	if m.opts.Synth == nil {
		return
	}
	if m.running {
		m.opts.Synth.Update(m.sim.State())
	} else {
		m.opts.Synth.Update(pendulum.State{})
	}
}

func (m *Model) reset() {
	m.sim.Reset()
	m.trail.Reset()
	m.drift.Reset()
	m.drift.Observe(m.sim.State().Vector(), 0)
	m.trail.Push(m.sim.Positions().Bob2)
	m.energy = m.energy[:0]
	m.running = true
	m.diverged = false
	m.status = ""
}

func (m Model) saveSnapshot() string {
	theme := Themes[m.theme]
	m.scene.Draw(m.sim.Positions(), m.trail.Points())
	svg := export.BrailleToSVG(m.scene.Grid(), 3, string(theme.Arm), string(theme.Background))

	name := fmt.Sprintf("dpend-%06d.svg", m.sim.Steps())
	path := filepath.Join(m.opts.SnapshotDir, name)
	if err := os.WriteFile(path, []byte(svg), 0644); err != nil {
		return "snapshot failed: " + err.Error()
	}
	return "saved " + path
}

func (m Model) View() string {
	theme := Themes[m.theme]
	m.scene.Draw(m.sim.Positions(), m.trail.Points())
	canvasView := canvasStyle.Background(theme.Background).Render(m.scene.Render(theme))

	accent := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)
	var s strings.Builder
	s.WriteString(accent.Render(strings.ToUpper(m.opts.Title)) + "\n")

	status := "RUNNING"
	switch {
	case m.diverged:
		status = lipgloss.NewStyle().Foreground(theme.Warning).Bold(true).Render("DIVERGED")
	case !m.running:
		status = "PAUSED"
	}
	s.WriteString(status + "\n\n")

	if len(m.energy) > 1 {
		chart := asciigraph.Plot(m.energy,
			asciigraph.Height(4),
			asciigraph.Width(30),
			asciigraph.Precision(3),
			asciigraph.Caption("Energy (J)"))
		s.WriteString(lipgloss.NewStyle().Foreground(theme.Trail).Render(chart) + "\n\n")
	}

	st := m.sim.State()
	row := func(label, value string) {
		s.WriteString(labelStyle.Render(label) + valueStyle.Render(value) + "\n")
	}
	row("Time", fmt.Sprintf("%.2fs", m.sim.Time()))
	row("Steps", fmt.Sprintf("%d", m.sim.Steps()))
	row("θ1 / θ2", fmt.Sprintf("%+.3f / %+.3f", st.Theta1, st.Theta2))
	row("ω1 / ω2", fmt.Sprintf("%+.3f / %+.3f", st.Omega1, st.Omega2))
	row("Energy", fmt.Sprintf("%.4f J", m.sim.Energy()))
	row("Drift", fmt.Sprintf("%.2e", m.drift.Current()))
	row("Scheme", fmt.Sprintf("%s  dt=%.4f", m.sim.Integrator(), m.opts.Dt))
	row("Theme", theme.Name)

	if m.status != "" {
		s.WriteString("\n" + lipgloss.NewStyle().Foreground(theme.Muted).Render(m.status) + "\n")
	}
	s.WriteString(helpStyle.Render("SP:Pause R:Reset T:Theme\nS:Snapshot Q/Esc:Quit"))

	return lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsStyle.Render(s.String()))
}

// Run shows m full screen until the user quits.
func Run(m tea.Model) error {
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
