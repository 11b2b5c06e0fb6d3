package viz

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/orbitsim/internal/body"
	"github.com/san-kum/orbitsim/internal/metrics"
	"github.com/san-kum/orbitsim/internal/sim"
)

const (
	width           = 80
	height          = 30
	historyCapacity = 600
	trailStride     = 5
	maxStepsPerTick = 64
)

type TickMsg time.Time

// Model drives a simulator from bubbletea ticks and draws the top-down view.
type Model struct {
	sim           *sim.Simulator
	title         string
	fps           int
	canvas        *Canvas
	camera        *Camera
	drift         *metrics.EnergyDrift
	energyHistory []float64
	stepsPerFrame int
	running       bool
	showTrails    bool
	theme         int
	styles        styles
}

// NewModel frames the camera so the outermost body fits the canvas.
func NewModel(s *sim.Simulator, title string, fps int) Model {
	if fps <= 0 {
		fps = 60
	}
	drift := metrics.NewEnergyDrift()
	drift.Observe(s.World())
	return Model{
		sim:           s,
		title:         title,
		fps:           fps,
		canvas:        NewCanvas(width, height),
		camera:        NewCamera(sceneExtent(s)),
		drift:         drift,
		energyHistory: make([]float64, 0, historyCapacity),
		stepsPerFrame: 1,
		running:       true,
		showTrails:    true,
		styles:        newStyles(themes[0]),
	}
}

func sceneExtent(s *sim.Simulator) float32 {
	center := s.Star().Position()
	extent := s.Star().Radius() * 2
	for _, b := range s.Bodies() {
		d := b.Position().Sub(center).Len() + b.Radius()
		if d > extent {
			extent = d
		}
	}
	return extent * 1.1
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

// Update handles input events and steps the simulation.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "n":
			if !m.running {
				m.step()
			}
		case "w":
			m.camera.Pan(0, -1)
		case "s":
			m.camera.Pan(0, 1)
		case "a":
			m.camera.Pan(-1, 0)
		case "d":
			m.camera.Pan(1, 0)
		case "up":
			m.camera.Tilt(0.1)
		case "down":
			m.camera.Tilt(-0.1)
		case "left":
			m.camera.Turn(-0.1)
		case "right":
			m.camera.Turn(0.1)
		case "+", "=":
			m.camera.ZoomIn()
		case "-", "_":
			m.camera.ZoomOut()
		case "[":
			if m.stepsPerFrame > 1 {
				m.stepsPerFrame /= 2
			}
		case "]":
			if m.stepsPerFrame < maxStepsPerTick {
				m.stepsPerFrame *= 2
			}
		case "r":
			m.showTrails = !m.showTrails
		case "t":
			m.theme = (m.theme + 1) % len(themes)
			m.styles = newStyles(themes[m.theme])
		}
	case TickMsg:
		if m.running {
			for i := 0; i < m.stepsPerFrame; i++ {
				m.step()
			}
		}
		return m, m.tick()
	}
	return m, nil
}

func (m *Model) step() {
	m.sim.Step()
	m.drift.Observe(m.sim.World())
	m.energyHistory = append(m.energyHistory, m.drift.Current())
	if len(m.energyHistory) > historyCapacity {
		m.energyHistory = m.energyHistory[1:]
	}
}

// draw rasterizes the current world onto the canvas.
func (m *Model) draw() {
	m.canvas.Clear()
	w, h := m.canvas.Dots()
	scale := m.camera.Scale(w, h)

	all := append([]*body.Body{m.sim.Star()}, m.sim.Bodies()...)
	if m.showTrails {
		for _, b := range all {
			m.drawTrail(b.Trail(), w, h)
		}
	}
	for _, b := range all {
		x, y, ok := m.camera.Project(b.Position(), w, h)
		if !ok {
			continue
		}
		m.canvas.FillDisc(x, y, int(b.Radius()*scale))
	}
}

func (m *Model) drawTrail(t *body.Trail, w, h int) {
	var px, py int
	have := false
	t.Each(func(i int, p mgl32.Vec3) {
		if i%trailStride != 0 && i != t.Len()-1 {
			return
		}
		x, y, ok := m.camera.Project(p, w, h)
		if have && ok {
			m.canvas.DrawLine(px, py, x, y)
		}
		px, py, have = x, y, ok
	})
}

func (m Model) View() string {
	m.draw()
	st := m.styles

	state := "running"
	if !m.running {
		state = st.warn.Render("paused")
	}

	var stats strings.Builder
	stats.WriteString(st.header.Render(strings.ToUpper(m.title)))
	stats.WriteString("\n")
	row := func(label, value string) {
		stats.WriteString(fmt.Sprintf("%s %s\n", st.label.Render(label), st.value.Render(value)))
	}
	row("Tick", fmt.Sprintf("%d", m.sim.Tick()))
	row("State", state)
	row("Order", m.sim.Config().Order.String())
	row("Star", fixedLabel(m.sim.Config().StarIsFixed))
	row("Bodies", fmt.Sprintf("%d", len(m.sim.Bodies())))
	row("Steps/fr", fmt.Sprintf("%d", m.stepsPerFrame))
	row("Zoom", fmt.Sprintf("%.2fx", m.camera.Zoom))
	row("Energy", fmt.Sprintf("%.4g", m.drift.Current()))
	row("Drift", fmt.Sprintf("%.3f%%", m.drift.Value()*100))
	if n := len(m.sim.Overlaps()); n > 0 {
		row("Overlaps", st.warn.Render(fmt.Sprintf("%d", n)))
	}
	row("Theme", themes[m.theme].Name)

	if len(m.energyHistory) > 1 && !flat(m.energyHistory) {
		plot := asciigraph.Plot(m.energyHistory, asciigraph.Height(6), asciigraph.Width(34), asciigraph.Caption("energy"))
		stats.WriteString(st.graph.Render(plot))
		stats.WriteString("\n")
	}

	stats.WriteString(st.help.Render("space pause  n step  wasd pan\narrows tilt/turn  +/- zoom\n[ ] speed  r trails  t theme  q quit"))

	return lipgloss.JoinHorizontal(lipgloss.Top, st.canvas.Render(m.canvas.String()), st.stats.Render(stats.String()))
}

func fixedLabel(fixed bool) string {
	if fixed {
		return "fixed"
	}
	return "free"
}

func flat(data []float64) bool {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range data {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	return hi-lo == 0 || math.IsInf(hi-lo, 0) || math.IsNaN(hi-lo)
}

// Run shows the simulator in the alternate screen until the user quits.
func Run(s *sim.Simulator, title string, fps int) error {
	p := tea.NewProgram(NewModel(s, title, fps), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
