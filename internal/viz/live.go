// Package viz renders the simulation live in the terminal: a top-down
// braille-dot view of the disk with an energy sparkline alongside.
package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/orbitsim/internal/engine"
)

const (
	canvasWidth     = 60
	canvasHeight    = 24
	historyCapacity = 300
)

var (
	canvasStyle = lipgloss.NewStyle().Padding(1, 2)
	statsStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(1, 2).Width(42)
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

type TickMsg time.Time

// Model drives the live view: it owns the session and advances it a
// fixed number of steps per frame, reading state only between steps.
type Model struct {
	session       *engine.Session
	dt            float64
	stepsPerFrame int
	fps           int
	viewSpan      float64 // world units across the canvas
	canvas        *Canvas
	energyHistory []float64
	running       bool
}

func NewModel(s *engine.Session, dt float64, viewSpan float64, stepsPerFrame, fps int) Model {
	if stepsPerFrame < 1 {
		stepsPerFrame = 1
	}
	if fps < 1 {
		fps = 30
	}
	return Model{
		session:       s,
		dt:            dt,
		stepsPerFrame: stepsPerFrame,
		fps:           fps,
		viewSpan:      viewSpan,
		canvas:        NewCanvas(canvasWidth, canvasHeight),
		energyHistory: make([]float64, 0, historyCapacity),
		running:       true,
	}
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "+", "=":
			m.viewSpan *= 0.8
		case "-":
			m.viewSpan *= 1.25
		}
		return m, nil

	case TickMsg:
		if m.running {
			for i := 0; i < m.stepsPerFrame; i++ {
				m.session.Advance(m.dt)
			}
			energy := m.session.Gravity().Energy(m.session.Population())
			m.energyHistory = append(m.energyHistory, energy)
			if len(m.energyHistory) > historyCapacity {
				m.energyHistory = m.energyHistory[1:]
			}
		}
		return m, m.tick()
	}

	return m, nil
}

func (m Model) View() string {
	m.canvas.Clear()

	// Top-down projection: world x,y onto the dot grid, origin centered.
	dotsW := float64(canvasWidth * 2)
	dotsH := float64(canvasHeight * 4)
	pop := m.session.Population()
	for i := range pop.Pos {
		px := int((pop.Pos[i].X/m.viewSpan + 0.5) * dotsW)
		py := int((pop.Pos[i].Y/m.viewSpan + 0.5) * dotsH)
		m.canvas.Set(px, py)
	}
	// Central mass marker.
	m.canvas.Set(int(dotsW/2), int(dotsH/2))

	grav := m.session.Gravity()
	var stats strings.Builder
	stats.WriteString(headerStyle.Render("orbitsim") + "\n")
	row := func(label, value string) {
		stats.WriteString(labelStyle.Render(label) + valueStyle.Render(value) + "\n")
	}
	row("bodies", fmt.Sprintf("%d", m.session.Bodies()))
	row("time", fmt.Sprintf("%.3f", m.session.Time()))
	row("steps", fmt.Sprintf("%d", m.session.Steps()))
	row("dt", fmt.Sprintf("%.5f", m.dt))
	row("view span", fmt.Sprintf("%.1f", m.viewSpan))
	if len(m.energyHistory) > 0 {
		row("energy", fmt.Sprintf("%.4f", m.energyHistory[len(m.energyHistory)-1]))
	}
	row("momentum", fmt.Sprintf("%.4f", grav.Momentum(m.session.Population()).Norm()))
	row("ang. mom.", fmt.Sprintf("%.4f", grav.AngularMomentum(m.session.Population())))

	if len(m.energyHistory) > 1 {
		graph := asciigraph.Plot(m.energyHistory,
			asciigraph.Height(6),
			asciigraph.Width(36),
			asciigraph.Caption("total energy"),
		)
		stats.WriteString(graphStyle.Render(graph))
	}

	stats.WriteString(helpStyle.Render("space pause | +/- zoom | q quit"))

	return lipgloss.JoinHorizontal(lipgloss.Top,
		canvasStyle.Render(m.canvas.String()),
		statsStyle.Render(stats.String()),
	)
}

// Run starts the live view and blocks until the user quits.
func Run(s *engine.Session, dt, viewSpan float64, stepsPerFrame, fps int) error {
	p := tea.NewProgram(NewModel(s, dt, viewSpan, stepsPerFrame, fps))
	_, err := p.Run()
	return err
}
