// Package live drives an interactive terminal replay of a cyclic test,
// stepping a material law through a loading protocol frame by frame.
package live

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/aperez/cyclab/internal/material"
	"github.com/aperez/cyclab/internal/protocol"
	"github.com/aperez/cyclab/internal/timeseries"
	"github.com/aperez/cyclab/internal/viz"
)

const (
	canvasWidth  = 60
	canvasHeight = 20
)

var (
	canvasStyle = lipgloss.NewStyle().Padding(1, 2)
	statsStyle  = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("240")).
			Padding(1, 2).Width(42)
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(2)
)

type TickMsg time.Time

// Model steps a material law along a protocol and renders the growing
// hysteresis loop.
type Model struct {
	law      material.Law
	series   timeseries.Series
	seq      *protocol.Sequence
	nPoints  int
	idx      int
	speed    int
	strain   []float64
	stress   []float64
	canvas   *viz.Canvas
	running  bool
	failed   bool
	done     bool
	playHead int
	showHelp bool
}

func NewModel(law material.Law, seq *protocol.Sequence, nPoints int) Model {
	law.Reset()
	return Model{
		law:      law,
		series:   timeseries.FromSequence(seq),
		seq:      seq,
		nPoints:  nPoints,
		speed:    8,
		strain:   make([]float64, 0, nPoints+1),
		stress:   make([]float64, 0, nPoints+1),
		canvas:   viz.NewCanvas(canvasWidth, canvasHeight),
		running:  true,
		playHead: -1,
	}
}

// Run blocks until the user quits the replay.
func Run(law material.Law, seq *protocol.Sequence, nPoints int) error {
	_, err := tea.NewProgram(NewModel(law, seq, nPoints)).Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return tea.Tick(time.Second/30, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.reset()
		case "[":
			m.scrub(-m.speed)
		case "]":
			m.scrub(m.speed)
		case "up", "k":
			if m.speed < 64 {
				m.speed *= 2
			}
		case "down", "j":
			if m.speed > 1 {
				m.speed /= 2
			}
		case "?":
			m.showHelp = !m.showHelp
		}
	case TickMsg:
		if m.running && m.playHead == -1 {
			for i := 0; i < m.speed; i++ {
				m.step()
			}
		}
		return m, tea.Tick(time.Second/30, func(t time.Time) tea.Msg { return TickMsg(t) })
	}
	return m, nil
}

// step advances the replay by one sample.
func (m *Model) step() {
	if m.failed || m.done || m.idx > m.nPoints {
		return
	}

	t := float64(m.idx) / float64(m.nPoints)
	strain := m.series.At(t)

	stress, _, err := m.law.Trial(strain)
	if err != nil {
		m.failed = true
		m.running = false
		return
	}
	m.law.Commit()

	m.strain = append(m.strain, strain)
	m.stress = append(m.stress, stress)
	m.idx++
	if m.idx > m.nPoints {
		m.done = true
		m.running = false
	}
}

// scrub moves the playback position through recorded history.
func (m *Model) scrub(delta int) {
	if len(m.strain) == 0 {
		return
	}
	if m.playHead == -1 {
		m.playHead = len(m.strain)
		m.running = false
	}
	m.playHead += delta
	if m.playHead < 2 {
		m.playHead = 2
	}
	if m.playHead >= len(m.strain) {
		m.playHead = -1
	}
}

func (m *Model) reset() {
	m.law.Reset()
	m.idx = 0
	m.strain = m.strain[:0]
	m.stress = m.stress[:0]
	m.failed = false
	m.done = false
	m.playHead = -1
	m.running = true
}

func (m Model) View() string {
	head := len(m.strain)
	if m.playHead != -1 && m.playHead < head {
		head = m.playHead
	}

	m.canvas.Clear()
	if head > 1 {
		m.canvas.PlotXY(m.strain[:head], m.stress[:head])
	}
	canvasView := canvasStyle.Render(m.canvas.String())

	var s strings.Builder
	s.WriteString(headerStyle.Render(strings.ToUpper(m.law.Name())) + "\n")
	s.WriteString(m.status() + "\n\n")

	if head > 1 {
		chart := asciigraph.Plot(m.stress[:head],
			asciigraph.Height(4),
			asciigraph.Width(30),
			asciigraph.Caption("stress history"),
		)
		s.WriteString(graphStyle.Render(chart) + "\n\n")
	}

	var strain, stress float64
	if head > 0 {
		strain = m.strain[head-1]
		stress = m.stress[head-1]
	}
	s.WriteString(labelStyle.Render("Protocol") + valueStyle.Render(m.seq.Kind.String()) + "\n")
	s.WriteString(labelStyle.Render("Strain") + valueStyle.Render(fmt.Sprintf("%.5f", strain)) + "\n")
	s.WriteString(labelStyle.Render("Stress") + valueStyle.Render(fmt.Sprintf("%.2f", stress)) + "\n")
	s.WriteString(labelStyle.Render("Speed") + valueStyle.Render(fmt.Sprintf("%dx", m.speed)) + "\n")

	progress := float64(m.idx) / float64(m.nPoints)
	s.WriteString("\n" + viz.ProgressBar(progress, 30) + "\n")

	s.WriteString(helpStyle.Render("\n─────────────────────\nSP:Pause R:Reset Q:Quit\n[ ]:Scrub ↑↓:Speed ?:Help"))

	statsView := statsStyle.Render(s.String())
	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsView)

	if m.showHelp {
		return `
╔══════════════════════════════════════╗
║          KEYBOARD SHORTCUTS          ║
╠══════════════════════════════════════╣
║  Space    - Pause/Resume replay      ║
║  R        - Reset to start           ║
║  Q        - Quit                     ║
║  Up/K     - Double replay speed      ║
║  Down/J   - Halve replay speed       ║
║  [        - Scrub backward           ║
║  ]        - Scrub forward            ║
║  ?        - Toggle this help         ║
╚══════════════════════════════════════╝
` + "\n\n" + mainView
	}
	return mainView
}

func (m Model) status() string {
	switch {
	case m.failed:
		return viz.StatusFailed.Render("MATERIAL FAILED")
	case m.playHead != -1:
		return viz.StatusPaused.Render(fmt.Sprintf("SCRUB (%d/%d)", m.playHead, len(m.strain)))
	case m.done:
		return viz.StatusRunning.Render("COMPLETE")
	case !m.running:
		return viz.StatusPaused.Render("PAUSED")
	default:
		return viz.StatusRunning.Render("RUNNING")
	}
}
