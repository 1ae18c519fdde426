package viz

import (
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/slopefield/internal/field"
	"github.com/san-kum/slopefield/internal/flow"
	"github.com/san-kum/slopefield/internal/host"
)

const (
	width           = 80
	height          = 24
	historyCapacity = 120
	dragDistance    = 1.0
)

var (
	canvasStyle = lipgloss.NewStyle().Padding(1, 2)
	statsStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(1, 2).Width(40)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(2)
)

type TickMsg time.Time

// Model is the live view. Every TickMsg advances the session's scheduler by
// one frame while running.
type Model struct {
	session      *host.Session
	frameRate    int
	fieldLayer   *Canvas
	trailLayer   *Canvas
	sealedLayer  *Canvas
	markerLayer  *Canvas
	view         Viewport
	running      bool
	showHelp     bool
	speedHistory []float64
	notice       string
}

// NewModel prepares the layers and draws the static direction field once.
func NewModel(s *host.Session) Model {
	cfg := s.Config()
	fieldLayer := NewCanvas(width, height)
	view := NewViewport(cfg.Domain, fieldLayer)
	DrawField(fieldLayer, view, field.Sample(s.Field(), cfg.Grid()), cfg.Glyphs.Length)

	return Model{
		session:      s,
		frameRate:    cfg.FrameRate,
		fieldLayer:   fieldLayer,
		trailLayer:   NewCanvas(width, height),
		sealedLayer:  NewCanvas(width, height),
		markerLayer:  NewCanvas(width, height),
		view:         view,
		running:      true,
		speedHistory: make([]float64, 0, historyCapacity),
	}
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.frameRate), func(t time.Time) tea.Msg { return TickMsg(t) })
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
		case ".":
			if !m.running {
				m.advance()
			}
		case "up", "k":
			m.drag(0, dragDistance)
		case "down", "j":
			m.drag(0, -dragDistance)
		case "left", "h":
			m.drag(-dragDistance, 0)
		case "right", "l":
			m.drag(dragDistance, 0)
		case "d":
			if m.session.DeleteActiveSegment() {
				m.notice = "trail deleted"
			}
		case "x":
			m.session.RemoveMarker()
			m.notice = "marker removed"
		case "r":
			m.session.Reset()
			m.speedHistory = m.speedHistory[:0]
			m.notice = "reset"
		case "t":
			names := ThemeNames()
			for i, name := range names {
				if name == CurrentTheme.Name {
					SetTheme(names[(i+1)%len(names)])
					break
				}
			}
		case "?":
			m.showHelp = !m.showHelp
		}
	case TickMsg:
		if m.running {
			m.advance()
		}
		return m, m.tick()
	}
	return m, nil
}

func (m *Model) advance() {
	m.session.Step()
	last := m.session.Last()
	if last.Kind == flow.Advanced {
		m.speedHistory = append(m.speedHistory, last.Speed)
		if len(m.speedHistory) > historyCapacity {
			m.speedHistory = m.speedHistory[1:]
		}
	}
}

func (m *Model) drag(dx, dy float64) {
	if err := m.session.NudgeMarker(dx, dy); errors.Is(err, flow.ErrMissingMarker) {
		m.notice = "no marker (press r)"
	}
}

func (m *Model) draw() {
	cfg := m.session.Config()
	st := m.session.State()

	m.trailLayer.Clear()
	m.sealedLayer.Clear()
	m.markerLayer.Clear()

	for _, seg := range st.Trails.Segments() {
		layer := m.trailLayer
		if seg.Sealed() {
			layer = m.sealedLayer
		}
		DrawTrail(layer, m.view, seg, cfg.Trail.Thickness)
	}
	if st.Marker != nil {
		DrawMarker(m.markerLayer, m.view, st.Marker.Pos, cfg.Marker.Radius)
	}
}

// View renders the canvas and the stats panel.
func (m Model) View() string {
	m.draw()
	theme := CurrentTheme
	canvas := Compose(
		Layer{Canvas: m.fieldLayer, Color: theme.Muted},
		Layer{Canvas: m.sealedLayer, Color: theme.Secondary},
		Layer{Canvas: m.trailLayer, Color: theme.Primary},
		Layer{Canvas: m.markerLayer, Color: theme.Accent},
	)
	canvasView := canvasStyle.Render(canvas)

	cfg := m.session.Config()
	st := m.session.State()
	stats := m.session.Stats()

	var s strings.Builder
	title := lipgloss.NewStyle().Bold(true).Foreground(theme.Secondary)
	s.WriteString(title.Render("dy/dx = "+formula(cfg.Field)) + "\n")

	status := lipgloss.NewStyle().Bold(true).Foreground(theme.Success).Render("RUNNING")
	if !m.running {
		status = lipgloss.NewStyle().Bold(true).Foreground(theme.Warning).Render("PAUSED")
	}
	s.WriteString(status + "\n\n")

	if len(m.speedHistory) > 1 {
		chart := asciigraph.Plot(m.speedHistory, asciigraph.Height(4), asciigraph.Width(28), asciigraph.Caption("speed"))
		s.WriteString(graphStyle.Render(chart) + "\n\n")
	}

	row := func(label, value string) {
		s.WriteString(labelStyle.Render(label) + valueStyle.Render(value) + "\n")
	}
	row("Tick", fmt.Sprintf("%d", st.Ticks()))
	if st.Marker != nil {
		row("Position", fmt.Sprintf("(%.3f, %.3f)", st.Marker.Pos[0], st.Marker.Pos[1]))
	} else {
		row("Position", "-")
	}
	row("Speed", fmt.Sprintf("%.4f", stats.LastSpeed))
	row("Trails", fmt.Sprintf("%d (%d pts)", st.Trails.Len(), st.Trails.Points()))
	if seg, ok := st.Trails.Active(); ok {
		row("Active", fmt.Sprintf("#%d", seg.ID()))
	} else {
		row("Active", "-")
	}
	row("Drags", fmt.Sprintf("%d", stats.Perturbed))
	row("dt / T", fmt.Sprintf("%.3f / %.2f", cfg.Dt, cfg.Threshold))
	if stats.Faults > 0 {
		warn := lipgloss.NewStyle().Foreground(theme.Error)
		row("Faults", warn.Render(fmt.Sprintf("%d", stats.Faults)))
	}
	if m.notice != "" {
		s.WriteString("\n" + lipgloss.NewStyle().Foreground(theme.Accent).Render(m.notice) + "\n")
	}

	s.WriteString(helpStyle.Render("\n─────────────────────\nSP:Pause .:Step R:Reset Q:Quit\n←↑↓→:Drag D:Del trail X:Del marker\nT:Theme ?:Help"))
	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsStyle.Render(s.String()))

	if m.showHelp {
		return `
╔══════════════════════════════════════╗
║          KEYBOARD SHORTCUTS          ║
╠══════════════════════════════════════╣
║  Space    - Pause/Resume             ║
║  .        - Single tick (paused)     ║
║  Arrows   - Drag marker one unit     ║
║  D        - Delete active trail      ║
║  X        - Remove marker            ║
║  R        - Reset session            ║
║  T        - Cycle themes             ║
║  Q        - Quit                     ║
║  ?        - Toggle this help         ║
╚══════════════════════════════════════╝
` + "\n\n" + mainView
	}
	return mainView
}

func formula(name string) string {
	for _, e := range field.Builtins() {
		if e.Name == name {
			return e.Formula
		}
	}
	return name
}

// Run starts the live view on the terminal and blocks until the user quits.
func Run(s *host.Session) error {
	s.Install()
	defer s.Uninstall()
	_, err := tea.NewProgram(NewModel(s), tea.WithAltScreen()).Run()
	return err
}
