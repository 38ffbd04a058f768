package viz

import (
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/dragsim/internal/render"
	"github.com/san-kum/dragsim/internal/sim"
)

const (
	defaultCols    = 60
	defaultRows    = 24
	historyVisible = 10
	heightSamples  = 600
)

var fieldLabels = map[string]string{
	sim.FieldHeight: "Initial Height (m)",
	sim.FieldSpeed:  "Initial Velocity (m/s)",
	sim.FieldAngle:  "Launch Angle (deg)",
	sim.FieldDrag:   "Air Resistance (1/s)",
}

// TickMsg advances the run with the matching generation.
type TickMsg struct {
	Gen uint64
}

// Model holds the form, the active run and everything drawn from it.
type Model struct {
	inputs  [4]string
	focus   int
	surface sim.Surface
	period  time.Duration

	gen     uint64
	eng     *sim.Engine
	state   sim.State
	frame   sim.Frame
	history []sim.LogEntry
	heights []float64
	err     string

	cols, rows int
}

// NewModel fills the form from p and shows the launch point on surf.
func NewModel(p sim.Params, surf sim.Surface) Model {
	form := p.Form()
	m := Model{
		surface: surf,
		period:  sim.TickPeriod,
		cols:    defaultCols,
		rows:    defaultRows,
	}
	for i, f := range sim.FormFields {
		m.inputs[i] = form[f]
	}
	if surf.Validate() == nil {
		m.state = sim.Init(p, surf)
	}
	return m
}

// WithPeriod returns a copy of m that schedules ticks every d.
func (m Model) WithPeriod(d time.Duration) Model {
	if d > 0 {
		m.period = d
	}
	return m
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) tick(gen uint64) tea.Cmd {
	return tea.Tick(m.period, func(time.Time) tea.Msg { return TickMsg{Gen: gen} })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.cols = max(20, msg.Width-60)
		m.rows = max(10, msg.Height-4)
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyTab, tea.KeyDown:
			m.focus = (m.focus + 1) % len(m.inputs)
		case tea.KeyShiftTab, tea.KeyUp:
			m.focus = (m.focus + len(m.inputs) - 1) % len(m.inputs)
		case tea.KeyBackspace:
			if in := m.inputs[m.focus]; in != "" {
				r := []rune(in)
				m.inputs[m.focus] = string(r[:len(r)-1])
			}
		case tea.KeyCtrlU:
			m.inputs[m.focus] = ""
		case tea.KeyEnter:
			return m.start()
		case tea.KeyRunes, tea.KeySpace:
			m.inputs[m.focus] += string(msg.Runes)
		}
	case TickMsg:
		if msg.Gen != m.gen || m.eng == nil || m.eng.Done() {
			return m, nil
		}
		t := m.eng.Step()
		m.state = t.State
		m.frame = t.Frame
		m.heights = append(m.heights, t.Frame.Height)
		if len(m.heights) > heightSamples {
			m.heights = m.heights[1:]
		}
		if t.Log != nil {
			m.history = append(m.history, *t.Log)
		}
		if t.Terminal {
			return m, nil
		}
		return m, m.tick(m.gen)
	}
	return m, nil
}

// start parses the form and replaces the active run. Bad input leaves the
// active run untouched.
func (m Model) start() (tea.Model, tea.Cmd) {
	p, err := sim.ParseParams(m.inputs[0], m.inputs[1], m.inputs[2], m.inputs[3])
	if err == nil {
		var eng *sim.Engine
		if eng, err = sim.New(p, m.surface); err == nil {
			m.gen++
			m.eng = eng
			m.state = eng.State()
			m.frame = eng.Frame()
			m.history = nil
			m.heights = nil
			m.err = ""
			return m, m.tick(m.gen)
		}
	}
	m.err = describe(err)
	return m, nil
}

func describe(err error) string {
	var fe *sim.FieldError
	if errors.As(err, &fe) {
		return fmt.Sprintf("%s must be a number, got %q", fieldLabels[fe.Field], fe.Value)
	}
	if errors.Is(err, sim.ErrSurface) {
		return "drawing surface unavailable"
	}
	return err.Error()
}

func (m Model) status() string {
	switch {
	case m.eng == nil:
		return statusIdle.Render("READY")
	case m.eng.Done():
		return statusLanded.Render("LANDED")
	default:
		return statusRunning.Render("IN FLIGHT")
	}
}

func (m Model) View() string {
	scene := render.Build(m.state, m.surface)
	canvasView := canvasStyle.Render(render.Braille(scene, m.cols, m.rows).String())

	var s strings.Builder
	s.WriteString(headerStyle.Render("PROJECTILE WITH AIR RESISTANCE") + "\n")
	s.WriteString(m.status() + "\n\n")

	for i, f := range sim.FormFields {
		line := labelStyle.Render(fieldLabels[f]) + valueStyle.Render(m.inputs[i])
		if i == m.focus {
			line = activeFieldStyle.Render("> ") + line + activeFieldStyle.Render("_")
		} else {
			line = "  " + line
		}
		s.WriteString(line + "\n")
	}
	if m.err != "" {
		s.WriteString("\n" + errorStyle.Render(m.err) + "\n")
	}

	s.WriteString("\n" + valueStyle.Render(m.frame.TimeInfo()) + "\n")
	s.WriteString(valueStyle.Render(m.frame.VelocityInfo()) + "\n")
	s.WriteString(valueStyle.Render(m.frame.PositionInfo()) + "\n")

	if heights, ok := render.Series(m.heights); ok {
		chart := asciigraph.Plot(heights, asciigraph.Height(4), asciigraph.Width(40), asciigraph.Caption("Height (m)"))
		s.WriteString(graphStyle.Render(chart) + "\n")
	}

	s.WriteString("\nVELOCITY HISTORY\n")
	from := max(0, len(m.history)-historyVisible)
	for _, e := range m.history[from:] {
		s.WriteString(historyStyle.Render(e.String()) + "\n")
	}

	s.WriteString(helpStyle.Render("TAB/↑↓:Field  ENTER:Launch  CTRL+U:Clear  ESC:Quit"))
	return lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsStyle.Render(s.String()))
}

// Run starts the TUI on the alternate screen.
func Run(p sim.Params, surf sim.Surface) error {
	_, err := tea.NewProgram(NewModel(p, surf), tea.WithAltScreen()).Run()
	return err
}
