package viz

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/dampsim/spring"
)

const (
	trackWidth    = 60
	traceWidth    = 30
	traceHeight   = 6
	traceCapacity = traceWidth * 2
	frequencyStep = 0.5
	dampingStep   = 0.05
)

type param int

const (
	paramFrequency param = iota
	paramDamping
)

type TickMsg time.Time

// Model animates a collection of springs sharing one config. Every frame
// applies the same precomputed time step to all springs.
type Model struct {
	cfg    spring.Config[float64]
	coll   *spring.Collection[float64]
	step   spring.TimeStep[float64]
	fps    int
	dt     float64
	t      float64
	span   float64
	initEq []float64

	running  bool
	selected param
	trace    []float64
	canvas   *Canvas
	keys     keyMap
	help     help.Model
	err      error
}

// NewModel builds a live view with one spring per equilibrium, each starting
// at rest at the origin.
func NewModel(cfg spring.Config[float64], equilibriums []float64, fps int) (Model, error) {
	if fps <= 0 {
		fps = 60
	}
	if len(equilibriums) == 0 {
		equilibriums = []float64{1}
	}
	dt := 1 / float64(fps)
	step, err := spring.NewTimeStep(cfg.Params(), dt)
	if err != nil {
		return Model{}, err
	}

	span := 1.0
	for _, eq := range equilibriums {
		span = math.Max(span, math.Abs(eq))
	}

	m := Model{
		cfg:     cfg,
		step:    step,
		fps:     fps,
		dt:      dt,
		span:    span * 2,
		initEq:  append([]float64(nil), equilibriums...),
		running: true,
		trace:   make([]float64, 0, traceCapacity),
		canvas:  NewCanvas(traceWidth, traceHeight),
		keys:    defaultKeyMap(),
		help:    help.New(),
	}
	m.reset()
	return m, nil
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

// Update handles input events and advances the springs one frame per tick.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.retarget):
			m.retarget()
		case key.Matches(msg, m.keys.pause):
			m.running = !m.running
		case key.Matches(msg, m.keys.reset):
			m.reset()
		case key.Matches(msg, m.keys.next):
			m.selected = (m.selected + 1) % 2
		case key.Matches(msg, m.keys.up):
			m.adjust(1)
		case key.Matches(msg, m.keys.down):
			m.adjust(-1)
		case key.Matches(msg, m.keys.help):
			m.help.ShowAll = !m.help.ShowAll
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
	m.coll.UpdateWith(m.step)
	m.t += m.dt

	m.trace = append(m.trace, m.coll.Springs[0].Position)
	if len(m.trace) > traceCapacity {
		m.trace = m.trace[1:]
	}
}

// retarget flips every equilibrium through the origin. Springs resting at a
// zero equilibrium are sent to one.
func (m *Model) retarget() {
	for i := range m.coll.Springs {
		eq := -m.coll.Springs[i].Equilibrium
		if eq == 0 {
			eq = 1
		}
		m.coll.Springs[i].Equilibrium = eq
	}
}

func (m *Model) reset() {
	m.coll = spring.NewCollection(m.cfg.Params(), m.initEq...)
	for i := range m.coll.Springs {
		m.coll.Springs[i].Position = 0
	}
	m.t = 0
	m.trace = m.trace[:0]
}

func (m *Model) adjust(dir float64) {
	omega, zeta := m.cfg.AngularFrequency(), m.cfg.DampingRatio()
	switch m.selected {
	case paramFrequency:
		omega = math.Max(0, omega+dir*frequencyStep)
	case paramDamping:
		zeta = math.Max(0, zeta+dir*dampingStep)
	}

	cfg, err := spring.NewConfig(omega, zeta)
	if err != nil {
		m.err = err
		return
	}
	step, err := spring.NewTimeStep(cfg.Params(), m.dt)
	if err != nil {
		m.err = err
		return
	}
	m.cfg, m.step, m.err = cfg, step, nil
}

// track renders one spring as a horizontal rail with its equilibrium and
// current position marked.
func (m Model) track(s spring.Spring[float64]) string {
	col := func(v float64) int {
		c := int((v/m.span + 0.5) * float64(trackWidth-1))
		return max(0, min(trackWidth-1, c))
	}
	eqCol, posCol := col(s.Equilibrium), col(s.Position)

	var b strings.Builder
	for i := 0; i < trackWidth; i++ {
		switch i {
		case posCol:
			b.WriteString(massStyle.Render("●"))
		case eqCol:
			b.WriteString(targetStyle.Render("┊"))
		default:
			b.WriteString(targetStyle.Render("─"))
		}
	}
	return b.String()
}

// View renders the tracks, the trace of the first spring and the parameters.
func (m Model) View() string {
	var s strings.Builder
	s.WriteString(headerStyle.Render("DAMPED SPRINGS") + "\n")

	status := runningStyle.Render("RUNNING")
	if !m.running {
		status = pausedStyle.Render("PAUSED")
	}
	s.WriteString(status + "\n\n")

	for _, sp := range m.coll.Springs {
		s.WriteString(m.track(sp) + "\n")
	}

	m.canvas.Clear()
	m.canvas.Trace(m.trace, -m.span/2, m.span/2)
	tracePanel := panelStyle.Render(traceStyle.Render(m.canvas.String()))

	var stats strings.Builder
	stats.WriteString(labelStyle.Render("Time") + valueStyle.Render(fmt.Sprintf("%.2fs", m.t)) + "\n")
	stats.WriteString(labelStyle.Render("Regime") + valueStyle.Render(m.cfg.Params().Regime().String()) + "\n\n")
	params := []struct {
		name string
		val  float64
	}{
		{"omega", m.cfg.AngularFrequency()},
		{"zeta", m.cfg.DampingRatio()},
	}
	for i, p := range params {
		line := fmt.Sprintf("%-6s %.2f", p.name, p.val)
		if param(i) == m.selected {
			stats.WriteString(activeParamStyle.Render("> "+line) + "\n")
		} else {
			stats.WriteString("  " + valueStyle.Render(line) + "\n")
		}
	}
	if m.err != nil {
		stats.WriteString("\n" + errorStyle.Render(m.err.Error()) + "\n")
	}

	s.WriteString("\n" + lipgloss.JoinHorizontal(lipgloss.Top, tracePanel, panelStyle.Render(stats.String())) + "\n")
	s.WriteString(m.help.View(m.keys))
	return s.String()
}

// Run starts the live view and blocks until the user quits.
func Run(cfg spring.Config[float64], equilibriums []float64, fps int) error {
	m, err := NewModel(cfg, equilibriums, fps)
	if err != nil {
		return err
	}
	_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
