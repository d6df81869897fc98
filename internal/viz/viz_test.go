package viz

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/dampsim/internal/sim"
	"github.com/san-kum/dampsim/spring"
)

func newTestModel(t *testing.T) Model {
	t.Helper()
	cfg, err := spring.NewConfig(5.0, 0.5)
	require.NoError(t, err)
	m, err := NewModel(cfg, []float64{1, -1}, 30)
	require.NoError(t, err)
	return m
}

func send(m Model, msg tea.Msg) Model {
	next, _ := m.Update(msg)
	return next.(Model)
}

func TestModelTickAdvances(t *testing.T) {
	m := newTestModel(t)
	assert.Equal(t, 0.0, m.coll.Springs[0].Position)

	m = send(m, TickMsg(time.Now()))
	assert.Greater(t, m.coll.Springs[0].Position, 0.0)
	assert.Less(t, m.coll.Springs[1].Position, 0.0)
	assert.InDelta(t, 1.0/30, m.t, 1e-12)
	assert.Len(t, m.trace, 1)
}

func TestModelPause(t *testing.T) {
	m := newTestModel(t)
	m = send(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'p'}})
	assert.False(t, m.running)

	m = send(m, TickMsg(time.Now()))
	assert.Equal(t, 0.0, m.t)
}

func TestModelRetarget(t *testing.T) {
	m := newTestModel(t)
	m = send(m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	assert.Equal(t, []float64{-1, 1}, m.coll.Equilibriums())
}

func TestModelAdjust(t *testing.T) {
	m := newTestModel(t)
	m = send(m, tea.KeyMsg{Type: tea.KeyUp})
	assert.InDelta(t, 5.5, m.cfg.AngularFrequency(), 1e-12)

	m = send(m, tea.KeyMsg{Type: tea.KeyTab})
	for i := 0; i < 20; i++ {
		m = send(m, tea.KeyMsg{Type: tea.KeyDown})
	}
	assert.Equal(t, 0.0, m.cfg.DampingRatio())
	assert.Equal(t, spring.UnderDamped, m.cfg.Params().Regime())
	assert.NoError(t, m.err)
}

func TestModelReset(t *testing.T) {
	m := newTestModel(t)
	for i := 0; i < 5; i++ {
		m = send(m, TickMsg(time.Now()))
	}
	m = send(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})
	assert.Equal(t, 0.0, m.t)
	assert.Equal(t, []float64{0, 0}, m.coll.Positions())
	assert.Empty(t, m.trace)
}

func TestModelQuit(t *testing.T) {
	m := newTestModel(t)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestModelView(t *testing.T) {
	m := newTestModel(t)
	m = send(m, TickMsg(time.Now()))
	view := m.View()
	assert.Contains(t, view, "DAMPED SPRINGS")
	assert.Contains(t, view, "under-damped")
}

func TestCanvasTrace(t *testing.T) {
	c := NewCanvas(4, 2)
	c.Trace([]float64{0, 1, 0, 1, 0, 1, 0, 1, 0, 1}, 0, 1)
	out := c.String()
	assert.Len(t, strings.Split(strings.TrimSuffix(out, "\n"), "\n"), 2)
	assert.NotEqual(t, NewCanvas(4, 2).String(), out)
}

func TestPlotResponse(t *testing.T) {
	res := &sim.Result{
		Positions:    []float64{1, 0.5, 0, -0.2, 0},
		Equilibriums: []float64{0, 0, 0, 0, 0},
	}
	out := PlotResponse(res, "response")
	assert.Contains(t, out, "response")
	assert.Empty(t, PlotResponse(&sim.Result{}, "x"))
	assert.Empty(t, Plot(nil, "x"))
}

func TestPhasePortrait(t *testing.T) {
	cfg, err := spring.NewConfig(5.0, 0.3)
	require.NoError(t, err)
	ts, err := spring.NewTimeStep(cfg.Params(), 0.01)
	require.NoError(t, err)

	s := spring.New(1.0, 0, 0)
	var offsets, velocities []float64
	for i := 0; i < 400; i++ {
		offsets = append(offsets, s.Offset())
		velocities = append(velocities, s.Velocity)
		s.Update(ts)
	}

	out := PhasePortrait(offsets, velocities, 40, 12)
	rows := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	require.Len(t, rows, 12)

	drawn := 0
	for _, row := range rows {
		cells := []rune(row)
		require.Len(t, cells, 40)
		// the equilibrium axis runs through the centre column
		assert.NotEqual(t, rune(brailleBlank), cells[20])
		for _, r := range cells {
			if r != brailleBlank {
				drawn++
			}
		}
	}
	axisCells := 40 + 12 - 1
	assert.Greater(t, drawn, axisCells, "spiral drawn beyond the axes")

	assert.Empty(t, PhasePortrait(nil, nil, 40, 12))
}
