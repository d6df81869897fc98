package optim

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/dampsim/internal/config"
)

func TestLinspace(t *testing.T) {
	assert.Equal(t, []float64{0, 0.5, 1}, Linspace(0, 1, 3))
	assert.Equal(t, []float64{2}, Linspace(2, 5, 1))
	assert.Nil(t, Linspace(0, 1, 0))
}

func TestGridSearchPrefersNearCritical(t *testing.T) {
	g := &GridSearch{
		Frequencies:   []float64{5},
		DampingRatios: []float64{0.1, 0.4, 0.8, 1.0, 3.0},
		Objective:     "settling_time",
	}

	best, all, err := g.Search(context.Background(), config.DefaultConfig())
	require.NoError(t, err)
	require.Len(t, all, 5)

	// lightly damped rings for long and heavily damped creeps
	assert.NotEqual(t, 0.1, best.DampingRatio)
	assert.NotEqual(t, 3.0, best.DampingRatio)
	for _, c := range all {
		if math.IsNaN(c.Metrics["settling_time"]) {
			continue
		}
		assert.LessOrEqual(t, best.Metrics["settling_time"], c.Metrics["settling_time"])
	}
}

func TestGridSearchConstraints(t *testing.T) {
	g := &GridSearch{
		Frequencies:   []float64{4, 8},
		DampingRatios: Linspace(0.2, 2, 10),
		Objective:     "settling_time",
		Constraints:   []Constraint{{Metric: "overshoot", Max: 0}},
	}

	best, _, err := g.Search(context.Background(), config.DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, 8.0, best.AngularFrequency)
	assert.GreaterOrEqual(t, best.DampingRatio, 1.0-1e-9)
	assert.Equal(t, 0.0, best.Metrics["overshoot"])
}

func TestGridSearchInfeasible(t *testing.T) {
	g := &GridSearch{
		Frequencies:   []float64{5},
		DampingRatios: []float64{0.1},
		Objective:     "settling_time",
		Constraints:   []Constraint{{Metric: "overshoot", Max: 0}},
	}
	_, _, err := g.Search(context.Background(), config.DefaultConfig())
	assert.ErrorIs(t, err, ErrNoFeasible)
}

func TestGridSearchRejectsBadGrid(t *testing.T) {
	_, _, err := (&GridSearch{Objective: "overshoot"}).Search(context.Background(), config.DefaultConfig())
	assert.Error(t, err)

	g := &GridSearch{Frequencies: []float64{-1}, DampingRatios: []float64{1}, Objective: "overshoot"}
	_, _, err = g.Search(context.Background(), config.DefaultConfig())
	assert.Error(t, err)
}
