package optim

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/san-kum/dampsim/internal/config"
	"github.com/san-kum/dampsim/internal/experiment"
	"github.com/san-kum/dampsim/internal/sim"
)

var ErrNoFeasible = errors.New("optim: no grid point satisfies the constraints")

// Constraint bounds a metric from above.
type Constraint struct {
	Metric string
	Max    float64
}

// GridSearch tries every combination of angular frequency and damping ratio
// and keeps the one with the smallest objective metric.
type GridSearch struct {
	Frequencies   []float64
	DampingRatios []float64
	Objective     string
	Constraints   []Constraint
}

type Candidate struct {
	AngularFrequency float64
	DampingRatio     float64
	Metrics          map[string]float64
}

// Search runs one closed-form simulation per grid point concurrently. The
// base config supplies the initial state, timing and retargets.
func (g *GridSearch) Search(ctx context.Context, base *config.Config) (*Candidate, []Candidate, error) {
	if len(g.Frequencies) == 0 || len(g.DampingRatios) == 0 {
		return nil, nil, fmt.Errorf("optim: empty grid")
	}

	registry := experiment.NewRegistry()
	var jobs []sim.Job
	var all []Candidate
	for _, w := range g.Frequencies {
		for _, z := range g.DampingRatios {
			cfg := base.Clone()
			cfg.AngularFrequency, cfg.DampingRatio = w, z
			cfg.Physical = nil
			if err := cfg.Validate(); err != nil {
				return nil, nil, err
			}

			st, err := registry.GetMethod(experiment.MethodClosedForm, w, z)
			if err != nil {
				return nil, nil, err
			}
			jobs = append(jobs, sim.Job{
				Name:    fmt.Sprintf("omega=%g zeta=%g", w, z),
				Stepper: st,
				Initial: experiment.InitialSample(cfg),
				Config:  experiment.RunConfig(cfg),
				Metrics: func() []sim.Metric { return registry.DefaultMetrics(w, z) },
			})
			all = append(all, Candidate{AngularFrequency: w, DampingRatio: z})
		}
	}

	results, err := sim.Sweep(ctx, jobs, 0)
	if err != nil {
		return nil, nil, err
	}

	best := -1
	bestVal := math.Inf(1)
	for i, res := range results {
		all[i].Metrics = res.Metrics
		if !g.feasible(res.Metrics) {
			continue
		}
		if val, ok := res.Metrics[g.Objective]; ok && val < bestVal {
			best, bestVal = i, val
		}
	}

	if best < 0 {
		return nil, all, ErrNoFeasible
	}
	return &all[best], all, nil
}

func (g *GridSearch) feasible(m map[string]float64) bool {
	for _, c := range g.Constraints {
		v, ok := m[c.Metric]
		if !ok || v > c.Max {
			return false
		}
	}
	return true
}

// Linspace returns n evenly spaced values from lo to hi inclusive.
func Linspace(lo, hi float64, n int) []float64 {
	if n <= 0 {
		return nil
	}
	if n == 1 {
		return []float64{lo}
	}
	out := make([]float64, n)
	step := (hi - lo) / float64(n-1)
	for i := range out {
		out[i] = lo + float64(i)*step
	}
	out[n-1] = hi
	return out
}
