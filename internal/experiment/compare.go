package experiment

import (
	"context"
	"math"
	"time"

	"github.com/san-kum/dampsim/internal/config"
	"github.com/san-kum/dampsim/internal/dynamo"
	"github.com/san-kum/dampsim/internal/sim"
)

// Comparison summarises one method against the float64 closed form.
type Comparison struct {
	Method        string
	FinalPosition float64
	MaxError      float64
	RMSError      float64
	MaxStateError float64
	Elapsed       time.Duration
	Metrics       map[string]float64
}

// Compare runs every method on the same config concurrently and measures its
// position error against the exact float64 solution at each sample.
func Compare(ctx context.Context, registry *Registry, cfg *config.Config, methods []string) ([]Comparison, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if registry == nil {
		registry = NewRegistry()
	}

	all := append([]string{MethodClosedForm}, methods...)
	jobs := make([]sim.Job, len(all))
	timed := make([]*timedStepper, len(all))
	for i, name := range all {
		st, err := registry.GetMethod(name, cfg.AngularFrequency, cfg.DampingRatio)
		if err != nil {
			return nil, err
		}
		timed[i] = &timedStepper{inner: st}
		jobs[i] = sim.Job{
			Name:    name,
			Stepper: timed[i],
			Initial: InitialSample(cfg),
			Config:  RunConfig(cfg),
			Metrics: func() []sim.Metric { return registry.DefaultMetrics(cfg.AngularFrequency, cfg.DampingRatio) },
		}
	}

	results, err := sim.Sweep(ctx, jobs, 0)
	if err != nil {
		return nil, err
	}

	ref := results[0]
	out := make([]Comparison, len(methods))
	for i := range methods {
		res := results[i+1]
		maxErr, rms := deviation(ref.Positions, res.Positions)
		out[i] = Comparison{
			Method:        methods[i],
			FinalPosition: res.Positions[len(res.Positions)-1],
			MaxError:      maxErr,
			RMSError:      rms,
			MaxStateError: stateDeviation(ref, res),
			Elapsed:       timed[i+1].elapsed,
			Metrics:       res.Metrics,
		}
	}
	return out, nil
}

func deviation(ref, got []float64) (float64, float64) {
	n := min(len(ref), len(got))
	if n == 0 {
		return 0, 0
	}
	maxErr, sumSq := 0.0, 0.0
	for i := 0; i < n; i++ {
		d := math.Abs(ref[i] - got[i])
		if math.IsNaN(d) {
			d = math.Inf(1)
		}
		maxErr = math.Max(maxErr, d)
		sumSq += d * d
	}
	return maxErr, math.Sqrt(sumSq / float64(n))
}

// stateDeviation is the largest phase-space distance between the runs.
func stateDeviation(ref, got *sim.Result) float64 {
	n := min(len(ref.Positions), len(got.Positions))
	worst := 0.0
	for i := 0; i < n; i++ {
		a := dynamo.State{ref.Positions[i], ref.Velocities[i]}
		b := dynamo.State{got.Positions[i], got.Velocities[i]}
		d := b.Sub(a).Norm()
		if math.IsNaN(d) {
			return math.Inf(1)
		}
		worst = math.Max(worst, d)
	}
	return worst
}
