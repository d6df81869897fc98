package sim

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/san-kum/dampsim/internal/dynamo"
)

type Simulator struct {
	stepper   Stepper
	metrics   []Metric
	observers []Observer
}

func New(stepper Stepper) *Simulator {
	return &Simulator{
		stepper:   stepper,
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
	}
}

func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

// Run steps from x0 for cfg.Duration with a fixed cfg.Dt, applying retargets
// as their time is reached. The initial sample is recorded, so a run of n
// steps yields n+1 samples. On cancellation the partial result is returned
// with ctx.Err().
func (s *Simulator) Run(ctx context.Context, x0 Sample, cfg Config) (*Result, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	steps := int(math.Round(cfg.Duration / cfg.Dt))
	result := &Result{
		Times:        make([]float64, 0, steps+1),
		Positions:    make([]float64, 0, steps+1),
		Velocities:   make([]float64, 0, steps+1),
		Equilibriums: make([]float64, 0, steps+1),
		Metrics:      make(map[string]float64),
		Errors:       make([]error, 0),
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	retargets := sortedRetargets(cfg.Retargets)
	next := 0

	s.stepper.Reset(x0.Position, x0.Velocity, x0.Equilibrium)
	cur := Sample{Time: 0, Position: x0.Position, Velocity: x0.Velocity, Equilibrium: x0.Equilibrium}
	next = s.retarget(&cur, retargets, next, cfg.Dt)
	result.append(cur)

	halted := false
	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		for _, m := range s.metrics {
			m.Observe(cur)
		}
		for _, obs := range s.observers {
			obs.OnStep(cur)
		}

		if err := s.stepper.Advance(cfg.Dt); err != nil {
			return result, &dynamo.SimulationError{Step: i, Time: cur.Time, Wrapped: err}
		}

		pos, vel := s.stepper.State()
		if cfg.ValidateState && !(dynamo.State{pos, vel}).IsValid() {
			result.Errors = append(result.Errors, dynamo.SimError{Time: cur.Time, Step: i, Message: "invalid state (NaN/Inf)"})
			halted = true
			break
		}

		cur = Sample{Time: float64(i+1) * cfg.Dt, Position: pos, Velocity: vel, Equilibrium: cur.Equilibrium}
		next = s.retarget(&cur, retargets, next, cfg.Dt)
		result.StepsTaken++
		result.append(cur)
	}

	// a halted run already observed its last recorded sample
	if !halted {
		for _, m := range s.metrics {
			m.Observe(cur)
		}
		for _, obs := range s.observers {
			obs.OnStep(cur)
		}
	}
	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	return result, nil
}

// retarget applies every pending retarget due at cur.Time and returns the
// index of the next one.
func (s *Simulator) retarget(cur *Sample, retargets []Retarget, next int, dt float64) int {
	for next < len(retargets) && retargets[next].Time <= cur.Time+dt*1e-9 {
		cur.Equilibrium = retargets[next].Equilibrium
		s.stepper.Retarget(cur.Equilibrium)
		next++
	}
	return next
}

func validateConfig(cfg Config) error {
	if cfg.Dt <= 0 || math.IsNaN(cfg.Dt) || math.IsInf(cfg.Dt, 0) {
		return fmt.Errorf("%w: dt must be positive, got %f", dynamo.ErrInvalidRunConfig, cfg.Dt)
	}
	if cfg.Duration <= 0 || math.IsNaN(cfg.Duration) || math.IsInf(cfg.Duration, 0) {
		return fmt.Errorf("%w: duration must be positive, got %f", dynamo.ErrInvalidRunConfig, cfg.Duration)
	}
	for _, r := range cfg.Retargets {
		if r.Time < 0 {
			return fmt.Errorf("%w: retarget time must be non-negative, got %f", dynamo.ErrInvalidRunConfig, r.Time)
		}
	}
	return nil
}

func sortedRetargets(rs []Retarget) []Retarget {
	out := make([]Retarget, len(rs))
	copy(out, rs)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Time < out[j].Time })
	return out
}
