package experiment

import (
	"context"
	"fmt"

	"github.com/san-kum/dampsim/internal/config"
	"github.com/san-kum/dampsim/internal/sim"
)

// Experiment turns a validated config into a single simulation run.
type Experiment struct {
	cfg       *config.Config
	registry  *Registry
	observers []sim.Observer
}

func New(cfg *config.Config, registry *Registry) *Experiment {
	if registry == nil {
		registry = NewRegistry()
	}
	return &Experiment{cfg: cfg, registry: registry}
}

// Method resolves the stepping method, selecting the float32 closed form when
// the config asks for single precision.
func (e *Experiment) Method() string {
	method := e.cfg.Method
	if method == "" {
		method = MethodClosedForm
	}
	if method == MethodClosedForm && e.cfg.PrecisionOrDefault() == "float32" {
		return MethodClosedForm32
	}
	return method
}

// AddObserver streams every recorded sample of later runs to o.
func (e *Experiment) AddObserver(o sim.Observer) { e.observers = append(e.observers, o) }

func (e *Experiment) Run(ctx context.Context) (*sim.Result, error) {
	if err := e.cfg.Validate(); err != nil {
		return nil, err
	}

	stepper, err := e.registry.GetMethod(e.Method(), e.cfg.AngularFrequency, e.cfg.DampingRatio)
	if err != nil {
		return nil, err
	}

	s := sim.New(stepper)
	for _, m := range e.registry.DefaultMetrics(e.cfg.AngularFrequency, e.cfg.DampingRatio) {
		s.AddMetric(m)
	}
	for _, o := range e.observers {
		s.AddObserver(o)
	}

	res, err := s.Run(ctx, InitialSample(e.cfg), RunConfig(e.cfg))
	if err != nil {
		return nil, fmt.Errorf("run %s: %w", e.Method(), err)
	}
	return res, nil
}

func InitialSample(cfg *config.Config) sim.Sample {
	return sim.Sample{
		Position:    cfg.InitState.Position,
		Velocity:    cfg.InitState.Velocity,
		Equilibrium: cfg.InitState.Equilibrium,
	}
}

func RunConfig(cfg *config.Config) sim.Config {
	rc := sim.DefaultConfig()
	rc.Dt = cfg.Dt
	rc.Duration = cfg.Duration
	for _, r := range cfg.Retargets {
		rc.Retargets = append(rc.Retargets, sim.Retarget{Time: r.Time, Equilibrium: r.Equilibrium})
	}
	return rc
}
