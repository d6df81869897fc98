package experiment

import (
	"fmt"
	"sort"

	"github.com/san-kum/dampsim/internal/dynamo"
	"github.com/san-kum/dampsim/internal/integrators"
	"github.com/san-kum/dampsim/internal/metrics"
	"github.com/san-kum/dampsim/internal/physics"
	"github.com/san-kum/dampsim/internal/sim"
	"github.com/san-kum/dampsim/spring"
)

const (
	MethodClosedForm   = "closedform"
	MethodClosedForm32 = "closedform32"
	MethodHarmonica    = "harmonica"
)

type Factory func(omega, zeta float64) (sim.Stepper, error)

type Registry struct {
	methods map[string]Factory
}

func NewRegistry() *Registry {
	r := &Registry{methods: make(map[string]Factory)}

	r.methods[MethodClosedForm] = func(omega, zeta float64) (sim.Stepper, error) {
		cfg, err := spring.NewConfig(omega, zeta)
		if err != nil {
			return nil, err
		}
		return sim.NewClosedForm(cfg.Params()), nil
	}
	r.methods[MethodClosedForm32] = func(omega, zeta float64) (sim.Stepper, error) {
		cfg, err := spring.NewConfig(float32(omega), float32(zeta))
		if err != nil {
			return nil, err
		}
		return sim.NewClosedForm(cfg.Params()), nil
	}
	r.methods[MethodHarmonica] = func(omega, zeta float64) (sim.Stepper, error) {
		return newHarmonicaStepper(omega, zeta), nil
	}

	r.methods["euler"] = numeric(func() dynamo.Integrator { return integrators.NewEuler() })
	r.methods["rk4"] = numeric(func() dynamo.Integrator { return integrators.NewRK4() })
	r.methods["verlet"] = numeric(func() dynamo.Integrator { return integrators.NewVerlet() })
	r.methods["leapfrog"] = numeric(func() dynamo.Integrator { return integrators.NewLeapfrog() })

	return r
}

func numeric(newInteg func() dynamo.Integrator) Factory {
	return func(omega, zeta float64) (sim.Stepper, error) {
		if _, err := spring.NewConfig(omega, zeta); err != nil {
			return nil, err
		}
		return newIntegratorStepper(omega, zeta, newInteg()), nil
	}
}

// GetMethod builds a fresh stepper for the named method.
func (r *Registry) GetMethod(name string, omega, zeta float64) (sim.Stepper, error) {
	fn, ok := r.methods[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s (available: %v)", dynamo.ErrUnknownMethod, name, r.ListMethods())
	}
	return fn(omega, zeta)
}

func (r *Registry) ListMethods() []string {
	names := make([]string, 0, len(r.methods))
	for name := range r.methods {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DefaultMetrics returns fresh metrics for one run. Undamped springs also
// track energy drift, since their energy should be conserved.
func (r *Registry) DefaultMetrics(omega, zeta float64) []sim.Metric {
	ms := metrics.Defaults(omega)
	if zeta == 0 {
		ms = append(ms, metrics.NewEnergyDrift(physics.NewDampedOscillator(omega, 0)))
	}
	return ms
}
