package metrics

import (
	"context"
	"math"
	"testing"

	"github.com/san-kum/dampsim/internal/physics"
	"github.com/san-kum/dampsim/internal/sim"
	"github.com/san-kum/dampsim/spring"
)

func run(t *testing.T, omega, zeta float64, ms ...sim.Metric) *sim.Result {
	t.Helper()
	cfg, err := spring.NewConfig(omega, zeta)
	if err != nil {
		t.Fatal(err)
	}
	s := sim.New(sim.NewClosedForm(cfg.Params()))
	for _, m := range ms {
		s.AddMetric(m)
	}
	res, err := s.Run(context.Background(), sim.Sample{Position: 1}, sim.Config{Dt: 0.01, Duration: 5})
	if err != nil {
		t.Fatal(err)
	}
	return res
}

func TestOvershoot(t *testing.T) {
	res := run(t, 5, 0.5, NewOvershoot())
	// peak overshoot of a step response is exp(-πζ/sqrt(1-ζ²))
	expected := math.Exp(-math.Pi * 0.5 / math.Sqrt(0.75))
	if math.Abs(res.Metrics["overshoot"]-expected) > 0.01 {
		t.Errorf("expected overshoot %.4f, got %.4f", expected, res.Metrics["overshoot"])
	}

	res = run(t, 5, 1, NewOvershoot())
	if res.Metrics["overshoot"] != 0 {
		t.Errorf("critically damped spring overshot: %f", res.Metrics["overshoot"])
	}
}

func TestSettlingTime(t *testing.T) {
	under := run(t, 5, 0.5, NewSettlingTime(0.02)).Metrics["settling_time"]
	critical := run(t, 5, 1, NewSettlingTime(0.02)).Metrics["settling_time"]
	over := run(t, 5, 3, NewSettlingTime(0.02)).Metrics["settling_time"]

	if math.IsNaN(critical) || math.IsNaN(under) {
		t.Fatalf("expected springs to settle: under=%f critical=%f", under, critical)
	}
	if critical >= under {
		t.Errorf("expected critical (%f) to settle before under-damped (%f)", critical, under)
	}
	if !math.IsNaN(over) && over <= critical {
		t.Errorf("expected over-damped (%f) to settle after critical (%f)", over, critical)
	}
}

func TestZeroCrossings(t *testing.T) {
	if n := run(t, 5, 0.5, NewZeroCrossings()).Metrics["zero_crossings"]; n < 3 {
		t.Errorf("expected several crossings, got %f", n)
	}
	if n := run(t, 5, 2, NewZeroCrossings()).Metrics["zero_crossings"]; n != 0 {
		t.Errorf("expected no crossings for over-damped spring, got %f", n)
	}
}

func TestEnergyDecay(t *testing.T) {
	if r := run(t, 5, 0, NewEnergyDecay(5)).Metrics["energy_ratio"]; math.Abs(r-1) > 1e-9 {
		t.Errorf("undamped energy ratio should be 1, got %f", r)
	}
	if r := run(t, 5, 0.5, NewEnergyDecay(5)).Metrics["energy_ratio"]; r > 1e-6 {
		t.Errorf("damped energy should vanish, got %g", r)
	}
}

func TestEnergyDriftClosedForm(t *testing.T) {
	osc := physics.NewDampedOscillator(5, 0)
	if d := run(t, 5, 0, NewEnergyDrift(osc)).Metrics["energy_drift"]; d > 1e-9 {
		t.Errorf("closed-form undamped spring drifted: %g", d)
	}
}

func TestStability(t *testing.T) {
	m := NewStability(1)
	m.Observe(sim.Sample{Position: 0.5})
	m.Observe(sim.Sample{Position: 2})
	m.Observe(sim.Sample{Position: math.NaN()})
	m.Observe(sim.Sample{Position: 3, Equilibrium: 2.5})
	if v := m.Value(); v != 0.5 {
		t.Errorf("expected 0.5, got %f", v)
	}
	m.Reset()
	if m.Value() != 1 {
		t.Errorf("expected 1 after reset, got %f", m.Value())
	}
}

func TestDefaults(t *testing.T) {
	res := run(t, 5, 0.5, Defaults(5)...)
	for _, name := range []string{"overshoot", "settling_time", "zero_crossings", "energy_ratio", "stability"} {
		if _, ok := res.Metrics[name]; !ok {
			t.Errorf("missing metric %s", name)
		}
	}
}
