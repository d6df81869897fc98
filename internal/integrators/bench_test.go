package integrators

import (
	"testing"

	"github.com/san-kum/dampsim/internal/dynamo"
	"github.com/san-kum/dampsim/internal/physics"
	"github.com/san-kum/dampsim/spring"
)

func BenchmarkEuler(b *testing.B) {
	integrator := NewEuler()
	dyn := physics.NewDampedOscillator(5, 0.5)
	x := dynamo.State{1.0, 0.0}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		x = integrator.Step(dyn, x, 0, 0.01)
	}
}

func BenchmarkRK4(b *testing.B) {
	integrator := NewRK4()
	dyn := physics.NewDampedOscillator(5, 0.5)
	x := dynamo.State{1.0, 0.0}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		x = integrator.Step(dyn, x, 0, 0.01)
	}
}

func BenchmarkVerlet(b *testing.B) {
	integrator := NewVerlet()
	dyn := physics.NewDampedOscillator(5, 0.5)
	x := dynamo.State{1.0, 0.0}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		x = integrator.Step(dyn, x, 0, 0.01)
	}
}

func BenchmarkClosedFormReusedStep(b *testing.B) {
	cfg, _ := spring.NewConfig(5.0, 0.5)
	ts, _ := spring.NewTimeStep(cfg.Params(), 0.01)
	s := spring.New(1.0, 0, 0)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s.Update(ts)
	}
}

func BenchmarkClosedFormPerCall(b *testing.B) {
	cfg, _ := spring.NewConfig(5.0, 0.5)
	params := cfg.Params()
	s := spring.New(1.0, 0, 0)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = s.UpdateWithParams(params, 0.01)
	}
}
