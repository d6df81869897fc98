package experiment

import (
	"time"

	"github.com/charmbracelet/harmonica"

	"github.com/san-kum/dampsim/internal/dynamo"
	"github.com/san-kum/dampsim/internal/physics"
	"github.com/san-kum/dampsim/internal/sim"
)

// integratorStepper advances a [position, velocity] ODE numerically. The
// system moves its equilibrium through dynamo.Configurable.
type integratorStepper struct {
	sys   dynamo.System
	integ dynamo.Integrator
	x     dynamo.State
	t     float64
}

func newIntegratorStepper(omega, zeta float64, integ dynamo.Integrator) *integratorStepper {
	sys := physics.NewDampedOscillator(omega, zeta)
	return &integratorStepper{
		sys:   sys,
		integ: integ,
		x:     make(dynamo.State, sys.StateDim()),
	}
}

func (s *integratorStepper) Reset(position, velocity, equilibrium float64) {
	s.x = dynamo.State{position, velocity}
	s.t = 0
	s.Retarget(equilibrium)
}

func (s *integratorStepper) Retarget(equilibrium float64) {
	if c, ok := s.sys.(dynamo.Configurable); ok {
		// equilibrium has no bounds, so this cannot fail
		_ = c.SetParam("equilibrium", equilibrium)
	}
}

func (s *integratorStepper) Advance(dt float64) error {
	s.x = s.integ.Step(s.sys, s.x, s.t, dt)
	s.t += dt
	return nil
}

func (s *integratorStepper) State() (float64, float64) { return s.x[0], s.x[1] }

// harmonicaStepper wraps charmbracelet/harmonica, which bakes the delta time
// into its spring; a new spring is built whenever dt changes.
type harmonicaStepper struct {
	omega, zeta float64
	spring      harmonica.Spring
	dt          float64
	built       bool
	pos, vel    float64
	eq          float64
}

func newHarmonicaStepper(omega, zeta float64) *harmonicaStepper {
	return &harmonicaStepper{omega: omega, zeta: zeta}
}

func (s *harmonicaStepper) Reset(position, velocity, equilibrium float64) {
	s.pos, s.vel, s.eq = position, velocity, equilibrium
}

func (s *harmonicaStepper) Retarget(equilibrium float64) { s.eq = equilibrium }

func (s *harmonicaStepper) Advance(dt float64) error {
	if !s.built || dt != s.dt {
		s.spring = harmonica.NewSpring(dt, s.omega, s.zeta)
		s.dt, s.built = dt, true
	}
	s.pos, s.vel = s.spring.Update(s.pos, s.vel, s.eq)
	return nil
}

func (s *harmonicaStepper) State() (float64, float64) { return s.pos, s.vel }

// timedStepper accumulates wall time spent in Advance.
type timedStepper struct {
	inner   sim.Stepper
	elapsed time.Duration
}

func (s *timedStepper) Reset(p, v, eq float64)    { s.inner.Reset(p, v, eq) }
func (s *timedStepper) Retarget(eq float64)       { s.inner.Retarget(eq) }
func (s *timedStepper) State() (float64, float64) { return s.inner.State() }

func (s *timedStepper) Advance(dt float64) error {
	start := time.Now()
	err := s.inner.Advance(dt)
	s.elapsed += time.Since(start)
	return err
}
