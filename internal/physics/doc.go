// Package physics provides the damped oscillator as an ODE system.
//
// [DampedOscillator] implements [dynamo.System] so that the numerical
// integrators can be run against the same physical spring the closed-form
// package solves exactly. It also implements [dynamo.Hamiltonian] for
// energy decay tracking and [dynamo.Configurable] for live parameter changes.
// [SpringMass] maps mass, stiffness and damping constants onto it.
//
//	osc := physics.NewDampedOscillator(5, 0.5)
//	x := dynamo.State{1, 0}
//	x = integrators.NewRK4().Step(osc, x, 0, 0.01)
package physics
