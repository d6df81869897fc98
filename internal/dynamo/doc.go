// Package dynamo provides the numerical primitives used to cross-check the
// closed-form springs against ordinary ODE integration.
//
//   - [State]: phase-space vector (positions, then velocities)
//   - [System]: interface for ODE systems (dX/dt = f(X, t))
//   - [Integrator]: fixed-step numerical integrator
//   - [Hamiltonian]: systems that can report their mechanical energy
//
// The error sentinels declared here are shared by the simulation, experiment
// and storage packages; wrap them with fmt.Errorf and test with errors.Is.
package dynamo
