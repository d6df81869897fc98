// Package spring computes closed-form damped harmonic oscillator motion.
//
// Instead of integrating the spring ODE numerically, every update applies the
// exact analytic solution for the elapsed time. The result is stable for any
// step size and reproducible across runs.
//
// The package is organised as a one-way pipeline:
//
//   - [Config]: angular frequency and damping ratio of a spring
//   - [Params]: regime-classified coefficients derived once from a Config
//   - [TimeStep]: the four linear-map coefficients for one delta time
//   - [Spring]: mutable position/velocity/equilibrium state
//   - [Collection]: several springs sharing one Params (2D, 3D, ...)
//
// Every type is generic over float32 and float64. Each width is evaluated in
// its own precision; no cross-width equality is promised.
//
// # Example
//
//	cfg, err := spring.NewConfig(5.0, 0.5)
//	if err != nil {
//	    return err
//	}
//	params := cfg.Params()
//	step, _ := spring.NewTimeStep(params, 0.1)
//
//	s := spring.FromEquilibrium(1.0)
//	for range 32 {
//	    s.Update(step)
//	}
//
// # Thread Safety
//
// Config, Params and TimeStep are immutable values and may be shared freely.
// A Spring or Collection must not be updated from several goroutines at once.
package spring
