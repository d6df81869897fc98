package spring

import "golang.org/x/exp/constraints"

// Spring is the mutable state of one damped oscillator. Equilibrium may be
// changed between updates to retarget the spring.
type Spring[F constraints.Float] struct {
	Position    F
	Velocity    F
	Equilibrium F
}

// FromEquilibrium returns a spring at rest at the origin, pulled toward
// equilibrium.
func FromEquilibrium[F constraints.Float](equilibrium F) Spring[F] {
	return Spring[F]{Equilibrium: equilibrium}
}

func New[F constraints.Float](position, velocity, equilibrium F) Spring[F] {
	return Spring[F]{Position: position, Velocity: velocity, Equilibrium: equilibrium}
}

// Offset returns position minus equilibrium.
func (s *Spring[F]) Offset() F { return s.Position - s.Equilibrium }

// Update advances the spring in place by a precomputed time step.
func (s *Spring[F]) Update(ts TimeStep[F]) {
	offset := s.Position - s.Equilibrium
	velocity := s.Velocity

	s.Position = offset*ts.posPos + velocity*ts.posVel + s.Equilibrium
	s.Velocity = offset*ts.velPos + velocity*ts.velVel
}

// UpdateWithParams builds a one-off time step and applies it. Prefer
// NewTimeStep and TimeStep.UpdateMany when several springs share params and
// delta. On error the spring is left untouched.
func (s *Spring[F]) UpdateWithParams(params Params[F], delta F) error {
	ts, err := NewTimeStep(params, delta)
	if err != nil {
		return err
	}
	s.Update(ts)
	return nil
}
