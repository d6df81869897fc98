package spring

import (
	"fmt"
	"math"

	"golang.org/x/exp/constraints"
)

// TimeStep holds the coefficients of the linear map that advances a spring by
// one delta time:
//
//	offset'   = posPos*offset + posVel*velocity
//	velocity' = velPos*offset + velVel*velocity
//
// where offset is position minus equilibrium. A TimeStep may be reused across
// any number of springs that share its Params and delta time.
type TimeStep[F constraints.Float] struct {
	posPos, posVel F
	velPos, velVel F
}

// Identity returns the time step that leaves every spring unchanged.
func Identity[F constraints.Float]() TimeStep[F] {
	return TimeStep[F]{posPos: 1, velVel: 1}
}

// NewTimeStep evaluates the closed-form solution of params at delta. Negative,
// NaN and infinite deltas are rejected with ErrInvalidTimeStep. A zero delta
// yields the identity in every regime.
func NewTimeStep[F constraints.Float](params Params[F], delta F) (TimeStep[F], error) {
	d := float64(delta)
	if math.IsNaN(d) || math.IsInf(d, 0) || delta < 0 {
		return TimeStep[F]{}, fmt.Errorf("%w: delta must be finite and non-negative, got %v", ErrInvalidTimeStep, d)
	}
	if delta == 0 {
		return Identity[F](), nil
	}

	switch params.regime {
	case UnderDamped:
		return underDamped(params.decay, params.dampedFrequency, delta), nil
	case CriticallyDamped:
		return criticallyDamped(params.angularFrequency, delta), nil
	case OverDamped:
		return overDamped(params.root1, params.root2, delta), nil
	default:
		return TimeStep[F]{posPos: 1, posVel: delta, velVel: 1}, nil
	}
}

// x(t) = e^(−σt) [x0 cos ωd t + (v0 + σ x0) sin(ωd t) / ωd]
func underDamped[F constraints.Float](sigma, omegaD, t F) TimeStep[F] {
	e := exp(-sigma * t)
	sin, cos := sincos(omegaD * t)

	expCos := e * cos
	expSin := e * sin / omegaD
	omegaSq := sigma*sigma + omegaD*omegaD

	return TimeStep[F]{
		posPos: expCos + sigma*expSin,
		posVel: expSin,
		velPos: -omegaSq * expSin,
		velVel: expCos - sigma*expSin,
	}
}

// x(t) = e^(−ωt) [x0 + (v0 + ω x0) t]
func criticallyDamped[F constraints.Float](omega, t F) TimeStep[F] {
	e := exp(-omega * t)
	te := t * e
	wte := omega * te

	return TimeStep[F]{
		posPos: e + wte,
		posVel: te,
		velPos: -omega * wte,
		velVel: e - wte,
	}
}

// x(t) = A e^(r1 t) + B e^(r2 t), with A and B fitted to x0 and v0
func overDamped[F constraints.Float](r1, r2, t F) TimeStep[F] {
	e1 := exp(r1 * t)
	e2 := exp(r2 * t)
	inv := 1 / (r1 - r2)

	return TimeStep[F]{
		posPos: (r1*e2 - r2*e1) * inv,
		posVel: (e1 - e2) * inv,
		velPos: r1 * r2 * (e2 - e1) * inv,
		velVel: (r1*e1 - r2*e2) * inv,
	}
}

// Coefficients returns posPos, posVel, velPos and velVel.
func (ts TimeStep[F]) Coefficients() (F, F, F, F) {
	return ts.posPos, ts.posVel, ts.velPos, ts.velVel
}

// UpdateMany applies this time step to each spring in turn.
func (ts TimeStep[F]) UpdateMany(springs ...*Spring[F]) {
	for _, s := range springs {
		s.Update(ts)
	}
}
