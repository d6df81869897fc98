package spring

import (
	"math"
	"unsafe"

	"golang.org/x/exp/constraints"
)

// Regime is the qualitative solution form of the damped oscillator.
type Regime int

const (
	// NoAngularFrequency has no restoring force; the spring coasts.
	NoAngularFrequency Regime = iota
	UnderDamped
	CriticallyDamped
	OverDamped
)

func (r Regime) String() string {
	switch r {
	case NoAngularFrequency:
		return "no-angular-frequency"
	case UnderDamped:
		return "under-damped"
	case CriticallyDamped:
		return "critically-damped"
	case OverDamped:
		return "over-damped"
	default:
		return "unknown"
	}
}

// Params holds everything about a spring that does not depend on the time
// step. Only the fields of the tagged regime are meaningful.
type Params[F constraints.Float] struct {
	regime Regime

	// under-damped: decay rate ζω and damped angular frequency ωd
	decay           F
	dampedFrequency F

	// critically damped: ω (the repeated root is −ω)
	angularFrequency F

	// over-damped: roots r1 > r2 of s² + 2ζωs + ω² = 0
	root1, root2 F
}

// NewParams classifies the configuration and precomputes the regime payload.
// An angular frequency below machine epsilon is NoAngularFrequency whatever
// the damping ratio, so the decay rate ζω is ignored and the spring coasts.
func NewParams[F constraints.Float](c Config[F]) Params[F] {
	omega, zeta := c.angularFrequency, c.dampingRatio

	if omega < MachineEpsilon[F]() {
		return Params[F]{regime: NoAngularFrequency}
	}

	tol := Tolerance[F]()
	switch {
	case zeta < 1-tol:
		return Params[F]{
			regime:          UnderDamped,
			decay:           zeta * omega,
			dampedFrequency: omega * sqrt(1-zeta*zeta),
		}
	case zeta > 1+tol:
		// r1 = −ζω + ω√(ζ²−1) cancels for large ζ; take it from r1·r2 = ω².
		spread := omega * sqrt(zeta-1) * sqrt(zeta+1)
		root2 := -zeta*omega - spread
		return Params[F]{
			regime: OverDamped,
			root1:  omega * omega / root2,
			root2:  root2,
		}
	default:
		return Params[F]{regime: CriticallyDamped, angularFrequency: omega}
	}
}

func (p Params[F]) Regime() Regime { return p.regime }

// Decay returns ζω for under-damped params and zero otherwise.
func (p Params[F]) Decay() F { return p.decay }

// DampedFrequency returns ωd for under-damped params and zero otherwise.
func (p Params[F]) DampedFrequency() F { return p.dampedFrequency }

// Roots returns the characteristic roots. Both are −ω when critically damped
// and zero when there is no angular frequency or the spring is under-damped.
func (p Params[F]) Roots() (F, F) {
	switch p.regime {
	case OverDamped:
		return p.root1, p.root2
	case CriticallyDamped:
		return -p.angularFrequency, -p.angularFrequency
	default:
		return 0, 0
	}
}

// MachineEpsilon returns the spacing between 1 and the next representable
// value of F.
func MachineEpsilon[F constraints.Float]() F {
	var zero F
	if unsafe.Sizeof(zero) == 4 {
		return F(0x1p-23)
	}
	return F(0x1p-52)
}

// Tolerance is the half-width of the band around a damping ratio of 1 that is
// treated as critically damped: eps^(2/3) for the width of F, about 2.4e-5
// for float32 and 3.7e-11 for float64. Within it the critical formula is
// closer to the exact answer than the cancelling under- or over-damped ones.
func Tolerance[F constraints.Float]() F {
	return F(math.Pow(float64(MachineEpsilon[F]()), 2.0/3.0))
}

func sqrt[F constraints.Float](x F) F { return F(math.Sqrt(float64(x))) }
func exp[F constraints.Float](x F) F  { return F(math.Exp(float64(x))) }

func sincos[F constraints.Float](x F) (F, F) {
	s, c := math.Sincos(float64(x))
	return F(s), F(c)
}
