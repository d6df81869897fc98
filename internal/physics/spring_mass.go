package physics

import (
	"fmt"
	"math"

	"github.com/san-kum/dampsim/internal/dynamo"
)

// DefaultMass is used when a spring is described only by ω and ζ.
const DefaultMass = 1.0

// SpringMass describes a spring by its physical constants: m x'' = -k x - c x'.
type SpringMass struct {
	Mass      float64
	Stiffness float64
	Damping   float64
}

func (s *SpringMass) Validate() error {
	if !(s.Mass > 0) || math.IsInf(s.Mass, 0) {
		return fmt.Errorf("%w: mass must be positive and finite, got %f", dynamo.ErrParameterBounds, s.Mass)
	}
	if !(s.Stiffness >= 0) || math.IsInf(s.Stiffness, 0) {
		return fmt.Errorf("%w: stiffness must be non-negative and finite, got %f", dynamo.ErrParameterBounds, s.Stiffness)
	}
	if !(s.Damping >= 0) || math.IsInf(s.Damping, 0) {
		return fmt.Errorf("%w: damping must be non-negative and finite, got %f", dynamo.ErrParameterBounds, s.Damping)
	}
	return nil
}

// AngularFrequency is sqrt(k/m).
func (s *SpringMass) AngularFrequency() float64 {
	return math.Sqrt(s.Stiffness / s.Mass)
}

// DampingRatio is c / (2 sqrt(km)). A spring without stiffness has no
// meaningful ratio and reports zero.
func (s *SpringMass) DampingRatio() float64 {
	crit := 2 * math.Sqrt(s.Stiffness*s.Mass)
	if crit == 0 {
		return 0
	}
	return s.Damping / crit
}

// Oscillator converts to the unit-mass form used everywhere else.
func (s *SpringMass) Oscillator() (*DampedOscillator, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return NewDampedOscillator(s.AngularFrequency(), s.DampingRatio()), nil
}

// FromOscillator recovers stiffness and damping for the given mass.
func FromOscillator(o *DampedOscillator, mass float64) *SpringMass {
	w := o.AngularFrequency
	return &SpringMass{
		Mass:      mass,
		Stiffness: mass * w * w,
		Damping:   2 * o.DampingRatio * w * mass,
	}
}

// Energy is the mechanical energy in joules of state [position, velocity]
// about the origin.
func (s *SpringMass) Energy(x dynamo.State) float64 {
	return 0.5*s.Mass*x[1]*x[1] + 0.5*s.Stiffness*x[0]*x[0]
}
