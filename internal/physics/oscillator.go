package physics

import (
	"fmt"

	"github.com/san-kum/dampsim/internal/dynamo"
)

const (
	DefaultAngularFrequency = 5.0
	DefaultDampingRatio     = 0.5
)

// DampedOscillator is the ODE x'' = -ω²(x - eq) - 2ζωx' for a unit mass.
// State layout is [position, velocity].
type DampedOscillator struct {
	AngularFrequency float64
	DampingRatio     float64
	Equilibrium      float64
}

func NewDampedOscillator(angularFrequency, dampingRatio float64) *DampedOscillator {
	return &DampedOscillator{
		AngularFrequency: angularFrequency,
		DampingRatio:     dampingRatio,
	}
}

func (o *DampedOscillator) StateDim() int { return 2 }

func (o *DampedOscillator) Derive(x dynamo.State, t float64) dynamo.State {
	w := o.AngularFrequency
	offset, vel := x[0]-o.Equilibrium, x[1]
	return dynamo.State{vel, -w*w*offset - 2*o.DampingRatio*w*vel}
}

// Energy is kinetic plus potential energy per unit mass, measured from the
// current equilibrium.
func (o *DampedOscillator) Energy(x dynamo.State) float64 {
	offset, vel := x[0]-o.Equilibrium, x[1]
	w := o.AngularFrequency
	return 0.5*vel*vel + 0.5*w*w*offset*offset
}

func (o *DampedOscillator) SetParam(name string, value float64) error {
	switch name {
	case "angular_frequency", "damping_ratio":
		if value < 0 {
			return fmt.Errorf("%w: %s=%f", dynamo.ErrParameterBounds, name, value)
		}
		if name == "angular_frequency" {
			o.AngularFrequency = value
		} else {
			o.DampingRatio = value
		}
	case "equilibrium":
		o.Equilibrium = value
	default:
		return fmt.Errorf("%w: %s", dynamo.ErrUnknownParameter, name)
	}
	return nil
}
