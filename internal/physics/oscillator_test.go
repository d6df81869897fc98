package physics

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/dampsim/internal/dynamo"
)

func TestOscillatorDerive_Equilibrium(t *testing.T) {
	osc := NewDampedOscillator(5, 0.5)
	osc.Equilibrium = 2
	dx := osc.Derive(dynamo.State{2, 0}, 0)
	if dx[0] != 0 || dx[1] != 0 {
		t.Errorf("expected zero derivative at rest, got %v", dx)
	}
}

func TestOscillatorDerive_Displaced(t *testing.T) {
	osc := NewDampedOscillator(5, 0.5)
	dx := osc.Derive(dynamo.State{1, 2}, 0)

	if dx[0] != 2 {
		t.Errorf("expected velocity 2, got %f", dx[0])
	}
	expectedAcc := -25.0*1 - 2*0.5*5*2
	if math.Abs(dx[1]-expectedAcc) > 1e-12 {
		t.Errorf("expected acceleration %f, got %f", expectedAcc, dx[1])
	}
}

func TestOscillatorEnergy(t *testing.T) {
	osc := NewDampedOscillator(2, 0)
	e1 := osc.Energy(dynamo.State{1, 0})
	e2 := osc.Energy(dynamo.State{0, 2})
	if e1 != e2 {
		t.Errorf("expected equal PE and KE: %f vs %f", e1, e2)
	}
}

func TestOscillatorSetParam(t *testing.T) {
	osc := NewDampedOscillator(5, 0.5)
	if err := osc.SetParam("damping_ratio", 1.5); err != nil {
		t.Fatal(err)
	}
	if osc.DampingRatio != 1.5 {
		t.Errorf("damping ratio not updated: %v", osc.DampingRatio)
	}
	if err := osc.SetParam("equilibrium", -2); err != nil || osc.Equilibrium != -2 {
		t.Errorf("equilibrium not updated: %v (%v)", osc.Equilibrium, err)
	}
	if err := osc.SetParam("angular_frequency", -1); !errors.Is(err, dynamo.ErrParameterBounds) {
		t.Errorf("expected ErrParameterBounds, got %v", err)
	}
	if err := osc.SetParam("mass", 1); !errors.Is(err, dynamo.ErrUnknownParameter) {
		t.Errorf("expected ErrUnknownParameter, got %v", err)
	}
}
