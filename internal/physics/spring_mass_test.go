package physics

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/dampsim/internal/dynamo"
)

func TestSpringMassConversion(t *testing.T) {
	tests := []struct {
		name      string
		sm        SpringMass
		wantOmega float64
		wantZeta  float64
	}{
		{"unit mass", SpringMass{Mass: DefaultMass, Stiffness: 25, Damping: 5}, 5, 0.5},
		{"heavy", SpringMass{Mass: 4, Stiffness: 16, Damping: 16}, 2, 1},
		{"undamped", SpringMass{Mass: 2, Stiffness: 8, Damping: 0}, 2, 0},
		{"free", SpringMass{Mass: 1, Stiffness: 0, Damping: 3}, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			osc, err := tt.sm.Oscillator()
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if math.Abs(osc.AngularFrequency-tt.wantOmega) > 1e-12 {
				t.Errorf("omega = %f, want %f", osc.AngularFrequency, tt.wantOmega)
			}
			if math.Abs(osc.DampingRatio-tt.wantZeta) > 1e-12 {
				t.Errorf("zeta = %f, want %f", osc.DampingRatio, tt.wantZeta)
			}
		})
	}
}

func TestSpringMassRoundTrip(t *testing.T) {
	osc := NewDampedOscillator(3, 0.7)
	sm := FromOscillator(osc, 2.5)

	if math.Abs(sm.AngularFrequency()-3) > 1e-12 || math.Abs(sm.DampingRatio()-0.7) > 1e-12 {
		t.Errorf("round trip gave omega=%f zeta=%f", sm.AngularFrequency(), sm.DampingRatio())
	}

	// energy per unit mass matches the oscillator when the equilibrium is zero
	x := dynamo.State{0.4, -1.2}
	if got, want := sm.Energy(x)/sm.Mass, osc.Energy(x); math.Abs(got-want) > 1e-12 {
		t.Errorf("energy = %f, want %f", got, want)
	}
}

func TestSpringMassValidate(t *testing.T) {
	bad := []SpringMass{
		{Mass: 0, Stiffness: 1, Damping: 0},
		{Mass: 1, Stiffness: -1, Damping: 0},
		{Mass: 1, Stiffness: 1, Damping: math.NaN()},
		{Mass: math.Inf(1), Stiffness: 1, Damping: 0},
	}
	for _, sm := range bad {
		if _, err := sm.Oscillator(); !errors.Is(err, dynamo.ErrParameterBounds) {
			t.Errorf("%+v: expected ErrParameterBounds, got %v", sm, err)
		}
	}
}
