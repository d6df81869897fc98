package metrics

import (
	"math"

	"github.com/san-kum/dampsim/internal/dynamo"
	"github.com/san-kum/dampsim/internal/physics"
	"github.com/san-kum/dampsim/internal/sim"
)

// EnergyDecay reports final over initial mechanical energy, measured against
// the equilibrium in force at each sample.
type EnergyDecay struct {
	name          string
	osc           *physics.DampedOscillator
	initialEnergy float64
	currentEnergy float64
	samples       int
}

func NewEnergyDecay(angularFrequency float64) *EnergyDecay {
	return &EnergyDecay{
		name: "energy_ratio",
		osc:  physics.NewDampedOscillator(angularFrequency, 0),
	}
}

func (e *EnergyDecay) Name() string { return e.name }

func (e *EnergyDecay) Observe(s sim.Sample) {
	e.osc.Equilibrium = s.Equilibrium
	energy := e.osc.Energy(dynamo.State{s.Position, s.Velocity})
	if e.samples == 0 {
		e.initialEnergy = energy
	}
	e.currentEnergy = energy
	e.samples++
}

func (e *EnergyDecay) Value() float64 {
	if e.samples == 0 || e.initialEnergy == 0 {
		return 0
	}
	return e.currentEnergy / e.initialEnergy
}

func (e *EnergyDecay) Reset() {
	e.initialEnergy = 0
	e.currentEnergy = 0
	e.samples = 0
}

// EnergyDrift tracks the largest relative deviation from the initial energy,
// measured about the current equilibrium. It is only meaningful for undamped
// springs, where energy is conserved between retargets.
type EnergyDrift struct {
	name          string
	initialEnergy float64
	maxDrift      float64
	samples       int
	dyn           dynamo.Hamiltonian
}

func NewEnergyDrift(dyn dynamo.Hamiltonian) *EnergyDrift {
	return &EnergyDrift{
		name: "energy_drift",
		dyn:  dyn,
	}
}

func (e *EnergyDrift) Name() string { return e.name }

func (e *EnergyDrift) Observe(s sim.Sample) {
	energy := e.dyn.Energy(dynamo.State{s.Offset(), s.Velocity})

	if e.samples == 0 {
		e.initialEnergy = energy
	}
	e.samples++

	if e.initialEnergy != 0 {
		drift := math.Abs(energy-e.initialEnergy) / math.Abs(e.initialEnergy)
		e.maxDrift = math.Max(e.maxDrift, drift)
	}
}

func (e *EnergyDrift) Value() float64 {
	return e.maxDrift
}

func (e *EnergyDrift) Reset() {
	e.initialEnergy = 0
	e.maxDrift = 0
	e.samples = 0
}
