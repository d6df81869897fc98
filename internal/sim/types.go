package sim

// Sample is one observed spring state.
type Sample struct {
	Time        float64
	Position    float64
	Velocity    float64
	Equilibrium float64
}

// Offset returns position minus equilibrium.
func (s Sample) Offset() float64 { return s.Position - s.Equilibrium }

// Stepper advances a single spring-like state. Implementations range from
// the exact closed form to numerical integrators and third-party springs.
type Stepper interface {
	Reset(position, velocity, equilibrium float64)
	Retarget(equilibrium float64)
	Advance(dt float64) error
	State() (position, velocity float64)
}

type Metric interface {
	Name() string
	Observe(s Sample)
	Value() float64
	Reset()
}

// Observer sees every recorded sample once, in order, as the run proceeds.
type Observer interface {
	OnStep(s Sample)
}

// Retarget moves the equilibrium once simulated time reaches Time.
type Retarget struct {
	Time        float64
	Equilibrium float64
}

type Config struct {
	Dt            float64
	Duration      float64
	Retargets     []Retarget
	ValidateState bool
}

func DefaultConfig() Config {
	return Config{
		Dt:            0.01,
		Duration:      10.0,
		ValidateState: true,
	}
}

type Result struct {
	Times        []float64
	Positions    []float64
	Velocities   []float64
	Equilibriums []float64
	Metrics      map[string]float64
	StepsTaken   int
	Errors       []error
}

// Samples returns the recorded trajectory as a slice of samples.
func (r *Result) Samples() []Sample {
	out := make([]Sample, len(r.Times))
	for i := range r.Times {
		out[i] = Sample{
			Time:        r.Times[i],
			Position:    r.Positions[i],
			Velocity:    r.Velocities[i],
			Equilibrium: r.Equilibriums[i],
		}
	}
	return out
}

// Offsets returns position minus equilibrium for every sample.
func (r *Result) Offsets() []float64 {
	out := make([]float64, len(r.Positions))
	for i := range r.Positions {
		out[i] = r.Positions[i] - r.Equilibriums[i]
	}
	return out
}

func (r *Result) append(s Sample) {
	r.Times = append(r.Times, s.Time)
	r.Positions = append(r.Positions, s.Position)
	r.Velocities = append(r.Velocities, s.Velocity)
	r.Equilibriums = append(r.Equilibriums, s.Equilibrium)
}
