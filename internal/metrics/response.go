package metrics

import (
	"math"

	"github.com/san-kum/dampsim/internal/sim"
)

// Overshoot is the largest excursion past equilibrium, as a fraction of the
// first observed offset. Retargets restart the measurement.
type Overshoot struct {
	initial float64
	eq      float64
	max     float64
	samples int
}

func NewOvershoot() *Overshoot { return &Overshoot{} }

func (o *Overshoot) Name() string { return "overshoot" }

func (o *Overshoot) Observe(s sim.Sample) {
	if o.samples == 0 || s.Equilibrium != o.eq {
		o.initial = s.Offset()
		o.eq = s.Equilibrium
	}
	o.samples++
	if o.initial == 0 {
		return
	}
	// past equilibrium means the offset has the opposite sign
	if past := -s.Offset() / o.initial; past > o.max {
		o.max = past
	}
}

func (o *Overshoot) Value() float64 { return o.max }

func (o *Overshoot) Reset() { *o = Overshoot{} }

// SettlingTime is the time after which the offset stays within band times the
// initial offset.
type SettlingTime struct {
	band    float64
	initial float64
	settled float64
	samples int
}

func NewSettlingTime(band float64) *SettlingTime {
	return &SettlingTime{band: band}
}

func (s *SettlingTime) Name() string { return "settling_time" }

func (s *SettlingTime) Observe(x sim.Sample) {
	if s.samples == 0 {
		s.initial = math.Abs(x.Offset())
	}
	s.samples++
	if math.Abs(x.Offset()) > s.band*s.initial {
		s.settled = math.NaN()
		return
	}
	if math.IsNaN(s.settled) || s.samples == 1 {
		s.settled = x.Time
	}
}

// Value is NaN while the spring has not settled.
func (s *SettlingTime) Value() float64 { return s.settled }

func (s *SettlingTime) Reset() {
	s.initial, s.settled, s.samples = 0, 0, 0
}

// ZeroCrossings counts sign changes of the offset.
type ZeroCrossings struct {
	prev  float64
	count int
}

func NewZeroCrossings() *ZeroCrossings { return &ZeroCrossings{} }

func (z *ZeroCrossings) Name() string { return "zero_crossings" }

func (z *ZeroCrossings) Observe(s sim.Sample) {
	off := s.Offset()
	if off == 0 {
		return
	}
	if z.prev != 0 && (off > 0) != (z.prev > 0) {
		z.count++
	}
	z.prev = off
}

func (z *ZeroCrossings) Value() float64 { return float64(z.count) }

func (z *ZeroCrossings) Reset() { *z = ZeroCrossings{} }

// Defaults returns the metric set recorded for every run.
func Defaults(angularFrequency float64) []sim.Metric {
	return []sim.Metric{
		NewOvershoot(),
		NewSettlingTime(0.02),
		NewZeroCrossings(),
		NewEnergyDecay(angularFrequency),
		NewStability(1e6),
	}
}
