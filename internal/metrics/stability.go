package metrics

import (
	"math"

	"github.com/san-kum/dampsim/internal/sim"
)

// Stability is the fraction of samples whose offset stays within threshold.
// Numerical steppers that blow up at large steps score near zero.
type Stability struct {
	name       string
	threshold  float64
	violations int
	samples    int
}

func NewStability(threshold float64) *Stability {
	return &Stability{
		name:      "stability",
		threshold: threshold,
	}
}

func (s *Stability) Name() string {
	return s.name
}

func (s *Stability) Observe(x sim.Sample) {
	s.samples++
	if off := x.Offset(); math.IsNaN(off) || math.Abs(off) > s.threshold {
		s.violations++
	}
}

func (s *Stability) Value() float64 {
	if s.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(s.violations)/float64(s.samples)
}

func (s *Stability) Reset() {
	s.violations = 0
	s.samples = 0
}
