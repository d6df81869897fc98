package spring

import (
	"fmt"
	"math"

	"golang.org/x/exp/constraints"
)

// Config describes the physical behaviour of a spring.
type Config[F constraints.Float] struct {
	angularFrequency F
	dampingRatio     F
}

// NewConfig validates and returns a spring configuration. Both values must be
// finite and non-negative, and ω² and 2ζω must be representable in F;
// nothing is clamped.
func NewConfig[F constraints.Float](angularFrequency, dampingRatio F) (Config[F], error) {
	if err := checkParam("angular frequency", angularFrequency); err != nil {
		return Config[F]{}, err
	}
	if err := checkParam("damping ratio", dampingRatio); err != nil {
		return Config[F]{}, err
	}
	if sq := float64(F(angularFrequency * angularFrequency)); math.IsInf(sq, 0) {
		return Config[F]{}, fmt.Errorf("%w: angular frequency %v overflows ω²", ErrInvalidConfig, float64(angularFrequency))
	}
	if rate := float64(F(2 * dampingRatio * angularFrequency)); math.IsInf(rate, 0) {
		return Config[F]{}, fmt.Errorf("%w: ζω overflows for ω=%v ζ=%v", ErrInvalidConfig, float64(angularFrequency), float64(dampingRatio))
	}
	return Config[F]{angularFrequency: angularFrequency, dampingRatio: dampingRatio}, nil
}

func checkParam[F constraints.Float](name string, v F) error {
	f := float64(v)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return fmt.Errorf("%w: %s must be finite, got %v", ErrInvalidConfig, name, f)
	}
	if v < 0 {
		return fmt.Errorf("%w: %s must be non-negative, got %v", ErrInvalidConfig, name, f)
	}
	return nil
}

func (c Config[F]) AngularFrequency() F { return c.angularFrequency }
func (c Config[F]) DampingRatio() F     { return c.dampingRatio }

// Params derives the cached coefficients for this configuration.
func (c Config[F]) Params() Params[F] { return NewParams(c) }

func (c Config[F]) String() string {
	return fmt.Sprintf("spring(ω=%v, ζ=%v)", float64(c.angularFrequency), float64(c.dampingRatio))
}
