package spring

import (
	"fmt"

	"golang.org/x/exp/constraints"
)

// Collection is a fixed set of springs sharing one Params, such as the axes
// of a 2D or 3D spring.
type Collection[F constraints.Float] struct {
	params  Params[F]
	Springs []Spring[F]
}

// NewCollection creates one spring per equilibrium, each at rest at the origin.
func NewCollection[F constraints.Float](params Params[F], equilibriums ...F) *Collection[F] {
	springs := make([]Spring[F], len(equilibriums))
	for i, eq := range equilibriums {
		springs[i] = FromEquilibrium(eq)
	}
	return &Collection[F]{params: params, Springs: springs}
}

func (c *Collection[F]) Params() Params[F] { return c.params }
func (c *Collection[F]) Len() int          { return len(c.Springs) }

// Update advances every spring by delta using the collection's params.
func (c *Collection[F]) Update(delta F) error {
	ts, err := NewTimeStep(c.params, delta)
	if err != nil {
		return err
	}
	c.UpdateWith(ts)
	return nil
}

// UpdateWith applies ts to every spring. ts need not come from the
// collection's own params.
func (c *Collection[F]) UpdateWith(ts TimeStep[F]) {
	for i := range c.Springs {
		c.Springs[i].Update(ts)
	}
}

func (c *Collection[F]) Positions() []F {
	out := make([]F, len(c.Springs))
	for i := range c.Springs {
		out[i] = c.Springs[i].Position
	}
	return out
}

func (c *Collection[F]) Velocities() []F {
	out := make([]F, len(c.Springs))
	for i := range c.Springs {
		out[i] = c.Springs[i].Velocity
	}
	return out
}

func (c *Collection[F]) Equilibriums() []F {
	out := make([]F, len(c.Springs))
	for i := range c.Springs {
		out[i] = c.Springs[i].Equilibrium
	}
	return out
}

func (c *Collection[F]) SetPosition(i int, v F) error {
	return c.set(i, func(s *Spring[F]) { s.Position = v })
}

func (c *Collection[F]) SetVelocity(i int, v F) error {
	return c.set(i, func(s *Spring[F]) { s.Velocity = v })
}

func (c *Collection[F]) SetEquilibrium(i int, v F) error {
	return c.set(i, func(s *Spring[F]) { s.Equilibrium = v })
}

func (c *Collection[F]) SetPositions(vs []F) error {
	return c.setAll(vs, func(s *Spring[F], v F) { s.Position = v })
}

func (c *Collection[F]) SetVelocities(vs []F) error {
	return c.setAll(vs, func(s *Spring[F], v F) { s.Velocity = v })
}

func (c *Collection[F]) SetEquilibriums(vs []F) error {
	return c.setAll(vs, func(s *Spring[F], v F) { s.Equilibrium = v })
}

func (c *Collection[F]) set(i int, fn func(*Spring[F])) error {
	if i < 0 || i >= len(c.Springs) {
		return fmt.Errorf("%w: %d not in [0, %d)", ErrIndexOutOfRange, i, len(c.Springs))
	}
	fn(&c.Springs[i])
	return nil
}

func (c *Collection[F]) setAll(vs []F, fn func(*Spring[F], F)) error {
	if len(vs) != len(c.Springs) {
		return fmt.Errorf("%w: got %d values for %d springs", ErrLengthMismatch, len(vs), len(c.Springs))
	}
	for i, v := range vs {
		fn(&c.Springs[i], v)
	}
	return nil
}
