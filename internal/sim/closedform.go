package sim

import (
	"golang.org/x/exp/constraints"

	"github.com/san-kum/dampsim/spring"
)

// ClosedForm steps a spring of width F analytically. The time step for the
// last delta is cached, so fixed-tick runs build it once.
type ClosedForm[F constraints.Float] struct {
	params spring.Params[F]
	spring spring.Spring[F]

	lastDt F
	step   spring.TimeStep[F]
	cached bool
}

func NewClosedForm[F constraints.Float](params spring.Params[F]) *ClosedForm[F] {
	return &ClosedForm[F]{params: params}
}

func (c *ClosedForm[F]) Reset(position, velocity, equilibrium float64) {
	c.spring = spring.New(F(position), F(velocity), F(equilibrium))
}

func (c *ClosedForm[F]) Retarget(equilibrium float64) {
	c.spring.Equilibrium = F(equilibrium)
}

func (c *ClosedForm[F]) Advance(dt float64) error {
	d := F(dt)
	if !c.cached || d != c.lastDt {
		ts, err := spring.NewTimeStep(c.params, d)
		if err != nil {
			return err
		}
		c.step, c.lastDt, c.cached = ts, d, true
	}
	c.spring.Update(c.step)
	return nil
}

func (c *ClosedForm[F]) State() (float64, float64) {
	return float64(c.spring.Position), float64(c.spring.Velocity)
}
