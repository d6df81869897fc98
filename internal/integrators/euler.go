package integrators

import "github.com/san-kum/dampsim/internal/dynamo"

type Euler struct{}

func NewEuler() *Euler {
	return &Euler{}
}

func (e *Euler) Step(dyn dynamo.System, x dynamo.State, t float64, dt float64) dynamo.State {
	dx := dyn.Derive(x, t)
	n := dyn.StateDim()
	result := make(dynamo.State, n)
	for i := 0; i < n; i++ {
		result[i] = x[i] + dt*dx[i]
	}
	return result
}
