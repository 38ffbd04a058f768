package integrators

import "github.com/san-kum/dragsim/internal/dynamo"

// Euler is the explicit forward Euler method.
type Euler struct{}

func NewEuler() *Euler {
	return &Euler{}
}

func (Euler) Step(dyn dynamo.System, x dynamo.State, t, dt float64) dynamo.State {
	return x.Axpy(dt, dyn.Derive(x, t))
}

// SemiImplicitEuler updates velocities from the accelerations at the start
// of the step, then advances positions with the updated velocities. This is
// the ordering the live engine uses.
type SemiImplicitEuler struct{}

func NewSemiImplicitEuler() *SemiImplicitEuler {
	return &SemiImplicitEuler{}
}

func (SemiImplicitEuler) Step(dyn dynamo.System, x dynamo.State, t, dt float64) dynamo.State {
	half := len(x) / 2
	next := x.Axpy(dt, dyn.Derive(x, t))
	for i := 0; i < half; i++ {
		next[i] = x[i] + dt*next[half+i]
	}
	return next
}
