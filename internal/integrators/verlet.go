package integrators

import "github.com/san-kum/dragsim/internal/dynamo"

// Verlet is velocity Verlet with a predicted end-of-step velocity, so the
// second acceleration sees drag at roughly the right speed.
type Verlet struct{}

func NewVerlet() *Verlet {
	return &Verlet{}
}

func (Verlet) Step(dyn dynamo.System, x dynamo.State, t, dt float64) dynamo.State {
	half := len(x) / 2
	a0 := dyn.Derive(x, t)

	next := make(dynamo.State, len(x))
	for i := 0; i < half; i++ {
		next[i] = x[i] + dt*(x[half+i]+0.5*dt*a0[half+i])
		next[half+i] = x[half+i] + dt*a0[half+i]
	}

	a1 := dyn.Derive(next, t+dt)
	for i := half; i < len(x); i++ {
		next[i] = x[i] + 0.5*dt*(a0[i]+a1[i])
	}
	return next
}
