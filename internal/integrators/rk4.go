package integrators

import "github.com/san-kum/dragsim/internal/dynamo"

// Classical fourth-order Runge-Kutta tableau. Each stage samples the
// derivative at the previous stage's slope.
var (
	rk4Nodes   = [4]float64{0, 0.5, 0.5, 1}
	rk4Weights = [4]float64{1.0 / 6, 1.0 / 3, 1.0 / 3, 1.0 / 6}
)

type RK4 struct{}

func NewRK4() *RK4 {
	return &RK4{}
}

func (RK4) Step(dyn dynamo.System, x dynamo.State, t, dt float64) dynamo.State {
	var k [4]dynamo.State
	probe := x
	for i, c := range rk4Nodes {
		if i > 0 {
			probe = x.Axpy(c*dt, k[i-1])
		}
		k[i] = dyn.Derive(probe, t+c*dt)
	}

	next := x.Clone()
	for i, w := range rk4Weights {
		next = next.Axpy(w*dt, k[i])
	}
	return next
}
