package dynamo

import "math"

type State []float64

func (s State) Clone() State {
	c := make(State, len(s))
	copy(c, s)
	return c
}

func (s State) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func (s State) Norm() float64 {
	return math.Sqrt(dot(s, s))
}

// Dist is the Euclidean distance between two states of equal length.
func (s State) Dist(other State) float64 {
	d := 0.0
	for i := range s {
		e := s[i] - other[i]
		d += e * e
	}
	return math.Sqrt(d)
}

// Axpy returns s + a*y as a new state.
func (s State) Axpy(a float64, y State) State {
	out := make(State, len(s))
	for i := range s {
		out[i] = s[i] + a*y[i]
	}
	return out
}

func dot(a, b State) float64 {
	sum := 0.0
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}

// System is an ODE right-hand side. States are laid out as positions
// followed by velocities of equal length.
type System interface {
	Derive(x State, t float64) State
	StateDim() int
}

// Exact is implemented by systems with a closed-form solution.
type Exact interface {
	Exact(x0 State, t float64) State
}

type Integrator interface {
	Step(dyn System, x State, t float64, dt float64) State
}

type Hamiltonian interface {
	Energy(x State) float64
}

// Metric accumulates a scalar over the states of one trajectory.
type Metric interface {
	Name() string
	Observe(x State, t float64)
	Value() float64
	Reset()
}
