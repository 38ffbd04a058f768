package metrics

import (
	"math"

	"github.com/san-kum/dragsim/internal/dynamo"
)

// Deviation is the largest position error against a closed-form solution.
// The first observed state is taken as the initial condition, and positions
// are the first two components.
type Deviation struct {
	name    string
	exact   dynamo.Exact
	x0      dynamo.State
	t0      float64
	maxDist float64
}

func NewDeviation(exact dynamo.Exact) *Deviation {
	return &Deviation{
		name:  "max_deviation",
		exact: exact,
	}
}

func (d *Deviation) Name() string { return d.name }

func (d *Deviation) Observe(x dynamo.State, t float64) {
	if d.x0 == nil {
		d.x0 = x.Clone()
		d.t0 = t
		return
	}
	ref := d.exact.Exact(d.x0, t-d.t0)
	dist := math.Hypot(x[0]-ref[0], x[1]-ref[1])
	if math.IsNaN(dist) {
		dist = math.Inf(1)
	}
	d.maxDist = math.Max(d.maxDist, dist)
}

func (d *Deviation) Value() float64 {
	return d.maxDist
}

func (d *Deviation) Reset() {
	d.x0 = nil
	d.t0 = 0
	d.maxDist = 0
}
