package analysis

import (
	"fmt"
	"math"

	"github.com/san-kum/dragsim/internal/dynamo"
	"github.com/san-kum/dragsim/internal/integrators"
	"github.com/san-kum/dragsim/internal/metrics"
	"github.com/san-kum/dragsim/internal/physics"
	"github.com/san-kum/dragsim/internal/sim"
)

// divergence is the state magnitude treated as a numerical blow-up.
const divergence = 1e9

// Reference is the closed-form flight of a launch.
type Reference struct {
	ApexHeight float64
	ApexTime   float64
	FlightTime float64
	Range      float64
	Landed     bool
}

// Accuracy is one integrator's flight and its error against the reference.
type Accuracy struct {
	Integrator      string
	Steps           int
	ApexHeight      float64
	ApexError       float64
	FlightTime      float64
	FlightTimeError float64
	Range           float64
	RangeError      float64
	MaxDeviation    float64 // largest position error along the path, m
	EnergyDrift     float64 // largest relative change of mechanical energy
	Stability       float64 // fraction of steps that stayed finite
	Landed          bool
	Err             error // set when the integration left the finite range
}

type Comparison struct {
	Params  sim.Params
	Dt      float64
	Exact   Reference
	Results []Accuracy
}

// Compare integrates the launch in p with each named integrator. Flights
// still airborne after maxTime are reported with Landed unset.
func Compare(p sim.Params, names []string, dt, maxTime float64) (*Comparison, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if dt <= 0 || maxTime <= 0 {
		return nil, fmt.Errorf("dt and max time must be positive, got %f and %f", dt, maxTime)
	}

	model := physics.NewLinearDrag(p.Drag)
	model.Gravity = sim.Gravity
	x0 := model.Initial(p.Height, p.Speed, p.Angle)

	cmp := &Comparison{
		Params: p,
		Dt:     dt,
		Exact:  exactReference(model, x0, maxTime),
	}
	for _, name := range names {
		integ, err := integrators.Get(name)
		if err != nil {
			return nil, err
		}
		cmp.Results = append(cmp.Results, measure(name, model, integ, x0, cmp.Exact, dt, maxTime))
	}
	return cmp, nil
}

// Trace integrates dyn from x0 with a fixed step and stops at the first
// state below the ground (component 1 negative) or after duration. The
// initial state is included. A step that leaves the finite range ends the
// trace with a *dynamo.StepError; the offending state is the last element.
func Trace(dyn dynamo.System, integ dynamo.Integrator, x0 dynamo.State, dt, duration float64) ([]dynamo.State, error) {
	if err := dynamo.Check(dyn, x0); err != nil {
		return nil, err
	}
	n := int(duration/dt + 0.5)
	path := make([]dynamo.State, 0, min(n+1, 4096))
	x := x0.Clone()
	path = append(path, x)
	if x[1] < 0 {
		return path, nil
	}

	for i := 1; i <= n; i++ {
		x = integ.Step(dyn, x, float64(i-1)*dt, dt)
		path = append(path, x)
		if err := dynamo.Check(dyn, x); err != nil {
			return path, &dynamo.StepError{Step: i, Time: float64(i) * dt, Err: err}
		}
		if x[1] < 0 {
			break
		}
	}
	return path, nil
}

func measure(name string, model *physics.LinearDrag, integ dynamo.Integrator, x0 dynamo.State, ref Reference, dt, maxTime float64) Accuracy {
	path, err := Trace(model, integ, x0, dt, maxTime)
	acc := Accuracy{
		Integrator: name,
		Steps:      len(path) - 1,
		ApexHeight: x0[1],
		Err:        err,
	}
	if len(path) == 0 {
		return acc
	}

	deviation := metrics.NewDeviation(model)
	drift := metrics.NewEnergyDrift(model)
	stability := metrics.NewStability(divergence)
	for i, x := range path {
		if x[1] > acc.ApexHeight {
			acc.ApexHeight = x[1]
		}
		t := float64(i) * dt
		for _, m := range []dynamo.Metric{deviation, drift, stability} {
			m.Observe(x, t)
		}
	}
	acc.MaxDeviation = deviation.Value()
	acc.EnergyDrift = drift.Value()
	acc.Stability = stability.Value()
	acc.ApexError = math.Abs(acc.ApexHeight - ref.ApexHeight)

	last := path[len(path)-1]
	switch {
	case len(path) == 1 && last[1] < 0:
		acc.Landed = true
		acc.Range = last[0]
	case len(path) > 1 && last[1] < 0:
		prev := path[len(path)-2]
		frac := prev[1] / (prev[1] - last[1])
		acc.Landed = true
		acc.FlightTime = (float64(len(path)-2) + frac) * dt
		acc.Range = prev[0] + frac*(last[0]-prev[0])
	}
	if err != nil {
		acc.Landed = false
	}
	if acc.Landed && ref.Landed {
		acc.FlightTimeError = math.Abs(acc.FlightTime - ref.FlightTime)
		acc.RangeError = math.Abs(acc.Range - ref.Range)
	} else {
		acc.FlightTimeError = math.NaN()
		acc.RangeError = math.NaN()
	}
	return acc
}

func exactReference(model *physics.LinearDrag, x0 dynamo.State, maxTime float64) Reference {
	ref := Reference{ApexHeight: x0[1]}
	g, k, vy0 := model.Gravity, model.Drag, x0[3]

	if vy0 > 0 {
		switch {
		case k == 0:
			ref.ApexTime = vy0 / g
		case 1+k*vy0/g > 0:
			ref.ApexTime = math.Log1p(k*vy0/g) / k
		default:
			// Negative drag strong enough that the ball never turns over.
			ref.ApexHeight = math.Inf(1)
			ref.ApexTime = math.Inf(1)
		}
		if !math.IsInf(ref.ApexTime, 0) {
			ref.ApexHeight = model.Exact(x0, ref.ApexTime)[1]
		}
	}

	if x0[1] <= 0 {
		ref.Landed = true
		ref.Range = x0[0]
		return ref
	}

	height := func(t float64) float64 { return model.Exact(x0, t)[1] }
	const scan = 0.01
	lo := 0.0
	for hi := scan; hi <= maxTime; hi += scan {
		if height(hi) < 0 {
			for i := 0; i < 60; i++ {
				mid := (lo + hi) / 2
				if height(mid) < 0 {
					hi = mid
				} else {
					lo = mid
				}
			}
			ref.Landed = true
			ref.FlightTime = (lo + hi) / 2
			ref.Range = model.Exact(x0, ref.FlightTime)[0]
			return ref
		}
		lo = hi
	}
	return ref
}
