package physics

import (
	"fmt"
	"math"

	"github.com/san-kum/dragsim/internal/dynamo"
)

const DefaultGravity = 9.81

// LinearDrag is a point mass under uniform gravity with Stokes-like drag
// applied independently per axis.
type LinearDrag struct {
	Drag    float64
	Gravity float64
}

func NewLinearDrag(drag float64) *LinearDrag {
	return &LinearDrag{
		Drag:    drag,
		Gravity: DefaultGravity,
	}
}

func (p *LinearDrag) StateDim() int {
	return 4
}

// Initial returns the launch state for a height in meters, speed in m/s and
// angle in degrees above the horizontal.
func (p *LinearDrag) Initial(height, speed, angleDeg float64) dynamo.State {
	sin, cos := math.Sincos(angleDeg * math.Pi / 180)
	return dynamo.State{0, height, speed * cos, speed * sin}
}

func (p *LinearDrag) Derive(x dynamo.State, t float64) dynamo.State {
	vx := x[2]
	vy := x[3]
	return dynamo.State{
		vx,
		vy,
		-p.Drag * vx,
		-p.Gravity - p.Drag*vy,
	}
}

// Exact evaluates the analytic solution at time t from x0.
func (p *LinearDrag) Exact(x0 dynamo.State, t float64) dynamo.State {
	px, py, vx0, vy0 := x0[0], x0[1], x0[2], x0[3]
	g, k := p.Gravity, p.Drag

	if k == 0 {
		return dynamo.State{
			px + vx0*t,
			py + vy0*t - 0.5*g*t*t,
			vx0,
			vy0 - g*t,
		}
	}

	e := math.Exp(-k * t)
	vt := g / k
	return dynamo.State{
		px + vx0*(1-e)/k,
		py + (vy0+vt)*(1-e)/k - vt*t,
		vx0 * e,
		(vy0+vt)*e - vt,
	}
}

// Energy returns mechanical energy per unit mass.
func (p *LinearDrag) Energy(x dynamo.State) float64 {
	return 0.5*(x[2]*x[2]+x[3]*x[3]) + p.Gravity*x[1]
}

func (p *LinearDrag) GetParams() map[string]float64 {
	return map[string]float64{
		"drag":    p.Drag,
		"gravity": p.Gravity,
	}
}

func (p *LinearDrag) SetParam(name string, value float64) error {
	switch name {
	case "drag":
		p.Drag = value
	case "gravity":
		p.Gravity = value
	default:
		return fmt.Errorf("unknown param: %s", name)
	}
	return nil
}
