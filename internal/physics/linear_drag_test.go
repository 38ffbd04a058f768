package physics

import (
	"math"
	"testing"

	"github.com/san-kum/dragsim/internal/dynamo"
)

func TestLinearDragInitial(t *testing.T) {
	p := NewLinearDrag(0)
	x := p.Initial(10, 20, 45)

	if x[0] != 0 || x[1] != 10 {
		t.Errorf("expected launch at (0, 10), got (%f, %f)", x[0], x[1])
	}
	want := 20 * math.Sqrt2 / 2
	if math.Abs(x[2]-want) > 1e-9 || math.Abs(x[3]-want) > 1e-9 {
		t.Errorf("expected velocity components %.6f, got (%f, %f)", want, x[2], x[3])
	}
}

func TestLinearDragDerive(t *testing.T) {
	p := NewLinearDrag(0.5)
	dx := p.Derive(dynamo.State{1, 2, 4, -2}, 0)

	expected := dynamo.State{4, -2, -2, -9.81 + 1}
	for i := range expected {
		if math.Abs(dx[i]-expected[i]) > 1e-12 {
			t.Errorf("dx[%d] = %f, want %f", i, dx[i], expected[i])
		}
	}
}

func TestExactMatchesDerivative(t *testing.T) {
	for _, k := range []float64{0, 0.3, 5} {
		p := NewLinearDrag(k)
		x0 := p.Initial(10, 20, 60)
		tm, h := 0.7, 1e-6

		a := p.Exact(x0, tm-h)
		b := p.Exact(x0, tm+h)
		mid := p.Exact(x0, tm)
		deriv := p.Derive(mid, tm)

		for i := 0; i < 4; i++ {
			fd := (b[i] - a[i]) / (2 * h)
			if math.Abs(fd-deriv[i]) > 1e-4 {
				t.Errorf("k=%g: component %d finite difference %f, derivative %f", k, i, fd, deriv[i])
			}
		}
	}
}

func TestExactApexWithoutDrag(t *testing.T) {
	p := NewLinearDrag(0)
	x0 := p.Initial(10, 20, 45)
	vy0 := x0[3]
	tApex := vy0 / p.Gravity

	apex := p.Exact(x0, tApex)
	want := 10 + vy0*vy0/(2*p.Gravity)
	if math.Abs(apex[1]-want) > 1e-9 {
		t.Errorf("apex height %f, want %f", apex[1], want)
	}
	if math.Abs(apex[3]) > 1e-9 {
		t.Errorf("vertical velocity at apex %f, want 0", apex[3])
	}
}

func TestSetParam(t *testing.T) {
	p := NewLinearDrag(0)
	if err := p.SetParam("drag", 2); err != nil {
		t.Fatal(err)
	}
	if p.GetParams()["drag"] != 2 {
		t.Error("drag not updated")
	}
	if err := p.SetParam("mass", 1); err == nil {
		t.Error("expected error for unknown param")
	}
}
