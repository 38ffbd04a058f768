package sim

import (
	"context"
	"math"
)

func nan() float64 { return math.NaN() }

func runHeadless(p Params, surf Surface) (*Result, error) {
	return Run(context.Background(), p, surf, DefaultRunConfig())
}
