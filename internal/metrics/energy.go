package metrics

import (
	"math"

	"github.com/san-kum/dragsim/internal/dynamo"
)

// EnergyDrift is the largest relative change of mechanical energy from the
// first observed state. Without drag it measures integrator error; with drag
// it includes the energy the air removes. Systems without an energy function
// always report zero.
type EnergyDrift struct {
	h     dynamo.Hamiltonian
	e0    float64
	seen  bool
	worst float64
}

func NewEnergyDrift(dyn dynamo.System) *EnergyDrift {
	h, _ := dyn.(dynamo.Hamiltonian)
	return &EnergyDrift{h: h}
}

func (*EnergyDrift) Name() string { return "energy_drift" }

func (e *EnergyDrift) Observe(x dynamo.State, _ float64) {
	if e.h == nil {
		return
	}
	energy := e.h.Energy(x)
	if !e.seen {
		e.e0, e.seen = energy, true
		return
	}
	if e.e0 != 0 {
		e.worst = math.Max(e.worst, math.Abs((energy-e.e0)/e.e0))
	}
}

func (e *EnergyDrift) Value() float64 { return e.worst }

func (e *EnergyDrift) Reset() {
	*e = EnergyDrift{h: e.h}
}
