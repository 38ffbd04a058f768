package sim

import "time"

const (
	Gravity     = 9.81 // m/s^2
	ScaleFactor = 5.0  // pixels per meter
	Dt          = 0.02 // seconds per tick
	BallRadius  = 10.0 // pixels
	LogInterval = 0.2  // seconds between history entries

	RulerMaxMeters  = 500
	RulerStepMeters = 10
)

// TickPeriod is the wall-clock cadence matching Dt.
const TickPeriod = time.Duration(Dt * float64(time.Second))
