package sim

import (
	"fmt"
	"math"
	"strconv"
)

// fixed formats v with prec decimals. Overflowed values read the way a
// browser prints them rather than as Go's +Inf.
func fixed(v float64, prec int) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	}
	return strconv.FormatFloat(v, 'f', prec, 64)
}

func (f Frame) TimeInfo() string {
	return fmt.Sprintf("Time: %s s", fixed(f.Time, 2))
}

func (f Frame) VelocityInfo() string {
	return fmt.Sprintf("Velocity: %s m/s", fixed(f.Speed, 2))
}

func (f Frame) PositionInfo() string {
	return fmt.Sprintf("Position: (%s, %s) m", fixed(f.XMeters, 2), fixed(f.Height, 2))
}

func (e LogEntry) String() string {
	return fmt.Sprintf("Time: %s s, Velocity: %s m/s, Height: %s m", fixed(e.Time, 1), fixed(e.Speed, 2), fixed(e.Height, 2))
}
