package analysis

import (
	"github.com/san-kum/dragsim/internal/sim"
)

type Summary struct {
	ApexHeight  float64 // m
	ApexTime    float64 // s
	FlightTime  float64 // s
	Range       float64 // m, signed horizontal displacement
	ImpactSpeed float64 // m/s
	Ticks       int
	Entries     int
	Landed      bool
}

func Summarize(res *sim.Result) Summary {
	s := Summary{
		ApexHeight: res.Params.Height,
		Ticks:      res.Ticks,
		Entries:    len(res.Log),
		Landed:     res.Completed,
	}
	if len(res.Frames) == 0 {
		return s
	}

	for _, f := range res.Frames {
		if f.Height > s.ApexHeight {
			s.ApexHeight = f.Height
			s.ApexTime = f.Time
		}
	}

	last := res.Frames[len(res.Frames)-1]
	startX := res.Surface.Width / 2 / sim.ScaleFactor
	s.FlightTime = last.Time
	s.Range = last.XMeters - startX
	s.ImpactSpeed = last.Speed
	return s
}
