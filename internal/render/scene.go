package render

import "github.com/san-kum/dragsim/internal/sim"

type RulerTick struct {
	Y     float64 `json:"y"`
	Label int     `json:"label"` // meters
}

type Ball struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	R float64 `json:"r"`
}

// Scene is everything drawn for one frame, in surface pixels.
type Scene struct {
	Width  float64     `json:"width"`
	Height float64     `json:"height"`
	Ruler  []RulerTick `json:"ruler"`
	Path   []sim.Vec2  `json:"path"`
	Apex   *float64    `json:"apex,omitempty"`
	Ball   Ball        `json:"ball"`
}

// Build lays out the frame for s. The path starts at the launch point.
func Build(s sim.State, surf sim.Surface) Scene {
	ruler := make([]RulerTick, 0, sim.RulerMaxMeters/sim.RulerStepMeters+1)
	for m := 0; m <= sim.RulerMaxMeters; m += sim.RulerStepMeters {
		ruler = append(ruler, RulerTick{
			Y:     surf.Height - float64(m)*sim.ScaleFactor,
			Label: m,
		})
	}

	path := make([]sim.Vec2, 0, len(s.Trajectory)+1)
	path = append(path, s.Start)
	path = append(path, s.Trajectory...)

	var apex *float64
	if s.Apex != nil {
		v := *s.Apex
		apex = &v
	}

	return Scene{
		Width:  surf.Width,
		Height: surf.Height,
		Ruler:  ruler,
		Path:   path,
		Apex:   apex,
		Ball:   Ball{X: s.Pos.X, Y: s.Pos.Y, R: sim.BallRadius},
	}
}
