package sim

import "math"

type Vec2 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func (v Vec2) Len() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y)
}

// Params are the launch conditions of one run. They are never mutated
// after the run starts.
type Params struct {
	Height float64 `json:"height" yaml:"height"` // m
	Speed  float64 `json:"speed" yaml:"speed"`   // m/s
	Angle  float64 `json:"angle" yaml:"angle"`   // degrees above horizontal
	Drag   float64 `json:"drag" yaml:"drag"`     // 1/s
}

// Surface is the drawing area captured at run start. The ground is the
// bottom edge.
type Surface struct {
	Width  float64 `json:"width" yaml:"width"`
	Height float64 `json:"height" yaml:"height"`
}

func (s Surface) GroundY() float64 { return s.Height }

func (s Surface) Validate() error {
	if !(s.Width > 0) || !(s.Height > 0) || math.IsInf(s.Width, 0) || math.IsInf(s.Height, 0) {
		return ErrSurface
	}
	return nil
}

// State is the mutable state of one run.
type State struct {
	Time       float64
	Pos        Vec2 // pixels
	Vel        Vec2 // m/s, y down
	Start      Vec2 // launch point, pixels
	Trajectory []Vec2
	Apex       *float64 // minimum pixel y seen, nil before the first tick
	LastLog    float64
	Terminal   bool
}

// Clone returns a deep copy safe to hand to another goroutine.
func (s State) Clone() State {
	c := s
	c.Trajectory = make([]Vec2, len(s.Trajectory))
	copy(c.Trajectory, s.Trajectory)
	if s.Apex != nil {
		apex := *s.Apex
		c.Apex = &apex
	}
	return c
}

// Frame is the per-tick display state.
type Frame struct {
	Time    float64 `json:"time"`
	Pos     Vec2    `json:"pos"`
	Speed   float64 `json:"speed"`
	Height  float64 `json:"height"`   // m above ground
	XMeters float64 `json:"x_meters"` // pixel x / ScaleFactor
}

// LogEntry is one line of the velocity history.
type LogEntry struct {
	Time   float64 `json:"time"`
	Speed  float64 `json:"speed"`
	Height float64 `json:"height"`
}

// Tick is everything a single update produces.
type Tick struct {
	Frame    Frame
	Log      *LogEntry
	Terminal bool
	State    State
}

type RunID uint64

// Observer receives ticks from a scheduled or headless run.
type Observer interface {
	OnTick(run RunID, tick Tick)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(run RunID, tick Tick)

func (f ObserverFunc) OnTick(run RunID, tick Tick) { f(run, tick) }
