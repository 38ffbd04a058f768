package sim

import "math"

// Init builds the launch state for p on surf.
func Init(p Params, surf Surface) State {
	sin, cos := math.Sincos(p.Angle * math.Pi / 180)
	start := Vec2{
		X: surf.Width / 2,
		Y: surf.Height - p.Height*ScaleFactor,
	}
	return State{
		Pos:        start,
		Vel:        Vec2{X: p.Speed * cos, Y: -p.Speed * sin},
		Start:      start,
		Trajectory: make([]Vec2, 0, 256),
	}
}

// Advance runs one tick. A terminal state is returned unchanged.
//
// s is consumed: the returned state may share trajectory storage with it, so
// callers keep only the result.
func Advance(s State, p Params, surf Surface) (State, Tick) {
	if s.Terminal {
		return s, Tick{Frame: frameOf(s, surf), Terminal: true, State: s.snapshot()}
	}

	s.Time += Dt

	// Drag uses the pre-update velocity; gravity is added independently.
	s.Vel.X -= p.Drag * s.Vel.X * Dt
	s.Vel.Y += Gravity*Dt - p.Drag*s.Vel.Y*Dt

	s.Pos.X += s.Vel.X * Dt * ScaleFactor
	s.Pos.Y += s.Vel.Y * Dt * ScaleFactor

	ground := surf.GroundY()
	if s.Pos.Y+BallRadius >= ground {
		s.Pos.Y = ground - BallRadius
		s.Terminal = true
	} else {
		s.Trajectory = append(s.Trajectory, s.Pos)
	}

	frame := frameOf(s, surf)
	if s.Apex == nil || s.Pos.Y < *s.Apex {
		apex := s.Pos.Y
		s.Apex = &apex
	}

	tick := Tick{Frame: frame, Terminal: s.Terminal}
	if s.Time-s.LastLog >= LogInterval {
		s.LastLog = s.Time
		tick.Log = &LogEntry{Time: s.Time, Speed: frame.Speed, Height: frame.Height}
	}
	tick.State = s.snapshot()
	return s, tick
}

func frameOf(s State, surf Surface) Frame {
	return Frame{
		Time:    s.Time,
		Pos:     s.Pos,
		Speed:   s.Vel.Len(),
		Height:  (surf.GroundY() - s.Pos.Y) / ScaleFactor,
		XMeters: s.Pos.X / ScaleFactor,
	}
}

// snapshot returns a read-only view of s. Its trajectory is capped at the
// current length so later appends by the owner never become visible.
func (s State) snapshot() State {
	c := s
	n := len(s.Trajectory)
	c.Trajectory = s.Trajectory[:n:n]
	if s.Apex != nil {
		apex := *s.Apex
		c.Apex = &apex
	}
	return c
}

// Engine owns the state of a single run.
type Engine struct {
	params  Params
	surface Surface
	state   State
	last    Tick
	log     []LogEntry
}

// New validates p and surf and returns an engine positioned at launch.
func New(p Params, surf Surface) (*Engine, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if err := surf.Validate(); err != nil {
		return nil, err
	}
	s := Init(p, surf)
	return &Engine{
		params:  p,
		surface: surf,
		state:   s,
		last:    Tick{Frame: frameOf(s, surf), State: s.snapshot()},
		log:     make([]LogEntry, 0, 64),
	}, nil
}

// Step advances one tick. Once the run is terminal it returns the final
// tick again without mutating anything.
func (e *Engine) Step() Tick {
	if e.state.Terminal {
		return e.last
	}
	var tick Tick
	e.state, tick = Advance(e.state, e.params, e.surface)
	if tick.Log != nil {
		e.log = append(e.log, *tick.Log)
	}
	e.last = tick
	return tick
}

func (e *Engine) Params() Params   { return e.params }
func (e *Engine) Surface() Surface { return e.surface }
func (e *Engine) Done() bool       { return e.state.Terminal }

// State returns a read-only snapshot of the current state.
func (e *Engine) State() State { return e.state.snapshot() }

// Frame returns the display state of the most recent tick, or of the launch
// position before the first tick.
func (e *Engine) Frame() Frame { return e.last.Frame }

// Log returns the history entries emitted so far.
func (e *Engine) Log() []LogEntry {
	out := make([]LogEntry, len(e.log))
	copy(out, e.log)
	return out
}
