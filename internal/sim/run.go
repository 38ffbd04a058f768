package sim

import (
	"context"
	"fmt"
)

// DefaultMaxDuration bounds headless runs. Negative drag can keep the ball
// airborne indefinitely.
const DefaultMaxDuration = 120.0

type RunConfig struct {
	MaxDuration float64
	Observers   []Observer
}

func DefaultRunConfig() RunConfig {
	return RunConfig{MaxDuration: DefaultMaxDuration}
}

type Result struct {
	Params    Params
	Surface   Surface
	Frames    []Frame
	Log       []LogEntry
	Final     State
	Ticks     int
	Completed bool // reached the ground before MaxDuration
}

// Run executes a whole run without wall-clock pacing.
func Run(ctx context.Context, p Params, surf Surface, cfg RunConfig) (*Result, error) {
	if cfg.MaxDuration <= 0 {
		return nil, fmt.Errorf("max duration must be positive, got %f", cfg.MaxDuration)
	}

	eng, err := New(p, surf)
	if err != nil {
		return nil, err
	}

	maxTicks := int(cfg.MaxDuration/Dt + 0.5)
	result := &Result{
		Params:  p,
		Surface: surf,
		Frames:  make([]Frame, 0, 256),
	}

	for i := 0; i < maxTicks; i++ {
		select {
		case <-ctx.Done():
			result.Log = eng.Log()
			result.Final = eng.State()
			return result, ctx.Err()
		default:
		}

		tick := eng.Step()
		result.Ticks++
		result.Frames = append(result.Frames, tick.Frame)
		for _, obs := range cfg.Observers {
			obs.OnTick(1, tick)
		}
		if tick.Terminal {
			result.Completed = true
			break
		}
	}

	result.Log = eng.Log()
	result.Final = eng.State()
	return result, nil
}
