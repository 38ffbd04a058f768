package sim

import (
	"context"
	"testing"
)

func TestRunCompletes(t *testing.T) {
	p := Params{Height: 10, Speed: 20, Angle: 45}
	result, err := Run(context.Background(), p, testSurface, DefaultRunConfig())
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if !result.Completed {
		t.Fatal("run did not reach the ground")
	}
	if len(result.Frames) != result.Ticks {
		t.Errorf("frames %d != ticks %d", len(result.Frames), result.Ticks)
	}
	if len(result.Final.Trajectory) != result.Ticks-1 {
		t.Errorf("trajectory %d, want %d", len(result.Final.Trajectory), result.Ticks-1)
	}

	eng, _ := New(p, testSurface)
	for !eng.Done() {
		eng.Step()
	}
	if len(eng.Log()) != len(result.Log) {
		t.Errorf("headless log has %d entries, engine %d", len(result.Log), len(eng.Log()))
	}
}

func TestRunMaxDuration(t *testing.T) {
	// Negative drag amplifies the upward launch forever.
	p := Params{Height: 10, Speed: 20, Angle: 90, Drag: -1}
	cfg := RunConfig{MaxDuration: 2}

	result, err := Run(context.Background(), p, testSurface, cfg)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if result.Completed {
		t.Error("run should have been cut off")
	}
	if result.Ticks != 100 {
		t.Errorf("ticks = %d, want 100", result.Ticks)
	}
}

func TestRunObservers(t *testing.T) {
	var ticks int
	var terminal bool
	obs := ObserverFunc(func(_ RunID, tick Tick) {
		ticks++
		terminal = tick.Terminal
	})

	cfg := DefaultRunConfig()
	cfg.Observers = []Observer{obs}
	result, err := Run(context.Background(), Params{Height: 5, Speed: 5, Angle: 30}, testSurface, cfg)
	if err != nil {
		t.Fatal(err)
	}
	if ticks != result.Ticks || !terminal {
		t.Errorf("observer saw %d ticks (terminal=%v), run had %d", ticks, terminal, result.Ticks)
	}
}

func TestRunCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := Run(ctx, Params{Height: 10, Speed: 20, Angle: 45}, testSurface, DefaultRunConfig())
	if err != context.Canceled {
		t.Fatalf("error = %v, want context.Canceled", err)
	}
	if result == nil || result.Ticks != 0 {
		t.Error("canceled run should return an empty result")
	}
}

func TestRunInvalidConfig(t *testing.T) {
	if _, err := Run(context.Background(), Params{}, testSurface, RunConfig{}); err == nil {
		t.Error("expected error for zero max duration")
	}
	if _, err := Run(context.Background(), Params{}, Surface{}, DefaultRunConfig()); err == nil {
		t.Error("expected error for empty surface")
	}
}
