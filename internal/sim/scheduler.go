package sim

import (
	"context"
	"sync"
	"time"
)

// Scheduler drives at most one run at a time on a fixed cadence. Starting a
// run cancels the previous one and waits for its loop to exit before the new
// state is built, so ticks from two runs never interleave.
//
// Observers are called on the loop goroutine and must not call Start or
// Stop from OnTick.
type Scheduler struct {
	mu       sync.Mutex
	surface  Surface
	observer Observer
	period   time.Duration

	next   RunID
	cancel context.CancelFunc
	done   chan struct{}
}

type Option func(*Scheduler)

// WithPeriod overrides the wall-clock tick period. The simulated step stays Dt.
func WithPeriod(d time.Duration) Option {
	return func(s *Scheduler) {
		if d > 0 {
			s.period = d
		}
	}
}

func NewScheduler(surf Surface, obs Observer, opts ...Option) *Scheduler {
	s := &Scheduler{
		surface:  surf,
		observer: obs,
		period:   TickPeriod,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SetSurface changes the surface used by subsequent runs.
func (s *Scheduler) SetSurface(surf Surface) {
	s.mu.Lock()
	s.surface = surf
	s.mu.Unlock()
}

// Start cancels any active run and launches a new one from p. Invalid
// parameters are rejected before the active run is touched.
func (s *Scheduler) Start(p Params) (RunID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := p.Validate(); err != nil {
		return 0, err
	}
	if err := s.surface.Validate(); err != nil {
		return 0, err
	}

	s.stopLocked()

	eng, err := New(p, s.surface)
	if err != nil {
		return 0, err
	}

	s.next++
	id := s.next
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	s.cancel = cancel
	s.done = done

	go s.loop(ctx, id, eng, done)
	return id, nil
}

// Stop cancels the active run, if any, and waits for it to exit.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopLocked()
}

// Wait blocks until the active run reaches the ground or is cancelled.
func (s *Scheduler) Wait() {
	s.mu.Lock()
	done := s.done
	s.mu.Unlock()
	if done != nil {
		<-done
	}
}

func (s *Scheduler) stopLocked() {
	if s.cancel == nil {
		return
	}
	s.cancel()
	<-s.done
	s.cancel = nil
}

func (s *Scheduler) loop(ctx context.Context, id RunID, eng *Engine, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(s.period)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		// A cancel that raced the ticker must not produce one more tick.
		if ctx.Err() != nil {
			return
		}

		tick := eng.Step()
		if s.observer != nil {
			s.observer.OnTick(id, tick)
		}
		if tick.Terminal {
			return
		}
	}
}
