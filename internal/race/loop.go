package race

import (
	"context"
	"time"
)

// FrameClock turns successive frame timestamps into a clamped delta.
type FrameClock struct {
	MaxDelta float64 // seconds
	last     time.Time
}

// Delta returns seconds since the previous call, clamped to [0, MaxDelta].
// The first call returns 0.
func (c *FrameClock) Delta(now time.Time) float64 {
	if c.last.IsZero() {
		c.last = now
		return 0
	}
	dt := now.Sub(c.last).Seconds()
	c.last = now
	return Clamp(dt, 0, c.MaxDelta)
}

// Restart makes the next Delta return 0.
func (c *FrameClock) Restart() {
	c.last = time.Time{}
}

// Frontend supplies input and presents frames. Both calls happen on the loop
// goroutine.
type Frontend interface {
	// Poll samples input for the next frame; ok=false stops the loop.
	Poll() (in Input, ok bool)
	// Present renders a frame. Skipped while paused.
	Present(snap Snapshot)
	// Viewport reports the current drawing surface size.
	Viewport() (w, h float64)
}

// Ticker is the loop's single suspension point per iteration.
type Ticker interface {
	Next(ctx context.Context) (time.Time, error)
}

// Loop drives a Simulation at display rate.
type Loop struct {
	Sim      *Simulation
	Frontend Frontend
	Ticker   Ticker
	Clock    FrameClock
}

func NewLoop(sim *Simulation, fe Frontend, tk Ticker) *Loop {
	return &Loop{
		Sim:      sim,
		Frontend: fe,
		Ticker:   tk,
		Clock:    FrameClock{MaxDelta: sim.Tuning.MaxDelta},
	}
}

// Frame runs one iteration: delta, actions, step and present. The clock keeps
// ticking while paused so resuming does not produce a catch-up step.
func (l *Loop) Frame(now time.Time, in Input) {
	dt := l.Clock.Delta(now)
	if w, h := l.Frontend.Viewport(); w > 0 && h > 0 {
		l.Sim.SetViewport(w, h)
	}
	for _, a := range in.Actions {
		l.Sim.Apply(a)
	}
	if l.Sim.Race.Paused {
		return
	}
	l.Sim.Step(in.Intents, dt)
	l.Frontend.Present(l.Sim.Snapshot())
}

// Run loops until ctx is done or the frontend asks to quit. Cancellation is
// observed only between frames, never mid-step.
func (l *Loop) Run(ctx context.Context) error {
	for {
		now, err := l.Ticker.Next(ctx)
		if err != nil {
			return err
		}
		in, ok := l.Frontend.Poll()
		if !ok {
			return nil
		}
		l.Frame(now, in)
	}
}

// TimeTicker paces the loop with a time.Ticker.
type TimeTicker struct {
	t *time.Ticker
}

func NewTimeTicker(interval time.Duration) *TimeTicker {
	return &TimeTicker{t: time.NewTicker(interval)}
}

func (tt *TimeTicker) Next(ctx context.Context) (time.Time, error) {
	select {
	case <-ctx.Done():
		return time.Time{}, ctx.Err()
	case now := <-tt.t.C:
		return now, nil
	}
}

func (tt *TimeTicker) Stop() { tt.t.Stop() }
