package race

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeFrontend replays scripted inputs and records presented frames.
type fakeFrontend struct {
	inputs   []Input
	polls    int
	frames   []Snapshot
	w, h     float64
	quitWhen int // Poll returns ok=false on this call (1-based), 0 = never
}

func (f *fakeFrontend) Poll() (Input, bool) {
	f.polls++
	if f.quitWhen > 0 && f.polls >= f.quitWhen {
		return Input{}, false
	}
	if len(f.inputs) == 0 {
		return Input{}, true
	}
	in := f.inputs[0]
	f.inputs = f.inputs[1:]
	return in, true
}

func (f *fakeFrontend) Present(s Snapshot) { f.frames = append(f.frames, s) }
func (f *fakeFrontend) Viewport() (float64, float64) { return f.w, f.h }

// stepTicker advances a synthetic clock by a fixed step per call.
type stepTicker struct {
	now    time.Time
	step   time.Duration
	calls  int
	cancel context.CancelFunc
	after  int // cancel after this many calls, 0 = never
}

func (s *stepTicker) Next(ctx context.Context) (time.Time, error) {
	if err := ctx.Err(); err != nil {
		return time.Time{}, err
	}
	s.calls++
	if s.after > 0 && s.calls > s.after && s.cancel != nil {
		s.cancel()
		return time.Time{}, ctx.Err()
	}
	s.now = s.now.Add(s.step)
	return s.now, nil
}

func TestFrameClock_FirstDeltaZeroThenClamped(t *testing.T) {
	t.Parallel()
	c := FrameClock{MaxDelta: MaxFrameDelta}
	t0 := time.Unix(100, 0)

	assert.Zero(t, c.Delta(t0))
	assert.InDelta(t, 0.016, c.Delta(t0.Add(16*time.Millisecond)), 1e-9)
	// A one second stall is clamped.
	assert.Equal(t, MaxFrameDelta, c.Delta(t0.Add(1016*time.Millisecond)))
	// Clock going backwards yields zero, never negative.
	assert.Zero(t, c.Delta(t0))

	c.Restart()
	assert.Zero(t, c.Delta(t0.Add(time.Hour)))
}

func TestLoop_FrameStepsAndPresents(t *testing.T) {
	t.Parallel()
	sim := NewSimulation(DefaultTuning(), 5)
	sim.Rivals.Clear()
	fe := &fakeFrontend{w: 800, h: 600}
	l := NewLoop(sim, fe, nil)
	t0 := time.Unix(0, 0)

	l.Frame(t0, Input{Actions: []Action{ActionStart}})
	l.Frame(t0.Add(16*time.Millisecond), Input{Intents: IntentAccelerate})

	require.Len(t, fe.frames, 2)
	assert.Equal(t, Viewport{W: 800, H: 600}, sim.Race.Viewport)
	assert.True(t, sim.Race.Started)
	assert.InDelta(t, CarAccel*0.016, sim.Car.Speed, 1e-9)
	assert.InDelta(t, 16.0, fe.frames[1].Race.LapTime, 1e-9)
}

func TestLoop_PausedFrameSkipsPresent(t *testing.T) {
	t.Parallel()
	sim := NewSimulation(DefaultTuning(), 5)
	sim.Rivals.Clear()
	fe := &fakeFrontend{w: 800, h: 600}
	l := NewLoop(sim, fe, nil)
	t0 := time.Unix(0, 0)

	l.Frame(t0, Input{Actions: []Action{ActionStart}})
	l.Frame(t0.Add(16*time.Millisecond), Input{Actions: []Action{ActionTogglePause}})
	l.Frame(t0.Add(32*time.Millisecond), Input{Intents: IntentAccelerate})
	assert.Len(t, fe.frames, 1)
	assert.Zero(t, sim.Car.Speed)

	// Time spent paused is not replayed on resume.
	l.Frame(t0.Add(5*time.Second), Input{Actions: []Action{ActionTogglePause}, Intents: IntentAccelerate})
	require.Len(t, fe.frames, 2)
	assert.InDelta(t, CarAccel*MaxFrameDelta, sim.Car.Speed, 1e-9)
}

func TestLoop_ActionsApplyInOrder(t *testing.T) {
	t.Parallel()
	sim := NewSimulation(DefaultTuning(), 5)
	fe := &fakeFrontend{w: 800, h: 600}
	l := NewLoop(sim, fe, nil)

	var seen []EventType
	sim.Events.SubscribeAll(func(e Event) { seen = append(seen, e.Type) })

	l.Frame(time.Unix(0, 0), Input{Actions: []Action{ActionStart, ActionReset, ActionStart}})
	assert.Equal(t, []EventType{EventRaceStarted, EventReset, EventRaceStarted}, seen)
}

func TestLoop_RunStopsWhenFrontendQuits(t *testing.T) {
	t.Parallel()
	sim := NewSimulation(DefaultTuning(), 5)
	fe := &fakeFrontend{w: 800, h: 600, quitWhen: 4}
	tk := &stepTicker{now: time.Unix(0, 0), step: 16 * time.Millisecond}

	err := NewLoop(sim, fe, tk).Run(context.Background())

	assert.NoError(t, err)
	assert.Len(t, fe.frames, 3)
}

func TestLoop_RunStopsOnCancel(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sim := NewSimulation(DefaultTuning(), 5)
	fe := &fakeFrontend{w: 800, h: 600}
	tk := &stepTicker{now: time.Unix(0, 0), step: 16 * time.Millisecond, cancel: cancel, after: 10}

	err := NewLoop(sim, fe, tk).Run(ctx)

	assert.True(t, errors.Is(err, context.Canceled))
	assert.Len(t, fe.frames, 10)
}

func TestTimeTicker_HonoursContext(t *testing.T) {
	t.Parallel()
	tk := NewTimeTicker(time.Hour)
	defer tk.Stop()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := tk.Next(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
