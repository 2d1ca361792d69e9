package race

import "fmt"

const (
	StatusGrid     = "Press SPACE to start"
	StatusGo       = "Good race!"
	StatusPaused   = "Paused"
	StatusFinished = "Race finished! Press R to restart"
	StatusColor    = "Car colour changed!"
)

// Simulation is the whole mutable game state. It is owned by a single
// goroutine; frontends read it through Snapshot.
type Simulation struct {
	Race   RaceState
	Car    Vehicle
	Rivals *RivalPool
	Track  Track
	Tuning Tuning
	Events *EventBus
}

// NewSimulation builds a simulation on the grid. Tuning must already be
// validated.
func NewSimulation(t Tuning, seed uint64) *Simulation {
	rng := NewRand(seed)
	s := &Simulation{
		Race:   RaceState{TotalLaps: t.TotalLaps, Lap: 1},
		Car:    NewVehicle(t.Car),
		Rivals: NewRivalPool(rng, t.SpawnRate),
		Track:  DefaultTrack(),
		Tuning: t,
		Events: NewEventBus(),
	}
	s.reset()
	return s
}

// SetViewport records the surface size used by the curve and collision
// projection. Non-positive sizes are ignored.
func (s *Simulation) SetViewport(w, h float64) {
	if w <= 0 || h <= 0 {
		return
	}
	s.Race.Viewport = Viewport{W: w, H: h}
}

func (s *Simulation) emit(e Event, status string) {
	e.Status = status
	if status != "" || e.Type == EventResumed {
		s.Race.Status = status
	}
	s.Events.Emit(e)
}

// Apply executes one edge-triggered action.
func (s *Simulation) Apply(a Action) {
	switch a {
	case ActionStart:
		if s.Race.Started || s.Race.Finished {
			return
		}
		s.Race.Started = true
		s.emit(Event{Type: EventRaceStarted, Lap: s.Race.Lap}, StatusGo)
	case ActionTogglePause:
		s.Race.Paused = !s.Race.Paused
		if s.Race.Paused {
			s.emit(Event{Type: EventPaused}, StatusPaused)
		} else {
			s.emit(Event{Type: EventResumed}, "")
		}
	case ActionReset:
		s.reset()
		s.emit(Event{Type: EventReset}, StatusGrid)
	case ActionCycleColor:
		s.Car.CycleColor()
		s.emit(Event{Type: EventColorChanged}, StatusColor)
	}
}

func (s *Simulation) reset() {
	s.Race.Started = false
	s.Race.Paused = false
	s.Race.Finished = false
	s.Race.LapTime = 0
	s.Race.Lap = 1
	s.Race.TrackOffset = 0
	s.Race.CurveT = 0
	s.Race.Status = StatusGrid
	s.Car.resetMotion()
	s.Rivals.Clear()
	s.Rivals.SpawnInitial()
}

// Step advances the world by dt seconds. Non-positive dt and a paused race
// are no-ops.
func (s *Simulation) Step(in Intents, dt float64) {
	if dt <= 0 || s.Race.Paused {
		return
	}
	r := &s.Race

	s.Car.Integrate(in, dt)

	r.TrackOffset += s.Car.Speed * dt
	r.CurveT += dt * CurveRate(s.Car.Speed, s.Car.Tuning.MaxSpeed)

	s.advanceLap(dt)

	s.Rivals.Advance(s.Car.Speed, dt)
	s.Rivals.Cull(r.Viewport.H)
	s.Rivals.MaybeSpawn(dt)

	s.resolveCollisions()
}

// advanceLap wraps the offset at most once per step. speed·dt is bounded by
// MaxSpeed·MaxDelta, far below a lap, so a single subtraction suffices.
func (s *Simulation) advanceLap(dt float64) {
	r := &s.Race
	lap := s.Track.LapPixels()
	if r.TrackOffset < lap {
		if r.Started {
			r.LapTime += dt * 1000
		}
		return
	}
	r.TrackOffset -= lap
	if !r.Started {
		return
	}

	done := Event{Type: EventLapCompleted, Lap: r.Lap, LapTime: r.LapTime}
	if r.LapTime > 0 && (r.Best == nil || r.LapTime < *r.Best) {
		best := r.LapTime
		r.Best = &best
	}
	if r.Best != nil {
		done.Best = *r.Best
	}
	r.LapTime = 0
	r.Lap++

	if r.Lap > r.TotalLaps {
		r.Started = false
		r.Finished = true
		s.Car.Speed = 0
		done.Type = EventRaceFinished
		s.emit(done, StatusFinished)
		return
	}
	done.Speed = s.Car.Speed
	s.emit(done, fmt.Sprintf("Lap %d of %d", r.Lap, r.TotalLaps))
}

// Snapshot copies the state for rendering. The rival slice is cloned so the
// caller may keep it across steps.
func (s *Simulation) Snapshot() Snapshot {
	rivals := make([]Rival, len(s.Rivals.Rivals))
	copy(rivals, s.Rivals.Rivals)
	return Snapshot{
		Race:   s.Race,
		Car:    s.Car,
		Rivals: rivals,
		Track:  s.Track,
	}
}
