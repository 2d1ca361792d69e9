package race

// Viewport is the drawing surface size in logical pixels.
type Viewport struct {
	W, H float64
}

// RaceState is the race bookkeeping: timing, laps and scroll.
type RaceState struct {
	Started  bool
	Paused   bool
	Finished bool // set when Lap passes TotalLaps; cleared by reset

	LapTime   float64 // ms of the current lap
	Lap       int     // 1-based
	TotalLaps int
	Best      *float64 // ms, nil until a lap completes while racing

	TrackOffset float64 // px scrolled in the current lap
	CurveT      float64 // curvature phase, grows monotonically until reset

	Viewport Viewport
	Status   string
}

// DisplayLap clamps the lap counter for display after the finish.
func (r RaceState) DisplayLap() int {
	if r.Lap > r.TotalLaps {
		return r.TotalLaps
	}
	return r.Lap
}

// Snapshot is a read-only copy of everything the Render Step needs.
type Snapshot struct {
	Race   RaceState
	Car    Vehicle
	Rivals []Rival
	Track  Track
}

// RoadX projects a lateral coordinate using the snapshot's own curve phase.
func (s Snapshot) RoadX(n float64) float64 {
	return s.Track.RoadX(s.Race.Viewport.W, s.Race.CurveT, n)
}

// Progress is the fraction of the current lap covered.
func (s Snapshot) Progress() float64 {
	lap := s.Track.LapPixels()
	if lap <= 0 {
		return 0
	}
	return Clamp(s.Race.TrackOffset/lap, 0, 1)
}
