package scene

import "racer/internal/race"

// Shake is a decaying screen-space jitter applied to the whole frame.
type Shake struct {
	X, Y      float64 // current offset in logical pixels
	Timer     float64 // remaining seconds
	Intensity float64 // max offset magnitude
}

// Add triggers a shake. Overlapping triggers keep the stronger values.
func (s *Shake) Add(intensity, duration float64) {
	if intensity > s.Intensity {
		s.Intensity = intensity
	}
	if duration > s.Timer {
		s.Timer = duration
	}
}

// Update decays the shake and picks a new offset.
func (s *Shake) Update(dt float64, seed uint64) {
	if s.Timer <= 0 {
		s.X, s.Y, s.Intensity = 0, 0, 0
		return
	}
	s.Timer -= dt
	if s.Timer < 0 {
		s.Timer = 0
	}
	t := s.Timer
	rr := race.NewRand(seed ^ uint64(t*10000))
	mag := s.Intensity * (t / (t + 0.08))
	s.X = rr.RangeF(-mag, mag)
	s.Y = rr.RangeF(-mag, mag)
}
