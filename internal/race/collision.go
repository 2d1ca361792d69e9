package race

// Rect is an axis-aligned box in screen pixels, top-left origin.
type Rect struct {
	X, Y float64
	W, H float64
}

// RectAround builds a rect of size w×h centred on (cx, cy).
func RectAround(cx, cy, w, h float64) Rect {
	return Rect{X: cx - w/2, Y: cy - h/2, W: w, H: h}
}

// Intersects reports open overlap: boxes that only share an edge do not touch.
func (a Rect) Intersects(b Rect) bool {
	return a.X < b.X+b.W && a.X+a.W > b.X &&
		a.Y < b.Y+b.H && a.Y+a.H > b.Y
}

// PlayerRect is the player's footprint projected through the curve.
func (s *Simulation) PlayerRect() Rect {
	vw, vh := s.Race.Viewport.W, s.Race.Viewport.H
	return RectAround(
		s.Track.RoadX(vw, s.Race.CurveT, s.Car.X),
		s.Car.Y*vh,
		s.Car.Width, s.Car.Height,
	)
}

// RivalRect is a rival's footprint, centred on its lateral/vertical position.
func (s *Simulation) RivalRect(r Rival) Rect {
	return RectAround(
		s.Track.RoadX(s.Race.Viewport.W, s.Race.CurveT, r.X),
		r.Y,
		r.Width, r.Height,
	)
}

// resolveCollisions applies the hit response for every overlapping rival.
// Each pair is handled independently; there is no early exit.
func (s *Simulation) resolveCollisions() int {
	player := s.PlayerRect()
	hits := 0
	for i := range s.Rivals.Rivals {
		r := &s.Rivals.Rivals[i]
		if !player.Intersects(s.RivalRect(*r)) {
			continue
		}
		hits++
		s.Car.Speed *= CollisionSpeedFactor
		r.Y -= CollisionPushBack
		r.Flash = CollisionFlash
		s.emit(Event{Type: EventCollision, Rival: i, Speed: s.Car.Speed}, "Collision!")
	}
	return hits
}
