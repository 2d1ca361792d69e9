package race

import "math"

// Track is the immutable lap configuration. All distances are screen pixels
// except LapMeters.
type Track struct {
	RoadWidth      float64
	LaneWidth      float64
	KerbWidth      float64
	LapMeters      float64
	PixelsPerMeter float64
	Checkpoints    []float64 // lap fractions, ascending
}

func DefaultTrack() Track {
	return Track{
		RoadWidth:      RoadWidth,
		LaneWidth:      LaneWidth,
		KerbWidth:      KerbWidth,
		LapMeters:      LapMeters,
		PixelsPerMeter: PixelsPerMeter,
		Checkpoints:    []float64{0.25, 0.5, 0.75, 0.98},
	}
}

// LapPixels is the track offset at which a lap wraps.
func (t Track) LapPixels() float64 {
	return t.LapMeters * t.PixelsPerMeter
}

// Center returns the road centre-line x for curvature phase tau. Two sines at
// unrelated frequencies give a bend pattern that never visibly repeats.
func (t Track) Center(viewW, tau float64) float64 {
	return viewW/2 +
		viewW*CurveAmpA*math.Sin(tau*CurveFreqA) +
		viewW*CurveAmpB*math.Sin(tau*CurveFreqB)
}

// RoadX maps a lateral coordinate (0 = left edge, 1 = right edge) to an
// absolute screen x. Rendering and collision must call it with the same tau.
func (t Track) RoadX(viewW, tau, n float64) float64 {
	return t.Center(viewW, tau) - t.RoadWidth/2 + n*t.RoadWidth
}

// CurveRate is dτ/dt for the given speed.
func CurveRate(speed, maxSpeed float64) float64 {
	return CurveRateBase + (speed/maxSpeed)*CurveRateSpeed
}

// CheckpointsPassed counts checkpoint fractions at or below the current lap
// progress. Display only.
func (t Track) CheckpointsPassed(offset float64) int {
	lap := t.LapPixels()
	if lap <= 0 {
		return 0
	}
	frac := offset / lap
	n := 0
	for _, c := range t.Checkpoints {
		if c <= frac {
			n++
		}
	}
	return n
}
