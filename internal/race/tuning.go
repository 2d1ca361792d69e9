package race

import (
	"errors"
	"fmt"
)

// Player car physics/visual.
const (
	CarMaxSpeed = 420.0 // px/s
	CarAccel    = 420.0
	CarBrake    = 620.0
	CarFriction = 380.0
	CarSteer    = 2.8 // rad/s, scaled by steer factor
	CarWidth    = 44.0
	CarHeight   = 86.0
	CarScreenY  = 0.78 // fraction of viewport height

	CarMinX = 0.06
	CarMaxX = 0.94

	SteerFactorSlow = 1.2
	SteerFactorFast = 0.35
	SteerDecay      = 0.92
	LateralGain     = 0.6
)

// Track defaults.
const (
	RoadWidth      = 520.0
	LaneWidth      = 2.0
	KerbWidth      = 10.0
	LapMeters      = 3200.0
	PixelsPerMeter = 2.2
)

// Curvature function coefficients.
const (
	CurveAmpA  = 0.18
	CurveFreqA = 0.8
	CurveAmpB  = 0.08
	CurveFreqB = 1.9

	CurveRateBase  = 0.25
	CurveRateSpeed = 0.65
)

// Rival pool.
const (
	RivalWidth  = 46.0
	RivalHeight = 88.0

	RivalInitialCount = 10
	RivalInitialMinX  = 0.15
	RivalInitialMaxX  = 0.85
	RivalInitialMinY  = -2000.0
	RivalInitialMaxY  = 1500.0
	RivalInitialMinV  = 220.0
	RivalInitialMaxV  = 340.0

	RivalPoolCap   = 12
	RivalSpawnMinX = 0.12
	RivalSpawnMaxX = 0.88
	RivalSpawnY    = -600.0
	RivalSpawnMinV = 240.0
	RivalSpawnMaxV = 360.0

	// 0.02 per frame at the 60 fps reference rate.
	RivalSpawnRate = 1.2 // spawns/s while below cap

	RivalCullMargin = 120.0
)

// Collision response.
const (
	CollisionSpeedFactor = 0.5
	CollisionPushBack    = 24.0
	CollisionFlash       = 0.25 // seconds
)

// Race/loop.
const (
	DefaultLaps   = 3
	MaxFrameDelta = 0.033 // seconds
)

// Tuning gathers every adjustable number the simulation reads.
type Tuning struct {
	Car       CarTuning
	TotalLaps int
	SpawnRate float64 // rival spawns per second, below the pool cap
	MaxDelta  float64 // seconds
}

type CarTuning struct {
	MaxSpeed float64
	Accel    float64
	Brake    float64
	Friction float64
	Steer    float64
	Width    float64
	Height   float64
}

func DefaultTuning() Tuning {
	return Tuning{
		Car: CarTuning{
			MaxSpeed: CarMaxSpeed,
			Accel:    CarAccel,
			Brake:    CarBrake,
			Friction: CarFriction,
			Steer:    CarSteer,
			Width:    CarWidth,
			Height:   CarHeight,
		},
		TotalLaps: DefaultLaps,
		SpawnRate: RivalSpawnRate,
		MaxDelta:  MaxFrameDelta,
	}
}

var ErrInvalidTuning = errors.New("invalid tuning")

// Validate reports the first value that would break a simulation invariant.
func (t Tuning) Validate() error {
	switch {
	case t.Car.MaxSpeed <= 0:
		return fmt.Errorf("%w: max speed %v must be positive", ErrInvalidTuning, t.Car.MaxSpeed)
	case t.Car.Accel < 0 || t.Car.Brake < 0 || t.Car.Friction < 0 || t.Car.Steer < 0:
		return fmt.Errorf("%w: car rates must not be negative", ErrInvalidTuning)
	case t.Car.Width <= 0 || t.Car.Height <= 0:
		return fmt.Errorf("%w: car footprint must be positive", ErrInvalidTuning)
	case t.TotalLaps < 1:
		return fmt.Errorf("%w: laps %d must be at least 1", ErrInvalidTuning, t.TotalLaps)
	case t.SpawnRate < 0:
		return fmt.Errorf("%w: spawn rate %v must not be negative", ErrInvalidTuning, t.SpawnRate)
	case t.MaxDelta <= 0:
		return fmt.Errorf("%w: max frame delta %v must be positive", ErrInvalidTuning, t.MaxDelta)
	}
	return nil
}
