package race

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func allIntents() []Intents {
	out := make([]Intents, 0, 16)
	for i := 0; i < 16; i++ {
		out = append(out, Intents(i))
	}
	return out
}

func TestIntegrate_AccelerateFromRest(t *testing.T) {
	t.Parallel()
	v := NewVehicle(DefaultTuning().Car)
	v.Integrate(IntentAccelerate, 0.1)
	assert.InDelta(t, 42.0, v.Speed, 1e-9)
}

func TestIntegrate_SpeedClampedToMax(t *testing.T) {
	t.Parallel()
	v := NewVehicle(DefaultTuning().Car)
	v.Speed = CarMaxSpeed - 1
	v.Integrate(IntentAccelerate, MaxFrameDelta)
	assert.Equal(t, CarMaxSpeed, v.Speed)
}

func TestIntegrate_InvariantsHoldForAllInputs(t *testing.T) {
	t.Parallel()
	rng := NewRand(7)
	for _, in := range allIntents() {
		v := NewVehicle(DefaultTuning().Car)
		for i := 0; i < 2000; i++ {
			dt := rng.RangeF(0, 0.05)
			v.Integrate(in, dt)
			assert.GreaterOrEqual(t, v.Speed, 0.0)
			assert.LessOrEqual(t, v.Speed, v.Tuning.MaxSpeed)
			assert.GreaterOrEqual(t, v.X, CarMinX)
			assert.LessOrEqual(t, v.X, CarMaxX)
		}
	}
}

func TestIntegrate_BrakeNeverIncreasesSpeed(t *testing.T) {
	t.Parallel()
	for _, start := range []float64{0, 10, 200, CarMaxSpeed} {
		for _, extra := range []Intents{0, IntentAccelerate, IntentAccelerate | IntentSteerLeft} {
			v := NewVehicle(DefaultTuning().Car)
			v.Speed = start
			v.Integrate(IntentBrake|extra, 0.016)
			assert.LessOrEqual(t, v.Speed, start, "start=%v intents=%b", start, extra)
		}
	}
}

func TestIntegrate_HeadingDecaysWithoutSteering(t *testing.T) {
	t.Parallel()
	for _, a := range []float64{0.8, -0.5, 1e-3} {
		v := NewVehicle(DefaultTuning().Car)
		v.Angle = a
		v.Integrate(0, 0.016)
		assert.Less(t, math.Abs(v.Angle), math.Abs(a))
		assert.InDelta(t, a*SteerDecay, v.Angle, 1e-12)
	}
}

func TestIntegrate_SteeringSharperAtLowSpeed(t *testing.T) {
	t.Parallel()
	slow := NewVehicle(DefaultTuning().Car)
	fast := NewVehicle(DefaultTuning().Car)
	fast.Speed = CarMaxSpeed

	slow.Integrate(IntentSteerRight|IntentBrake, 0.016)
	fast.Integrate(IntentSteerRight|IntentAccelerate, 0.016)

	assert.Greater(t, slow.Angle, fast.Angle)
	assert.Greater(t, fast.Angle, 0.0)
}

func TestIntegrate_OppositeSteeringCancels(t *testing.T) {
	t.Parallel()
	v := NewVehicle(DefaultTuning().Car)
	v.Integrate(IntentSteerLeft|IntentSteerRight, 0.016)
	assert.Zero(t, v.Angle)
	assert.Equal(t, 0.5, v.X)
}

func TestVehicle_CycleColorWraps(t *testing.T) {
	t.Parallel()
	v := NewVehicle(DefaultTuning().Car)
	first := v.Color
	for range CarColors {
		v.CycleColor()
	}
	assert.True(t, first.AlmostEqualRgb(v.Color))
}

func TestVehicle_SetColorRejectsGarbage(t *testing.T) {
	t.Parallel()
	v := NewVehicle(DefaultTuning().Car)
	assert.Error(t, v.SetColor("not-a-colour"))
	assert.NoError(t, v.SetColor("#ff3b3b"))
	assert.Equal(t, 1, v.colorIdx)
}
