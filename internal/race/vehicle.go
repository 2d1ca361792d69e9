package race

import colorful "github.com/lucasb-eyer/go-colorful"

// DefaultCarColor matches the original cyan livery.
const DefaultCarColor = "#00e0ff"

// CarColors is the palette ActionCycleColor walks through.
var CarColors = []string{
	DefaultCarColor,
	"#ff3b3b",
	"#ffd400",
	"#38e36b",
	"#b56cff",
	"#ff8a00",
}

// Vehicle is the player car. X is lateral road position, Y a fixed fraction
// of viewport height.
type Vehicle struct {
	X, Y   float64
	Angle  float64 // radians, decays toward zero every step
	Speed  float64 // px/s
	Width  float64
	Height float64

	Tuning   CarTuning
	Color    colorful.Color
	colorIdx int
}

func NewVehicle(t CarTuning) Vehicle {
	v := Vehicle{
		X:      0.5,
		Y:      CarScreenY,
		Width:  t.Width,
		Height: t.Height,
		Tuning: t,
	}
	v.Color, _ = colorful.Hex(DefaultCarColor)
	return v
}

// SpeedFraction is Speed/MaxSpeed in [0, 1].
func (v *Vehicle) SpeedFraction() float64 {
	return v.Speed / v.Tuning.MaxSpeed
}

// Integrate advances speed, heading and lateral position by dt seconds.
func (v *Vehicle) Integrate(in Intents, dt float64) {
	t := v.Tuning

	if in.Has(IntentAccelerate) {
		v.Speed += t.Accel * dt
	} else {
		v.Speed -= t.Friction * dt
	}
	// Brake stacks on top of accelerate.
	if in.Has(IntentBrake) {
		v.Speed -= t.Brake * dt
	}
	v.Speed = Clamp(v.Speed, 0, t.MaxSpeed)

	// Sharper turning at low speed, duller at high speed.
	steerFactor := Lerp(SteerFactorSlow, SteerFactorFast, v.SpeedFraction())
	if in.Has(IntentSteerLeft) {
		v.Angle -= t.Steer * steerFactor * dt
	}
	if in.Has(IntentSteerRight) {
		v.Angle += t.Steer * steerFactor * dt
	}
	v.Angle *= SteerDecay

	v.X = Clamp(v.X+v.Angle*LateralGain*dt, CarMinX, CarMaxX)
}

// SetColor sets the display colour from a hex string.
func (v *Vehicle) SetColor(hex string) error {
	c, err := colorful.Hex(hex)
	if err != nil {
		return err
	}
	v.Color = c
	for i, h := range CarColors {
		if h == hex {
			v.colorIdx = i
		}
	}
	return nil
}

// CycleColor moves to the next CarColors entry.
func (v *Vehicle) CycleColor() {
	v.colorIdx = (v.colorIdx + 1) % len(CarColors)
	v.Color, _ = colorful.Hex(CarColors[v.colorIdx])
}

// resetMotion puts the car back on the grid; colour survives resets.
func (v *Vehicle) resetMotion() {
	v.X = 0.5
	v.Y = CarScreenY
	v.Angle = 0
	v.Speed = 0
}
