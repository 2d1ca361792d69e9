package game

import "time"

// Window defaults.
const (
	WindowWidth  = 1280
	WindowHeight = 720
	WindowTitle  = "Racer"
)

// Frame pacing and feedback.
const (
	// Sleep used by the ticker when the previous frame was not presented
	// (paused), since no buffer swap is there to block on vsync.
	IdleFrame = 16 * time.Millisecond

	ShakeIntensity = 6.0  // logical px
	ShakeDuration  = 0.25 // seconds

	HUDTextScale = 2.0

	// Upper bound on queued text quads per frame.
	MaxTextGlyphs = 512
)
