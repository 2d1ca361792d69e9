package audio

import (
	"math"
	"sync/atomic"
)

// Engine pitch range in Hz, idle to top speed.
const (
	EngineIdleHz = 55.0
	EngineTopHz  = 210.0
	// per-sample smoothing toward the target pitch
	engineGlide = 0.0008
)

// engineReader streams an endless engine note whose pitch follows a throttle
// value written from the loop goroutine.
type engineReader struct {
	target atomic.Uint64 // float64 bits, speed fraction 0..1
	muted  atomic.Bool

	phase float64
	freq  float64
	gain  float64
	seed  uint64
}

func newEngineReader() *engineReader {
	return &engineReader{freq: EngineIdleHz, seed: 0xC0FFEE}
}

// SetSpeed sets the speed fraction the tone glides to.
func (e *engineReader) SetSpeed(frac float64) {
	e.target.Store(math.Float64bits(clampF(frac, 0, 1)))
}

func (e *engineReader) speed() float64 {
	return math.Float64frombits(e.target.Load())
}

func (e *engineReader) Read(p []byte) (int, error) {
	frames := len(p) / frameBytes
	frac := e.speed()
	wantHz := EngineIdleHz + (EngineTopHz-EngineIdleHz)*frac
	wantGain := 0.0
	if !e.muted.Load() {
		wantGain = 0.35 + 0.45*frac
	}
	for i := 0; i < frames; i++ {
		e.freq += (wantHz - e.freq) * engineGlide
		e.gain += (wantGain - e.gain) * engineGlide
		e.phase += e.freq / SampleRate
		if e.phase >= 1 {
			e.phase -= 1
		}
		// Saw plus sub sine with a breath of noise.
		saw := 2*e.phase - 1
		sub := math.Sin(2 * math.Pi * e.phase * 0.5)
		s := (saw*0.35 + sub*0.5 + lcg(&e.seed)*0.04) * e.gain * 0.5
		putStereoF32(p, i, softSat(s))
	}
	return frames * frameBytes, nil
}
