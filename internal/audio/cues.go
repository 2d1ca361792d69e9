package audio

import (
	"math"

	"racer/internal/race"
)

// Cue identifies a one-shot sound effect.
type Cue int

const (
	CueNone Cue = iota
	CueStart
	CueCollision
	CueLap
	CueFinish
	CueReset
	CueColor
	CuePause
)

// CueFor maps a simulation event to its sound. Resume is silent.
func CueFor(e race.Event) Cue {
	switch e.Type {
	case race.EventRaceStarted:
		return CueStart
	case race.EventCollision:
		return CueCollision
	case race.EventLapCompleted:
		return CueLap
	case race.EventRaceFinished:
		return CueFinish
	case race.EventReset:
		return CueReset
	case race.EventColorChanged:
		return CueColor
	case race.EventPaused:
		return CuePause
	}
	return CueNone
}

func generate(c Cue) []byte {
	switch c {
	case CueStart:
		return genStartLights()
	case CueCollision:
		return genCrunch()
	case CueLap:
		return genLapBell()
	case CueFinish:
		return genFinish()
	case CueReset:
		return genReset()
	case CueColor, CuePause:
		return genBlip()
	}
	return nil
}

// genStartLights: three short red-light beeps then a higher green tone.
func genStartLights() []byte {
	beep := int(0.09 * SampleRate)
	gap := int(0.11 * SampleRate)
	goLen := int(0.3 * SampleRate)
	n := 3*(beep+gap) + goLen
	buf := makeBuf(n)
	for i := 0; i < n; i++ {
		t := float64(i) / SampleRate
		var s float64
		slot := i / (beep + gap)
		if slot < 3 {
			local := i - slot*(beep+gap)
			if local < beep {
				p := float64(local) / float64(beep)
				s = fm(t, 660, 1.0, 0.4) * adsr(p, 0.03, 0.4, 0.6, 0.2) * 0.32
			}
		} else {
			p := float64(i-3*(beep+gap)) / float64(goLen)
			s = fm(t, 1320, 1.0, 0.6) * adsr(p, 0.01, 0.3, 0.5, 0.4) * 0.36
		}
		putStereoF32(buf, i, softSat(s))
	}
	return buf
}

// genCrunch: falling FM thud with a noise burst on top.
func genCrunch() []byte {
	n := int(0.18 * SampleRate)
	buf := makeBuf(n)
	seed := uint64(4242)
	for i := 0; i < n; i++ {
		t := float64(i) / SampleRate
		p := float64(i) / float64(n)
		env := adsr(p, 0.015, 0.55, 0.1, 0.25)
		freq := 320 - 220*p
		s := fm(t, freq, 1.5, 2.8*(1-p)) * env * 0.5
		s += math.Sin(2*math.Pi*freq*2*t) * env * 0.1
		s += lcg(&seed) * math.Pow(1-p, 6) * 0.3
		putStereoF32(buf, i, softSat(s))
	}
	return buf
}

// genLapBell: ascending FM bells, each note rings over the next.
func genLapBell() []byte {
	notes := []float64{440, 554.37, 659.25, 880}
	noteStep := int(0.08 * SampleRate)
	total := len(notes)*noteStep + int(0.25*SampleRate)
	mix := make([]float64, total)
	for fi, freq := range notes {
		start := fi * noteStep
		dur := total - start
		for j := 0; j < dur; j++ {
			t := float64(start+j) / SampleRate
			env := adsr(float64(j)/float64(dur), 0.003, 0.65, 0.04, 0.28)
			mix[start+j] += fm(t, freq, 3.5, 5.5*env)*env*0.26 + math.Sin(2*math.Pi*freq*2*t)*env*0.06
		}
	}
	buf := makeBuf(total)
	for i, s := range mix {
		putStereoF32(buf, i, softSat(s))
	}
	return buf
}

// genFinish: staggered major chord.
func genFinish() []byte {
	n := int(0.9 * SampleRate)
	notes := []struct{ freq, onset float64 }{
		{523.25, 0.00}, // C5
		{659.25, 0.12}, // E5
		{783.99, 0.24}, // G5
		{1046.5, 0.36}, // C6
	}
	mix := make([]float64, n)
	for _, note := range notes {
		start := int(note.onset * SampleRate)
		for i := start; i < n; i++ {
			t := float64(i) / SampleRate
			env := adsr(float64(i-start)/float64(n-start), 0.008, 0.25, 0.35, 0.45)
			mix[i] += fm(t, note.freq, 2.0, 1.6*env) * env * 0.22
		}
	}
	buf := makeBuf(n)
	for i, s := range mix {
		putStereoF32(buf, i, softSat(s))
	}
	return buf
}

// genReset: short downward sweep.
func genReset() []byte {
	n := int(0.14 * SampleRate)
	buf := makeBuf(n)
	for i := 0; i < n; i++ {
		t := float64(i) / SampleRate
		p := float64(i) / float64(n)
		s := fm(t, 900-500*p, 1.0, 0.8) * adsr(p, 0.01, 0.5, 0.2, 0.3) * 0.3
		putStereoF32(buf, i, softSat(s))
	}
	return buf
}

// genBlip: crisp click and a brief high tone.
func genBlip() []byte {
	n := SampleRate * 65 / 1000
	buf := makeBuf(n)
	for i := 0; i < n; i++ {
		t := float64(i) / SampleRate
		p := float64(i) / float64(n)
		s := fm(t, 1400-700*p, 1.0, 0.6) * adsr(p, 0.004, 0.55, 0.0, 0.1) * 0.38
		putStereoF32(buf, i, softSat(s))
	}
	return buf
}
