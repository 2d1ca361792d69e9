package audio

import (
	"io"
	"math"
	"testing"

	"github.com/hajimehoshi/oto/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"racer/internal/race"
)

func frames(buf []byte) int { return len(buf) / frameBytes }

func peak(buf []byte) float64 {
	m := 0.0
	for i := 0; i < frames(buf); i++ {
		m = math.Max(m, math.Abs(sampleAt(buf, i)))
	}
	return m
}

func TestCues_RenderBoundedAudio(t *testing.T) {
	t.Parallel()
	for _, c := range []Cue{CueStart, CueCollision, CueLap, CueFinish, CueReset, CueColor, CuePause} {
		buf := generate(c)
		require.NotEmpty(t, buf, "cue %d", c)
		assert.Zero(t, len(buf)%frameBytes)
		p := peak(buf)
		assert.Greater(t, p, 0.01, "cue %d is silent", c)
		assert.LessOrEqual(t, p, 1.0, "cue %d clips", c)
	}
	assert.Nil(t, generate(CueNone))
}

func TestCues_StereoChannelsMatch(t *testing.T) {
	t.Parallel()
	buf := generate(CueCollision)
	for i := 0; i < frames(buf); i += 97 {
		o := i * frameBytes
		assert.Equal(t, buf[o:o+4], buf[o+4:o+8])
	}
}

func TestCueFor(t *testing.T) {
	t.Parallel()
	tests := []struct {
		ev   race.EventType
		want Cue
	}{
		{race.EventRaceStarted, CueStart},
		{race.EventCollision, CueCollision},
		{race.EventLapCompleted, CueLap},
		{race.EventRaceFinished, CueFinish},
		{race.EventReset, CueReset},
		{race.EventColorChanged, CueColor},
		{race.EventPaused, CuePause},
		{race.EventResumed, CueNone},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CueFor(race.Event{Type: tt.ev}), tt.ev.String())
	}
}

func TestSynthHelpers(t *testing.T) {
	t.Parallel()
	for _, x := range []float64{-10, -1.5, -1, -0.3, 0, 0.5, 1, 3, 100} {
		y := softSat(x)
		assert.LessOrEqual(t, math.Abs(y), 1.0, "x=%v", x)
	}
	assert.Zero(t, adsr(0, 0.1, 0.2, 0.5, 0.2))
	assert.InDelta(t, 1.0, adsr(0.1, 0.1, 0.2, 0.5, 0.2), 1e-9)
	assert.Equal(t, 0.5, adsr(0.5, 0.1, 0.2, 0.5, 0.2))
	assert.InDelta(t, 0.0, adsr(1, 0.1, 0.2, 0.5, 0.2), 1e-9)

	seed := uint64(1)
	for i := 0; i < 1000; i++ {
		v := lcg(&seed)
		require.GreaterOrEqual(t, v, -1.0)
		require.LessOrEqual(t, v, 1.0)
	}
}

func TestSoundReader_PlaysOnce(t *testing.T) {
	t.Parallel()
	r := &soundReader{data: []byte{1, 2, 3, 4, 5}}
	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3, 4, 5}, got)
	n, err := r.Read(make([]byte, 4))
	assert.Zero(t, n)
	assert.ErrorIs(t, err, io.EOF)
}

func TestEngine_PitchFollowsSpeed(t *testing.T) {
	t.Parallel()
	idle := newEngineReader()
	fast := newEngineReader()
	fast.SetSpeed(1)

	// Let both glide to their targets.
	warm := make([]byte, SampleRate*frameBytes)
	_, _ = idle.Read(warm)
	_, _ = fast.Read(warm)

	bufIdle := make([]byte, SampleRate/2*frameBytes)
	bufFast := make([]byte, SampleRate/2*frameBytes)
	n, err := idle.Read(bufIdle)
	require.NoError(t, err)
	assert.Equal(t, len(bufIdle), n)
	_, _ = fast.Read(bufFast)

	assert.InDelta(t, EngineTopHz, fast.freq, 1)
	assert.InDelta(t, EngineIdleHz, idle.freq, 1)
	assert.Greater(t, peak(bufFast), peak(bufIdle))
	assert.LessOrEqual(t, peak(bufFast), 1.0)
}

func TestEngine_SpeedClampedAndMute(t *testing.T) {
	t.Parallel()
	e := newEngineReader()
	e.SetSpeed(7)
	assert.Equal(t, 1.0, e.speed())
	e.SetSpeed(-1)
	assert.Zero(t, e.speed())

	e.muted.Store(true)
	buf := make([]byte, SampleRate*frameBytes)
	_, _ = e.Read(buf)
	assert.Zero(t, peak(buf))
}

func TestNilSystemIsSilent(t *testing.T) {
	t.Parallel()
	var s *System
	assert.NotPanics(t, func() {
		s.Play(CueLap)
		s.SetEngine(0.5)
		s.Silence(true)
		s.Attach(race.NewEventBus())
		s.Close()
	})
}

// stubPlayer records Close; other oto.Player methods are unused.
type stubPlayer struct {
	oto.Player
	closed int
}

func (p *stubPlayer) Close() error {
	p.closed++
	return nil
}

func TestSystem_EngineAfterCloseIsClosed(t *testing.T) {
	t.Parallel()
	s := &System{engine: newEngineReader()}
	s.Close()
	assert.True(t, s.isClosed())

	p := &stubPlayer{}
	s.attachEngine(p)
	assert.Equal(t, 1, p.closed)
	assert.Nil(t, s.player)
}

func TestSystem_CloseReleasesEngine(t *testing.T) {
	t.Parallel()
	s := &System{engine: newEngineReader()}
	p := &stubPlayer{}
	s.attachEngine(p)
	require.Equal(t, oto.Player(p), s.player)

	s.Close()
	assert.Equal(t, 1, p.closed)
	assert.Nil(t, s.player)
	s.Close()
	assert.Equal(t, 1, p.closed)
}
