// Package audio renders procedural race sounds through oto.
package audio

import (
	"log/slog"
	"sync"
	"time"

	"github.com/hajimehoshi/oto/v2"

	"racer/internal/race"
)

const (
	DefaultSFXVolume    = 0.58
	DefaultEngineVolume = 0.12
)

// System owns the oto context and the looping engine player. A nil *System
// is valid and silent.
type System struct {
	ctx    *oto.Context
	ready  chan struct{}
	engine *engineReader

	mu     sync.Mutex
	player oto.Player
	closed bool

	SFXVolume float64
}

// Init opens the audio device. The engine loop starts once the device is
// ready.
func Init() (*System, error) {
	ctx, ready, err := oto.NewContext(SampleRate, ChannelCount, BitDepth)
	if err != nil {
		return nil, err
	}
	s := &System{ctx: ctx, ready: ready, engine: newEngineReader(), SFXVolume: DefaultSFXVolume}
	go func() {
		<-ready
		if s.isClosed() {
			return
		}
		p := ctx.NewPlayer(s.engine)
		p.SetVolume(DefaultEngineVolume)
		p.Play()
		s.attachEngine(p)
	}()
	return s, nil
}

func (s *System) isClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// attachEngine stores the engine player, or closes it when Close already ran.
func (s *System) attachEngine(p oto.Player) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		if err := p.Close(); err != nil {
			slog.Debug("audio engine close", "err", err)
		}
		return
	}
	s.player = p
}

func (s *System) isReady() bool {
	if s == nil {
		return false
	}
	select {
	case <-s.ready:
		return true
	default:
		return false
	}
}

// Play fires a one-shot cue on its own player.
func (s *System) Play(c Cue) {
	if !s.isReady() {
		return
	}
	samples := generate(c)
	if len(samples) == 0 {
		return
	}
	go func() {
		player := s.ctx.NewPlayer(&soundReader{data: samples})
		player.SetVolume(clampF(s.SFXVolume, 0, 1))
		player.Play()
		for player.IsPlaying() {
			time.Sleep(10 * time.Millisecond)
		}
		if err := player.Close(); err != nil {
			slog.Debug("audio player close", "err", err)
		}
	}()
}

// SetEngine updates the engine tone from the player's speed fraction.
func (s *System) SetEngine(frac float64) {
	if s == nil {
		return
	}
	s.engine.SetSpeed(frac)
}

// Silence mutes or unmutes the engine tone, e.g. while paused.
func (s *System) Silence(on bool) {
	if s == nil {
		return
	}
	s.engine.muted.Store(on)
}

// Attach subscribes the system to simulation events.
func (s *System) Attach(bus *race.EventBus) {
	if s == nil {
		return
	}
	bus.SubscribeAll(func(e race.Event) {
		switch e.Type {
		case race.EventPaused, race.EventRaceFinished:
			s.Silence(true)
		case race.EventResumed, race.EventRaceStarted, race.EventReset:
			s.Silence(false)
		}
		s.Play(CueFor(e))
	})
}

func (s *System) Close() {
	if s == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	if s.player == nil {
		return
	}
	if err := s.player.Close(); err != nil {
		slog.Debug("audio engine close", "err", err)
	}
	s.player = nil
}
