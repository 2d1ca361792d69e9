// Package tui is the terminal frontend. It rasterises the same scene the
// desktop renderer draws onto half-block cells and reads keys through tcell.
package tui

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/gdamore/tcell/v2"

	"racer/internal/audio"
	"racer/internal/race"
	"racer/internal/scene"
)

// FrameInterval paces the terminal loop. Terminals rarely keep up with more.
const FrameInterval = 16 * time.Millisecond

type Options struct {
	Theme scene.Theme
	Audio *audio.System // nil runs silent
}

// terminal implements race.Frontend over a tcell screen. Key events arrive on
// the pump goroutine; everything else runs on the loop goroutine.
type terminal struct {
	screen  tcell.Screen
	canvas  *Canvas
	theme   scene.Theme
	audio   *audio.System
	held    heldKeys
	actions race.ActionQueue
	quit    atomic.Bool
	resized atomic.Bool
	now     func() time.Time
}

// Run takes over the terminal and drives sim until quit or ctx is cancelled.
func Run(ctx context.Context, sim *race.Simulation, opt Options) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("terminal init: %w", err)
	}
	defer screen.Fini()

	ticker := race.NewTimeTicker(FrameInterval)
	defer ticker.Stop()
	return run(ctx, screen, sim, opt, ticker)
}

func run(ctx context.Context, screen tcell.Screen, sim *race.Simulation, opt Options, tk race.Ticker) error {
	t := newTerminal(screen, opt)
	screen.HideCursor()
	screen.Clear()

	go t.pump()

	sim.Events.AttachStatus(race.StatusFunc(t.SetStatus))
	t.SetStatus(sim.Race.Status)
	return race.NewLoop(sim, t, tk).Run(ctx)
}

func newTerminal(screen tcell.Screen, opt Options) *terminal {
	cols, rows := screen.Size()
	c := NewCanvas(cols, rows)
	c.Background = opt.Theme.Grass
	return &terminal{
		screen: screen,
		canvas: c,
		theme:  opt.Theme,
		audio:  opt.Audio,
		now:    time.Now,
	}
}

// pump forwards terminal events until the screen is finalised.
func (t *terminal) pump() {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("terminal event pump panicked", "panic", r)
			t.quit.Store(true)
		}
	}()
	for {
		ev := t.screen.PollEvent()
		if ev == nil {
			return
		}
		t.handle(ev)
	}
}

func (t *terminal) handle(ev tcell.Event) {
	switch e := ev.(type) {
	case *tcell.EventResize:
		t.resized.Store(true)
	case *tcell.EventKey:
		t.handleKey(e.Key(), e.Rune())
	}
}

func (t *terminal) handleKey(k tcell.Key, r rune) {
	res := translateKey(k, r)
	switch {
	case res.quit:
		t.quit.Store(true)
	case res.hasAction:
		if res.action == race.ActionReset {
			t.held.ReleaseAll()
		}
		t.actions.Push(res.action)
	case res.intent != 0:
		t.held.Press(res.intent, t.now())
	}
}

func (t *terminal) Poll() (race.Input, bool) {
	if t.quit.Load() {
		return race.Input{}, false
	}
	if t.resized.Swap(false) {
		t.screen.Sync()
	}
	return race.Input{
		Intents: t.held.Intents(t.now()),
		Actions: t.actions.Drain(),
	}, true
}

func (t *terminal) Viewport() (float64, float64) {
	cols, rows := t.screen.Size()
	return float64(cols) * CellW, float64(rows) * CellH
}

func (t *terminal) Present(snap race.Snapshot) {
	t.audio.SetEngine(snap.Car.SpeedFraction())

	cols, rows := t.screen.Size()
	t.canvas.Resize(cols, rows)
	t.canvas.Clear()
	scene.Paint(t.canvas, snap, t.theme)
	scene.PaintHUD(t.canvas, scene.HUD(snap), t.theme)
	t.canvas.Flush(t.screen)
	t.screen.Show()
}

// SetStatus writes msg on the bottom row straight away so it shows while
// presenting is suspended by pause. The next presented frame repaints it.
func (t *terminal) SetStatus(msg string) {
	cols, rows := t.screen.Size()
	if rows == 0 {
		return
	}
	st := tcell.StyleDefault.Foreground(toTcell(t.theme.UI)).Background(toTcell(t.theme.Road))
	x := 0
	if n := len([]rune(msg)); n < cols {
		x = (cols - n) / 2
	}
	for i := 0; i < cols; i++ {
		t.screen.SetContent(i, rows-1, ' ', nil, st)
	}
	for _, r := range msg {
		if x >= cols {
			break
		}
		t.screen.SetContent(x, rows-1, r, nil, st)
		x++
	}
	t.screen.Show()
}
