// Package game is the desktop frontend: a GLFW window with an OpenGL
// surface, keyboard polling and a window-title status line.
package game

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"racer/internal/audio"
	"racer/internal/race"
	"racer/internal/scene"
)

type Options struct {
	Width, Height int
	Theme         scene.Theme
	Audio         *audio.System // nil runs silent
}

// desktop is both the loop's Frontend and its Ticker. Vsync on SwapBuffers
// paces presented frames.
type desktop struct {
	window *glfw.Window
	rend   *Renderer
	input  *Input
	theme  scene.Theme
	audio  *audio.System

	shake       scene.Shake
	shakeSeed   uint64
	lastPresent time.Time
	presented   bool
}

// RunDesktop opens the window and drives sim until the window closes or ctx
// is cancelled. It must be called from the main goroutine.
func RunDesktop(ctx context.Context, sim *race.Simulation, opt Options) error {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	if opt.Width <= 0 || opt.Height <= 0 {
		opt.Width, opt.Height = WindowWidth, WindowHeight
	}
	window, err := initWindow(opt.Width, opt.Height, WindowTitle)
	if err != nil {
		return err
	}
	defer glfw.Terminate()
	defer window.Destroy()

	if err := gl.Init(); err != nil {
		return fmt.Errorf("gl init: %w", err)
	}
	gl.Disable(gl.DEPTH_TEST)
	gl.Disable(gl.CULL_FACE)
	g := opt.Theme.Grass.Clamped()
	gl.ClearColor(float32(g.R), float32(g.G), float32(g.B), 1.0)

	rend, err := NewRenderer()
	if err != nil {
		return fmt.Errorf("renderer: %w", err)
	}
	defer rend.Destroy()
	if err := rend.InitFont(scene.DefaultAtlas()); err != nil {
		return fmt.Errorf("font: %w", err)
	}

	d := &desktop{
		window: window,
		rend:   rend,
		input:  NewInput(),
		theme:  opt.Theme,
		audio:  opt.Audio,
	}
	sim.Events.AttachStatus(race.StatusFunc(d.SetStatus))
	sim.Events.Subscribe(race.EventCollision, func(race.Event) {
		d.shake.Add(ShakeIntensity, ShakeDuration)
	})
	d.SetStatus(sim.Race.Status)

	return race.NewLoop(sim, d, d).Run(ctx)
}

// SetStatus mirrors the status line into the window title, which stays
// current while rendering is frozen by pause.
func (d *desktop) SetStatus(msg string) {
	title := WindowTitle
	if msg != "" {
		title += " - " + msg
	}
	d.window.SetTitle(title)
}

func (d *desktop) Next(ctx context.Context) (time.Time, error) {
	if err := ctx.Err(); err != nil {
		return time.Time{}, err
	}
	if !d.presented {
		time.Sleep(IdleFrame)
	}
	d.presented = false
	return time.Now(), nil
}

func (d *desktop) Poll() (race.Input, bool) {
	glfw.PollEvents()
	if d.window.ShouldClose() || d.window.GetKey(glfw.KeyEscape) == glfw.Press {
		return race.Input{}, false
	}
	in := d.input.Sample(d.window)
	for _, a := range in.Actions {
		if a == race.ActionTogglePause {
			// Paused frames are not presented; reset shake timing so
			// resume does not see one long frame.
			d.lastPresent = time.Time{}
		}
	}
	return in, true
}

func (d *desktop) Viewport() (float64, float64) {
	w, h := d.window.GetSize()
	return float64(w), float64(h)
}

func (d *desktop) Present(snap race.Snapshot) {
	now := time.Now()
	dt := 0.0
	if !d.lastPresent.IsZero() {
		dt = race.Clamp(now.Sub(d.lastPresent).Seconds(), 0, race.MaxFrameDelta)
	}
	d.lastPresent = now
	d.shakeSeed++
	d.shake.Update(dt, d.shakeSeed)

	d.audio.SetEngine(snap.Car.SpeedFraction())

	fbW, fbH := d.window.GetFramebufferSize()
	w, h := d.Viewport()
	if fbW <= 0 || fbH <= 0 || w <= 0 || h <= 0 {
		return
	}

	d.rend.BeginFrame(fbW, fbH, w, h)
	d.rend.SetOffset(d.shake.X, d.shake.Y)
	scene.Paint(d.rend, snap, d.theme)
	d.rend.SetOffset(0, 0)
	scene.PaintHUD(d.rend, scene.HUD(snap), d.theme)
	d.rend.EndFrame()

	d.window.SwapBuffers()
	d.presented = true
}
