// Command racer is a top-down arcade racer. It opens an OpenGL window by
// default and falls back to the terminal with -tui.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"runtime/debug"
	"strconv"
	"strings"
	"syscall"
	"time"

	"racer/internal/audio"
	"racer/internal/game"
	"racer/internal/race"
	"racer/internal/scene"
	"racer/internal/tui"
)

// GLFW must run on the main thread.
func init() { runtime.LockOSThread() }

type options struct {
	laps      int
	seed      uint64
	tui       bool
	theme     string
	color     string
	spawnRate float64
	mute      bool
	debug     bool
	width     int
	height    int
}

func parseFlags(fs *flag.FlagSet, args []string) (options, error) {
	var o options
	fs.IntVar(&o.laps, "laps", race.DefaultLaps, "laps per race")
	fs.Uint64Var(&o.seed, "seed", 0, "rival RNG seed (0: $RACER_SEED or clock)")
	fs.BoolVar(&o.tui, "tui", false, "run in the terminal instead of a window")
	fs.StringVar(&o.theme, "theme", scene.DefaultTheme, "colour theme: "+strings.Join(scene.ThemeNames(), ", "))
	fs.StringVar(&o.color, "color", "", "player car colour as #rrggbb")
	fs.Float64Var(&o.spawnRate, "spawn-rate", race.RivalSpawnRate, "expected rival spawns per second")
	fs.BoolVar(&o.mute, "mute", false, "disable audio")
	fs.BoolVar(&o.debug, "debug", false, "write logs/racer.log")
	fs.IntVar(&o.width, "width", game.WindowWidth, "window width")
	fs.IntVar(&o.height, "height", game.WindowHeight, "window height")
	err := fs.Parse(args)
	return o, err
}

// resolveSeed prefers the flag, then the environment, then the clock.
func resolveSeed(flagSeed uint64, env string, now time.Time) uint64 {
	if flagSeed != 0 {
		return flagSeed
	}
	if env != "" {
		if v, err := strconv.ParseUint(env, 10, 64); err == nil {
			return v
		}
	}
	return uint64(now.UnixNano())
}

func buildSimulation(o options) (*race.Simulation, error) {
	tn := race.DefaultTuning()
	tn.TotalLaps = o.laps
	tn.SpawnRate = o.spawnRate
	if err := tn.Validate(); err != nil {
		return nil, err
	}
	sim := race.NewSimulation(tn, resolveSeed(o.seed, os.Getenv("RACER_SEED"), time.Now()))
	if o.color != "" {
		if err := sim.Car.SetColor(o.color); err != nil {
			return nil, fmt.Errorf("-color: %w", err)
		}
	}
	return sim, nil
}

func logEvents(bus *race.EventBus) {
	bus.SubscribeAll(func(e race.Event) {
		slog.Debug("race event",
			"type", e.Type.String(),
			"lap", e.Lap,
			"lap_time", race.FormatLapTime(e.LapTime),
			"speed", e.Speed,
			"status", e.Status,
		)
	})
}

func run(ctx context.Context, o options) error {
	th, err := scene.ThemeByName(o.theme)
	if err != nil {
		return err
	}
	sim, err := buildSimulation(o)
	if err != nil {
		return err
	}
	logEvents(sim.Events)

	var snd *audio.System
	if !o.mute {
		if snd, err = audio.Init(); err != nil {
			slog.Warn("audio init failed, continuing without sound", "err", err)
			snd = nil
		}
	}
	defer snd.Close()
	snd.Attach(sim.Events)

	slog.Info("starting", "tui", o.tui, "laps", o.laps, "theme", th.Name)
	if o.tui {
		err = tui.Run(ctx, sim, tui.Options{Theme: th, Audio: snd})
	} else {
		err = game.RunDesktop(ctx, sim, game.Options{Width: o.width, Height: o.height, Theme: th, Audio: snd})
	}
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func main() {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("crashed", "panic", r)
			fmt.Fprintf(os.Stderr, "racer crashed: %v\n%s\n", r, debug.Stack())
			os.Exit(1)
		}
	}()
	os.Exit(realMain(flag.CommandLine, os.Args[1:], logDir))
}

// realMain returns the process exit code so deferred cleanup runs before
// main exits.
func realMain(fs *flag.FlagSet, args []string, dir string) int {
	o, err := parseFlags(fs, args)
	if err != nil {
		return 2
	}
	logFile, err := setupLogging(dir, o.debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logging: %v\n", err)
	}
	if logFile != nil {
		defer logFile.Close()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, o); err != nil {
		slog.Error("exit", "err", err)
		fmt.Fprintf(os.Stderr, "racer: %v\n", err)
		return 1
	}
	return 0
}
