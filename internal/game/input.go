package game

import (
	"github.com/go-gl/glfw/v3.3/glfw"

	"racer/internal/race"
)

// Held keys, arrows plus WASD aliases.
var intentKeys = []struct {
	intent race.Intents
	keys   []glfw.Key
}{
	{race.IntentAccelerate, []glfw.Key{glfw.KeyUp, glfw.KeyW}},
	{race.IntentBrake, []glfw.Key{glfw.KeyDown, glfw.KeyS}},
	{race.IntentSteerLeft, []glfw.Key{glfw.KeyLeft, glfw.KeyA}},
	{race.IntentSteerRight, []glfw.Key{glfw.KeyRight, glfw.KeyD}},
}

// Edge-triggered keys.
var actionKeys = []struct {
	action race.Action
	key    glfw.Key
}{
	{race.ActionStart, glfw.KeySpace},
	{race.ActionTogglePause, glfw.KeyP},
	{race.ActionReset, glfw.KeyR},
	{race.ActionCycleColor, glfw.KeyC},
}

type Input struct {
	prevKeys map[glfw.Key]bool
}

func NewInput() *Input {
	return &Input{prevKeys: make(map[glfw.Key]bool)}
}

func (in *Input) JustPressed(window *glfw.Window, key glfw.Key) bool {
	down := window.GetKey(key) == glfw.Press
	jp := down && !in.prevKeys[key]
	in.prevKeys[key] = down
	return jp
}

// Sample reads held intents and newly pressed actions for one frame.
func (in *Input) Sample(window *glfw.Window) race.Input {
	var out race.Input
	for _, b := range intentKeys {
		for _, k := range b.keys {
			if window.GetKey(k) == glfw.Press {
				out.Intents |= b.intent
				break
			}
		}
	}
	for _, b := range actionKeys {
		if in.JustPressed(window, b.key) {
			out.Actions = append(out.Actions, b.action)
		}
	}
	return out
}
