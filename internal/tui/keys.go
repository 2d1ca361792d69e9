package tui

import (
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"

	"racer/internal/race"
)

// Terminals deliver key presses and auto-repeats but no releases. A fresh
// press is held long enough to bridge the auto-repeat delay; each repeat then
// extends it briefly.
const (
	FirstHold  = 500 * time.Millisecond
	RepeatHold = 120 * time.Millisecond
)

var intentBits = [...]race.Intents{
	race.IntentAccelerate,
	race.IntentBrake,
	race.IntentSteerLeft,
	race.IntentSteerRight,
}

func opposite(i race.Intents) race.Intents {
	switch i {
	case race.IntentAccelerate:
		return race.IntentBrake
	case race.IntentBrake:
		return race.IntentAccelerate
	case race.IntentSteerLeft:
		return race.IntentSteerRight
	case race.IntentSteerRight:
		return race.IntentSteerLeft
	}
	return 0
}

// heldKeys latches intents from press events. Written by the event pump,
// read by the loop.
type heldKeys struct {
	mu    sync.Mutex
	until [len(intentBits)]time.Time
}

func (h *heldKeys) Press(i race.Intents, now time.Time) {
	h.mu.Lock()
	defer h.mu.Unlock()
	opp := opposite(i)
	for k, bit := range intentBits {
		switch bit {
		case i:
			hold := FirstHold
			if now.Before(h.until[k]) {
				hold = RepeatHold
			}
			h.until[k] = now.Add(hold)
		case opp:
			h.until[k] = time.Time{}
		}
	}
}

// Intents returns the set still held at now.
func (h *heldKeys) Intents(now time.Time) race.Intents {
	h.mu.Lock()
	defer h.mu.Unlock()
	var out race.Intents
	for k, bit := range intentBits {
		if now.Before(h.until[k]) {
			out |= bit
		}
	}
	return out
}

func (h *heldKeys) ReleaseAll() {
	h.mu.Lock()
	h.until = [len(intentBits)]time.Time{}
	h.mu.Unlock()
}

type keyResult struct {
	intent    race.Intents
	action    race.Action
	hasAction bool
	quit      bool
}

// translateKey maps a terminal key to its driving intent, action or quit.
func translateKey(k tcell.Key, r rune) keyResult {
	switch k {
	case tcell.KeyUp:
		return keyResult{intent: race.IntentAccelerate}
	case tcell.KeyDown:
		return keyResult{intent: race.IntentBrake}
	case tcell.KeyLeft:
		return keyResult{intent: race.IntentSteerLeft}
	case tcell.KeyRight:
		return keyResult{intent: race.IntentSteerRight}
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return keyResult{quit: true}
	case tcell.KeyRune:
	default:
		return keyResult{}
	}
	switch r {
	case 'w', 'W':
		return keyResult{intent: race.IntentAccelerate}
	case 's', 'S':
		return keyResult{intent: race.IntentBrake}
	case 'a', 'A':
		return keyResult{intent: race.IntentSteerLeft}
	case 'd', 'D':
		return keyResult{intent: race.IntentSteerRight}
	case ' ':
		return keyResult{action: race.ActionStart, hasAction: true}
	case 'p', 'P':
		return keyResult{action: race.ActionTogglePause, hasAction: true}
	case 'r', 'R':
		return keyResult{action: race.ActionReset, hasAction: true}
	case 'c', 'C':
		return keyResult{action: race.ActionCycleColor, hasAction: true}
	case 'q', 'Q':
		return keyResult{quit: true}
	}
	return keyResult{}
}
