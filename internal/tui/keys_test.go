package tui

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"

	"racer/internal/race"
)

func TestHeldKeys_FirstPressBridgesRepeatDelay(t *testing.T) {
	t.Parallel()
	var h heldKeys
	t0 := time.Unix(1000, 0)
	h.Press(race.IntentAccelerate, t0)

	assert.Equal(t, race.IntentAccelerate, h.Intents(t0.Add(FirstHold-time.Millisecond)))
	assert.Zero(t, h.Intents(t0.Add(FirstHold)))
}

func TestHeldKeys_RepeatExtendsShortly(t *testing.T) {
	t.Parallel()
	var h heldKeys
	t0 := time.Unix(1000, 0)
	h.Press(race.IntentSteerLeft, t0)
	t1 := t0.Add(400 * time.Millisecond)
	h.Press(race.IntentSteerLeft, t1)

	assert.True(t, h.Intents(t1.Add(RepeatHold-time.Millisecond)).Has(race.IntentSteerLeft))
	assert.False(t, h.Intents(t1.Add(RepeatHold)).Has(race.IntentSteerLeft))
}

func TestHeldKeys_OppositeReleases(t *testing.T) {
	t.Parallel()
	var h heldKeys
	t0 := time.Unix(1000, 0)
	h.Press(race.IntentSteerLeft, t0)
	h.Press(race.IntentAccelerate, t0)
	h.Press(race.IntentSteerRight, t0.Add(time.Millisecond))

	got := h.Intents(t0.Add(2 * time.Millisecond))
	assert.Equal(t, race.IntentSteerRight|race.IntentAccelerate, got)

	h.Press(race.IntentBrake, t0.Add(3*time.Millisecond))
	got = h.Intents(t0.Add(4 * time.Millisecond))
	assert.Equal(t, race.IntentSteerRight|race.IntentBrake, got)

	h.ReleaseAll()
	assert.Zero(t, h.Intents(t0.Add(5*time.Millisecond)))
}

func TestTranslateKey(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		key  tcell.Key
		r    rune
		want keyResult
	}{
		{"up", tcell.KeyUp, 0, keyResult{intent: race.IntentAccelerate}},
		{"down", tcell.KeyDown, 0, keyResult{intent: race.IntentBrake}},
		{"left", tcell.KeyLeft, 0, keyResult{intent: race.IntentSteerLeft}},
		{"right", tcell.KeyRight, 0, keyResult{intent: race.IntentSteerRight}},
		{"w", tcell.KeyRune, 'w', keyResult{intent: race.IntentAccelerate}},
		{"S", tcell.KeyRune, 'S', keyResult{intent: race.IntentBrake}},
		{"a", tcell.KeyRune, 'a', keyResult{intent: race.IntentSteerLeft}},
		{"d", tcell.KeyRune, 'd', keyResult{intent: race.IntentSteerRight}},
		{"space", tcell.KeyRune, ' ', keyResult{action: race.ActionStart, hasAction: true}},
		{"p", tcell.KeyRune, 'p', keyResult{action: race.ActionTogglePause, hasAction: true}},
		{"r", tcell.KeyRune, 'r', keyResult{action: race.ActionReset, hasAction: true}},
		{"c", tcell.KeyRune, 'C', keyResult{action: race.ActionCycleColor, hasAction: true}},
		{"q", tcell.KeyRune, 'q', keyResult{quit: true}},
		{"esc", tcell.KeyEscape, 0, keyResult{quit: true}},
		{"ctrl-c", tcell.KeyCtrlC, 0, keyResult{quit: true}},
		{"unbound rune", tcell.KeyRune, 'z', keyResult{}},
		{"unbound key", tcell.KeyF5, 0, keyResult{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, translateKey(tt.key, tt.r))
		})
	}
}
