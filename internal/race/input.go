package race

import "sync"

// Intents is the set of held driving inputs, sampled once per step.
type Intents uint8

const (
	IntentAccelerate Intents = 1 << iota
	IntentBrake
	IntentSteerLeft
	IntentSteerRight
)

func (i Intents) Has(f Intents) bool { return i&f != 0 }

// Action is an edge-triggered command consumed at the start of a frame.
type Action int

const (
	ActionStart Action = iota
	ActionTogglePause
	ActionReset
	ActionCycleColor
)

func (a Action) String() string {
	switch a {
	case ActionStart:
		return "start"
	case ActionTogglePause:
		return "pause"
	case ActionReset:
		return "reset"
	case ActionCycleColor:
		return "color"
	}
	return "unknown"
}

// Input is one frame's worth of player intent.
type Input struct {
	Intents Intents
	Actions []Action
}

// ActionQueue buffers actions between frames. Producers may run on another
// goroutine (terminal event pump); Drain is called by the loop.
type ActionQueue struct {
	mu  sync.Mutex
	buf []Action
}

func (q *ActionQueue) Push(a Action) {
	q.mu.Lock()
	q.buf = append(q.buf, a)
	q.mu.Unlock()
}

// Drain returns queued actions in arrival order and empties the queue.
func (q *ActionQueue) Drain() []Action {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.buf) == 0 {
		return nil
	}
	out := q.buf
	q.buf = nil
	return out
}
