package race

type EventType int

const (
	EventRaceStarted EventType = iota
	EventPaused
	EventResumed
	EventReset
	EventCollision
	EventLapCompleted
	EventRaceFinished
	EventColorChanged
)

func (t EventType) String() string {
	switch t {
	case EventRaceStarted:
		return "race_started"
	case EventPaused:
		return "paused"
	case EventResumed:
		return "resumed"
	case EventReset:
		return "reset"
	case EventCollision:
		return "collision"
	case EventLapCompleted:
		return "lap_completed"
	case EventRaceFinished:
		return "race_finished"
	case EventColorChanged:
		return "color_changed"
	}
	return "unknown"
}

type Event struct {
	Type    EventType
	Lap     int     // lap just completed (lap events)
	LapTime float64 // ms (lap events)
	Best    float64 // ms, 0 when none
	Rival   int     // pool index at the time of the hit (collision)
	Speed   float64 // player speed after the event
	Status  string  // message written to the status sink, may be empty
}

type EventHandler func(Event)

// EventBus fans simulation events out to frontends (status line, audio,
// camera shake, logging). Handlers run synchronously inside Step.
type EventBus struct {
	handlers map[EventType][]EventHandler
	all      []EventHandler
}

func NewEventBus() *EventBus {
	return &EventBus{
		handlers: make(map[EventType][]EventHandler),
	}
}

func (eb *EventBus) Subscribe(t EventType, fn EventHandler) {
	eb.handlers[t] = append(eb.handlers[t], fn)
}

// SubscribeAll registers fn for every event type.
func (eb *EventBus) SubscribeAll(fn EventHandler) {
	eb.all = append(eb.all, fn)
}

func (eb *EventBus) Emit(e Event) {
	for _, fn := range eb.handlers[e.Type] {
		fn(e)
	}
	for _, fn := range eb.all {
		fn(e)
	}
}

// StatusSink is a single-slot text display. Writes are fire-and-forget.
type StatusSink interface {
	SetStatus(msg string)
}

// StatusFunc adapts a plain function to StatusSink.
type StatusFunc func(string)

func (f StatusFunc) SetStatus(msg string) { f(msg) }

// AttachStatus forwards every status-carrying event to sink. Pause toggles
// clear the slot on resume, so empty messages are forwarded for them too.
func (eb *EventBus) AttachStatus(sink StatusSink) {
	eb.SubscribeAll(func(e Event) {
		if e.Status != "" || e.Type == EventResumed {
			sink.SetStatus(e.Status)
		}
	})
}
