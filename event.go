package screens

// EventKind identifies an outbound screen event.
type EventKind uint8

const (
	EventWillAppear         EventKind = iota // screen is about to become visible
	EventAppear                              // screen finished becoming visible
	EventWillDisappear                       // screen is about to be hidden
	EventDisappear                           // screen finished being hidden
	EventTransitionProgress                  // transition progress telemetry
	EventDismissed                           // screen was permanently removed from its container
)

var eventKindNames = [...]string{
	EventWillAppear:         "willAppear",
	EventAppear:             "appear",
	EventWillDisappear:      "willDisappear",
	EventDisappear:          "disappear",
	EventTransitionProgress: "transitionProgress",
	EventDismissed:          "dismissed",
}

func (k EventKind) String() string {
	if int(k) < len(eventKindNames) {
		return eventKindNames[k]
	}
	return "unknown"
}

// IsLifecycle reports whether k is one of the four gated lifecycle events.
func (k EventKind) IsLifecycle() bool {
	return k <= EventDisappear
}

// Coalescing keys carried by transition progress events. A transport may
// collapse consecutive events sharing a key; the boundary keys are distinct
// so 0 and 1 are never merged away.
const (
	CoalesceStart   int16 = 1
	CoalesceEnd     int16 = 2
	CoalesceOngoing int16 = 3
)

// Event is a single outbound notification. Progress, Closing, GoingForward
// and CoalescingKey are only meaningful for EventTransitionProgress.
type Event struct {
	Kind      EventKind
	SurfaceID int
	ScreenID  uint32

	Progress      float64
	Closing       bool
	GoingForward  bool
	CoalescingKey int16
}

// EventSink receives events. Emit must not block the calling thread.
type EventSink interface {
	Emit(e Event)
}

// SinkFunc adapts a plain function to EventSink.
type SinkFunc func(e Event)

// Emit calls f(e).
func (f SinkFunc) Emit(e Event) { f(e) }

type discardSink struct{}

func (discardSink) Emit(Event) {}

// DiscardSink drops every event.
var DiscardSink EventSink = discardSink{}
