// Package ecs provides ECS adapters for screens.
package ecs

import (
	"github.com/phanxgames/screens"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// ScreenEventType is the Donburi event type for screen events.
// Subscribe to this in your ECS systems to receive lifecycle, progress and
// dismissal events.
var ScreenEventType = events.NewEventType[screens.Event]()

type donburiSink struct {
	world donburi.World
}

// NewDonburiSink creates an EventSink backed by a Donburi world.
// Events are queued on ScreenEventType and delivered when the world
// processes events, so Emit never runs subscribers inline.
func NewDonburiSink(world donburi.World) screens.EventSink {
	return &donburiSink{world: world}
}

func (s *donburiSink) Emit(e screens.Event) {
	ScreenEventType.Publish(s.world, e)
}
