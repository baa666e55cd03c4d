// Package ecs provides ECS adapters for screens.
//
// The primary adapter is [NewDonburiSink], which bridges screen lifecycle,
// progress and dismissal events into a [Donburi] world as typed events.
// Subscribe to [ScreenEventType] in your ECS systems to receive them.
//
// Usage:
//
//	sink := ecs.NewDonburiSink(world)
//	stage.SetEventSink(sink)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
