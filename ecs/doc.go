// Package ecs provides ECS adapters for gesture's event sink.
//
// The primary adapter is [NewDonburiSink], which bridges classified
// gestures (tap, swipe, pinch, pan, ...) into a [Donburi] world as typed
// events. Subscribe to [GestureEventType] in your ECS systems to receive
// them.
//
// Usage:
//
//	sink := ecs.NewDonburiSink(world)
//	surface.Recognizer().SetEventSink(sink)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
