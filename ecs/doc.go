// Package ecs provides ECS adapters for entropy's registry events.
//
// [NewDonburiSink] bridges point events (added, removed, reset, exported)
// into a [Donburi] world as typed events. Subscribe to [PointEventType] in
// your ECS systems to receive them. [Mirror] keeps one entity per registry
// point so systems can query spawners and targets like any other component.
//
// Usage:
//
//	engine.SetEventSink(ecs.NewDonburiSink(world))
//	mirror := ecs.NewMirror(world, engine)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
