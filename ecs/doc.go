// Package ecs provides ECS adapters for arbor's dispatch pipeline.
//
// The primary adapter is [NewDonburiStore], which forwards every event the
// dispatcher delivers to a [Donburi] world as a typed event. Subscribe to
// [InteractionEventType] in your ECS systems to receive them, and tag
// entities with [Pickable] to resolve an event's pick identifier back to an
// entity with [EntryForPick].
//
// Usage:
//
//	store := ecs.NewDonburiStore(world)
//	scene.SetEntityStore(store)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
