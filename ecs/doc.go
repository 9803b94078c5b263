// Package ecs provides ECS adapters for bramble's interaction event stream.
//
// The primary adapter is [NewDonburiStore], which forwards bramble
// interaction events (hover, click, scroll, drag lifecycle) into a
// [Donburi] world as typed events. Subscribe to [InteractionEventType] in
// your ECS systems to receive them.
//
// Usage:
//
//	store := ecs.NewDonburiStore(world)
//	pipe.SetStore(store)
//
// Forwarding can be narrowed to the kinds a world's systems consume:
//
//	store := ecs.NewDonburiStore(world).Only(bramble.EventClick, bramble.EventDrop)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
