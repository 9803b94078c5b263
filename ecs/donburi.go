package ecs

import (
	"github.com/phanxgames/bramble"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// InteractionEventType is the Donburi event type for bramble interaction
// events. Subscribe to this in your ECS systems to receive hover, click,
// scroll, and drag events.
var InteractionEventType = events.NewEventType[bramble.Event]()

// DonburiStore forwards bramble interaction events into a Donburi world
// as typed events. It implements [bramble.EntityStore]; install it with
// [bramble.Pipeline.SetStore]. By default every event kind is forwarded;
// narrow it with [DonburiStore.Only].
type DonburiStore struct {
	world donburi.World
	only  map[bramble.EventType]bool // nil forwards everything
}

// NewDonburiStore creates a store backed by a Donburi world.
func NewDonburiStore(world donburi.World) *DonburiStore {
	return &DonburiStore{world: world}
}

// Only restricts forwarding to the listed kinds, e.g. just Click and Drop
// for a world whose systems ignore hover churn. Returns the store, so it
// chains with the constructor.
func (s *DonburiStore) Only(kinds ...bramble.EventType) *DonburiStore {
	s.only = make(map[bramble.EventType]bool, len(kinds))
	for _, k := range kinds {
		s.only[k] = true
	}
	return s
}

// Subscribe registers a handler for forwarded events. Donburi queues
// events; handlers run when the world's events are processed.
func (s *DonburiStore) Subscribe(fn func(w donburi.World, e bramble.Event)) {
	InteractionEventType.Subscribe(s.world, fn)
}

// EmitEvent implements [bramble.EntityStore].
func (s *DonburiStore) EmitEvent(event bramble.Event) {
	if s.only != nil && !s.only[event.Kind] {
		return
	}
	InteractionEventType.Publish(s.world, event)
}
