package ecs

import (
	"testing"

	"github.com/phanxgames/bramble"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

func TestNewDonburiStore(t *testing.T) {
	world := donburi.NewWorld()
	store := NewDonburiStore(world)
	if store == nil {
		t.Fatal("NewDonburiStore returned nil")
	}
}

func TestDonburiStore_EmitEvent(t *testing.T) {
	world := donburi.NewWorld()
	store := NewDonburiStore(world)

	var received []bramble.Event
	InteractionEventType.Subscribe(world, func(w donburi.World, e bramble.Event) {
		received = append(received, e)
	})

	store.EmitEvent(bramble.Event{
		Kind:     bramble.EventClick,
		Target:   42,
		Pointer:  bramble.PointerMouse,
		Location: bramble.Location{Position: bramble.Vec2{X: 100, Y: 200}},
	})
	store.EmitEvent(bramble.Event{
		Kind:    bramble.EventDrop,
		Target:  7,
		Dropped: 42,
	})

	// Events are queued — process them.
	InteractionEventType.ProcessEvents(world)

	if len(received) != 2 {
		t.Fatalf("expected 2 events, got %d", len(received))
	}

	e0 := received[0]
	if e0.Kind != bramble.EventClick || e0.Target != 42 {
		t.Errorf("event 0: %+v", e0)
	}
	if e0.Location.Position.X != 100 || e0.Location.Position.Y != 200 {
		t.Errorf("event 0 position: %+v", e0.Location.Position)
	}

	e1 := received[1]
	if e1.Kind != bramble.EventDrop || e1.Dropped != 42 {
		t.Errorf("event 1: %+v", e1)
	}
}

func TestDonburiStore_PipelineForwarding(t *testing.T) {
	world := donburi.NewWorld()

	pipe := bramble.NewPipeline()
	pipe.SetStore(NewDonburiStore(world))

	var kinds []bramble.EventType
	InteractionEventType.Subscribe(world, func(w donburi.World, e bramble.Event) {
		kinds = append(kinds, e.Kind)
	})

	pipe.Pointers().SetLocation(bramble.PointerMouse, bramble.Location{})
	pipe.Submit(bramble.PointerHits{
		Pointer: bramble.PointerMouse,
		Source:  "test",
		Hits:    []bramble.EntityHit{{Target: 1}},
	})
	pipe.Tick()
	events.ProcessAllEvents(world)

	// Move fires alongside Over: the pointer appeared on-surface this frame.
	want := []bramble.EventType{bramble.EventOver, bramble.EventMove}
	if len(kinds) != len(want) {
		t.Fatalf("expected %v, got %v", want, kinds)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, kinds)
		}
	}
}

func TestDonburiStore_OnlyFiltersKinds(t *testing.T) {
	world := donburi.NewWorld()
	store := NewDonburiStore(world).Only(bramble.EventClick, bramble.EventDrop)

	var kinds []bramble.EventType
	store.Subscribe(func(w donburi.World, e bramble.Event) {
		kinds = append(kinds, e.Kind)
	})

	store.EmitEvent(bramble.Event{Kind: bramble.EventOver, Target: 1})
	store.EmitEvent(bramble.Event{Kind: bramble.EventClick, Target: 1})
	store.EmitEvent(bramble.Event{Kind: bramble.EventMove, Target: 1})
	store.EmitEvent(bramble.Event{Kind: bramble.EventDrop, Target: 2, Dropped: 1})
	events.ProcessAllEvents(world)

	want := []bramble.EventType{bramble.EventClick, bramble.EventDrop}
	if len(kinds) != len(want) {
		t.Fatalf("forwarded kinds = %v, want %v", kinds, want)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Fatalf("forwarded kinds = %v, want %v", kinds, want)
		}
	}
}

func TestDonburiStore_MultipleSubscribers(t *testing.T) {
	world := donburi.NewWorld()
	store := NewDonburiStore(world)

	var count1, count2 int
	InteractionEventType.Subscribe(world, func(w donburi.World, e bramble.Event) {
		count1++
	})
	InteractionEventType.Subscribe(world, func(w donburi.World, e bramble.Event) {
		count2++
	})

	store.EmitEvent(bramble.Event{Kind: bramble.EventClick})
	events.ProcessAllEvents(world)

	if count1 != 1 || count2 != 1 {
		t.Errorf("expected both subscribers called once, got %d and %d", count1, count2)
	}
}
