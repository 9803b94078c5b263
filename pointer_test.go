package bramble

import (
	"testing"
)

func TestPointerID_String(t *testing.T) {
	tests := []struct {
		name string
		id   PointerID
		want string
	}{
		{"mouse", PointerMouse, "mouse"},
		{"touch", TouchPointer(3), "touch(3)"},
		{"custom", CustomPointer("replay"), "custom(replay)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.id.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRegistry_ImplicitRegistration(t *testing.T) {
	r := NewRegistry()

	// Mouse and touch pointers appear on first observed input.
	r.SetLocation(PointerMouse, Location{Position: Vec2{X: 5}})
	r.Press(TouchPointer(1), ButtonPrimary)

	if !r.Registered(PointerMouse) {
		t.Error("mouse should be registered after SetLocation")
	}
	if !r.Registered(TouchPointer(1)) {
		t.Error("touch should be registered after Press")
	}

	// Custom pointers require explicit registration; input is dropped.
	r.SetLocation(CustomPointer("pad"), Location{})
	if r.Registered(CustomPointer("pad")) {
		t.Error("custom pointer must not be implicitly registered")
	}

	r.Register(CustomPointer("pad"))
	r.SetLocation(CustomPointer("pad"), Location{Position: Vec2{X: 1}})
	if loc, ok := r.Location(CustomPointer("pad")); !ok || loc.Position.X != 1 {
		t.Errorf("custom pointer location = %v, %v", loc, ok)
	}
}

func TestRegistry_ActiveOrder(t *testing.T) {
	r := NewRegistry()
	r.Register(CustomPointer("a"))
	r.Register(PointerMouse)
	r.Register(TouchPointer(7))

	want := []PointerID{CustomPointer("a"), PointerMouse, TouchPointer(7)}
	got := r.Active()
	if len(got) != len(want) {
		t.Fatalf("Active() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Active() = %v, want %v", got, want)
		}
	}

	r.Deregister(PointerMouse)
	got = r.Active()
	if len(got) != 2 || got[0] != CustomPointer("a") || got[1] != TouchPointer(7) {
		t.Fatalf("Active() after deregister = %v", got)
	}
}

func TestRegistry_Location(t *testing.T) {
	r := NewRegistry()

	if _, ok := r.Location(PointerMouse); ok {
		t.Error("unknown pointer should have no location")
	}

	r.SetLocation(PointerMouse, Location{Position: Vec2{X: 10, Y: 20}})
	loc, ok := r.Location(PointerMouse)
	if !ok || loc.Position != (Vec2{X: 10, Y: 20}) {
		t.Errorf("Location = %v, %v", loc, ok)
	}

	// Off-surface is a valid state, not an error.
	r.ClearLocation(PointerMouse)
	if _, ok := r.Location(PointerMouse); ok {
		t.Error("cleared pointer should report no location")
	}
	if !r.Registered(PointerMouse) {
		t.Error("clearing location must not deregister the pointer")
	}
}

func TestRegistry_MovedFlag(t *testing.T) {
	r := NewRegistry()
	r.SetLocation(PointerMouse, Location{Position: Vec2{X: 1}})
	if !r.pointers[PointerMouse].moved {
		t.Error("first location should set moved")
	}
	r.endFrame()

	r.SetLocation(PointerMouse, Location{Position: Vec2{X: 1}})
	if r.pointers[PointerMouse].moved {
		t.Error("unchanged location must not set moved")
	}

	r.SetLocation(PointerMouse, Location{Position: Vec2{X: 2}})
	if !r.pointers[PointerMouse].moved {
		t.Error("changed location should set moved")
	}
}

func TestRegistry_PressEdges(t *testing.T) {
	r := NewRegistry()
	r.Register(PointerMouse)

	// A press and release within one frame keep both transitions.
	r.Press(PointerMouse, ButtonPrimary)
	r.Release(PointerMouse, ButtonPrimary)

	edges := r.pointers[PointerMouse].edges
	if len(edges) != 2 {
		t.Fatalf("expected 2 edges, got %d", len(edges))
	}
	if !edges[0].pressed || edges[1].pressed {
		t.Errorf("edges = %+v, want press then release", edges)
	}
	if r.Pressed(PointerMouse, ButtonPrimary) {
		t.Error("button should be up after release")
	}
}

func TestRegistry_PressIsLevelIdempotent(t *testing.T) {
	r := NewRegistry()
	r.Register(PointerMouse)

	// Repeated Press calls while held (polling input sources do this)
	// must not multiply edges.
	r.Press(PointerMouse, ButtonPrimary)
	r.Press(PointerMouse, ButtonPrimary)
	r.Release(PointerMouse, ButtonPrimary)
	r.Release(PointerMouse, ButtonPrimary)

	if got := len(r.pointers[PointerMouse].edges); got != 2 {
		t.Errorf("expected 2 edges, got %d", got)
	}
}

func TestRegistry_IndependentButtons(t *testing.T) {
	r := NewRegistry()
	r.Register(PointerMouse)
	r.Press(PointerMouse, ButtonPrimary)
	r.Press(PointerMouse, ButtonSecondary)
	r.Release(PointerMouse, ButtonPrimary)

	if r.Pressed(PointerMouse, ButtonPrimary) {
		t.Error("primary should be released")
	}
	if !r.Pressed(PointerMouse, ButtonSecondary) {
		t.Error("secondary should still be held")
	}
}

func TestRegistry_ScrollAccumulates(t *testing.T) {
	r := NewRegistry()
	r.ScrollBy(PointerMouse, Vec2{Y: 1})
	r.ScrollBy(PointerMouse, Vec2{X: 2, Y: -3})

	if got := r.pointers[PointerMouse].scroll; got != (Vec2{X: 2, Y: -2}) {
		t.Errorf("scroll = %v, want {2 -2}", got)
	}

	r.endFrame()
	if got := r.pointers[PointerMouse].scroll; !got.IsZero() {
		t.Errorf("scroll after endFrame = %v, want zero", got)
	}
}

func TestRegistry_Cancel(t *testing.T) {
	r := NewRegistry()
	r.Register(PointerMouse)
	r.Press(PointerMouse, ButtonPrimary)
	r.Cancel(PointerMouse)

	ps := r.pointers[PointerMouse]
	if !ps.cancelled {
		t.Error("cancel should set the cancelled flag")
	}
	if ps.anyDown() {
		t.Error("cancel should release all buttons")
	}
	if len(ps.edges) != 0 {
		t.Error("cancel should drop pending press edges")
	}
}

func TestRegistry_EndFrameClearsPerFrameState(t *testing.T) {
	r := NewRegistry()
	r.SetLocation(PointerMouse, Location{Position: Vec2{X: 1}})
	r.Press(PointerMouse, ButtonPrimary)
	r.ScrollBy(PointerMouse, Vec2{Y: 4})
	r.endFrame()

	ps := r.pointers[PointerMouse]
	if ps.moved || len(ps.edges) != 0 || !ps.scroll.IsZero() || ps.cancelled {
		t.Errorf("per-frame state not cleared: %+v", ps)
	}
	// Level state survives the frame boundary.
	if !ps.down[ButtonPrimary] {
		t.Error("held button must survive endFrame")
	}
	if ps.location == nil {
		t.Error("location must survive endFrame")
	}
}
