package bramble

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

// Device polling itself needs a running ebiten context, so these tests
// cover only the parts that work headless.

func TestEbitenInput_ButtonMapping(t *testing.T) {
	if mouseButtons[ButtonPrimary] != ebiten.MouseButtonLeft {
		t.Error("primary must map to the left mouse button")
	}
	if mouseButtons[ButtonSecondary] != ebiten.MouseButtonRight {
		t.Error("secondary must map to the right mouse button")
	}
	if mouseButtons[ButtonMiddle] != ebiten.MouseButtonMiddle {
		t.Error("middle must map to the middle mouse button")
	}
}

func TestEbitenInput_TouchTapEmitsUpClickThenOut(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	p := NewPipeline()
	p.SetLogger(zap.New(core))
	touch := TouchPointer(7)
	p.AddBackend(&stubBackend{source: "world", hits: map[PointerID][]EntityHit{
		touch: {{Target: 1}},
	}})
	log := attachLog(p)
	in := NewEbitenInput(p)
	reg := p.Pointers()

	frame := func(contacts ...touchContact) {
		in.flushLifted(reg)
		in.applyTouches(reg, contacts)
		p.Tick()
	}

	// Contact, lift, then two empty frames to drain the staged exit.
	frame(touchContact{id: 7, x: 5, y: 5})
	frame()
	frame()
	frame()

	// The release is reported at the touch's last position, so Up and
	// Click fire while the entity is still hovered; Out follows when the
	// location clears a frame later.
	want := []EventType{EventOver, EventMove, EventDown, EventUp, EventClick, EventOut}
	if !kindsEqual(log.kindsFor(1), want) {
		t.Fatalf("tap events = %v, want %v", log.kindsFor(1), want)
	}
	for _, ev := range log.events {
		if ev.Kind == EventCancel {
			t.Error("a clean tap must not be cancelled")
		}
	}
	if reg.Registered(touch) {
		t.Error("lifted touch still registered after its exit frames")
	}
	// The staged exit keeps the pipeline from seeing a mid-press vanish.
	if logs.FilterMessageSnippet("disappeared").Len() != 0 {
		t.Error("lifted touch took the vanished-pointer path")
	}
}

func TestEbitenInput_DisabledUpdateIsNoOp(t *testing.T) {
	p := NewPipeline()
	in := NewEbitenInput(p)
	in.SetTarget("main")

	s := p.Settings()
	s.InputEnabled = false
	p.SetSettings(s)

	// Must return before touching any device state.
	in.Update()
	if _, ok := p.Pointers().Location(PointerMouse); ok {
		t.Error("disabled input source must not feed the registry")
	}

	s.InputEnabled = true
	s.Enabled = false
	p.SetSettings(s)
	in.Update()
	if _, ok := p.Pointers().Location(PointerMouse); ok {
		t.Error("input must stay off while the pipeline is disabled")
	}
}
