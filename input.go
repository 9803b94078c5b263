package bramble

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// EbitenInput feeds mouse and touch state from [Ebitengine] into a
// pipeline's registry. Call [EbitenInput.Update] once per frame, before
// [Pipeline.Tick]:
//
//	func (g *Game) Update() error {
//		g.input.Update()
//		g.pipe.Tick()
//		return nil
//	}
//
// Touch pointers are registered on first contact. Lift-off is staged
// across three frames: the release is reported at the touch's last
// position (so Up/Click fire while the entity is still hovered), the
// location clears the next frame (emitting Out), and the pointer
// deregisters the frame after, once it holds no interaction state.
//
// [Ebitengine]: https://ebitengine.org
type EbitenInput struct {
	pipe     *Pipeline
	target   string
	active   map[ebiten.TouchID]bool
	lifted   []PointerID // released last frame; location clears this frame
	removed  []PointerID // location cleared last frame; deregisters this frame
	buf      []ebiten.TouchID
	contacts []touchContact
}

// touchContact is one touch id with its screen position for the frame.
type touchContact struct {
	id   ebiten.TouchID
	x, y int
}

// NewEbitenInput creates an input source feeding the pipeline's registry.
func NewEbitenInput(pipe *Pipeline) *EbitenInput {
	return &EbitenInput{
		pipe:   pipe,
		active: make(map[ebiten.TouchID]bool),
	}
}

// SetTarget sets the Location.Target used for generated locations, for
// applications picking against multiple surfaces.
func (in *EbitenInput) SetTarget(name string) {
	in.target = name
}

// mouseButtons maps ebiten buttons to logical pointer buttons.
var mouseButtons = [buttonCount]ebiten.MouseButton{
	ButtonPrimary:   ebiten.MouseButtonLeft,
	ButtonSecondary: ebiten.MouseButtonRight,
	ButtonMiddle:    ebiten.MouseButtonMiddle,
}

// Update reads the current mouse and touch state and forwards it to the
// registry. Press and release edges are derived by the registry, so
// calling this with an unchanged device state is a no-op.
func (in *EbitenInput) Update() {
	s := in.pipe.Settings()
	if !s.Enabled || !s.InputEnabled {
		return
	}
	reg := in.pipe.Pointers()

	in.flushLifted(reg)
	in.updateMouse(reg)
	in.updateTouches(reg)
}

// flushLifted walks lifted touches through their staged exit. Touches
// whose location was cleared last frame have had their Out consumed and
// deregister now; touches released last frame leave the surface now.
func (in *EbitenInput) flushLifted(reg *Registry) {
	for _, id := range in.removed {
		reg.Deregister(id)
	}
	in.removed = in.removed[:0]
	for _, id := range in.lifted {
		reg.ClearLocation(id)
	}
	in.removed, in.lifted = in.lifted, in.removed
}

func (in *EbitenInput) updateMouse(reg *Registry) {
	mx, my := ebiten.CursorPosition()
	reg.SetLocation(PointerMouse, Location{
		Target:   in.target,
		Position: Vec2{X: float64(mx), Y: float64(my)},
	})
	for b := PointerButton(0); b < buttonCount; b++ {
		if ebiten.IsMouseButtonPressed(mouseButtons[b]) {
			reg.Press(PointerMouse, b)
		} else {
			reg.Release(PointerMouse, b)
		}
	}
	if sx, sy := ebiten.Wheel(); sx != 0 || sy != 0 {
		reg.ScrollBy(PointerMouse, Vec2{X: sx, Y: sy})
	}
}

func (in *EbitenInput) updateTouches(reg *Registry) {
	in.buf = ebiten.AppendTouchIDs(in.buf[:0])
	in.contacts = in.contacts[:0]
	for _, tid := range in.buf {
		tx, ty := ebiten.TouchPosition(tid)
		in.contacts = append(in.contacts, touchContact{id: tid, x: tx, y: ty})
	}
	in.applyTouches(reg, in.contacts)
}

// applyTouches reconciles the frame's contacts against the active set.
// A disappeared contact is released at its last known position; the
// location is kept so the release frame still resolves a hover set.
func (in *EbitenInput) applyTouches(reg *Registry, contacts []touchContact) {
	current := make(map[ebiten.TouchID]bool, len(contacts))
	for _, c := range contacts {
		current[c.id] = true
		id := TouchPointer(int64(c.id))
		reg.SetLocation(id, Location{
			Target:   in.target,
			Position: Vec2{X: float64(c.x), Y: float64(c.y)},
		})
		reg.Press(id, ButtonPrimary)
	}

	for tid := range in.active {
		if !current[tid] {
			id := TouchPointer(int64(tid))
			reg.Release(id, ButtonPrimary)
			in.lifted = append(in.lifted, id)
		}
	}
	in.active = current
}
