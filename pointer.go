package bramble

import (
	"fmt"

	"go.uber.org/zap"
)

// --- Pointer identity ---

// PointerKind distinguishes the origin of a pointer.
type PointerKind uint8

const (
	KindMouse  PointerKind = iota // the primary mouse cursor
	KindTouch                     // one touch contact
	KindCustom                    // application-defined (gamepad cursor, replay, test)
)

// PointerID is the identity of a logical pointer. It is comparable and
// usable as a map key. Mouse and touch pointers are registered implicitly
// on first observed input; custom pointers must be registered explicitly
// with [Registry.Register].
type PointerID struct {
	Kind   PointerKind
	Touch  int64  // touch contact id, valid when Kind == KindTouch
	Custom string // pointer name, valid when Kind == KindCustom
}

// PointerMouse is the primary mouse pointer.
var PointerMouse = PointerID{Kind: KindMouse}

// TouchPointer returns the PointerID for a touch contact.
func TouchPointer(id int64) PointerID {
	return PointerID{Kind: KindTouch, Touch: id}
}

// CustomPointer returns the PointerID for a named custom pointer.
func CustomPointer(name string) PointerID {
	return PointerID{Kind: KindCustom, Custom: name}
}

// String returns a short name for logs and test failures.
func (id PointerID) String() string {
	switch id.Kind {
	case KindMouse:
		return "mouse"
	case KindTouch:
		return fmt.Sprintf("touch(%d)", id.Touch)
	default:
		return fmt.Sprintf("custom(%s)", id.Custom)
	}
}

// --- Per-pointer state ---

// pressEdge records one press-state transition. Edges are queued, not
// collapsed: a press and release of the same button within one frame keeps
// both transitions so neither Down nor Up is dropped.
type pressEdge struct {
	button  PointerButton
	pressed bool
}

type pointerState struct {
	location  *Location // nil while off-surface
	moved     bool      // location changed this frame
	down      [buttonCount]bool
	edges     []pressEdge
	scroll    Vec2 // accumulated scroll delta for the frame
	cancelled bool
}

func (p *pointerState) anyDown() bool {
	for _, d := range p.down {
		if d {
			return true
		}
	}
	return false
}

// --- Registry ---

// Registry tracks every active pointer and its location, press, and scroll
// state. It is the ingestion point for raw input: an input source (such as
// [EbitenInput]) calls the update methods, and [Pipeline.Tick] consumes the
// accumulated state once per frame.
//
// Registry is not safe for concurrent use; feed it from the frame loop.
type Registry struct {
	pointers map[PointerID]*pointerState
	order    []PointerID // registration order, for deterministic iteration
	log      *zap.Logger
}

// NewRegistry creates an empty pointer registry.
func NewRegistry() *Registry {
	return &Registry{
		pointers: make(map[PointerID]*pointerState),
		log:      zap.NewNop(),
	}
}

// SetLogger sets the logger used for dropped-input diagnostics.
func (r *Registry) SetLogger(log *zap.Logger) {
	if log == nil {
		log = zap.NewNop()
	}
	r.log = log
}

// Register adds a pointer explicitly. Required for custom pointers;
// mouse and touch pointers may also be pre-registered. Registering an
// already-active pointer is a no-op.
func (r *Registry) Register(id PointerID) {
	if _, ok := r.pointers[id]; ok {
		return
	}
	r.pointers[id] = &pointerState{}
	r.order = append(r.order, id)
}

// Deregister removes a pointer. Interaction state the pointer held
// (hover, pending click, active drag) is cancelled on the next
// [Pipeline.Tick].
func (r *Registry) Deregister(id PointerID) {
	if _, ok := r.pointers[id]; !ok {
		return
	}
	delete(r.pointers, id)
	for i, o := range r.order {
		if o == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
}

// Registered reports whether the pointer is currently active.
func (r *Registry) Registered(id PointerID) bool {
	_, ok := r.pointers[id]
	return ok
}

// Active returns the active pointers in registration order.
// The returned slice MUST NOT be mutated.
func (r *Registry) Active() []PointerID {
	return r.order
}

// state returns the pointer's state, implicitly registering mouse and
// touch pointers. Updates for unknown custom pointers are dropped.
func (r *Registry) state(id PointerID) *pointerState {
	if ps, ok := r.pointers[id]; ok {
		return ps
	}
	if id.Kind == KindCustom {
		r.log.Debug("input for unregistered custom pointer dropped",
			zap.String("pointer", id.String()))
		return nil
	}
	r.Register(id)
	return r.pointers[id]
}

// SetLocation moves the pointer. Only the latest location in a frame is
// retained; movement is detected against the location at the last call.
func (r *Registry) SetLocation(id PointerID, loc Location) {
	ps := r.state(id)
	if ps == nil {
		return
	}
	if ps.location == nil || *ps.location != loc {
		ps.moved = true
	}
	l := loc
	ps.location = &l
}

// ClearLocation marks the pointer as off-surface. An off-surface pointer
// produces an empty hover set, which is normal, not an error.
func (r *Registry) ClearLocation(id PointerID) {
	ps := r.state(id)
	if ps == nil {
		return
	}
	if ps.location != nil {
		ps.moved = true
	}
	ps.location = nil
}

// Location returns the pointer's current location, if it is on a surface.
func (r *Registry) Location(id PointerID) (Location, bool) {
	ps, ok := r.pointers[id]
	if !ok || ps.location == nil {
		return Location{}, false
	}
	return *ps.location, true
}

// Press records a button going down. The transition is edge-triggered:
// it is delivered even if the button is released again in the same frame.
func (r *Registry) Press(id PointerID, button PointerButton) {
	ps := r.state(id)
	if ps == nil || int(button) >= buttonCount || ps.down[button] {
		return
	}
	ps.down[button] = true
	ps.edges = append(ps.edges, pressEdge{button: button, pressed: true})
}

// Release records a button going up.
func (r *Registry) Release(id PointerID, button PointerButton) {
	ps := r.state(id)
	if ps == nil || int(button) >= buttonCount || !ps.down[button] {
		return
	}
	ps.down[button] = false
	ps.edges = append(ps.edges, pressEdge{button: button, pressed: false})
}

// Pressed reports whether the button is currently held.
func (r *Registry) Pressed(id PointerID, button PointerButton) bool {
	ps, ok := r.pointers[id]
	return ok && int(button) < buttonCount && ps.down[button]
}

// ScrollBy accumulates scroll input for the current frame.
func (r *Registry) ScrollBy(id PointerID, delta Vec2) {
	ps := r.state(id)
	if ps == nil {
		return
	}
	ps.scroll = ps.scroll.Add(delta)
}

// Cancel signals that the pointer's current interaction is void (device
// disconnected, window lost focus). Pending clicks are suppressed and any
// active drag ends without a Drop; hovered entities receive EventCancel.
func (r *Registry) Cancel(id PointerID) {
	ps := r.state(id)
	if ps == nil {
		return
	}
	ps.cancelled = true
	for b := range ps.down {
		if ps.down[b] {
			ps.down[b] = false
		}
	}
	ps.edges = ps.edges[:0]
}

// endFrame clears per-frame accumulators after a Tick has consumed them.
func (r *Registry) endFrame() {
	for _, id := range r.order {
		ps := r.pointers[id]
		ps.moved = false
		ps.edges = ps.edges[:0]
		ps.scroll = Vec2{}
		ps.cancelled = false
	}
}
