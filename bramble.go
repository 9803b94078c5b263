package bramble

// Entity identifies an entity in the host application. Bramble never
// allocates entities; it only reports which ones are being pointed at.
// Zero is reserved as "no entity".
type Entity uint64

// EntityNone is the zero Entity, used where no entity applies.
const EntityNone Entity = 0

// Vec2 is a 2D vector used for positions, offsets, and deltas
// throughout the API.
type Vec2 struct {
	X, Y float64
}

// Add returns the component-wise sum of v and o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{v.X + o.X, v.Y + o.Y}
}

// Sub returns the component-wise difference of v and o.
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{v.X - o.X, v.Y - o.Y}
}

// IsZero reports whether both components are exactly zero.
func (v Vec2) IsZero() bool {
	return v.X == 0 && v.Y == 0
}

// Location is a pointer's position on a picking surface. Target names the
// surface (window, render target, camera) so backends can skip pointers
// that are not over the surface they test against. An empty Target means
// the default surface.
type Location struct {
	Target   string
	Position Vec2
}

// PointerButton identifies a logical pointer button.
type PointerButton uint8

const (
	ButtonPrimary   PointerButton = iota // left mouse button / touch contact
	ButtonSecondary                      // right mouse button
	ButtonMiddle                         // middle mouse button
)

// buttonCount is the number of tracked logical buttons.
const buttonCount = 3

// Interaction is the aggregate interaction state of an entity, combining
// the hover sets of every active pointer. It is derived each frame and
// must not be set by the application.
type Interaction uint8

const (
	InteractionNone    Interaction = iota // not hovered by any pointer
	InteractionHovered                    // in at least one hover set, no press
	InteractionPressed                    // in a hover set of a pressed pointer
)

// Pickable overrides how an entity participates in hover resolution.
// Entities with no override behave like the zero-value-free default:
// they are hoverable and they block entities beneath them.
type Pickable struct {
	// BlockLower stops hover resolution at this entity: candidates ranked
	// beneath it are excluded entirely. This is independent of Hoverable,
	// so an invisible blocker is possible.
	BlockLower bool
	// Hoverable adds this entity to hover sets, making it the target of
	// interaction events and [Interaction] state.
	Hoverable bool
}

// PickableDefault is the behavior of entities with no override:
// hoverable, and blocking everything ranked beneath them.
var PickableDefault = Pickable{BlockLower: true, Hoverable: true}

// PickableIgnore makes an entity fully transparent to picking: it never
// hovers and never blocks. Backends may still report it; resolution skips it.
var PickableIgnore = Pickable{BlockLower: false, Hoverable: false}

// EventType identifies a kind of interaction event.
type EventType uint8

const (
	EventOver      EventType = iota // pointer entered the entity's hover set
	EventOut                        // pointer left the entity's hover set
	EventMove                       // pointer moved while hovering the entity
	EventDown                       // button pressed while hovering the entity
	EventUp                         // button released while hovering the entity
	EventClick                      // press and release over the same entity
	EventScroll                     // scroll input while hovering the entity
	EventDragStart                  // first movement after a press
	EventDrag                       // movement while dragging
	EventDragEnd                    // release (or cancel) after dragging
	EventDragEnter                  // dragged pointer entered a non-dragged entity
	EventDragOver                   // dragged pointer moved over a non-dragged entity
	EventDragLeave                  // dragged pointer left a non-dragged entity
	EventDrop                       // drag released while hovering the entity
	EventCancel                     // pointer was cancelled mid-interaction
)

// String returns the event kind name, for logs and test failures.
func (t EventType) String() string {
	switch t {
	case EventOver:
		return "Over"
	case EventOut:
		return "Out"
	case EventMove:
		return "Move"
	case EventDown:
		return "Down"
	case EventUp:
		return "Up"
	case EventClick:
		return "Click"
	case EventScroll:
		return "Scroll"
	case EventDragStart:
		return "DragStart"
	case EventDrag:
		return "Drag"
	case EventDragEnd:
		return "DragEnd"
	case EventDragEnter:
		return "DragEnter"
	case EventDragOver:
		return "DragOver"
	case EventDragLeave:
		return "DragLeave"
	case EventDrop:
		return "Drop"
	case EventCancel:
		return "Cancel"
	default:
		return "Unknown"
	}
}

// HitData is backend-reported detail about a single hit. Depth orders hits
// within one backend's output (lower is nearer); depths from different
// backends are not comparable. Position and Normal are optional world-space
// data some backends can provide.
type HitData struct {
	Depth    float64
	Position *Vec2
	Normal   *Vec2
}

// EntityHit is one hit candidate reported by a backend.
type EntityHit struct {
	Target Entity
	HitData
}

// HoverEntry is one entity in a pointer's hover set, nearest first.
type HoverEntry struct {
	Target Entity
	Hit    HitData
}
