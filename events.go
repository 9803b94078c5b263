package bramble

// --- Event payload ---

// Event is one interaction event. A single flat struct is used for all
// kinds; fields beyond Kind, Target, Pointer, and Location are valid only
// for the kinds noted on each field.
type Event struct {
	Kind    EventType
	Target  Entity
	Pointer PointerID
	// Location is the pointer's location when the event fired. For Out,
	// Cancel, and DragLeave after the pointer left the surface, this is
	// the last known location.
	Location Location
	// Button is valid for Down, Up, Click, and the drag family.
	Button PointerButton
	// Hit is the backend hit data for the target. For DragStart, Drag,
	// and DragEnd it is the press-time hit of the dragged entity.
	Hit HitData
	// Delta is the per-frame movement for Move, Drag, and DragOver,
	// and the scroll delta for Scroll.
	Delta Vec2
	// Distance is the cumulative movement since the drag origin,
	// valid for Drag and DragEnd.
	Distance Vec2
	// Dropped is the dragged entity, valid for Drop.
	Dropped Entity
}

// EventContext is the value passed to listeners. Current is the entity the
// listener is attached to, which differs from Target while bubbling.
type EventContext struct {
	Event
	Current Entity
	stopped bool
}

// StopPropagation halts bubbling: no listener higher in the hierarchy
// receives this event instance.
func (c *EventContext) StopPropagation() {
	c.stopped = true
}

// EntityStore is the interface for optional ECS integration. When set on a
// Pipeline, every emitted event is forwarded after listeners ran.
type EntityStore interface {
	EmitEvent(event Event)
}

// --- Listener registry ---

type listener struct {
	id uint32
	fn func(*EventContext)
}

type listenerRegistry struct {
	entity map[EventType]map[Entity][]listener
	global map[EventType][]listener
	nextID uint32
}

// CallbackHandle allows removing a registered listener.
type CallbackHandle struct {
	id     uint32
	reg    *listenerRegistry
	kind   EventType
	target Entity
	global bool
}

// Remove unregisters this listener so it no longer fires.
// The entry is removed from the slice to avoid nil iteration waste.
func (h CallbackHandle) Remove() {
	if h.reg == nil {
		return
	}
	if h.global {
		h.reg.global[h.kind] = removeListener(h.reg.global[h.kind], h.id)
		return
	}
	byEntity := h.reg.entity[h.kind]
	if byEntity == nil {
		return
	}
	byEntity[h.target] = removeListener(byEntity[h.target], h.id)
	if len(byEntity[h.target]) == 0 {
		delete(byEntity, h.target)
	}
}

func removeListener(s []listener, id uint32) []listener {
	for i := range s {
		if s[i].id == id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = listener{}
			return s[:len(s)-1]
		}
	}
	return s
}

// On registers a listener for one event kind on one entity. The listener
// also fires for matching events bubbling up from descendants; compare
// [EventContext.Target] with [EventContext.Current] to tell them apart.
func (p *Pipeline) On(target Entity, kind EventType, fn func(*EventContext)) CallbackHandle {
	r := &p.listeners
	r.nextID++
	if r.entity[kind] == nil {
		if r.entity == nil {
			r.entity = make(map[EventType]map[Entity][]listener)
		}
		r.entity[kind] = make(map[Entity][]listener)
	}
	r.entity[kind][target] = append(r.entity[kind][target], listener{id: r.nextID, fn: fn})
	return CallbackHandle{id: r.nextID, reg: r, kind: kind, target: target}
}

// OnAny registers a pipeline-level listener for one event kind,
// independent of target entity. Pipeline-level listeners fire before
// per-entity listeners; stopping propagation in one skips bubbling.
func (p *Pipeline) OnAny(kind EventType, fn func(*EventContext)) CallbackHandle {
	r := &p.listeners
	r.nextID++
	if r.global == nil {
		r.global = make(map[EventType][]listener)
	}
	r.global[kind] = append(r.global[kind], listener{id: r.nextID, fn: fn})
	return CallbackHandle{id: r.nextID, reg: r, kind: kind, global: true}
}

// --- Dispatch ---

// dispatch delivers one event: pipeline-level listeners first, then the
// target entity's listeners, then each ancestor's, walking up the
// hierarchy until the root or a StopPropagation call. The event is
// forwarded to the EntityStore afterward regardless of propagation.
func (p *Pipeline) dispatch(ev Event) {
	ctx := EventContext{Event: ev, Current: ev.Target}

	for _, l := range p.listeners.global[ev.Kind] {
		l.fn(&ctx)
	}

	if !ctx.stopped {
		byEntity := p.listeners.entity[ev.Kind]
		cur := ev.Target
		for cur != EntityNone {
			ctx.Current = cur
			for _, l := range byEntity[cur] {
				l.fn(&ctx)
				if ctx.stopped {
					break
				}
			}
			if ctx.stopped || p.hierarchy == nil {
				break
			}
			parent, ok := p.hierarchy.Parent(cur)
			if !ok {
				break
			}
			cur = parent
		}
	}

	if p.store != nil {
		p.store.EmitEvent(ev)
	}
}

// emitPointerEvents synthesizes one pointer's events for the frame, in the
// fixed order Out, Over, Move, Down, Up, Click, Scroll, then drag release
// events. Press edges are processed in arrival order, so a press and
// release within one frame still produce a Down before the Up. Drag
// machines are detached at the release edge but their DragEnd/Drop wait
// until after Scroll, keeping the drag family last.
func (p *Pipeline) emitPointerEvents(id PointerID, cur, prev []HoverEntry, loc Location) {
	ps := p.pointers.pointers[id]
	curSet := hoverLookup(cur)
	prevSet := hoverLookup(prev)

	for _, he := range prev {
		if _, still := curSet[he.Target]; !still {
			p.dispatch(Event{Kind: EventOut, Target: he.Target, Pointer: id,
				Location: loc, Hit: he.Hit})
		}
	}
	for _, he := range cur {
		if _, was := prevSet[he.Target]; !was {
			p.dispatch(Event{Kind: EventOver, Target: he.Target, Pointer: id,
				Location: loc, Hit: he.Hit})
		}
	}

	if ps.moved {
		delta := p.moveDelta(id, loc)
		for _, he := range cur {
			p.dispatch(Event{Kind: EventMove, Target: he.Target, Pointer: id,
				Location: loc, Hit: he.Hit, Delta: delta})
		}
	}

	var released []releasedDrag
	for _, edge := range ps.edges {
		key := dragKey{Pointer: id, Button: edge.button}
		if edge.pressed {
			downs := make(map[Entity]HitData, len(cur))
			for _, he := range cur {
				p.dispatch(Event{Kind: EventDown, Target: he.Target, Pointer: id,
					Location: loc, Button: edge.button, Hit: he.Hit})
				downs[he.Target] = he.Hit
			}
			p.downs[key] = downs
			p.dragPress(key, cur, loc)
			continue
		}
		downs := p.downs[key]
		for _, he := range cur {
			p.dispatch(Event{Kind: EventUp, Target: he.Target, Pointer: id,
				Location: loc, Button: edge.button, Hit: he.Hit})
			if _, wasDown := downs[he.Target]; wasDown {
				p.dispatch(Event{Kind: EventClick, Target: he.Target, Pointer: id,
					Location: loc, Button: edge.button, Hit: he.Hit})
			}
		}
		delete(p.downs, key)
		if ds := p.takeDrag(key); ds != nil {
			released = append(released, releasedDrag{key: key, state: ds})
		}
	}

	if !ps.scroll.IsZero() {
		for _, he := range cur {
			p.dispatch(Event{Kind: EventScroll, Target: he.Target, Pointer: id,
				Location: loc, Hit: he.Hit, Delta: ps.scroll})
		}
	}

	for _, r := range released {
		p.dragRelease(r.key, r.state, cur, loc)
	}
}

// releasedDrag holds a machine detached at its release edge until the
// frame's drag events are due.
type releasedDrag struct {
	key   dragKey
	state *dragState
}

// cancelPointer voids a pointer's in-flight interaction: hovered entities
// receive Cancel then Out, pending clicks are suppressed, and active drags
// end without a Drop.
func (p *Pipeline) cancelPointer(id PointerID, prev []HoverEntry, loc Location) {
	for _, he := range prev {
		p.dispatch(Event{Kind: EventCancel, Target: he.Target, Pointer: id,
			Location: loc, Hit: he.Hit})
	}
	for _, he := range prev {
		p.dispatch(Event{Kind: EventOut, Target: he.Target, Pointer: id,
			Location: loc, Hit: he.Hit})
	}
	for b := PointerButton(0); b < buttonCount; b++ {
		key := dragKey{Pointer: id, Button: b}
		delete(p.downs, key)
		p.dragCancel(key, loc)
	}
}

// hoverLookup builds an identity map of a hover set for diffing.
func hoverLookup(set []HoverEntry) map[Entity]HitData {
	if len(set) == 0 {
		return nil
	}
	m := make(map[Entity]HitData, len(set))
	for _, he := range set {
		m[he.Target] = he.Hit
	}
	return m
}

// moveDelta returns the pointer's position change since the last frame,
// or zero if the pointer was off-surface.
func (p *Pipeline) moveDelta(id PointerID, loc Location) Vec2 {
	last, ok := p.lastLoc[id]
	if !ok || last.Target != loc.Target {
		return Vec2{}
	}
	return loc.Position.Sub(last.Position)
}
