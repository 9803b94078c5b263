package bramble

// dragKey identifies one independent drag state machine. Every pointer
// runs one machine per button, so a second button pressed mid-drag gets
// its own lifecycle without disturbing the first.
type dragKey struct {
	Pointer PointerID
	Button  PointerButton
}

// dragState tracks one (pointer, button) interaction from press to
// release. It is created on Down and destroyed on Up or cancel; the
// Pressed-but-not-Dragging phase is dragging == false.
type dragState struct {
	dragging     bool
	set          []HoverEntry      // drag set: hovered entities at press time
	setIDs       map[Entity]bool   // identity lookup into set
	origin       Location          // pointer location at press
	latest       Vec2              // position at the last Drag emission
	pressedFrame uint64            // frame the press happened on
	over         map[Entity]HitData // non-drag-set entities under the pointer
}

func (d *dragState) inSet(e Entity) bool {
	return d.setIDs[e]
}

// dragPress begins the Pressed phase, capturing the drag set from the
// press-time hover set. The drag only becomes active on a later move.
func (p *Pipeline) dragPress(key dragKey, hovered []HoverEntry, loc Location) {
	ids := make(map[Entity]bool, len(hovered))
	for _, he := range hovered {
		ids[he.Target] = true
	}
	p.drags[key] = &dragState{
		set:          hovered,
		setIDs:       ids,
		origin:       loc,
		latest:       loc.Position,
		pressedFrame: p.frame,
	}
}

// dragMotion advances every pressed machine of one pointer after the
// pointer moved: the first move after the press frame emits DragStart to
// the drag set, and every move while dragging emits Drag with per-frame
// and cumulative deltas.
func (p *Pipeline) dragMotion(id PointerID, loc Location) {
	for b := PointerButton(0); b < buttonCount; b++ {
		ds := p.drags[dragKey{Pointer: id, Button: b}]
		if ds == nil || ds.pressedFrame == p.frame {
			continue
		}
		if !ds.dragging {
			ds.dragging = true
			for _, he := range ds.set {
				p.dispatch(Event{Kind: EventDragStart, Target: he.Target, Pointer: id,
					Location: loc, Button: b, Hit: he.Hit})
			}
		}
		delta := loc.Position.Sub(ds.latest)
		distance := loc.Position.Sub(ds.origin.Position)
		for _, he := range ds.set {
			p.dispatch(Event{Kind: EventDrag, Target: he.Target, Pointer: id,
				Location: loc, Button: b, Hit: he.Hit, Delta: delta, Distance: distance})
		}
		ds.latest = loc.Position
	}
}

// dragOverUpdate maintains the drop-target view of one pointer's active
// drags: entities under the pointer that are not being dragged receive
// DragEnter/DragOver/DragLeave mirroring Over/Move/Out, but only while
// the machine is dragging.
func (p *Pipeline) dragOverUpdate(id PointerID, cur []HoverEntry, loc Location, moved bool) {
	for b := PointerButton(0); b < buttonCount; b++ {
		ds := p.drags[dragKey{Pointer: id, Button: b}]
		if ds == nil || !ds.dragging {
			continue
		}
		newOver := make(map[Entity]HitData)
		for _, he := range cur {
			if !ds.inSet(he.Target) {
				newOver[he.Target] = he.Hit
			}
		}
		for e, hit := range ds.over {
			if _, still := newOver[e]; !still {
				p.dispatch(Event{Kind: EventDragLeave, Target: e, Pointer: id,
					Location: loc, Button: b, Hit: hit, Dropped: p.firstDragged(ds)})
			}
		}
		for _, he := range cur {
			if ds.inSet(he.Target) {
				continue
			}
			if _, was := ds.over[he.Target]; !was {
				p.dispatch(Event{Kind: EventDragEnter, Target: he.Target, Pointer: id,
					Location: loc, Button: b, Hit: he.Hit, Dropped: p.firstDragged(ds)})
			} else if moved {
				p.dispatch(Event{Kind: EventDragOver, Target: he.Target, Pointer: id,
					Location: loc, Button: b, Hit: he.Hit, Dropped: p.firstDragged(ds)})
			}
		}
		ds.over = newOver
	}
}

// takeDrag detaches one machine from the store, returning nil if none.
func (p *Pipeline) takeDrag(key dragKey) *dragState {
	ds := p.drags[key]
	if ds != nil {
		delete(p.drags, key)
	}
	return ds
}

// dragRelease ends a machine detached at its release edge. An active drag
// emits DragEnd to the drag set, DragLeave to every drag-over entity, and
// Drop to each currently hovered entity per dragged entity. A press that
// never moved is discarded silently (the click path already fired).
func (p *Pipeline) dragRelease(key dragKey, ds *dragState, cur []HoverEntry, loc Location) {
	if !ds.dragging {
		return
	}
	distance := loc.Position.Sub(ds.origin.Position)
	for _, he := range ds.set {
		p.dispatch(Event{Kind: EventDragEnd, Target: he.Target, Pointer: key.Pointer,
			Location: loc, Button: key.Button, Hit: he.Hit, Distance: distance})
	}
	for e, hit := range ds.over {
		p.dispatch(Event{Kind: EventDragLeave, Target: e, Pointer: key.Pointer,
			Location: loc, Button: key.Button, Hit: hit, Dropped: p.firstDragged(ds)})
	}
	for _, he := range cur {
		for _, dragged := range ds.set {
			p.dispatch(Event{Kind: EventDrop, Target: he.Target, Pointer: key.Pointer,
				Location: loc, Button: key.Button, Hit: he.Hit, Dropped: dragged.Target})
		}
	}
}

// dragCancel force-ends one machine without a Drop. Used for pointer
// cancellation and mid-frame pointer disappearance.
func (p *Pipeline) dragCancel(key dragKey, loc Location) {
	ds := p.drags[key]
	if ds == nil {
		return
	}
	delete(p.drags, key)
	if !ds.dragging {
		return
	}
	distance := loc.Position.Sub(ds.origin.Position)
	for _, he := range ds.set {
		p.dispatch(Event{Kind: EventDragEnd, Target: he.Target, Pointer: key.Pointer,
			Location: loc, Button: key.Button, Hit: he.Hit, Distance: distance})
	}
	for e, hit := range ds.over {
		p.dispatch(Event{Kind: EventDragLeave, Target: e, Pointer: key.Pointer,
			Location: loc, Button: key.Button, Hit: hit, Dropped: p.firstDragged(ds)})
	}
}

// firstDragged returns the nearest dragged entity, used as the Dropped
// field of drag-over events so drop targets know what hovers above them.
func (p *Pipeline) firstDragged(ds *dragState) Entity {
	if len(ds.set) == 0 {
		return EntityNone
	}
	return ds.set[0].Target
}
