package bramble

// --- Hover resolution ---

// pickable looks up an entity's override, falling back to the default
// (hoverable, blocking).
func (p *Pipeline) pickable(e Entity) Pickable {
	if p.pickables != nil {
		if pk, ok := p.pickables.Pickable(e); ok {
			return pk
		}
	}
	return PickableDefault
}

// resolveFocus computes one pointer's hover set from the frame's merged
// candidates: walk nearest to farthest, collect hoverable entities, stop
// after the first blocker. The result is a ranked prefix of the candidate
// sequence. An off-surface pointer or a frame with no submissions yields
// an empty set, which is normal.
//
// An entity reported by several backends (or at several depth layers)
// keeps only its nearest occurrence in the set, but every occurrence
// still applies its block rule.
func (p *Pipeline) resolveFocus(id PointerID) []HoverEntry {
	if _, ok := p.pointers.Location(id); !ok {
		return nil
	}
	candidates := p.agg.collect(id)
	var set []HoverEntry
	var seen map[Entity]bool
	for _, c := range candidates {
		pick := p.pickable(c.Target)
		if pick.Hoverable && !seen[c.Target] {
			set = append(set, HoverEntry{Target: c.Target, Hit: c.HitData})
			if seen == nil {
				seen = make(map[Entity]bool)
			}
			seen[c.Target] = true
		}
		if pick.BlockLower {
			break
		}
	}
	return set
}

// --- Interaction state ---

// SetInteractionCallback installs a hook invoked once for every entity
// whose [Interaction] state changed this frame, including the transition
// back to [InteractionNone] when a pointer leaves. The callback runs
// during [Pipeline.Tick], before events are dispatched.
func (p *Pipeline) SetInteractionCallback(fn func(Entity, Interaction)) {
	p.interactionCB = fn
}

// Interaction returns the entity's aggregate interaction state as of the
// last [Pipeline.Tick]. Entities in no hover set are InteractionNone.
func (p *Pipeline) Interaction(e Entity) Interaction {
	return p.interactions[e]
}

// updateInteractions recomputes every hovered entity's state: Pressed if
// any pressed pointer hovers it, else Hovered. Entities that left all
// hover sets are visited exactly once on the way back to None.
func (p *Pipeline) updateInteractions() {
	states := make(map[Entity]Interaction)
	for _, id := range p.pointers.Active() {
		pressed := p.pointers.pointers[id].anyDown()
		for _, he := range p.hover[id] {
			if pressed {
				states[he.Target] = InteractionPressed
			} else if states[he.Target] != InteractionPressed {
				states[he.Target] = InteractionHovered
			}
		}
	}
	if p.interactionCB != nil {
		for e, s := range states {
			if p.interactions[e] != s {
				p.interactionCB(e, s)
			}
		}
	}
	for e := range p.interactions {
		if _, still := states[e]; !still {
			if p.interactionCB != nil {
				p.interactionCB(e, InteractionNone)
			}
		}
	}
	p.interactions = states
}
