package bramble

// Hierarchy supplies read-only parent lookups for event bubbling. The host
// application owns the entity tree; bramble only walks it upward while
// dispatching events.
type Hierarchy interface {
	// Parent returns the parent of e, or false if e has no parent.
	Parent(e Entity) (Entity, bool)
}

// PickableSource supplies per-entity [Pickable] overrides. Entities the
// source does not know about get [PickableDefault].
type PickableSource interface {
	// Pickable returns the entity's override, or false to use the default.
	Pickable(e Entity) (Pickable, bool)
}

// --- Map-backed defaults ---

// MapHierarchy is a simple map-backed [Hierarchy] for applications without
// their own entity tree (and for tests).
type MapHierarchy struct {
	parents map[Entity]Entity
}

// NewMapHierarchy creates an empty hierarchy.
func NewMapHierarchy() *MapHierarchy {
	return &MapHierarchy{parents: make(map[Entity]Entity)}
}

// SetParent makes parent the parent of child.
// Panics if the link would create a cycle.
func (h *MapHierarchy) SetParent(child, parent Entity) {
	for p := parent; ; {
		if p == child {
			panic("bramble: SetParent would create a cycle")
		}
		next, ok := h.parents[p]
		if !ok {
			break
		}
		p = next
	}
	h.parents[child] = parent
}

// RemoveParent detaches child from its parent.
func (h *MapHierarchy) RemoveParent(child Entity) {
	delete(h.parents, child)
}

// Parent returns the parent of e, or false if e is a root.
func (h *MapHierarchy) Parent(e Entity) (Entity, bool) {
	p, ok := h.parents[e]
	return p, ok
}

// PickableStore is a sparse map-backed [PickableSource]. Entities without
// an entry fall back to [PickableDefault].
type PickableStore struct {
	overrides map[Entity]Pickable
}

// NewPickableStore creates an empty store.
func NewPickableStore() *PickableStore {
	return &PickableStore{overrides: make(map[Entity]Pickable)}
}

// Set overrides picking behavior for the entity.
func (s *PickableStore) Set(e Entity, p Pickable) {
	s.overrides[e] = p
}

// Clear removes the entity's override, restoring default behavior.
func (s *PickableStore) Clear(e Entity) {
	delete(s.overrides, e)
}

// Pickable returns the entity's override, or false if none is set.
func (s *PickableStore) Pickable(e Entity) (Pickable, bool) {
	p, ok := s.overrides[e]
	return p, ok
}
