package bramble

import (
	"go.uber.org/zap"
)

// Pipeline owns the whole picking pass: the pointer [Registry], backend
// hit aggregation, hover resolution, interaction state, listeners, and
// drag machines. Call [Pipeline.Tick] exactly once per frame, after input
// has been fed to the registry and (for push-style backends) hits have
// been submitted.
//
// Tick itself must run on the frame loop; only [Pipeline.Submit] is safe
// to call from other goroutines, and only between Ticks.
type Pipeline struct {
	pointers  *Registry
	agg       *aggregator
	backends  []Backend
	hierarchy Hierarchy
	pickables PickableSource
	pickStore *PickableStore
	listeners listenerRegistry
	store     EntityStore
	settings  Settings
	log       *zap.Logger

	frame         uint64
	hover         map[PointerID][]HoverEntry // current frame, scratch
	prevHover     map[PointerID][]HoverEntry // last completed frame
	interactions  map[Entity]Interaction
	interactionCB func(Entity, Interaction)
	downs         map[dragKey]map[Entity]HitData // entities Down-ed, for Click pairing
	drags         map[dragKey]*dragState
	lastLoc       map[PointerID]Location // last on-surface location per pointer
}

// NewPipeline creates a pipeline with default settings, a map-backed
// pickable store, no hierarchy (events do not bubble), and no logger.
func NewPipeline() *Pipeline {
	store := NewPickableStore()
	return &Pipeline{
		pointers:     NewRegistry(),
		agg:          newAggregator(),
		pickables:    store,
		pickStore:    store,
		settings:     DefaultSettings(),
		log:          zap.NewNop(),
		prevHover:    make(map[PointerID][]HoverEntry),
		interactions: make(map[Entity]Interaction),
		downs:        make(map[dragKey]map[Entity]HitData),
		drags:        make(map[dragKey]*dragState),
		lastLoc:      make(map[PointerID]Location),
	}
}

// Pointers returns the pipeline's pointer registry, the ingestion point
// for raw input.
func (p *Pipeline) Pointers() *Registry {
	return p.pointers
}

// SetLogger sets the logger for non-fatal diagnostics (dropped candidates,
// mid-frame pointer disappearance). The default discards everything.
func (p *Pipeline) SetLogger(log *zap.Logger) {
	if log == nil {
		log = zap.NewNop()
	}
	p.log = log
	p.pointers.SetLogger(log)
	p.agg.log = log
}

// SetHierarchy sets the parent-lookup used for event bubbling.
// Without one, events are delivered to their target only.
func (p *Pipeline) SetHierarchy(h Hierarchy) {
	p.hierarchy = h
}

// SetPickableSource replaces the pickable lookup, e.g. with one backed by
// the host's component storage. The convenience methods [Pipeline.SetPickable]
// and [Pipeline.ClearPickable] keep writing to the built-in store, which a
// replacement source makes inert.
func (p *Pipeline) SetPickableSource(src PickableSource) {
	p.pickables = src
}

// SetPickable overrides picking behavior for an entity in the built-in store.
func (p *Pipeline) SetPickable(e Entity, pk Pickable) {
	p.pickStore.Set(e, pk)
}

// ClearPickable restores default picking behavior for an entity.
func (p *Pipeline) ClearPickable(e Entity) {
	p.pickStore.Clear(e)
}

// SetStore sets the optional ECS bridge. Every emitted event is forwarded
// to the store after listeners have run.
func (p *Pipeline) SetStore(store EntityStore) {
	p.store = store
}

// SetSourceOrder installs the backend priority ranking: sources[0] is the
// topmost category (its hits are checked first), e.g.
//
//	pipe.SetSourceOrder([]string{"ui", "world"})
//
// Submissions whose source is not listed sort after every listed source.
func (p *Pipeline) SetSourceOrder(sources []string) {
	p.agg.setSourceOrder(sources)
}

// Settings returns the current feature toggles.
func (p *Pipeline) Settings() Settings {
	return p.settings
}

// SetSettings replaces the feature toggles.
func (p *Pipeline) SetSettings(s Settings) {
	p.settings = s
}

// ApplyConfig applies a loaded [Config]: settings and source order.
func (p *Pipeline) ApplyConfig(cfg Config) {
	p.settings = cfg.Settings
	if len(cfg.SourceOrder) > 0 {
		p.agg.setSourceOrder(cfg.SourceOrder)
	}
}

// HoverSet returns the pointer's hover set as of the last [Pipeline.Tick],
// nearest entity first. The returned slice MUST NOT be mutated.
func (p *Pipeline) HoverSet(id PointerID) []HoverEntry {
	return p.prevHover[id]
}

// Tick runs one frame of the picking pass: poll backends, merge hits,
// resolve hover sets, update interaction states, and emit events.
// Per-frame pointer state (movement, press edges, scroll) is consumed
// and cleared whether or not picking is enabled.
func (p *Pipeline) Tick() {
	p.frame++
	if !p.settings.Enabled {
		p.endFrame()
		return
	}

	p.gatherHits()

	if !p.settings.FocusEnabled {
		p.endFrame()
		return
	}

	p.dropVanishedPointers()

	p.hover = make(map[PointerID][]HoverEntry, len(p.pointers.Active()))
	for _, id := range p.pointers.Active() {
		if p.pointers.pointers[id].cancelled {
			p.hover[id] = nil
			continue
		}
		p.hover[id] = p.resolveFocus(id)
	}

	p.updateInteractions()

	for _, id := range p.pointers.Active() {
		ps := p.pointers.pointers[id]
		loc, on := p.pointers.Location(id)
		if !on {
			loc = p.lastLoc[id]
		}
		cur := p.hover[id]
		prev := p.prevHover[id]
		if ps.cancelled {
			p.cancelPointer(id, prev, loc)
			continue
		}
		p.emitPointerEvents(id, cur, prev, loc)
		if ps.moved && on {
			p.dragMotion(id, loc)
		}
		p.dragOverUpdate(id, cur, loc, ps.moved)
	}

	p.prevHover = p.hover
	p.hover = nil
	for _, id := range p.pointers.Active() {
		if loc, ok := p.pointers.Location(id); ok {
			p.lastLoc[id] = loc
		}
	}
	p.endFrame()
}

// endFrame discards the frame's accumulated submissions and input edges.
func (p *Pipeline) endFrame() {
	p.agg.clear()
	p.pointers.endFrame()
}

// dropVanishedPointers cancels interaction state held by pointers that
// were deregistered since the last frame. A pointer that disappears
// mid-press loses its pending click and its drags end without a Drop.
func (p *Pipeline) dropVanishedPointers() {
	for id, prev := range p.prevHover {
		if p.pointers.Registered(id) {
			continue
		}
		if p.pointerInFlight(id, prev) {
			p.log.Warn("pointer disappeared mid-interaction, cancelling",
				zap.String("pointer", id.String()))
			p.cancelPointer(id, prev, p.lastLoc[id])
		}
		delete(p.prevHover, id)
		delete(p.lastLoc, id)
	}
	// Drags can outlive hover (the drag set is captured at press time),
	// so sweep them separately.
	for key := range p.drags {
		if !p.pointers.Registered(key.Pointer) {
			p.log.Warn("pointer disappeared mid-drag, cancelling",
				zap.String("pointer", key.Pointer.String()))
			p.dragCancel(key, p.lastLoc[key.Pointer])
			delete(p.downs, key)
		}
	}
	for key := range p.downs {
		if !p.pointers.Registered(key.Pointer) {
			delete(p.downs, key)
		}
	}
}

// pointerInFlight reports whether a vanished pointer still held any
// interaction state worth cancelling.
func (p *Pipeline) pointerInFlight(id PointerID, prev []HoverEntry) bool {
	if len(prev) > 0 {
		return true
	}
	for b := PointerButton(0); b < buttonCount; b++ {
		key := dragKey{Pointer: id, Button: b}
		if p.drags[key] != nil || len(p.downs[key]) > 0 {
			return true
		}
	}
	return false
}
