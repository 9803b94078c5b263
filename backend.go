package bramble

import (
	"sort"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Backend is an external hit-tester. Given a pointer and its location it
// returns ranked hit candidates, nearest first by Depth. Returning zero
// hits is normal. Depths are only comparable within one backend; ordering
// across backends comes from source priority (see
// [Pipeline.SetSourceOrder]).
type Backend interface {
	// Source is the backend's priority category name, e.g. "ui" or "world".
	Source() string
	// Pick hit-tests one pointer. It must be safe to call concurrently
	// with Pick calls for other pointers.
	Pick(id PointerID, loc Location) ([]EntityHit, error)
}

// PointerHits is one batch of hit candidates for a single pointer, as
// submitted by a backend. A backend may submit any number of batches per
// frame; batches for the same pointer are merged at collection time.
type PointerHits struct {
	Pointer PointerID
	Source  string
	Hits    []EntityHit
}

// rankedHit pairs a candidate with its source priority rank for merging.
type rankedHit struct {
	hit  EntityHit
	rank int
}

// aggregator gathers backend submissions for the current frame. Submit may
// be called concurrently from backend goroutines; everything else runs on
// the frame loop after they have been joined.
type aggregator struct {
	mu      sync.Mutex
	ranks   map[string]int
	pending map[PointerID][]rankedHit
	log     *zap.Logger
}

func newAggregator() *aggregator {
	return &aggregator{
		ranks:   make(map[string]int),
		pending: make(map[PointerID][]rankedHit),
		log:     zap.NewNop(),
	}
}

// setSourceOrder installs the priority ranking: sources[0] is checked
// first (topmost). Submissions from sources not in the list sort after
// every listed source.
func (a *aggregator) setSourceOrder(sources []string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.ranks = make(map[string]int, len(sources))
	for i, s := range sources {
		a.ranks[s] = i
	}
}

// rankLocked returns the priority rank for a source name.
// Callers must hold mu.
func (a *aggregator) rankLocked(source string) int {
	if r, ok := a.ranks[source]; ok {
		return r
	}
	return len(a.ranks)
}

// submit adds a batch of candidates for the current frame. Candidates for
// pointers the registry does not know are dropped and logged; a backend
// racing a deregistered device is not an error.
func (a *aggregator) submit(hits PointerHits, registered bool) {
	if len(hits.Hits) == 0 {
		return
	}
	if !registered {
		a.log.Debug("hits for unregistered pointer dropped",
			zap.String("pointer", hits.Pointer.String()),
			zap.String("source", hits.Source),
			zap.Int("hits", len(hits.Hits)))
		return
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	rank := a.rankLocked(hits.Source)
	for _, h := range hits.Hits {
		a.pending[hits.Pointer] = append(a.pending[hits.Pointer], rankedHit{hit: h, rank: rank})
	}
}

// collect returns the merged candidate sequence for a pointer: source
// priority first, then depth ascending within a source. The sort is
// stable, so equal-rank equal-depth candidates keep submission order.
// Entities reported more than once are not deduplicated here.
func (a *aggregator) collect(id PointerID) []EntityHit {
	a.mu.Lock()
	defer a.mu.Unlock()
	merged := a.pending[id]
	if len(merged) == 0 {
		return nil
	}
	sort.SliceStable(merged, func(i, j int) bool {
		if merged[i].rank != merged[j].rank {
			return merged[i].rank < merged[j].rank
		}
		return merged[i].hit.Depth < merged[j].hit.Depth
	})
	out := make([]EntityHit, len(merged))
	for i, rh := range merged {
		out[i] = rh.hit
	}
	return out
}

// clear drops all pending submissions at the end of a frame.
func (a *aggregator) clear() {
	a.mu.Lock()
	defer a.mu.Unlock()
	for id := range a.pending {
		delete(a.pending, id)
	}
}

// --- Backend driver ---

// AddBackend registers a backend to be polled by [Pipeline.Tick].
// Backends can also push hits directly with [Pipeline.Submit] instead.
func (p *Pipeline) AddBackend(b Backend) {
	p.backends = append(p.backends, b)
}

// Submit feeds a batch of hit candidates for the current frame. Safe to
// call concurrently from independent backend goroutines, any number of
// times, until the frame's Tick.
func (p *Pipeline) Submit(hits PointerHits) {
	p.agg.submit(hits, p.pointers.Registered(hits.Pointer))
}

// gatherHits polls every registered backend for every on-surface pointer,
// in parallel. A backend error drops that backend's hits for that pointer
// and is logged; other backends and pointers are unaffected.
func (p *Pipeline) gatherHits() {
	if len(p.backends) == 0 {
		return
	}
	var g errgroup.Group
	for _, b := range p.backends {
		for _, id := range p.pointers.Active() {
			loc, ok := p.pointers.Location(id)
			if !ok {
				continue
			}
			g.Go(func() error {
				hits, err := b.Pick(id, loc)
				if err != nil {
					p.log.Warn("backend pick failed",
						zap.String("source", b.Source()),
						zap.String("pointer", id.String()),
						zap.Error(err))
					return nil
				}
				p.Submit(PointerHits{Pointer: id, Source: b.Source(), Hits: hits})
				return nil
			})
		}
	}
	_ = g.Wait()
}
