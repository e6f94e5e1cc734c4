package ecs

import (
	"fmt"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"
)

// DefaultMinChunk is the smallest slice of a group handed to one worker
// unless SetMinChunk says otherwise.
const DefaultMinChunk = 256

// Part attaches one component to a freshly created entity. Build parts with
// Store.With.
type Part func(id EntityID)

// World is the top-level ECS container. It owns the entity pool, the component
// registry, the per-entity component masks and a deferred destruction queue
// flushed at the end of each tick.
type World struct {
	pool     *EntityPool
	registry *Registry
	masks    []Mask

	mu           sync.Mutex // guards destroyQueue and the doomed bit
	destroyQueue []EntityID

	workers  int
	minChunk int
}

// NewWorld creates a world. workers bounds the goroutines used by parallel
// group traversals; zero or less means GOMAXPROCS.
func NewWorld(capacity, workers int) *World {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &World{
		pool:         NewEntityPool(capacity),
		registry:     NewRegistry(),
		masks:        make([]Mask, 0, capacity),
		destroyQueue: make([]EntityID, 0, 64),
		workers:      workers,
		minChunk:     DefaultMinChunk,
	}
}

func (w *World) Workers() int  { return w.workers }
func (w *World) MinChunk() int { return w.minChunk }

// SetMinChunk sets how many entities a parallel traversal hands to one
// worker at least. A group fans out once it holds two chunks. n <= 0
// restores DefaultMinChunk.
func (w *World) SetMinChunk(n int) {
	if n <= 0 {
		n = DefaultMinChunk
	}
	w.minChunk = n
}

// CreateEntity allocates an entity and attaches every part before returning.
func (w *World) CreateEntity(parts ...Part) EntityID {
	id := w.pool.Create()
	for len(w.masks) < w.pool.Span() {
		w.masks = append(w.masks, 0)
	}
	w.masks[id.Index()] = 0
	for _, attach := range parts {
		attach(id)
	}
	return id
}

// Alive reports whether id is live and not waiting to be destroyed.
func (w *World) Alive(id EntityID) bool {
	return w.pool.Alive(id) && !w.masks[id.Index()].doomed()
}

// Mask returns the component mask of a live entity.
func (w *World) Mask(id EntityID) Mask {
	w.mustBeLive(id)
	return w.masks[id.Index()] &^ maskDoomed
}

// DestroyEntity queues id for removal. From this call on the entity no longer
// appears in group traversals; its components are released by Flush. Safe to
// call from a parallel visit. Destroying a stale or already queued handle is
// a no-op.
func (w *World) DestroyEntity(id EntityID) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.pool.Alive(id) {
		return
	}
	idx := id.Index()
	if w.masks[idx].doomed() {
		return
	}
	w.masks[idx] |= maskDoomed
	w.destroyQueue = append(w.destroyQueue, id)
}

// Pending is the number of entities waiting for Flush.
func (w *World) Pending() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.destroyQueue)
}

// Flush destroys all queued entities and clears their components. It must
// only run between traversals.
func (w *World) Flush() int {
	w.mu.Lock()
	defer w.mu.Unlock()

	n := len(w.destroyQueue)
	for _, id := range w.destroyQueue {
		w.registry.RemoveAll(id)
		w.masks[id.Index()] = 0
		w.pool.Destroy(id)
	}
	w.destroyQueue = w.destroyQueue[:0]
	return n
}

func (w *World) mustBeLive(id EntityID) {
	if !w.pool.Alive(id) {
		panic(fmt.Sprintf("ecs: stale entity handle %s", id))
	}
}

// parallel splits [0, n) into contiguous chunks and runs fn on them across
// the worker pool, returning once every chunk is done.
func (w *World) parallel(n int, fn func(lo, hi int)) {
	if n == 0 {
		return
	}
	if w.workers <= 1 || n < 2*w.minChunk {
		fn(0, n)
		return
	}
	chunk := (n + w.workers - 1) / w.workers
	if chunk < w.minChunk {
		chunk = w.minChunk
	}
	var g errgroup.Group
	g.SetLimit(w.workers)
	for lo := 0; lo < n; lo += chunk {
		hi := min(lo+chunk, n)
		g.Go(func() error {
			fn(lo, hi)
			return nil
		})
	}
	_ = g.Wait()
}
