package ecs

// queryable is the part of a Store a group needs to pick its driving table.
type queryable interface {
	ID() ComponentID
	Len() int
	entities() []EntityID
}

// view is the shared core of every group: it recomputes membership on each
// traversal by walking the smallest member store and testing each owner's
// mask against the required bits. A view is not re-entrant.
type view struct {
	world    *World
	stores   []queryable
	required Mask
	scratch  []EntityID
	busy     bool
}

func newView(w *World, stores ...queryable) view {
	v := view{world: w, stores: stores}
	for _, s := range stores {
		v.required |= s.ID().Mask()
	}
	return v
}

func (v *view) collect() []EntityID {
	if v.busy {
		panic("ecs: group traversal re-entered")
	}
	smallest := v.stores[0]
	for _, s := range v.stores[1:] {
		if s.Len() < smallest.Len() {
			smallest = s
		}
	}
	out := v.scratch[:0]
	masks := v.world.masks
	for _, id := range smallest.entities() {
		if masks[id.Index()].matches(v.required) {
			out = append(out, id)
		}
	}
	v.scratch = out
	return out
}

// each runs visit sequentially, skipping entities destroyed earlier in the
// same traversal.
func (v *view) each(visit func(EntityID)) {
	ids := v.collect()
	v.busy = true
	defer func() { v.busy = false }()
	for _, id := range ids {
		if v.world.masks[id.Index()].doomed() {
			continue
		}
		visit(id)
	}
}

func (v *view) eachParallel(visit func(EntityID)) {
	ids := v.collect()
	v.busy = true
	defer func() { v.busy = false }()
	v.world.parallel(len(ids), func(lo, hi int) {
		for _, id := range ids[lo:hi] {
			visit(id)
		}
	})
}

// Len counts the current members.
func (v *view) Len() int {
	return len(v.collect())
}

// Entities returns a copy of the current members.
func (v *view) Entities() []EntityID {
	ids := v.collect()
	out := make([]EntityID, len(ids))
	copy(out, ids)
	return out
}

// Group1 is a view over every entity with an A.
type Group1[A any] struct {
	view
	a *Store[A]
}

func NewGroup1[A any](a *Store[A]) *Group1[A] {
	return &Group1[A]{view: newView(a.world, a), a: a}
}

// Update visits members one at a time. fn may mutate the visited components
// and destroy entities.
func (g *Group1[A]) Update(fn func(EntityID, *A)) {
	g.each(func(id EntityID) { fn(id, g.a.ptr(id)) })
}

// UpdateParallel visits members across the worker pool. fn must only write
// the visited entity's components or atomics; DestroyEntity is allowed.
func (g *Group1[A]) UpdateParallel(fn func(EntityID, *A)) {
	g.eachParallel(func(id EntityID) { fn(id, g.a.ptr(id)) })
}

// Group2 is a view over every entity with both an A and a B.
type Group2[A, B any] struct {
	view
	a *Store[A]
	b *Store[B]
}

func NewGroup2[A, B any](a *Store[A], b *Store[B]) *Group2[A, B] {
	return &Group2[A, B]{view: newView(a.world, a, b), a: a, b: b}
}

func (g *Group2[A, B]) Update(fn func(EntityID, *A, *B)) {
	g.each(func(id EntityID) { fn(id, g.a.ptr(id), g.b.ptr(id)) })
}

func (g *Group2[A, B]) UpdateParallel(fn func(EntityID, *A, *B)) {
	g.eachParallel(func(id EntityID) { fn(id, g.a.ptr(id), g.b.ptr(id)) })
}

// Group3 is a view over every entity with an A, a B and a C.
type Group3[A, B, C any] struct {
	view
	a *Store[A]
	b *Store[B]
	c *Store[C]
}

func NewGroup3[A, B, C any](a *Store[A], b *Store[B], c *Store[C]) *Group3[A, B, C] {
	return &Group3[A, B, C]{view: newView(a.world, a, b, c), a: a, b: b, c: c}
}

func (g *Group3[A, B, C]) Update(fn func(EntityID, *A, *B, *C)) {
	g.each(func(id EntityID) { fn(id, g.a.ptr(id), g.b.ptr(id), g.c.ptr(id)) })
}

func (g *Group3[A, B, C]) UpdateParallel(fn func(EntityID, *A, *B, *C)) {
	g.eachParallel(func(id EntityID) { fn(id, g.a.ptr(id), g.b.ptr(id), g.c.ptr(id)) })
}

// Group4 is a view over every entity with all of A, B, C and D.
type Group4[A, B, C, D any] struct {
	view
	a *Store[A]
	b *Store[B]
	c *Store[C]
	d *Store[D]
}

func NewGroup4[A, B, C, D any](a *Store[A], b *Store[B], c *Store[C], d *Store[D]) *Group4[A, B, C, D] {
	return &Group4[A, B, C, D]{view: newView(a.world, a, b, c, d), a: a, b: b, c: c, d: d}
}

func (g *Group4[A, B, C, D]) Update(fn func(EntityID, *A, *B, *C, *D)) {
	g.each(func(id EntityID) { fn(id, g.a.ptr(id), g.b.ptr(id), g.c.ptr(id), g.d.ptr(id)) })
}

func (g *Group4[A, B, C, D]) UpdateParallel(fn func(EntityID, *A, *B, *C, *D)) {
	g.eachParallel(func(id EntityID) { fn(id, g.a.ptr(id), g.b.ptr(id), g.c.ptr(id), g.d.ptr(id)) })
}
