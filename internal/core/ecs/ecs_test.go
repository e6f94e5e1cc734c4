package ecs

import (
	"sort"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
)

type pos struct{ X, Y int }
type vel struct{ DX, DY int }
type tag struct{ Kind int }

func newTestWorld(workers int) (*World, *Store[pos], *Store[vel], *Store[tag]) {
	w := NewWorld(64, workers)
	return w, NewStore[pos](w), NewStore[vel](w), NewStore[tag](w)
}

func TestEntityPoolGenerations(t *testing.T) {
	p := NewEntityPool(4)
	a := p.Create()
	require.False(t, a.IsZero())
	require.True(t, p.Alive(a))

	p.Destroy(a)
	require.False(t, p.Alive(a))

	b := p.Create()
	require.Equal(t, a.Index(), b.Index())
	require.NotEqual(t, a.Generation(), b.Generation())
	require.False(t, p.Alive(a))
	require.True(t, p.Alive(b))
	require.Equal(t, 1, p.Len())

	// Destroying a stale handle must not free the reused slot.
	p.Destroy(a)
	require.True(t, p.Alive(b))
}

func TestCreateEntityAttachesAllParts(t *testing.T) {
	w, ps, vs, ts := newTestWorld(1)
	e := w.CreateEntity(ps.With(pos{1, 2}), vs.With(vel{3, 4}))

	p, ok := ps.Get(e)
	require.True(t, ok)
	require.Equal(t, pos{1, 2}, *p)
	require.Equal(t, vel{3, 4}, *vs.MustGet(e))
	require.False(t, ts.Has(e))

	m := w.Mask(e)
	require.True(t, m.Has(ps.ID()))
	require.True(t, m.Has(vs.ID()))
	require.False(t, m.Has(ts.ID()))
}

func TestSpawnDefault(t *testing.T) {
	w, ps, _, _ := newTestWorld(1)
	e := ps.Spawn()
	require.True(t, w.Alive(e))
	require.Equal(t, pos{}, *ps.MustGet(e))
}

func TestMustGetPanicsOnMissingComponent(t *testing.T) {
	w, ps, vs, _ := newTestWorld(1)
	e := w.CreateEntity(ps.With(pos{}))
	require.Panics(t, func() { vs.MustGet(e) })

	w.DestroyEntity(e)
	w.Flush()
	require.Panics(t, func() { ps.MustGet(e) })
	require.Panics(t, func() { ps.Set(e, pos{}) })
}

func TestDestroyIsDeferredUntilFlush(t *testing.T) {
	w, ps, vs, _ := newTestWorld(1)
	g := NewGroup2(ps, vs)
	a := w.CreateEntity(ps.With(pos{1, 0}), vs.With(vel{}))
	b := w.CreateEntity(ps.With(pos{2, 0}), vs.With(vel{}))

	w.DestroyEntity(a)
	w.DestroyEntity(a)
	require.Equal(t, 1, w.Pending())
	require.False(t, w.Alive(a))

	// Components are still readable, but the entity has left every group.
	_, ok := ps.Get(a)
	require.True(t, ok)
	require.Equal(t, []EntityID{b}, g.Entities())

	require.Equal(t, 1, w.Flush())
	_, ok = ps.Get(a)
	require.False(t, ok)
	require.Equal(t, 1, ps.Len())
	require.Equal(t, pos{2, 0}, *ps.MustGet(b))
}

func TestGroupIntersection(t *testing.T) {
	w, ps, vs, ts := newTestWorld(1)
	both := w.CreateEntity(ps.With(pos{}), vs.With(vel{}))
	w.CreateEntity(ps.With(pos{}))
	w.CreateEntity(vs.With(vel{}))
	all := w.CreateEntity(ps.With(pos{}), vs.With(vel{}), ts.With(tag{}))

	got := NewGroup2(ps, vs).Entities()
	require.ElementsMatch(t, []EntityID{both, all}, got)
	require.Equal(t, []EntityID{all}, NewGroup3(ps, vs, ts).Entities())
	require.Equal(t, 3, NewGroup1(ps).Len())
}

func TestSequentialUpdateMayDestroy(t *testing.T) {
	w, ps, vs, _ := newTestWorld(1)
	g := NewGroup2(ps, vs)
	var ids []EntityID
	for i := 0; i < 5; i++ {
		ids = append(ids, w.CreateEntity(ps.With(pos{X: i}), vs.With(vel{DX: 1})))
	}

	visited := 0
	g.Update(func(id EntityID, p *pos, v *vel) {
		visited++
		p.X += v.DX
		if p.X%2 == 0 {
			w.DestroyEntity(id)
		}
	})
	require.Equal(t, 5, visited)
	w.Flush()

	left := g.Entities()
	require.Len(t, left, 3)
	for _, id := range left {
		require.Equal(t, 1, ps.MustGet(id).X%2)
	}
}

func TestUpdateParallelVisitsEachOnce(t *testing.T) {
	w, ps, vs, _ := newTestWorld(8)
	const n = 5000
	for i := 0; i < n; i++ {
		w.CreateEntity(ps.With(pos{X: i}), vs.With(vel{DX: 2}))
	}

	var visits atomic.Int64
	g := NewGroup2(ps, vs)
	g.UpdateParallel(func(_ EntityID, p *pos, v *vel) {
		visits.Add(1)
		p.X += v.DX
	})
	require.Equal(t, int64(n), visits.Load())

	xs := make([]int, 0, n)
	ps.Each(func(_ EntityID, p *pos) { xs = append(xs, p.X) })
	sort.Ints(xs)
	for i, x := range xs {
		require.Equal(t, i+2, x)
	}
}

func TestUpdateParallelDestroyIsSafe(t *testing.T) {
	w, ps, _, _ := newTestWorld(8)
	for i := 0; i < 2000; i++ {
		w.CreateEntity(ps.With(pos{X: i}))
	}
	NewGroup1(ps).UpdateParallel(func(id EntityID, p *pos) {
		if p.X%4 == 0 {
			w.DestroyEntity(id)
		}
	})
	require.Equal(t, 500, w.Pending())
	w.Flush()
	require.Equal(t, 1500, ps.Len())
}

func TestSetMinChunkControlsFanOut(t *testing.T) {
	w, _, _, _ := newTestWorld(4)
	require.Equal(t, DefaultMinChunk, w.MinChunk())

	chunks := func(n int) int {
		var calls atomic.Int64
		var seen atomic.Int64
		w.parallel(n, func(lo, hi int) {
			calls.Add(1)
			seen.Add(int64(hi - lo))
		})
		require.Equal(t, int64(n), seen.Load())
		return int(calls.Load())
	}

	require.Equal(t, 1, chunks(2*DefaultMinChunk-1))

	w.SetMinChunk(1)
	require.Equal(t, 4, chunks(8))
	require.Equal(t, 3, chunks(3))

	w.SetMinChunk(0)
	require.Equal(t, DefaultMinChunk, w.MinChunk())
	require.Equal(t, 1, chunks(8))
}

func TestUpdateParallelSmallChunks(t *testing.T) {
	w, ps, _, _ := newTestWorld(4)
	w.SetMinChunk(1)
	for i := 0; i < 10; i++ {
		w.CreateEntity(ps.With(pos{X: i}))
	}
	var sum atomic.Int64
	NewGroup1(ps).UpdateParallel(func(id EntityID, p *pos) {
		sum.Add(int64(p.X))
		if p.X >= 5 {
			w.DestroyEntity(id)
		}
	})
	require.Equal(t, int64(45), sum.Load())
	w.Flush()
	require.Equal(t, 5, ps.Len())
}

func TestSortStableKeepsIndexConsistent(t *testing.T) {
	w, _, _, ts := newTestWorld(1)
	kinds := []int{3, 1, 2, 1, 0, 3}
	ids := make([]EntityID, len(kinds))
	for i, k := range kinds {
		ids[i] = w.CreateEntity(ts.With(tag{Kind: k}))
	}

	ts.SortStable(func(a, b *tag) bool { return a.Kind < b.Kind })

	var order []int
	var owners []EntityID
	ts.Each(func(id EntityID, c *tag) {
		order = append(order, c.Kind)
		owners = append(owners, id)
	})
	require.Equal(t, []int{0, 1, 1, 2, 3, 3}, order)
	// Equal keys keep insertion order.
	require.Equal(t, []EntityID{ids[4], ids[1], ids[3], ids[2], ids[0], ids[5]}, owners)

	for i, id := range ids {
		require.Equal(t, kinds[i], ts.MustGet(id).Kind)
	}
}

func TestGroupReentryPanics(t *testing.T) {
	w, ps, _, _ := newTestWorld(1)
	w.CreateEntity(ps.With(pos{}))
	g := NewGroup1(ps)
	require.Panics(t, func() {
		g.Update(func(EntityID, *pos) { g.Update(func(EntityID, *pos) {}) })
	})
}
