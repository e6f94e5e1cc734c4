package ecs

import (
	"fmt"
	"sort"
)

const absent = -1

// Store is a sparse-set table for one component type: values live densely in
// insertion (or sorted) order, and a sparse index keyed by entity index finds
// them in O(1). Pointers returned by Get stay valid until the store is next
// resized, sorted, or has an entry removed.
type Store[T any] struct {
	world  *World
	id     ComponentID
	dense  []T
	owners []EntityID
	sparse []int32
}

// NewStore creates a store for T and registers it with the world.
func NewStore[T any](w *World) *Store[T] {
	s := &Store[T]{
		world:  w,
		dense:  make([]T, 0, 256),
		owners: make([]EntityID, 0, 256),
	}
	s.id = w.registry.Register(s)
	return s
}

func (s *Store[T]) ID() ComponentID { return s.id }

// Set attaches c to id, replacing any existing value, and returns a pointer
// to the stored copy.
func (s *Store[T]) Set(id EntityID, c T) *T {
	s.world.mustBeLive(id)
	idx := int(id.Index())
	for len(s.sparse) <= idx {
		s.sparse = append(s.sparse, absent)
	}
	if slot := s.sparse[idx]; slot != absent {
		s.dense[slot] = c
		return &s.dense[slot]
	}
	s.sparse[idx] = int32(len(s.dense))
	s.dense = append(s.dense, c)
	s.owners = append(s.owners, id)
	s.world.masks[idx] |= s.id.Mask()
	return &s.dense[len(s.dense)-1]
}

// With returns a Part that attaches c during World.CreateEntity.
func (s *Store[T]) With(c T) Part {
	return func(id EntityID) { s.Set(id, c) }
}

// Spawn creates an entity carrying only a zero-value T.
func (s *Store[T]) Spawn() EntityID {
	var zero T
	return s.world.CreateEntity(s.With(zero))
}

func (s *Store[T]) slot(id EntityID) int32 {
	idx := int(id.Index())
	if idx >= len(s.sparse) {
		return absent
	}
	slot := s.sparse[idx]
	if slot == absent || s.owners[slot] != id {
		return absent
	}
	return slot
}

func (s *Store[T]) Get(id EntityID) (*T, bool) {
	slot := s.slot(id)
	if slot == absent {
		return nil, false
	}
	return &s.dense[slot], true
}

// MustGet is Get for call sites where a missing component is a bug.
func (s *Store[T]) MustGet(id EntityID) *T {
	slot := s.slot(id)
	if slot == absent {
		var zero T
		panic(fmt.Sprintf("ecs: entity %s has no %T", id, zero))
	}
	return &s.dense[slot]
}

func (s *Store[T]) Has(id EntityID) bool {
	return s.slot(id) != absent
}

// Remove detaches the component by swapping the last entry into its slot.
func (s *Store[T]) Remove(id EntityID) {
	slot := s.slot(id)
	if slot == absent {
		return
	}
	last := int32(len(s.dense) - 1)
	if slot != last {
		s.dense[slot] = s.dense[last]
		s.owners[slot] = s.owners[last]
		s.sparse[s.owners[slot].Index()] = slot
	}
	var zero T
	s.dense[last] = zero
	s.dense = s.dense[:last]
	s.owners = s.owners[:last]
	s.sparse[id.Index()] = absent
	s.world.masks[id.Index()] &^= s.id.Mask()
}

func (s *Store[T]) Len() int {
	return len(s.dense)
}

// At returns the i-th entry in dense order.
func (s *Store[T]) At(i int) (EntityID, *T) {
	return s.owners[i], &s.dense[i]
}

// Each visits every component in dense order.
func (s *Store[T]) Each(fn func(EntityID, *T)) {
	for i := range s.dense {
		fn(s.owners[i], &s.dense[i])
	}
}

// SortStable reorders the dense table by less, keeping equal elements in
// their current relative order.
func (s *Store[T]) SortStable(less func(a, b *T) bool) {
	sort.Stable(storeSorter[T]{s: s, less: less})
}

type storeSorter[T any] struct {
	s    *Store[T]
	less func(a, b *T) bool
}

func (o storeSorter[T]) Len() int           { return len(o.s.dense) }
func (o storeSorter[T]) Less(i, j int) bool { return o.less(&o.s.dense[i], &o.s.dense[j]) }
func (o storeSorter[T]) Swap(i, j int) {
	s := o.s
	s.dense[i], s.dense[j] = s.dense[j], s.dense[i]
	s.owners[i], s.owners[j] = s.owners[j], s.owners[i]
	s.sparse[s.owners[i].Index()] = int32(i)
	s.sparse[s.owners[j].Index()] = int32(j)
}

// ptr skips the generation check; callers have already matched the mask.
func (s *Store[T]) ptr(id EntityID) *T {
	return &s.dense[s.sparse[id.Index()]]
}

func (s *Store[T]) entities() []EntityID { return s.owners }
