package ecs

import "fmt"

// ComponentID is the bit a component store occupies in an entity's Mask.
type ComponentID uint8

// maxComponentTypes leaves the top mask bit free for the pending-destroy flag.
const maxComponentTypes = 63

// Mask records which component types an entity carries.
type Mask uint64

const maskDoomed Mask = 1 << 63

func (id ComponentID) Mask() Mask { return 1 << id }

func (m Mask) Has(id ComponentID) bool    { return m&id.Mask() != 0 }
func (m Mask) doomed() bool               { return m&maskDoomed != 0 }
func (m Mask) matches(required Mask) bool { return m&(required|maskDoomed) == required }

// Removable is implemented by all component stores so the Registry can
// bulk-remove an entity's data from every store on destroy.
type Removable interface {
	Remove(id EntityID)
}

// Registry hands out component IDs and tracks every store for bulk cleanup
// on entity destroy.
type Registry struct {
	stores []Removable
}

func NewRegistry() *Registry {
	return &Registry{
		stores: make([]Removable, 0, 16),
	}
}

// Register adds a component store to the registry and returns its ID.
// Panics once the mask is full; the component set is fixed per game.
func (r *Registry) Register(store Removable) ComponentID {
	if len(r.stores) >= maxComponentTypes {
		panic(fmt.Sprintf("ecs: more than %d component types registered", maxComponentTypes))
	}
	r.stores = append(r.stores, store)
	return ComponentID(len(r.stores) - 1)
}

// Len is the number of registered stores.
func (r *Registry) Len() int { return len(r.stores) }

// RemoveAll clears the given entity from every registered component store.
func (r *Registry) RemoveAll(id EntityID) {
	for _, s := range r.stores {
		s.Remove(id)
	}
}
