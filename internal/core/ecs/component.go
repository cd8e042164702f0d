package ecs

import (
	"fmt"
	"sort"
)

// Removable is implemented by all component stores so the Registry can
// bulk-remove an entity's data from every store on destroy.
type Removable interface {
	Remove(id EntityID)
}

// PtrComponentStore is a generic typed map store for ECS components.
// No reflect, no interface{}: pure generics.
type PtrComponentStore[T any] struct {
	data map[EntityID]*T
}

func NewPtrComponentStore[T any]() *PtrComponentStore[T] {
	return &PtrComponentStore[T]{
		data: make(map[EntityID]*T, 64),
	}
}

func (s *PtrComponentStore[T]) Set(id EntityID, c *T) {
	s.data[id] = c
}

func (s *PtrComponentStore[T]) Get(id EntityID) (*T, bool) {
	c, ok := s.data[id]
	return c, ok
}

func (s *PtrComponentStore[T]) Remove(id EntityID) {
	delete(s.data, id)
}

func (s *PtrComponentStore[T]) Has(id EntityID) bool {
	_, ok := s.data[id]
	return ok
}

func (s *PtrComponentStore[T]) Len() int {
	return len(s.data)
}

// Each visits every component in ascending entity id order. Simulation
// code relies on this order for reproducible turn and target selection.
func (s *PtrComponentStore[T]) Each(fn func(EntityID, *T)) {
	for _, id := range s.IDs() {
		fn(id, s.data[id])
	}
}

// IDs returns the ids holding this component, ascending.
func (s *PtrComponentStore[T]) IDs() []EntityID {
	ids := make([]EntityID, 0, len(s.data))
	for id := range s.data {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Find returns the first entity, in id order, whose component satisfies fn.
func (s *PtrComponentStore[T]) Find(fn func(EntityID, *T) bool) (EntityID, bool) {
	for _, id := range s.IDs() {
		if fn(id, s.data[id]) {
			return id, true
		}
	}
	return 0, false
}

// MustGet returns the component or panics. For callers whose invariant says
// the component is present.
func (s *PtrComponentStore[T]) MustGet(id EntityID) *T {
	c, ok := s.data[id]
	if !ok {
		var zero T
		panic(fmt.Sprintf("ecs: entity %d has no %T component", id, zero))
	}
	return c
}
