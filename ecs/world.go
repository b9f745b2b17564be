package ecs

import (
	"github.com/milk9111/pulserun/ecs/component"
)

// World owns entities, their component stores and the parent/child
// hierarchy that reconstructed levels hang from.
type World struct {
	entities entityStore
	stores   map[component.ComponentID]*SparseSet
	parents  map[Entity]Entity
	children map[Entity][]Entity
}

// NewWorld creates an empty ECS world.
func NewWorld() *World {
	return &World{
		stores:   make(map[component.ComponentID]*SparseSet),
		parents:  make(map[Entity]Entity),
		children: make(map[Entity][]Entity),
	}
}

// CreateEntity allocates a new root entity.
func CreateEntity(w *World) Entity {
	if w == nil {
		return 0
	}
	return w.entities.create()
}

// CreateChild allocates a new entity parented to parent. A zero or dead
// parent yields a root entity.
func CreateChild(w *World, parent Entity) Entity {
	e := CreateEntity(w)
	if e.Valid() && IsAlive(w, parent) {
		w.attach(e, parent)
	}
	return e
}

// DestroyEntity removes e, its components and all of its descendants.
func DestroyEntity(w *World, e Entity) bool {
	if w == nil || !w.entities.isAlive(e) {
		return false
	}
	for _, child := range append([]Entity(nil), w.children[e]...) {
		DestroyEntity(w, child)
	}
	w.detach(e)
	delete(w.children, e)
	for _, store := range w.stores {
		store.Remove(e.id())
	}
	return w.entities.destroy(e)
}

// IsAlive reports whether an entity handle is valid.
func IsAlive(w *World, e Entity) bool {
	return w != nil && w.entities.isAlive(e)
}

// Entities returns every live entity in slot order.
func Entities(w *World) []Entity {
	if w == nil {
		return nil
	}
	return w.entities.all()
}

// SetParent moves e under parent, keeping the parent's child order as
// insertion order. A zero parent makes e a root.
func SetParent(w *World, e, parent Entity) error {
	if !IsAlive(w, e) {
		return component.ErrEntityNotAlive
	}
	if parent != 0 && !IsAlive(w, parent) {
		return component.ErrEntityNotAlive
	}
	for p := parent; p != 0; p = w.parents[p] {
		if p == e {
			return ErrHierarchyCycle
		}
	}
	w.detach(e)
	if parent != 0 {
		w.attach(e, parent)
	}
	return nil
}

// Parent returns e's parent, if any.
func Parent(w *World, e Entity) (Entity, bool) {
	if !IsAlive(w, e) {
		return 0, false
	}
	p, ok := w.parents[e]
	return p, ok
}

// Children returns a copy of e's children in insertion order.
func Children(w *World, e Entity) []Entity {
	if !IsAlive(w, e) {
		return nil
	}
	return append([]Entity(nil), w.children[e]...)
}

func (w *World) attach(e, parent Entity) {
	w.parents[e] = parent
	w.children[parent] = append(w.children[parent], e)
}

func (w *World) detach(e Entity) {
	parent, ok := w.parents[e]
	if !ok {
		return
	}
	delete(w.parents, e)
	siblings := w.children[parent]
	for i, c := range siblings {
		if c == e {
			w.children[parent] = append(siblings[:i:i], siblings[i+1:]...)
			break
		}
	}
	if len(w.children[parent]) == 0 {
		delete(w.children, parent)
	}
}

func (w *World) store(id component.ComponentID, create bool) *SparseSet {
	s, ok := w.stores[id]
	if !ok && create {
		s = &SparseSet{}
		w.stores[id] = s
	}
	return s
}
