package ecs

import (
	"fmt"

	"github.com/dummyworks/crashtestescape/ecs/component"
)

// World owns entities and their component stores.
type World struct {
	entities entityStore
	stores   map[component.ComponentID]componentStore
	events   EventQueue
}

func NewWorld() *World {
	return &World{stores: make(map[component.ComponentID]componentStore)}
}

func CreateEntity(w *World) Entity {
	if w == nil {
		return 0
	}
	return w.entities.create()
}

// DestroyEntity removes every component of e and recycles its id.
// It returns false when e was not alive.
func DestroyEntity(w *World, e Entity) bool {
	if w == nil || !w.entities.isAlive(e) {
		return false
	}
	for _, s := range w.stores {
		s.remove(e.id())
	}
	return w.entities.destroy(e)
}

func IsAlive(w *World, e Entity) bool {
	if w == nil {
		return false
	}
	return w.entities.isAlive(e)
}

// Entities returns a snapshot of every live entity.
func Entities(w *World) []Entity {
	if w == nil {
		return nil
	}
	out := make([]Entity, 0, w.entities.count)
	for i := range w.entities.gen {
		if e, ok := w.entities.current(entityID(i + 1)); ok {
			out = append(out, e)
		}
	}
	return out
}

func storeFor[T any](w *World, kind component.ComponentKind[T], create bool) (*sparseSet[T], error) {
	if w == nil {
		return nil, fmt.Errorf("nil world: %w", component.ErrInvalidComponentKind)
	}
	if !kind.Valid() {
		return nil, component.ErrInvalidComponentKind
	}
	raw, ok := w.stores[kind.ID()]
	if !ok {
		if !create {
			return nil, nil
		}
		s := newSparseSet[T]()
		if w.stores == nil {
			w.stores = make(map[component.ComponentID]componentStore)
		}
		w.stores[kind.ID()] = s
		return s, nil
	}
	s, ok := raw.(*sparseSet[T])
	if !ok {
		return nil, fmt.Errorf("component %d type mismatch: %w", kind.ID(), component.ErrInvalidComponentKind)
	}
	return s, nil
}

// Add attaches value to e, replacing any existing component of the same kind.
func Add[T any](w *World, e Entity, kind component.ComponentKind[T], value *T) error {
	if !IsAlive(w, e) {
		return component.ErrEntityNotAlive
	}
	if value == nil {
		return component.ErrNilComponent
	}
	s, err := storeFor(w, kind, true)
	if err != nil {
		return err
	}
	s.set(e.id(), value)
	return nil
}

func Get[T any](w *World, e Entity, kind component.ComponentKind[T]) (*T, bool) {
	if !IsAlive(w, e) {
		return nil, false
	}
	s, err := storeFor(w, kind, false)
	if err != nil || s == nil {
		return nil, false
	}
	return s.get(e.id())
}

func Has[T any](w *World, e Entity, kind component.ComponentKind[T]) bool {
	_, ok := Get(w, e, kind)
	return ok
}

func Remove[T any](w *World, e Entity, kind component.ComponentKind[T]) bool {
	if !IsAlive(w, e) {
		return false
	}
	s, err := storeFor(w, kind, false)
	if err != nil || s == nil {
		return false
	}
	return s.remove(e.id())
}

// First returns the first live entity carrying kind. Useful for singletons
// such as the camera or the player.
func First[T any](w *World, kind component.ComponentKind[T]) (Entity, bool) {
	s, err := storeFor(w, kind, false)
	if err != nil || s == nil {
		return 0, false
	}
	for _, id := range s.ids() {
		if e, ok := w.entities.current(id); ok {
			return e, true
		}
	}
	return 0, false
}

// Count reports how many live entities carry kind.
func Count[T any](w *World, kind component.ComponentKind[T]) int {
	s, err := storeFor(w, kind, false)
	if err != nil || s == nil {
		return 0
	}
	return s.len()
}
