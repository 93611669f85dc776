package ecs

import "github.com/dummyworks/crashtestescape/ecs/component"

// The ForEach family iterates a snapshot of the first store's ids, so
// callbacks may add, remove or destroy freely. Entities destroyed earlier in
// the same pass are skipped.

func snapshot(ids []entityID) []entityID {
	if len(ids) == 0 {
		return nil
	}
	out := make([]entityID, len(ids))
	copy(out, ids)
	return out
}

func ForEach[A any](w *World, ka component.ComponentKind[A], fn func(Entity, *A)) {
	sa, err := storeFor(w, ka, false)
	if err != nil || sa == nil || fn == nil {
		return
	}
	for _, id := range snapshot(sa.ids()) {
		e, ok := w.entities.current(id)
		if !ok {
			continue
		}
		a, ok := sa.get(id)
		if !ok {
			continue
		}
		fn(e, a)
	}
}

func ForEach2[A, B any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], fn func(Entity, *A, *B)) {
	sa, errA := storeFor(w, ka, false)
	sb, errB := storeFor(w, kb, false)
	if errA != nil || errB != nil || sa == nil || sb == nil || fn == nil {
		return
	}
	for _, id := range snapshot(sa.ids()) {
		e, ok := w.entities.current(id)
		if !ok {
			continue
		}
		a, okA := sa.get(id)
		b, okB := sb.get(id)
		if !okA || !okB {
			continue
		}
		fn(e, a, b)
	}
}

func ForEach3[A, B, C any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], kc component.ComponentKind[C], fn func(Entity, *A, *B, *C)) {
	sa, errA := storeFor(w, ka, false)
	sb, errB := storeFor(w, kb, false)
	sc, errC := storeFor(w, kc, false)
	if errA != nil || errB != nil || errC != nil || sa == nil || sb == nil || sc == nil || fn == nil {
		return
	}
	for _, id := range snapshot(sa.ids()) {
		e, ok := w.entities.current(id)
		if !ok {
			continue
		}
		a, okA := sa.get(id)
		b, okB := sb.get(id)
		c, okC := sc.get(id)
		if !okA || !okB || !okC {
			continue
		}
		fn(e, a, b, c)
	}
}

func ForEach4[A, B, C, D any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], kc component.ComponentKind[C], kd component.ComponentKind[D], fn func(Entity, *A, *B, *C, *D)) {
	sa, errA := storeFor(w, ka, false)
	sb, errB := storeFor(w, kb, false)
	sc, errC := storeFor(w, kc, false)
	sd, errD := storeFor(w, kd, false)
	if errA != nil || errB != nil || errC != nil || errD != nil || sa == nil || sb == nil || sc == nil || sd == nil || fn == nil {
		return
	}
	for _, id := range snapshot(sa.ids()) {
		e, ok := w.entities.current(id)
		if !ok {
			continue
		}
		a, okA := sa.get(id)
		b, okB := sb.get(id)
		c, okC := sc.get(id)
		d, okD := sd.get(id)
		if !okA || !okB || !okC || !okD {
			continue
		}
		fn(e, a, b, c, d)
	}
}
