package system

import (
	"github.com/dummyworks/crashtestescape/ecs"
	"github.com/dummyworks/crashtestescape/ecs/component"
)

// fallMargin is how far below the level an entity may drop before it is
// considered lost.
const fallMargin = 64.0

// BoundsSystem removes spawned objects that fell out of the level and kills
// a player who did the same.
type BoundsSystem struct{}

func NewBoundsSystem() *BoundsSystem { return &BoundsSystem{} }

func (s *BoundsSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	be, ok := ecs.First(w, component.LevelBoundsComponent.Kind())
	if !ok {
		return
	}
	bounds, ok := ecs.Get(w, be, component.LevelBoundsComponent.Kind())
	if !ok || bounds.Height <= 0 {
		return
	}
	floor := bounds.Height + fallMargin

	ecs.ForEach2(w, component.ConveyorRiderComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, r *component.ConveyorRider, t *component.Transform) {
		if r.Spawned && t.Y > floor {
			ecs.DestroyEntity(w, e)
		}
	})

	ecs.ForEach2(w, component.HealthComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, h *component.Health, t *component.Transform) {
		if h.Alive && t.Y > floor {
			TakeDamage(w, e, 0, h.Current)
		}
	})
}
