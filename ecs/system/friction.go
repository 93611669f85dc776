package system

import (
	"github.com/dummyworks/crashtestescape/ecs"
	"github.com/dummyworks/crashtestescape/ecs/component"
)

// FrictionSystem zeroes the player's friction in the air so it cannot cling
// to walls, and restores it once the player stands still on something.
type FrictionSystem struct{}

func NewFrictionSystem() *FrictionSystem { return &FrictionSystem{} }

func (s *FrictionSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	ecs.ForEach4(w,
		component.FrictionComponent.Kind(),
		component.HealthComponent.Kind(),
		component.GroundCheckComponent.Kind(),
		component.PhysicsBodyComponent.Kind(),
		func(e ecs.Entity, f *component.Friction, h *component.Health, gc *component.GroundCheck, body *component.PhysicsBody) {
			moving := false
			if m, ok := ecs.Get(w, e, component.PlayerMotorComponent.Kind()); ok {
				moving = m.Moving
			}
			body.Friction = playerFriction(h, gc, moving, body.Friction, f.Original)
		})
}

func playerFriction(h *component.Health, gc *component.GroundCheck, moving bool, current, original float64) float64 {
	supported := gc.CanJump()
	if h.Alive {
		if !supported {
			return 0
		}
		if !moving {
			return original
		}
		return current
	}
	if h.KnockbackFrames <= 0 && supported {
		return original
	}
	return current
}
