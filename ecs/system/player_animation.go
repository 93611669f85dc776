package system

import (
	"github.com/dummyworks/crashtestescape/ecs"
	"github.com/dummyworks/crashtestescape/ecs/component"
	"github.com/jakecoffman/cp"
)

const crushedSquash = 0.45

// PlayerAnimationSystem picks the player's clip from its control state.
type PlayerAnimationSystem struct{}

func NewPlayerAnimationSystem() *PlayerAnimationSystem { return &PlayerAnimationSystem{} }

func (s *PlayerAnimationSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	ecs.ForEach4(w,
		component.PlayerMotorComponent.Kind(),
		component.HealthComponent.Kind(),
		component.AnimationComponent.Kind(),
		component.PhysicsBodyComponent.Kind(),
		func(e ecs.Entity, m *component.PlayerMotor, h *component.Health, anim *component.Animation, body *component.PhysicsBody) {
			gc, ok := ecs.Get(w, e, component.GroundCheckComponent.Kind())
			if !ok {
				gc = &component.GroundCheck{}
			}
			in, ok := ecs.Get(w, e, component.InputComponent.Kind())
			if !ok {
				in = &component.Input{}
			}
			SetAnimation(anim, playerAnimation(h, m, gc, in, velocity(body)))

			if sprite, ok := ecs.Get(w, e, component.SpriteComponent.Kind()); ok {
				sprite.SquashY = 0
				if m.Crushed {
					sprite.SquashY = crushedSquash
				}
			}
		})
}

// playerAnimation ranks states: dead, crushed, shove, crouch, airborne, run,
// idle.
func playerAnimation(h *component.Health, m *component.PlayerMotor, gc *component.GroundCheck, in *component.Input, vel cp.Vector) string {
	switch {
	case !h.Alive:
		return "dead"
	case m.Crushed:
		return "crushed"
	case m.Shoving:
		return "shove"
	case m.Crouching:
		if in.MoveX != 0 {
			return "crouch_walk"
		}
		return "crouch"
	case !gc.CanJump():
		if vel.Y < 0 && m.Jumping {
			return "jump"
		}
		return "fall"
	case in.MoveX != 0 && h.KnockbackFrames <= 0:
		return "run"
	default:
		return "idle"
	}
}
