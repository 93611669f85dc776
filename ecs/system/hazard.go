package system

import (
	"github.com/dummyworks/crashtestescape/common"
	"github.com/dummyworks/crashtestescape/ecs"
	"github.com/dummyworks/crashtestescape/ecs/component"
)

const invulnerableBlinkFrames = 4

// HazardSystem damages the player on contact with a hazard and queues a
// knockback away from it. A hit grants a short invulnerability window.
type HazardSystem struct{}

func NewHazardSystem() *HazardSystem { return &HazardSystem{} }

func hazardBounds(h *component.Hazard, t *component.Transform) (common.AABB, bool) {
	if h == nil || t == nil || h.Width <= 0 || h.Height <= 0 {
		return common.AABB{}, false
	}
	return common.CenteredAABB(t.X+h.OffsetX, t.Y+h.OffsetY, h.Width, h.Height), true
}

func (s *HazardSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	tickInvulnerable(w)

	ecs.ForEach4(w,
		component.PlayerTagComponent.Kind(),
		component.HealthComponent.Kind(),
		component.TransformComponent.Kind(),
		component.PhysicsBodyComponent.Kind(),
		func(player ecs.Entity, _ *component.PlayerTag, health *component.Health, pt *component.Transform, pb *component.PhysicsBody) {
			if !health.Alive || ecs.Has(w, player, component.InvulnerableComponent.Kind()) {
				return
			}
			playerBox, ok := bodyAABB(pt, pb)
			if !ok {
				return
			}

			hit := false
			ecs.ForEach2(w, component.HazardComponent.Kind(), component.TransformComponent.Kind(), func(he ecs.Entity, hz *component.Hazard, ht *component.Transform) {
				if hit {
					return
				}
				box, ok := hazardBounds(hz, ht)
				if !ok || !box.Overlaps(playerBox) {
					return
				}
				hit = true
				applyHazardHit(w, player, he, hz, box)
			})
		})
}

func applyHazardHit(w *ecs.World, player, source ecs.Entity, hz *component.Hazard, box common.AABB) {
	TakeDamage(w, player, source, hz.Damage)

	h, ok := ecs.Get(w, player, component.HealthComponent.Kind())
	if !ok {
		return
	}
	if hz.KnockbackLock > h.KnockbackFrames {
		h.KnockbackFrames = hz.KnockbackLock
	}
	if err := ecs.Add(w, player, component.DamageKnockbackRequestComponent.Kind(), &component.DamageKnockback{
		SourceX:  box.CenterX(),
		SourceY:  box.CenterY(),
		ImpulseX: hz.KnockbackX,
		ImpulseY: hz.KnockbackY,
	}); err != nil {
		panic("hazard system: add knockback request: " + err.Error())
	}
	if h.Alive && hz.InvulnerableFrames > 0 {
		if err := ecs.Add(w, player, component.InvulnerableComponent.Kind(), &component.Invulnerable{Frames: hz.InvulnerableFrames}); err != nil {
			panic("hazard system: add invulnerable: " + err.Error())
		}
	}
}

func tickInvulnerable(w *ecs.World) {
	ecs.ForEach(w, component.InvulnerableComponent.Kind(), func(e ecs.Entity, inv *component.Invulnerable) {
		sprite, hasSprite := ecs.Get(w, e, component.SpriteComponent.Kind())
		if inv.Frames <= 0 {
			return
		}
		inv.Frames--
		if inv.Frames == 0 {
			_ = ecs.Remove(w, e, component.InvulnerableComponent.Kind())
			if hasSprite {
				sprite.Hidden = false
			}
			return
		}
		if hasSprite {
			sprite.Hidden = (inv.Frames/invulnerableBlinkFrames)%2 == 1
		}
	})
}
