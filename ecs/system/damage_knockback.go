package system

import (
	"github.com/dummyworks/crashtestescape/ecs"
	"github.com/dummyworks/crashtestescape/ecs/component"
	"github.com/jakecoffman/cp"
)

// DamageKnockbackSystem consumes DamageKnockback requests. The push is
// horizontal away from the source plus a fixed hop, applied as an impulse on
// top of a cleared velocity so stacked hits never launch the player further.
type DamageKnockbackSystem struct{}

func NewDamageKnockbackSystem() *DamageKnockbackSystem { return &DamageKnockbackSystem{} }

func (s *DamageKnockbackSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	ecs.ForEach(w, component.DamageKnockbackRequestComponent.Kind(), func(e ecs.Entity, req *component.DamageKnockback) {
		_ = ecs.Remove(w, e, component.DamageKnockbackRequestComponent.Kind())

		body, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
		if !ok || body.Body == nil || body.Static {
			return
		}
		t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
		if !ok {
			return
		}
		facingLeft := false
		if m, ok := ecs.Get(w, e, component.PlayerMotorComponent.Kind()); ok {
			facingLeft = m.FacingLeft
			m.Shoving = false
			m.Jumping = false
			m.JumpHoldFrames = 0
		}

		dv := knockbackVelocity(t.X, req.SourceX, facingLeft, req.ImpulseX, req.ImpulseY)
		mass := body.Body.Mass()
		body.Body.SetVelocity(0, 0)
		body.Body.ApplyImpulseAtWorldPoint(dv.Mult(mass), body.Body.Position())
	})
}

// knockbackVelocity points away from the source horizontally. When the
// player is dead centre over the source it pushes opposite to facing.
func knockbackVelocity(playerX, sourceX float64, facingLeft bool, kx, ky float64) cp.Vector {
	dir := 1.0
	switch {
	case playerX < sourceX:
		dir = -1
	case playerX == sourceX && !facingLeft:
		dir = -1
	}
	return cp.Vector{X: dir * kx, Y: -ky}
}
