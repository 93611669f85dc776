package system

import (
	"math"

	"github.com/dummyworks/crashtestescape/common"
	"github.com/dummyworks/crashtestescape/ecs"
	"github.com/dummyworks/crashtestescape/ecs/component"
	"github.com/jakecoffman/cp"
)

// ShoveSystem resolves shove pulses: every shoveable body in reach on the
// facing side is unpinned and pushed.
type ShoveSystem struct{}

func NewShoveSystem() *ShoveSystem { return &ShoveSystem{} }

func (s *ShoveSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	ecs.ForEach3(w, component.PlayerMotorComponent.Kind(), component.TransformComponent.Kind(), component.PhysicsBodyComponent.Kind(), func(e ecs.Entity, motor *component.PlayerMotor, t *component.Transform, body *component.PhysicsBody) {
		if !motor.ShovePulse {
			return
		}
		motor.ShovePulse = false

		reach := shoveBox(motor, t, body)
		dir := 1.0
		if motor.FacingLeft {
			dir = -1
		}

		ecs.ForEach3(w, component.ShoveableComponent.Kind(), component.TransformComponent.Kind(), component.PhysicsBodyComponent.Kind(), func(target ecs.Entity, sh *component.Shoveable, tt *component.Transform, tb *component.PhysicsBody) {
			if target == e || sh.KnockedOver || tb.Body == nil || tb.Static {
				return
			}
			box, ok := bodyAABB(tt, tb)
			if !ok || !box.Overlaps(reach) {
				return
			}
			knockOver(sh, tb, dir*motor.ShoveForce)
		})
	})

	// A toppled dummy lying still becomes something to stand on.
	ecs.ForEach2(w, component.ShoveableComponent.Kind(), component.PhysicsBodyComponent.Kind(), func(e ecs.Entity, sh *component.Shoveable, b *component.PhysicsBody) {
		if !sh.KnockedOver || b.Surface == component.SurfaceGround || b.Body == nil {
			return
		}
		if math.Abs(b.Body.AngularVelocity()) < 0.01 && velocity(b).Length() < 0.05 {
			b.Surface = component.SurfaceGround
		}
	})
}

func shoveBox(m *component.PlayerMotor, t *component.Transform, body *component.PhysicsBody) common.AABB {
	height := m.ShoveHeight
	if height <= 0 {
		height = body.Height
	}
	x := t.X + body.Width/2
	if m.FacingLeft {
		x = t.X - body.Width/2 - m.ShoveReach
	}
	return common.AABB{X: x, Y: t.Y - height/2, W: m.ShoveReach, H: height}
}

// knockOver gives the body a real moment of inertia so it can topple, then
// pushes it near the top so it tips rather than slides.
func knockOver(sh *component.Shoveable, b *component.PhysicsBody, impulse float64) {
	moment := sh.Moment
	if moment <= 0 {
		moment = cp.MomentForBox(b.Body.Mass(), b.Width, b.Height)
	}
	b.Body.SetMoment(moment)
	b.LockRotation = false
	pos := b.Body.Position()
	b.Body.ApplyImpulseAtWorldPoint(cp.Vector{X: impulse, Y: 0}, cp.Vector{X: pos.X, Y: pos.Y - b.Height/4})
	b.Body.Activate()
	sh.KnockedOver = true
}
