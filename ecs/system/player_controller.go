package system

import (
	"math"

	"github.com/dummyworks/crashtestescape/common"
	"github.com/dummyworks/crashtestescape/ecs"
	"github.com/dummyworks/crashtestescape/ecs/component"
	"github.com/jakecoffman/cp"
)

// PlayerControllerSystem turns Input into player velocity. Crouch, shove,
// jump and movement all consult the same gate: a dead, knocked back or
// crushed player ignores input.
type PlayerControllerSystem struct{}

func NewPlayerControllerSystem() *PlayerControllerSystem {
	return &PlayerControllerSystem{}
}

func (p *PlayerControllerSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	ecs.ForEach4(w,
		component.InputComponent.Kind(),
		component.PlayerMotorComponent.Kind(),
		component.HealthComponent.Kind(),
		component.PhysicsBodyComponent.Kind(),
		func(e ecs.Entity, input *component.Input, motor *component.PlayerMotor, health *component.Health, body *component.PhysicsBody) {
			if body.Body == nil {
				return
			}
			gc, ok := ecs.Get(w, e, component.GroundCheckComponent.Kind())
			if !ok {
				gc = &component.GroundCheck{}
			}
			sfx, _ := ecs.Get(w, e, component.SFXComponent.Kind())

			tickCrush(motor)
			locked := controlsLocked(health, motor)

			if t, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
				updateCrouch(w, e, motor, input, gc, body, t, locked)
			}
			if updateShove(motor, input, locked) {
				sfx.Play("shove")
			}

			vel := body.Body.Velocity()
			vel.X -= motor.BeltVX
			motor.BeltVX = 0

			var jumped bool
			vel, jumped = applyJump(motor, input, gc, locked, vel)
			if jumped {
				sfx.Play("jump")
			}
			vel = applyMovement(motor, input, locked, vel)
			motor.Moving = isMoving(motor, input, locked, vel)

			body.Body.SetVelocityVector(vel)

			if s, ok := ecs.Get(w, e, component.SpriteComponent.Kind()); ok {
				s.FacingLeft = motor.FacingLeft
			}
		})
}

func controlsLocked(h *component.Health, m *component.PlayerMotor) bool {
	if h == nil || m == nil {
		return true
	}
	return !h.Alive || h.KnockbackFrames > 0 || m.Crushed
}

func tickCrush(m *component.PlayerMotor) {
	if !m.Crushed {
		return
	}
	m.CrushFrames--
	if m.CrushFrames <= 0 {
		m.CrushFrames = 0
		m.Crushed = false
	}
}

// applyMovement accelerates toward the input direction, clamps speed and
// stops dead on release. A locked player keeps whatever velocity knockback
// gave it.
func applyMovement(m *component.PlayerMotor, in *component.Input, locked bool, vel cp.Vector) cp.Vector {
	switch {
	case m.Shoving:
		vel.X = 0
	case !locked:
		maxSpeed := m.MaxSpeed
		if m.Crouching {
			maxSpeed *= m.CrouchSpeedScale
		}
		if in.MoveX != 0 {
			vel.X = common.Clamp(vel.X+in.MoveX*m.Acceleration, -maxSpeed, maxSpeed)
		} else if vel.X != 0 {
			vel.X = 0
		}

		if in.MoveX > m.FlipThreshold {
			m.FacingLeft = false
		} else if in.MoveX < -m.FlipThreshold {
			m.FacingLeft = true
		}
	}

	if vel.Y < -m.MaxJumpSpeed {
		vel.Y = -m.MaxJumpSpeed
	}
	return vel
}

// applyJump starts a jump on the press edge while supported and extends it
// while the button is held, up to JumpLength frames.
func applyJump(m *component.PlayerMotor, in *component.Input, gc *component.GroundCheck, locked bool, vel cp.Vector) (cp.Vector, bool) {
	canJump := gc.CanJump()

	if locked || m.Crouching {
		m.JumpHoldFrames = 0
	} else if in.JumpPressed && canJump {
		vel.Y = -m.JumpImpulse
		m.Jumping = true
		m.JumpHoldFrames = m.JumpLength
		return vel, true
	}

	if in.JumpReleased {
		m.JumpHoldFrames = 0
	}
	if in.Jump && m.Jumping && m.JumpHoldFrames > 0 {
		vel.Y -= m.JumpHoldBoost
		m.JumpHoldFrames--
	}
	if canJump && !in.Jump {
		m.Jumping = false
	}
	return vel, false
}

// updateShove follows the shove button. It reports whether a new shove
// started this tick.
func updateShove(m *component.PlayerMotor, in *component.Input, locked bool) bool {
	if locked || m.Crouching {
		m.Shoving = false
		return false
	}
	if in.ShovePressed && !m.Shoving {
		m.Shoving = true
		m.ShovePulse = true
		return true
	}
	if m.Shoving && (in.ShoveReleased || (!in.Shove && !in.ShovePressed)) {
		m.Shoving = false
	}
	return false
}

func isMoving(m *component.PlayerMotor, in *component.Input, locked bool, vel cp.Vector) bool {
	if in.MoveX != 0 && !locked {
		return true
	}
	return math.Abs(vel.X) > m.MotionEpsilon || math.Abs(vel.Y) > m.MotionEpsilon
}

// updateCrouch swaps the collider height. Standing back up needs the space
// above the crouched head to be free.
func updateCrouch(w *ecs.World, e ecs.Entity, m *component.PlayerMotor, in *component.Input, gc *component.GroundCheck, body *component.PhysicsBody, t *component.Transform, locked bool) {
	if m.StandHeight <= 0 || m.CrouchHeight <= 0 {
		return
	}
	want := in.Crouch && !locked && gc.CanJump()
	switch {
	case want && !m.Crouching:
		m.Crouching = true
		body.Height = m.CrouchHeight
	case !want && m.Crouching:
		if !headroomClear(w, e, m, body, t) {
			return
		}
		m.Crouching = false
		body.Height = m.StandHeight
	}
}

func headroomClear(w *ecs.World, self ecs.Entity, m *component.PlayerMotor, body *component.PhysicsBody, t *component.Transform) bool {
	bottom := t.Y + m.StandHeight/2
	head := common.AABB{
		X: t.X - body.Width*0.45,
		Y: bottom - m.StandHeight,
		W: body.Width * 0.9,
		H: m.StandHeight - m.CrouchHeight,
	}
	clear := true
	ecs.ForEach2(w, component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, other *component.PhysicsBody, ot *component.Transform) {
		if !clear || e == self || other.Sensor {
			return
		}
		box, ok := bodyAABB(ot, other)
		if ok && box.Overlaps(head) {
			clear = false
		}
	})
	return clear
}
