package system

import (
	"github.com/dummyworks/crashtestescape/ecs"
	"github.com/dummyworks/crashtestescape/ecs/component"
)

type RespawnSystem struct{}

func NewRespawnSystem() *RespawnSystem { return &RespawnSystem{} }

// Update performs pending respawn requests. It runs after the PhysicsSystem
// so the teleport is not undone by the step.
func (s *RespawnSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	ecs.ForEach(w, component.RespawnRequestComponent.Kind(), func(e ecs.Entity, _ *component.RespawnRequest) {
		_ = ecs.Remove(w, e, component.RespawnRequestComponent.Kind())

		h, ok := ecs.Get(w, e, component.HealthComponent.Kind())
		if !ok {
			return
		}
		t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
		if !ok {
			return
		}

		x, y := RespawnPoint(w, h)
		body, _ := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
		Teleport(body, t, x, y)

		h.Current = h.Max
		h.Alive = h.Max > 0
		h.KnockbackFrames = 0
		h.DeathFrames = 0
		_ = ecs.Remove(w, e, component.InvulnerableComponent.Kind())
		_ = ecs.Remove(w, e, component.DamageKnockbackRequestComponent.Kind())

		if m, ok := ecs.Get(w, e, component.PlayerMotorComponent.Kind()); ok {
			resetMotor(m)
			if body != nil && m.StandHeight > 0 {
				body.Height = m.StandHeight
			}
		}
		if f, ok := ecs.Get(w, e, component.FrictionComponent.Kind()); ok && body != nil {
			body.Friction = f.Original
		}
		if s, ok := ecs.Get(w, e, component.SpriteComponent.Kind()); ok {
			s.Hidden = false
			s.SquashY = 0
		}
		if cam, ok := ecs.First(w, component.CameraComponent.Kind()); ok {
			if c, ok := ecs.Get(w, cam, component.CameraComponent.Kind()); ok {
				c.Snap = true
			}
		}

		ecs.Emit(w, ecs.Event{Kind: ecs.EventPlayerRespawned, Target: e})
	})
}

// RespawnPoint picks the active checkpoint, then the level spawn point, then
// the position the player started the level at.
func RespawnPoint(w *ecs.World, h *component.Health) (float64, float64) {
	if h.Checkpoint != 0 {
		cpEnt := ecs.Entity(h.Checkpoint)
		if c, ok := ecs.Get(w, cpEnt, component.CheckpointComponent.Kind()); ok {
			return c.SpawnX, c.SpawnY
		}
	}
	if sp, ok := ecs.First(w, component.SpawnPointTagComponent.Kind()); ok {
		if t, ok := ecs.Get(w, sp, component.TransformComponent.Kind()); ok {
			return t.X, t.Y
		}
	}
	return h.InitialX, h.InitialY
}

func resetMotor(m *component.PlayerMotor) {
	m.Crouching = false
	m.Shoving = false
	m.ShovePulse = false
	m.Crushed = false
	m.CrushFrames = 0
	m.Jumping = false
	m.JumpHoldFrames = 0
	m.Moving = false
	m.BeltVX = 0
}
