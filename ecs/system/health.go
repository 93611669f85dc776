package system

import (
	"log"

	"github.com/dummyworks/crashtestescape/ecs"
	"github.com/dummyworks/crashtestescape/ecs/component"
)

// HealthSystem keeps Alive in step with Current, counts the knockback lock
// down and turns an expired death delay into a RespawnRequest.
type HealthSystem struct{}

func NewHealthSystem() *HealthSystem { return &HealthSystem{} }

func (s *HealthSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	ecs.ForEach(w, component.HealthComponent.Kind(), func(e ecs.Entity, h *component.Health) {
		clampHealth(h)

		if h.KnockbackFrames > 0 {
			h.KnockbackFrames--
		}

		if h.Alive || h.DeathFrames <= 0 {
			return
		}
		h.DeathFrames--
		if h.DeathFrames > 0 {
			return
		}
		if err := ecs.Add(w, e, component.RespawnRequestComponent.Kind(), &component.RespawnRequest{}); err != nil {
			panic("health system: add respawn request: " + err.Error())
		}
	})
}

func clampHealth(h *component.Health) {
	if h.Current < 0 {
		h.Current = 0
	}
	if h.Current > h.Max {
		h.Current = h.Max
	}
	h.Alive = h.Current > 0
}

// TakeDamage subtracts amount from e's health. Non-positive amounts and dead
// targets are ignored. It reports whether this hit killed the entity.
func TakeDamage(w *ecs.World, e ecs.Entity, source ecs.Entity, amount int) bool {
	if amount <= 0 {
		return false
	}
	h, ok := ecs.Get(w, e, component.HealthComponent.Kind())
	if !ok || !h.Alive {
		return false
	}

	h.Current -= amount
	clampHealth(h)
	ecs.Emit(w, ecs.Event{Kind: ecs.EventPlayerDamaged, Source: source, Target: e, Value: amount})
	if sfx, ok := ecs.Get(w, e, component.SFXComponent.Kind()); ok {
		sfx.Play("hit")
	}

	if h.Alive {
		return false
	}

	h.DeathFrames = h.RespawnDelay
	if h.DeathFrames <= 0 {
		h.DeathFrames = 1
	}
	h.Deaths++
	log.Printf("health: entity %v died (deaths=%d)", e, h.Deaths)

	if f, ok := ecs.Get(w, e, component.FrictionComponent.Kind()); ok {
		if body, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind()); ok {
			body.Friction = f.Original
		}
	}
	if t, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
		SpawnBurst(w, t.X, t.Y, BurstDeath)
	}
	ecs.Emit(w, ecs.Event{Kind: ecs.EventPlayerDied, Source: source, Target: e, Value: h.Deaths})
	return true
}

// SetCheckpoint makes cp the player's respawn anchor. The previous
// checkpoint is deactivated so at most one is ever lit.
func SetCheckpoint(w *ecs.World, player ecs.Entity, cp ecs.Entity) bool {
	h, ok := ecs.Get(w, player, component.HealthComponent.Kind())
	if !ok {
		return false
	}
	next, ok := ecs.Get(w, cp, component.CheckpointComponent.Kind())
	if !ok {
		return false
	}
	if h.Checkpoint == uint64(cp) && next.Active {
		return false
	}

	if h.Checkpoint != 0 {
		if prev, ok := ecs.Get(w, ecs.Entity(h.Checkpoint), component.CheckpointComponent.Kind()); ok {
			prev.Active = false
		}
	}
	h.Checkpoint = uint64(cp)
	next.Active = true

	name := ""
	if n, ok := ecs.Get(w, cp, component.NamedComponent.Kind()); ok {
		name = n.Name
	}
	ecs.Emit(w, ecs.Event{Kind: ecs.EventCheckpointReached, Source: cp, Target: player, Name: name})
	return true
}
