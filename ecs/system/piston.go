package system

import (
	"github.com/dummyworks/crashtestescape/common"
	"github.com/dummyworks/crashtestescape/ecs"
	"github.com/dummyworks/crashtestescape/ecs/component"
)

// PistonSystem animates fired pistons (extend, hold, retract) and crushes a
// player caught under a descending or lowered head.
type PistonSystem struct{}

func NewPistonSystem() *PistonSystem { return &PistonSystem{} }

func (s *PistonSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	ecs.ForEach2(w, component.PistonComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, p *component.Piston, t *component.Transform) {
		stepPiston(p)
		t.X = p.BaseX
		t.Y = p.BaseY + p.Extension*p.Travel

		if p.State != component.PistonExtending && p.State != component.PistonDown {
			return
		}
		crushBox := common.CenteredAABB(t.X, t.Y+1, p.HeadW, p.HeadH+2)
		ecs.ForEach4(w,
			component.PlayerMotorComponent.Kind(),
			component.HealthComponent.Kind(),
			component.TransformComponent.Kind(),
			component.PhysicsBodyComponent.Kind(),
			func(player ecs.Entity, m *component.PlayerMotor, h *component.Health, pt *component.Transform, pb *component.PhysicsBody) {
				if !h.Alive || m.Crushed {
					return
				}
				box, ok := bodyAABB(pt, pb)
				if !ok || !box.Overlaps(crushBox) {
					return
				}
				Crush(w, player, e, p.CrushDamage)
			})
	})
}

func stepPiston(p *component.Piston) {
	switch p.State {
	case component.PistonExtending:
		p.Frames--
		p.Extension = progress(p.ExtendFrames-p.Frames, p.ExtendFrames)
		if p.Frames <= 0 {
			p.State = component.PistonDown
			p.Frames = p.HoldFrames
			p.Extension = 1
		}
	case component.PistonDown:
		p.Frames--
		if p.Frames <= 0 {
			p.State = component.PistonRetracting
			p.Frames = p.RetractFrames
		}
	case component.PistonRetracting:
		p.Frames--
		p.Extension = progress(p.Frames, p.RetractFrames)
		if p.Frames <= 0 {
			p.State = component.PistonRetracted
			p.Frames = 0
			p.Extension = 0
		}
	}
}

func progress(done, total int) float64 {
	if total <= 0 {
		return 1
	}
	return common.Clamp(float64(done)/float64(total), 0, 1)
}

// Crush damages the player and pins it for its crush recovery time.
func Crush(w *ecs.World, player, source ecs.Entity, damage int) {
	m, ok := ecs.Get(w, player, component.PlayerMotorComponent.Kind())
	if !ok {
		return
	}
	m.Crushed = true
	m.CrushFrames = m.CrushRecovery
	m.Shoving = false
	m.Jumping = false
	m.JumpHoldFrames = 0

	if body, ok := ecs.Get(w, player, component.PhysicsBodyComponent.Kind()); ok && body.Body != nil {
		body.Body.SetVelocity(0, 0)
	}
	if t, ok := ecs.Get(w, player, component.TransformComponent.Kind()); ok {
		SpawnBurst(w, t.X, t.Y, BurstSparks)
	}
	if sfx, ok := ecs.Get(w, player, component.SFXComponent.Kind()); ok {
		sfx.Play("crush")
	}
	ecs.Emit(w, ecs.Event{Kind: ecs.EventPlayerCrushed, Source: source, Target: player, Value: damage})
	TakeDamage(w, player, source, damage)
}
