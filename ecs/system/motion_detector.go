package system

import (
	"github.com/dummyworks/crashtestescape/common"
	"github.com/dummyworks/crashtestescape/ecs"
	"github.com/dummyworks/crashtestescape/ecs/component"
)

// MotionDetectorSystem cycles detectors on and off. While on, a player moving
// inside the zone arms the linked piston; keeping still or stepping out
// disarms it.
type MotionDetectorSystem struct {
	schedules *ScheduleRunner
}

func NewMotionDetectorSystem(schedules *ScheduleRunner) *MotionDetectorSystem {
	return &MotionDetectorSystem{schedules: schedules}
}

func detectorZone(d *component.MotionDetector, t *component.Transform) common.AABB {
	return common.CenteredAABB(t.X+d.ZoneOffsetX, t.Y+d.ZoneOffsetY, d.ZoneW, d.ZoneH)
}

func (s *MotionDetectorSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	player, hasPlayer := ecs.First(w, component.PlayerTagComponent.Kind())

	ecs.ForEach2(w, component.MotionDetectorComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, d *component.MotionDetector, t *component.Transform) {
		d.ToggleFrames--
		if d.ToggleFrames <= 0 {
			d.On = !d.On
			d.Cycle++
			d.ToggleFrames = s.schedules.nextPhase(w, e, "motion detector", d.Duration, d.Cycle, d.On)
			if d.ToggleFrames <= 0 {
				d.ToggleFrames = 1
			}
			if sfx, ok := ecs.Get(w, e, component.SFXComponent.Kind()); ok {
				sfx.Play("toggle")
			}
		}

		if !d.On {
			disarm(d)
			return
		}

		if d.ArmFrames > 0 {
			d.ArmFrames--
			if d.ArmFrames == 0 {
				d.ArmFrames = -1
				if d.Alerted {
					firePiston(w, ecs.Entity(d.Piston))
				}
			}
		}

		inZone, moving := false, false
		if hasPlayer {
			inZone, moving = playerInZone(w, player, detectorZone(d, t))
		}
		switch {
		case !inZone:
			disarm(d)
		case moving:
			d.Alerted = true
			if d.ArmFrames < 0 {
				d.ArmFrames = d.PistonBuffer
			}
		default:
			disarm(d)
		}
	})
}

func disarm(d *component.MotionDetector) {
	d.Alerted = false
	d.ArmFrames = -1
}

func playerInZone(w *ecs.World, player ecs.Entity, zone common.AABB) (bool, bool) {
	h, ok := ecs.Get(w, player, component.HealthComponent.Kind())
	if !ok || !h.Alive {
		return false, false
	}
	t, ok := ecs.Get(w, player, component.TransformComponent.Kind())
	if !ok {
		return false, false
	}
	body, ok := ecs.Get(w, player, component.PhysicsBodyComponent.Kind())
	if !ok {
		return false, false
	}
	box, ok := bodyAABB(t, body)
	if !ok || !box.Overlaps(zone) {
		return false, false
	}
	moving := false
	if m, ok := ecs.Get(w, player, component.PlayerMotorComponent.Kind()); ok {
		moving = m.Moving
	}
	return true, moving
}

// firePiston starts the crush cycle. A piston that is not fully retracted
// ignores the trigger.
func firePiston(w *ecs.World, e ecs.Entity) bool {
	p, ok := ecs.Get(w, e, component.PistonComponent.Kind())
	if !ok || p.State != component.PistonRetracted {
		return false
	}
	p.State = component.PistonExtending
	p.Frames = p.ExtendFrames
	if sfx, ok := ecs.Get(w, e, component.SFXComponent.Kind()); ok {
		sfx.Play("piston")
	}
	return true
}
