package system

import (
	"github.com/dummyworks/crashtestescape/ecs"
	"github.com/dummyworks/crashtestescape/ecs/component"
)

// ObjectAnimationSystem mirrors level object state into their clips.
type ObjectAnimationSystem struct{}

func NewObjectAnimationSystem() *ObjectAnimationSystem { return &ObjectAnimationSystem{} }

func (s *ObjectAnimationSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	ecs.ForEach2(w, component.MotionDetectorComponent.Kind(), component.AnimationComponent.Kind(), func(e ecs.Entity, d *component.MotionDetector, anim *component.Animation) {
		SetAnimation(anim, detectorAnimation(d))
	})
	ecs.ForEach2(w, component.PistonComponent.Kind(), component.AnimationComponent.Kind(), func(e ecs.Entity, p *component.Piston, anim *component.Animation) {
		SetAnimation(anim, p.State.String())
	})
	ecs.ForEach2(w, component.CheckpointComponent.Kind(), component.AnimationComponent.Kind(), func(e ecs.Entity, c *component.Checkpoint, anim *component.Animation) {
		if c.Active {
			SetAnimation(anim, "lit")
			return
		}
		SetAnimation(anim, "idle")
	})
	ecs.ForEach2(w, component.ConveyorComponent.Kind(), component.AnimationComponent.Kind(), func(e ecs.Entity, c *component.Conveyor, anim *component.Animation) {
		if c.Active {
			SetAnimation(anim, "run")
			anim.Playing = true
			return
		}
		SetAnimation(anim, "stop")
	})
}

func detectorAnimation(d *component.MotionDetector) string {
	switch {
	case !d.On:
		return "off"
	case d.Alerted:
		return "alerted"
	default:
		return "on"
	}
}
