package system

import (
	"github.com/dummyworks/crashtestescape/common"
	"github.com/dummyworks/crashtestescape/ecs"
	"github.com/dummyworks/crashtestescape/ecs/component"
)

// CheckpointSystem activates a checkpoint when a live player walks through
// its trigger.
type CheckpointSystem struct{}

func NewCheckpointSystem() *CheckpointSystem { return &CheckpointSystem{} }

func (s *CheckpointSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	ecs.ForEach4(w,
		component.PlayerTagComponent.Kind(),
		component.HealthComponent.Kind(),
		component.TransformComponent.Kind(),
		component.PhysicsBodyComponent.Kind(),
		func(player ecs.Entity, _ *component.PlayerTag, h *component.Health, pt *component.Transform, pb *component.PhysicsBody) {
			if !h.Alive {
				return
			}
			box, ok := bodyAABB(pt, pb)
			if !ok {
				return
			}
			ecs.ForEach2(w, component.CheckpointComponent.Kind(), component.TransformComponent.Kind(), func(cpEnt ecs.Entity, c *component.Checkpoint, ct *component.Transform) {
				if c.Active {
					return
				}
				if !common.CenteredAABB(ct.X, ct.Y, c.Width, c.Height).Overlaps(box) {
					return
				}
				if SetCheckpoint(w, player, cpEnt) {
					if sfx, ok := ecs.Get(w, player, component.SFXComponent.Kind()); ok {
						sfx.Play("checkpoint")
					}
				}
			})
		})
}
