package system

import (
	"github.com/dummyworks/crashtestescape/common"
	"github.com/dummyworks/crashtestescape/ecs"
	"github.com/dummyworks/crashtestescape/ecs/component"
)

// LevelExitSystem turns the player reaching an exit into a
// LevelChangeRequest for the game loop.
type LevelExitSystem struct{}

func NewLevelExitSystem() *LevelExitSystem { return &LevelExitSystem{} }

func (s *LevelExitSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	player, ok := ecs.First(w, component.PlayerTagComponent.Kind())
	if !ok {
		return
	}
	h, ok := ecs.Get(w, player, component.HealthComponent.Kind())
	if !ok || !h.Alive {
		return
	}
	pt, ok := ecs.Get(w, player, component.TransformComponent.Kind())
	if !ok {
		return
	}
	pb, ok := ecs.Get(w, player, component.PhysicsBodyComponent.Kind())
	if !ok {
		return
	}
	box, ok := bodyAABB(pt, pb)
	if !ok {
		return
	}

	ecs.ForEach2(w, component.LevelExitComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, x *component.LevelExit, t *component.Transform) {
		if x.Triggered || !common.CenteredAABB(t.X, t.Y, x.Width, x.Height).Overlaps(box) {
			return
		}
		x.Triggered = true
		if err := ecs.Add(w, e, component.LevelChangeRequestComponent.Kind(), &component.LevelChangeRequest{}); err != nil {
			panic("level exit system: add level change request: " + err.Error())
		}
		ecs.Emit(w, ecs.Event{Kind: ecs.EventLevelExit, Source: e, Target: player})
	})
}
