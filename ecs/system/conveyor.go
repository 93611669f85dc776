package system

import (
	"log"

	"github.com/dummyworks/crashtestescape/common"
	"github.com/dummyworks/crashtestescape/ecs"
	"github.com/dummyworks/crashtestescape/ecs/component"
)

const (
	// beltGrip is how much rider velocity the belt can change per tick.
	beltGrip = 0.5
	// beltReach is how far above the belt surface a body still rides it.
	beltReach = 4.0
)

// SpawnFunc builds a prefab at a world position.
type SpawnFunc func(w *ecs.World, prefab string, x, y float64) (ecs.Entity, error)

// ConveyorSystem runs belts on their on/off timer. A running belt is
// frictionless and carries whatever rests on it; a stopped belt grips and
// halts its riders.
type ConveyorSystem struct {
	schedules *ScheduleRunner
	spawn     SpawnFunc
}

func NewConveyorSystem(schedules *ScheduleRunner, spawn SpawnFunc) *ConveyorSystem {
	return &ConveyorSystem{schedules: schedules, spawn: spawn}
}

func (s *ConveyorSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	ecs.ForEach3(w, component.ConveyorComponent.Kind(), component.TransformComponent.Kind(), component.PhysicsBodyComponent.Kind(), func(e ecs.Entity, c *component.Conveyor, t *component.Transform, body *component.PhysicsBody) {
		s.tick(w, e, c)
		body.Friction = beltFriction(c)
		if c.Active {
			carryRiders(w, e, c, t)
		}
		s.runSpawner(w, e, c, t)
	})

	ecs.ForEach2(w, component.ConveyorRiderComponent.Kind(), component.PhysicsBodyComponent.Kind(), func(e ecs.Entity, r *component.ConveyorRider, body *component.PhysicsBody) {
		belt, ok := ecs.Get(w, ecs.Entity(r.Belt), component.ConveyorComponent.Kind())
		if !ok || belt.Active || body.Body == nil {
			return
		}
		v := body.Body.Velocity()
		v.X = 0
		body.Body.SetVelocityVector(v)
	})
}

func (s *ConveyorSystem) tick(w *ecs.World, e ecs.Entity, c *component.Conveyor) {
	c.ToggleFrames--
	if c.ToggleFrames > 0 {
		return
	}
	c.Active = !c.Active
	c.Cycle++
	c.ToggleFrames = s.schedules.nextPhase(w, e, "conveyor", c.MovementDelay, c.Cycle, c.Active)
	if c.ToggleFrames <= 0 {
		c.ToggleFrames = 1
	}
	if sfx, ok := ecs.Get(w, e, component.SFXComponent.Kind()); ok {
		sfx.Play("toggle")
	}
}

func beltFriction(c *component.Conveyor) float64 {
	if c.Active {
		return 0
	}
	return c.StoppedFriction
}

func beltSurface(c *component.Conveyor, t *component.Transform) common.AABB {
	return common.AABB{X: t.X - c.Width/2, Y: t.Y - c.Height/2 - beltReach, W: c.Width, H: beltReach + 1}
}

func carryRiders(w *ecs.World, belt ecs.Entity, c *component.Conveyor, t *component.Transform) {
	surface := beltSurface(c, t)

	ecs.ForEach2(w, component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, body *component.PhysicsBody, bt *component.Transform) {
		if e == belt || body.Body == nil || body.Static || body.Kinematic || body.Sensor {
			return
		}
		if motor, ok := ecs.Get(w, e, component.PlayerMotorComponent.Kind()); ok {
			gc, ok := ecs.Get(w, e, component.GroundCheckComponent.Kind())
			if !ok || !gc.OnMovingPlatform || gc.Platform != uint64(belt) {
				return
			}
			v := body.Body.Velocity()
			v.X += c.Speed
			motor.BeltVX = c.Speed
			body.Body.SetVelocityVector(v)
			return
		}

		box, ok := bodyAABB(bt, body)
		if !ok || !box.Overlaps(surface) {
			return
		}
		v := body.Body.Velocity()
		v.X += common.Clamp(c.Speed-v.X, -beltGrip, beltGrip)
		body.Body.SetVelocityVector(v)
	})
}

func (s *ConveyorSystem) runSpawner(w *ecs.World, belt ecs.Entity, c *component.Conveyor, t *component.Transform) {
	if c.SpawnPrefab == "" || c.SpawnInterval <= 0 || s.spawn == nil {
		return
	}
	c.SpawnFrames--
	if c.SpawnFrames > 0 {
		return
	}
	c.SpawnFrames = c.SpawnInterval

	x := t.X + c.SpawnOffsetX
	y := t.Y + c.SpawnOffsetY
	spawned, err := s.spawn(w, c.SpawnPrefab, x, y)
	if err != nil {
		log.Printf("conveyor: spawn %s: %v", c.SpawnPrefab, err)
		return
	}
	if err := ecs.Add(w, spawned, component.ConveyorRiderComponent.Kind(), &component.ConveyorRider{Belt: uint64(belt), Spawned: true}); err != nil {
		panic("conveyor system: add rider: " + err.Error())
	}
}
