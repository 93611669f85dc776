package system

import (
	"github.com/dummyworks/crashtestescape/common"
	"github.com/dummyworks/crashtestescape/ecs"
	"github.com/dummyworks/crashtestescape/ecs/component"
	"github.com/jakecoffman/cp"
)

const (
	collisionTypeSolid cp.CollisionType = iota + 1
	collisionTypeFeet
)

// groundNormalMin is how vertical a contact normal must be to count as
// standing on something.
const groundNormalMin = 0.5

type PhysicsSystem struct {
	space         *cp.Space
	handlersReady bool
	gravity       float64

	entities map[ecs.Entity]*bodyInfo
	// surfaces maps every solid shape to its owner so the feet handler can
	// tell ground from belts.
	surfaces map[*cp.Shape]shapeOwner
	feet     map[*cp.Shape]ecs.Entity
	contacts map[ecs.Entity]*groundContact
}

type bodyInfo struct {
	body       *cp.Body
	mainShape  *cp.Shape
	feetShape  *cp.Shape
	shapes     []*cp.Shape
	static     bool
	kinematic  bool
	baseHeight float64
	height     float64
	width      float64
}

type shapeOwner struct {
	entity  ecs.Entity
	surface string
}

type groundContact struct {
	grounded bool
	onBelt   bool
	belt     ecs.Entity
}

func NewPhysicsSystem() *PhysicsSystem {
	return NewPhysicsSystemWithGravity(common.Gravity)
}

func NewPhysicsSystemWithGravity(gravity float64) *PhysicsSystem {
	ps := &PhysicsSystem{gravity: gravity}
	ps.reset()
	return ps
}

func (ps *PhysicsSystem) reset() {
	space := cp.NewSpace()
	space.Iterations = 20
	space.SetGravity(cp.Vector{X: 0, Y: ps.gravity})
	ps.space = space
	ps.handlersReady = false
	ps.entities = make(map[ecs.Entity]*bodyInfo)
	ps.surfaces = make(map[*cp.Shape]shapeOwner)
	ps.feet = make(map[*cp.Shape]ecs.Entity)
	ps.contacts = make(map[ecs.Entity]*groundContact)
}

// Reset drops every body. Called when a level is torn down.
func (ps *PhysicsSystem) Reset() {
	if ps == nil {
		return
	}
	ps.reset()
}

func (ps *PhysicsSystem) Space() *cp.Space {
	if ps == nil {
		return nil
	}
	return ps.space
}

func (ps *PhysicsSystem) Update(w *ecs.World) {
	if ps == nil || w == nil {
		return
	}

	ps.ensureHandlers()
	ps.syncEntities(w)
	ps.syncKinematic(w)
	ps.resetContacts()

	ps.space.Step(1.0)

	ps.syncTransforms(w)
	ps.flushContacts(w)
}

func (ps *PhysicsSystem) ensureHandlers() {
	if ps.handlersReady || ps.space == nil {
		return
	}

	feetHandler := ps.space.NewCollisionHandler(collisionTypeFeet, collisionTypeSolid)
	feetHandler.UserData = ps
	feetHandler.PreSolveFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
		sys, ok := userData.(*PhysicsSystem)
		if !ok || sys == nil {
			return true
		}
		shapeA, shapeB := arb.Shapes()
		owner, feetIsA := sys.feet[shapeA]
		other := shapeB
		if !feetIsA {
			var okB bool
			owner, okB = sys.feet[shapeB]
			if !okB {
				return true
			}
			other = shapeA
		}

		n := arb.Normal()
		if !feetIsA {
			n = n.Neg()
		}
		// Only contacts below the feet count, i.e. the normal points from the
		// sensor down into the surface (+Y is down).
		if n.Y <= groundNormalMin {
			return true
		}

		surface, ok := sys.surfaces[other]
		if !ok || surface.entity == owner {
			return true
		}

		st := sys.contacts[owner]
		if st == nil {
			st = &groundContact{}
			sys.contacts[owner] = st
		}
		switch surface.surface {
		case component.SurfaceGround:
			st.grounded = true
		case component.SurfaceMovingPlatform:
			st.onBelt = true
			st.belt = surface.entity
		}
		return true
	}

	ps.handlersReady = true
}

func (ps *PhysicsSystem) syncEntities(w *ecs.World) {
	ps.cleanupEntities(w)

	ecs.ForEach2(w, component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, bodyComp *component.PhysicsBody, transform *component.Transform) {
		info := ps.entities[e]
		if info == nil {
			info = ps.createBodyInfo(e, transform, bodyComp, ecs.Has(w, e, component.GroundCheckComponent.Kind()))
			if info == nil {
				return
			}
			ps.entities[e] = info
			bodyComp.Body = info.body
			bodyComp.Shape = info.mainShape
			if gc, ok := ecs.Get(w, e, component.GroundCheckComponent.Kind()); ok {
				gc.Sensor = info.feetShape
			}
		}

		if !info.static && bodyComp.Height > 0 && bodyComp.Height != info.height {
			ps.resizeMainShape(e, info, bodyComp)
		}

		if info.mainShape != nil {
			if info.mainShape.Friction() != bodyComp.Friction {
				info.mainShape.SetFriction(bodyComp.Friction)
			}
			ps.surfaces[info.mainShape] = shapeOwner{entity: e, surface: bodyComp.Surface}
		}
	})
}

func (ps *PhysicsSystem) createBodyInfo(e ecs.Entity, transform *component.Transform, bodyComp *component.PhysicsBody, withFeet bool) *bodyInfo {
	width := bodyComp.Width
	height := bodyComp.Height
	if width <= 0 || height <= 0 {
		width = 32
		height = 32
		bodyComp.Width = width
		bodyComp.Height = height
	}

	info := &bodyInfo{
		static:     bodyComp.Static,
		kinematic:  bodyComp.Kinematic,
		baseHeight: height,
		height:     height,
		width:      width,
	}

	if bodyComp.Static {
		bb := cp.BB{L: transform.X - width/2, B: transform.Y - height/2, R: transform.X + width/2, T: transform.Y + height/2}
		shape := cp.NewBox2(ps.space.StaticBody, bb, 0)
		ps.configureShape(shape, bodyComp)
		ps.space.AddShape(shape)

		info.body = ps.space.StaticBody
		info.mainShape = shape
		info.shapes = []*cp.Shape{shape}
		ps.surfaces[shape] = shapeOwner{entity: e, surface: bodyComp.Surface}
		return info
	}

	var body *cp.Body
	if bodyComp.Kinematic {
		body = cp.NewKinematicBody()
	} else {
		mass := bodyComp.Mass
		if mass <= 0 {
			mass = 1
		}
		moment := cp.MomentForBox(mass, width, height)
		if bodyComp.LockRotation {
			moment = cp.INFINITY
		}
		body = cp.NewBody(mass, moment)
	}
	body.SetPosition(cp.Vector{X: transform.X, Y: transform.Y})
	body.SetAngle(transform.Rotation)

	shape := cp.NewBox(body, width, height, 0)
	ps.configureShape(shape, bodyComp)

	ps.space.AddBody(body)
	ps.space.AddShape(shape)

	info.body = body
	info.mainShape = shape
	info.shapes = []*cp.Shape{shape}
	ps.surfaces[shape] = shapeOwner{entity: e, surface: bodyComp.Surface}

	if withFeet {
		feet := ps.createFeetSensor(width, height, body)
		ps.space.AddShape(feet)
		info.feetShape = feet
		info.shapes = append(info.shapes, feet)
		ps.feet[feet] = e
	}

	return info
}

func (ps *PhysicsSystem) configureShape(shape *cp.Shape, bodyComp *component.PhysicsBody) {
	shape.SetFriction(bodyComp.Friction)
	shape.SetElasticity(bodyComp.Elasticity)
	shape.SetCollisionType(collisionTypeSolid)
	if bodyComp.Sensor {
		shape.SetSensor(true)
	}
}

func (ps *PhysicsSystem) createFeetSensor(width, height float64, body *cp.Body) *cp.Shape {
	feetBB := cp.BB{
		L: -width * 0.45,
		B: height / 2.0,
		R: width * 0.45,
		T: height/2.0 + 2,
	}
	feet := cp.NewBox2(body, feetBB, 0)
	feet.SetSensor(true)
	feet.SetCollisionType(collisionTypeFeet)
	return feet
}

// resizeMainShape swaps the collider for one of the new height, keeping the
// bottom edge where the full-height box had it so the feet stay planted.
func (ps *PhysicsSystem) resizeMainShape(e ecs.Entity, info *bodyInfo, bodyComp *component.PhysicsBody) {
	old := info.mainShape
	bottom := info.baseHeight / 2
	bb := cp.BB{L: -info.width / 2, B: bottom - bodyComp.Height, R: info.width / 2, T: bottom}
	shape := cp.NewBox2(info.body, bb, 0)
	ps.configureShape(shape, bodyComp)

	if old != nil {
		ps.space.RemoveShape(old)
		delete(ps.surfaces, old)
	}
	ps.space.AddShape(shape)

	shapes := info.shapes[:0]
	for _, s := range info.shapes {
		if s != old {
			shapes = append(shapes, s)
		}
	}
	info.shapes = append(shapes, shape)
	info.mainShape = shape
	info.height = bodyComp.Height
	bodyComp.Shape = shape
	ps.surfaces[shape] = shapeOwner{entity: e, surface: bodyComp.Surface}
}

// syncKinematic gives kinematic bodies the velocity that carries them to
// their Transform over one step, so contacts respond to the motion.
func (ps *PhysicsSystem) syncKinematic(w *ecs.World) {
	ecs.ForEach2(w, component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, bodyComp *component.PhysicsBody, t *component.Transform) {
		if !bodyComp.Kinematic || bodyComp.Body == nil {
			return
		}
		target := cp.Vector{X: t.X, Y: t.Y}
		bodyComp.Body.SetVelocityVector(target.Sub(bodyComp.Body.Position()))
	})
}

func (ps *PhysicsSystem) resetContacts() {
	for _, st := range ps.contacts {
		st.grounded = false
		st.onBelt = false
		st.belt = 0
	}
}

func (ps *PhysicsSystem) flushContacts(w *ecs.World) {
	ecs.ForEach(w, component.GroundCheckComponent.Kind(), func(e ecs.Entity, gc *component.GroundCheck) {
		gc.WasGrounded = gc.Grounded || gc.OnMovingPlatform
		st := ps.contacts[e]
		if st == nil {
			gc.Grounded = false
			gc.OnMovingPlatform = false
			gc.Platform = 0
			return
		}
		gc.Grounded = st.grounded
		gc.OnMovingPlatform = st.onBelt
		gc.Platform = uint64(st.belt)
	})
}

func (ps *PhysicsSystem) syncTransforms(w *ecs.World) {
	ecs.ForEach2(w, component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, bodyComp *component.PhysicsBody, transform *component.Transform) {
		if bodyComp.Body == nil || bodyComp.Static || bodyComp.Kinematic {
			return
		}
		pos := bodyComp.Body.Position()
		transform.X = pos.X
		transform.Y = pos.Y
		transform.Rotation = bodyComp.Body.Angle()
	})
}

func (ps *PhysicsSystem) cleanupEntities(w *ecs.World) {
	for e, info := range ps.entities {
		if ecs.IsAlive(w, e) && ecs.Has(w, e, component.PhysicsBodyComponent.Kind()) {
			continue
		}

		for _, shape := range info.shapes {
			if shape == nil {
				continue
			}
			ps.space.RemoveShape(shape)
			delete(ps.surfaces, shape)
			delete(ps.feet, shape)
		}
		if info.body != nil && !info.static {
			ps.space.RemoveBody(info.body)
		}

		delete(ps.entities, e)
		delete(ps.contacts, e)
	}
}

// Teleport moves a dynamic body and clears its velocity.
func Teleport(body *component.PhysicsBody, t *component.Transform, x, y float64) {
	if t != nil {
		t.X = x
		t.Y = y
	}
	if body == nil || body.Body == nil || body.Static {
		return
	}
	body.Body.SetPosition(cp.Vector{X: x, Y: y})
	body.Body.SetVelocity(0, 0)
	body.Body.SetAngularVelocity(0)
	body.Body.Activate()
}

// bodyAABB is the axis-aligned box of a body's current collider.
func bodyAABB(t *component.Transform, b *component.PhysicsBody) (common.AABB, bool) {
	if t == nil || b == nil || b.Width <= 0 || b.Height <= 0 {
		return common.AABB{}, false
	}
	if b.Shape != nil && !b.Static {
		bb := b.Shape.BB()
		return common.AABB{X: bb.L, Y: bb.B, W: bb.R - bb.L, H: bb.T - bb.B}, true
	}
	return common.CenteredAABB(t.X, t.Y, b.Width, b.Height), true
}

func velocity(b *component.PhysicsBody) cp.Vector {
	if b == nil || b.Body == nil {
		return cp.Vector{}
	}
	return b.Body.Velocity()
}

func setVelocity(b *component.PhysicsBody, v cp.Vector) {
	if b == nil || b.Body == nil || b.Static {
		return
	}
	b.Body.SetVelocityVector(v)
}
