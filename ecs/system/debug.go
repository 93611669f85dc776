package system

import (
	"fmt"
	"image/color"
	"math"

	"github.com/dummyworks/crashtestescape/common"
	"github.com/dummyworks/crashtestescape/ecs"
	"github.com/dummyworks/crashtestescape/ecs/component"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
)

const debugCircleSegments = 16

var (
	debugHazardColor   = color.NRGBA{R: 0xff, G: 0x30, B: 0x30, A: 0xc0}
	debugZoneColor     = color.NRGBA{R: 0xff, G: 0xa0, B: 0x20, A: 0xc0}
	debugTriggerColor  = color.NRGBA{R: 0x40, G: 0xa0, B: 0xff, A: 0xc0}
	debugShoveColor    = color.NRGBA{R: 0xff, G: 0x40, B: 0xff, A: 0xc0}
	debugOutlineColor  = cp.FColor{R: 0.2, G: 1, B: 0.2, A: 0.9}
	debugSensorOutline = cp.FColor{R: 1, G: 1, B: 0.2, A: 0.9}
)

// DrawPhysicsDebug outlines every Chipmunk shape plus the gameplay trigger
// boxes that live outside the physics space.
func DrawPhysicsDebug(space *cp.Space, w *ecs.World, screen *ebiten.Image) {
	if space == nil || w == nil || screen == nil {
		return
	}
	camX, camY := cameraOffset(w)
	drawer := &physicsDebugDrawer{screen: screen, camX: camX, camY: camY}
	cp.DrawSpace(space, drawer)

	ecs.ForEach2(w, component.HazardComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, h *component.Hazard, t *component.Transform) {
		if box, ok := hazardBounds(h, t); ok {
			drawer.box(box, debugHazardColor)
		}
	})
	ecs.ForEach2(w, component.MotionDetectorComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, d *component.MotionDetector, t *component.Transform) {
		drawer.box(detectorZone(d, t), debugZoneColor)
	})
	ecs.ForEach2(w, component.CheckpointComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, c *component.Checkpoint, t *component.Transform) {
		drawer.box(common.CenteredAABB(t.X, t.Y, c.Width, c.Height), debugTriggerColor)
	})
	ecs.ForEach2(w, component.LevelExitComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, x *component.LevelExit, t *component.Transform) {
		drawer.box(common.CenteredAABB(t.X, t.Y, x.Width, x.Height), debugTriggerColor)
	})
	ecs.ForEach3(w, component.PlayerMotorComponent.Kind(), component.TransformComponent.Kind(), component.PhysicsBodyComponent.Kind(), func(e ecs.Entity, m *component.PlayerMotor, t *component.Transform, b *component.PhysicsBody) {
		if m.Shoving {
			drawer.box(shoveBox(m, t, b), debugShoveColor)
		}
	})
}

// DrawPlayerStateDebug prints the player's control flags.
func DrawPlayerStateDebug(w *ecs.World, screen *ebiten.Image) {
	if w == nil || screen == nil {
		return
	}
	player, ok := ecs.First(w, component.PlayerTagComponent.Kind())
	if !ok {
		return
	}
	h, _ := ecs.Get(w, player, component.HealthComponent.Kind())
	m, _ := ecs.Get(w, player, component.PlayerMotorComponent.Kind())
	gc, _ := ecs.Get(w, player, component.GroundCheckComponent.Kind())
	body, _ := ecs.Get(w, player, component.PhysicsBodyComponent.Kind())
	if h == nil || m == nil || gc == nil {
		return
	}
	v := velocity(body)
	text := fmt.Sprintf(
		"HP: %d/%d alive=%v knockback=%d\nGrounded: %v belt=%v\nVel: %.2f, %.2f moving=%v\nCrouch=%v Shove=%v Crushed=%v(%d) Jump=%v(%d)\nCheckpoint: %d Deaths: %d",
		h.Current, h.Max, h.Alive, h.KnockbackFrames,
		gc.Grounded, gc.OnMovingPlatform,
		v.X, v.Y, m.Moving,
		m.Crouching, m.Shoving, m.Crushed, m.CrushFrames, m.Jumping, m.JumpHoldFrames,
		h.Checkpoint, h.Deaths,
	)
	ebitenutil.DebugPrintAt(screen, text, 10, 24)
}

type physicsDebugDrawer struct {
	screen *ebiten.Image
	camX   float64
	camY   float64
}

func (d *physicsDebugDrawer) DrawCircle(pos cp.Vector, angle, radius float64, outline, fill cp.FColor, data interface{}) {
	d.drawCircle(pos, radius, outline)
	end := cp.Vector{X: pos.X + math.Cos(angle)*radius, Y: pos.Y + math.Sin(angle)*radius}
	d.drawLine(pos, end, outline)
}

func (d *physicsDebugDrawer) DrawSegment(a, b cp.Vector, fill cp.FColor, data interface{}) {
	d.drawLine(a, b, fill)
}

func (d *physicsDebugDrawer) DrawFatSegment(a, b cp.Vector, radius float64, outline, fill cp.FColor, data interface{}) {
	d.drawLine(a, b, outline)
}

func (d *physicsDebugDrawer) DrawPolygon(count int, verts []cp.Vector, radius float64, outline, fill cp.FColor, data interface{}) {
	if count <= 0 {
		return
	}
	for i := 0; i < count; i++ {
		d.drawLine(verts[i], verts[(i+1)%count], outline)
	}
}

func (d *physicsDebugDrawer) DrawDot(size float64, pos cp.Vector, fill cp.FColor, data interface{}) {
	x, y := d.toScreen(pos)
	vector.DrawFilledRect(d.screen, float32(x-1), float32(y-1), 2, 2, toNRGBA(fill), false)
}

func (d *physicsDebugDrawer) Flags() uint {
	return cp.DRAW_SHAPES
}

func (d *physicsDebugDrawer) OutlineColor() cp.FColor {
	return debugOutlineColor
}

func (d *physicsDebugDrawer) ShapeColor(shape *cp.Shape, data interface{}) cp.FColor {
	if shape.Sensor() {
		return debugSensorOutline
	}
	return cp.FColor{R: 0.1, G: 0.6, B: 0.1, A: 0.5}
}

func (d *physicsDebugDrawer) ConstraintColor() cp.FColor {
	return cp.FColor{R: 1, G: 0.5, B: 0.1, A: 0.9}
}

func (d *physicsDebugDrawer) CollisionPointColor() cp.FColor {
	return cp.FColor{R: 1, G: 0.2, B: 0.2, A: 0.9}
}

func (d *physicsDebugDrawer) Data() interface{} {
	return nil
}

func (d *physicsDebugDrawer) drawLine(a, b cp.Vector, c cp.FColor) {
	x1, y1 := d.toScreen(a)
	x2, y2 := d.toScreen(b)
	vector.StrokeLine(d.screen, float32(x1), float32(y1), float32(x2), float32(y2), 1, toNRGBA(c), false)
}

func (d *physicsDebugDrawer) drawCircle(center cp.Vector, radius float64, c cp.FColor) {
	if radius <= 0 {
		return
	}
	prev := cp.Vector{X: center.X + radius, Y: center.Y}
	for i := 1; i <= debugCircleSegments; i++ {
		t := (2 * math.Pi) * (float64(i) / float64(debugCircleSegments))
		next := cp.Vector{X: center.X + math.Cos(t)*radius, Y: center.Y + math.Sin(t)*radius}
		d.drawLine(prev, next, c)
		prev = next
	}
}

func (d *physicsDebugDrawer) box(b common.AABB, c color.Color) {
	vector.StrokeRect(d.screen, float32(b.X-d.camX), float32(b.Y-d.camY), float32(b.W), float32(b.H), 1, c, false)
}

func (d *physicsDebugDrawer) toScreen(v cp.Vector) (float64, float64) {
	return v.X - d.camX, v.Y - d.camY
}

func toNRGBA(c cp.FColor) color.NRGBA {
	return color.NRGBA{
		R: uint8(common.Clamp(float64(c.R), 0, 1) * 255),
		G: uint8(common.Clamp(float64(c.G), 0, 1) * 255),
		B: uint8(common.Clamp(float64(c.B), 0, 1) * 255),
		A: uint8(common.Clamp(float64(c.A), 0, 1) * 255),
	}
}
