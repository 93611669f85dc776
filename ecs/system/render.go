package system

import (
	"image/color"
	"sort"

	"github.com/dummyworks/crashtestescape/ecs"
	"github.com/dummyworks/crashtestescape/ecs/component"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

var (
	zoneIdleColor    = color.RGBA{R: 0x40, G: 0xff, B: 0x40, A: 0x28}
	zoneAlertedColor = color.RGBA{R: 0xff, G: 0x30, B: 0x30, A: 0x40}
	placeholderColor = color.RGBA{R: 0xd0, G: 0xd0, B: 0xd0, A: 0xff}
)

const (
	tileLayer     = -100
	zoneLayer     = -50
	particleLayer = 50
)

type RenderSystem struct {
	queue []drawItem
}

type drawItem struct {
	layer  int
	entity ecs.Entity
	draw   func(screen *ebiten.Image, camX, camY float64)
}

func NewRenderSystem() *RenderSystem {
	return &RenderSystem{}
}

// Draw renders every visible thing sorted by render layer, then by entity id
// so equal layers keep a stable order.
func (r *RenderSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	if r == nil || w == nil || screen == nil {
		return
	}
	camX, camY := cameraOffset(w)
	r.queue = r.queue[:0]

	ecs.ForEach(w, component.TileMapComponent.Kind(), func(e ecs.Entity, tm *component.TileMap) {
		r.push(tileLayer, e, func(dst *ebiten.Image, cx, cy float64) { drawTileMap(dst, tm, cx, cy) })
	})

	ecs.ForEach2(w, component.MotionDetectorComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, d *component.MotionDetector, t *component.Transform) {
		if !d.On {
			return
		}
		zone := detectorZone(d, t)
		c := zoneIdleColor
		if d.Alerted {
			c = zoneAlertedColor
		}
		r.push(zoneLayer, e, func(dst *ebiten.Image, cx, cy float64) {
			vector.DrawFilledRect(dst, float32(zone.X-cx), float32(zone.Y-cy), float32(zone.W), float32(zone.H), c, false)
		})
	})

	ecs.ForEach2(w, component.TransformComponent.Kind(), component.SpriteComponent.Kind(), func(e ecs.Entity, t *component.Transform, s *component.Sprite) {
		if s.Hidden {
			return
		}
		layer := 0
		if l, ok := ecs.Get(w, e, component.RenderLayerComponent.Kind()); ok {
			layer = l.Index
		}
		if s.Image == nil {
			body, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
			if !ok {
				return
			}
			r.push(layer, e, func(dst *ebiten.Image, cx, cy float64) { drawPlaceholder(dst, t, body, s, cx, cy) })
			return
		}
		r.push(layer, e, func(dst *ebiten.Image, cx, cy float64) { drawSprite(dst, t, s, cx, cy) })
	})

	ecs.ForEach(w, component.ParticleEmitterComponent.Kind(), func(e ecs.Entity, em *component.ParticleEmitter) {
		layer := particleLayer
		if l, ok := ecs.Get(w, e, component.RenderLayerComponent.Kind()); ok {
			layer = l.Index
		}
		r.push(layer, e, func(dst *ebiten.Image, cx, cy float64) { drawParticles(dst, em, cx, cy) })
	})

	sort.SliceStable(r.queue, func(i, j int) bool {
		if r.queue[i].layer != r.queue[j].layer {
			return r.queue[i].layer < r.queue[j].layer
		}
		return uint64(r.queue[i].entity) < uint64(r.queue[j].entity)
	})
	for _, item := range r.queue {
		item.draw(screen, camX, camY)
	}
}

func (r *RenderSystem) push(layer int, e ecs.Entity, draw func(*ebiten.Image, float64, float64)) {
	r.queue = append(r.queue, drawItem{layer: layer, entity: e, draw: draw})
}

func drawSprite(screen *ebiten.Image, t *component.Transform, s *component.Sprite, camX, camY float64) {
	img := s.Image
	if s.UseSource {
		if sub, ok := s.Image.SubImage(s.Source).(*ebiten.Image); ok {
			img = sub
		}
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM = spriteGeoM(t, s, float64(img.Bounds().Dx()), float64(img.Bounds().Dy()))
	op.GeoM.Translate(t.X-camX, t.Y-camY)
	if s.Tint != nil {
		op.ColorScale.ScaleWithColor(s.Tint)
	}
	screen.DrawImage(img, op)
}

// spriteGeoM builds the local transform of a sprite: origin, squash around
// the feet, horizontal flip, scale and rotation.
func spriteGeoM(t *component.Transform, s *component.Sprite, imgW, imgH float64) ebiten.GeoM {
	var g ebiten.GeoM
	g.Translate(-s.OriginX, -s.OriginY)

	if s.SquashY > 0 && s.SquashY != 1 {
		feet := imgH - s.OriginY
		g.Translate(0, -feet)
		g.Scale(1, s.SquashY)
		g.Translate(0, feet)
	}

	sx := t.ScaleX
	if sx == 0 {
		sx = 1
	}
	sy := t.ScaleY
	if sy == 0 {
		sy = 1
	}
	if s.FacingLeft {
		sx = -sx
	}
	g.Scale(sx, sy)
	g.Rotate(t.Rotation)
	return g
}

func drawPlaceholder(screen *ebiten.Image, t *component.Transform, b *component.PhysicsBody, s *component.Sprite, camX, camY float64) {
	c := color.Color(placeholderColor)
	if s.Tint != nil {
		c = s.Tint
	}
	h := b.Height
	if s.SquashY > 0 {
		h *= s.SquashY
	}
	x := t.X - b.Width/2 - camX
	y := t.Y + b.Height/2 - h - camY
	vector.DrawFilledRect(screen, float32(x), float32(y), float32(b.Width), float32(h), c, false)
}

func drawTileMap(screen *ebiten.Image, tm *component.TileMap, camX, camY float64) {
	sw, sh := float64(screen.Bounds().Dx()), float64(screen.Bounds().Dy())
	for _, rect := range tm.Rects {
		x, y := rect.X-camX, rect.Y-camY
		if x+rect.W < 0 || y+rect.H < 0 || x > sw || y > sh {
			continue
		}
		vector.DrawFilledRect(screen, float32(x), float32(y), float32(rect.W), float32(rect.H), tm.Fill, false)
		vector.StrokeLine(screen, float32(x), float32(y)+1, float32(x+rect.W), float32(y)+1, 2, tm.Edge, false)
	}
}

func drawParticles(screen *ebiten.Image, em *component.ParticleEmitter, camX, camY float64) {
	for _, p := range em.Particles {
		if p.Life <= 0 || p.MaxLife <= 0 {
			continue
		}
		c := color.NRGBA{R: em.Color.R, G: em.Color.G, B: em.Color.B}
		c.A = uint8(float64(em.Color.A) * float64(p.Life) / float64(p.MaxLife))
		half := p.Size / 2
		vector.DrawFilledRect(screen, float32(p.X-half-camX), float32(p.Y-half-camY), float32(p.Size), float32(p.Size), c, false)
	}
}
