package system

import (
	"image/color"
	"math"
	"math/rand/v2"

	"github.com/dummyworks/crashtestescape/ecs"
	"github.com/dummyworks/crashtestescape/ecs/component"
)

type BurstKind int

const (
	BurstDust BurstKind = iota
	BurstDeath
	BurstSparks
)

type burstPreset struct {
	count   int
	speed   float64
	life    int
	size    float64
	gravity float64
	drag    float64
	spread  float64 // radians around straight up; 2*Pi is a full ring
	color   color.RGBA
}

var burstPresets = map[BurstKind]burstPreset{
	BurstDust:   {count: 8, speed: 1.2, life: 18, size: 2, gravity: 0.02, drag: 0.9, spread: math.Pi, color: color.RGBA{R: 0xc8, G: 0xb8, B: 0x98, A: 0xff}},
	BurstDeath:  {count: 24, speed: 3, life: 40, size: 3, gravity: 0.15, drag: 0.97, spread: 2 * math.Pi, color: color.RGBA{R: 0xf2, G: 0xc1, B: 0x2e, A: 0xff}},
	BurstSparks: {count: 14, speed: 4, life: 20, size: 2, gravity: 0.2, drag: 0.95, spread: 2 * math.Pi / 3, color: color.RGBA{R: 0xff, G: 0xe0, B: 0x80, A: 0xff}},
}

var particleRand = rand.New(rand.NewPCG(0x5eed, 0xc0ffee))

// SpawnBurst creates a self-destroying particle emitter at (x, y).
func SpawnBurst(w *ecs.World, x, y float64, kind BurstKind) ecs.Entity {
	preset, ok := burstPresets[kind]
	if !ok || w == nil {
		return 0
	}
	em := &component.ParticleEmitter{
		Particles: make([]component.Particle, preset.count),
		Gravity:   preset.gravity,
		Drag:      preset.drag,
		Color:     preset.color,
	}
	for i := range em.Particles {
		angle := -math.Pi/2 + (particleRand.Float64()-0.5)*preset.spread
		speed := preset.speed * (0.5 + particleRand.Float64()*0.5)
		life := preset.life/2 + particleRand.IntN(preset.life/2+1)
		em.Particles[i] = component.Particle{
			X:       x,
			Y:       y,
			VX:      math.Cos(angle) * speed,
			VY:      math.Sin(angle) * speed,
			Life:    life,
			MaxLife: life,
			Size:    preset.size,
		}
	}

	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.ParticleEmitterComponent.Kind(), em); err != nil {
		panic("particles: add emitter: " + err.Error())
	}
	if err := ecs.Add(w, e, component.RenderLayerComponent.Kind(), &component.RenderLayer{Index: 50}); err != nil {
		panic("particles: add render layer: " + err.Error())
	}
	return e
}

// ParticleSystem moves particles and destroys emitters whose particles have
// all expired. It also kicks up dust when the player lands.
type ParticleSystem struct{}

func NewParticleSystem() *ParticleSystem { return &ParticleSystem{} }

func (s *ParticleSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	ecs.ForEach3(w, component.GroundCheckComponent.Kind(), component.TransformComponent.Kind(), component.PhysicsBodyComponent.Kind(), func(e ecs.Entity, gc *component.GroundCheck, t *component.Transform, b *component.PhysicsBody) {
		if gc.WasGrounded || !gc.CanJump() {
			return
		}
		SpawnBurst(w, t.X, t.Y+b.Height/2, BurstDust)
		if sfx, ok := ecs.Get(w, e, component.SFXComponent.Kind()); ok {
			sfx.Play("land")
		}
	})

	ecs.ForEach(w, component.ParticleEmitterComponent.Kind(), func(e ecs.Entity, em *component.ParticleEmitter) {
		if !stepParticles(em) {
			ecs.DestroyEntity(w, e)
		}
	})
}

// stepParticles advances every live particle and reports whether any are
// still alive.
func stepParticles(em *component.ParticleEmitter) bool {
	alive := false
	for i := range em.Particles {
		p := &em.Particles[i]
		if p.Life <= 0 {
			continue
		}
		p.VY += em.Gravity
		if em.Drag > 0 {
			p.VX *= em.Drag
			p.VY *= em.Drag
		}
		p.X += p.VX
		p.Y += p.VY
		p.Life--
		if p.Life > 0 {
			alive = true
		}
	}
	return alive
}
