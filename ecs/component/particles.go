package component

import "image/color"

type Particle struct {
	X, Y    float64
	VX, VY  float64
	Life    int
	MaxLife int
	Size    float64
}

// ParticleEmitter owns a fixed set of particles. The entity is destroyed once
// every particle has run out of life.
type ParticleEmitter struct {
	Particles []Particle
	Gravity   float64
	Drag      float64
	Color     color.RGBA
}

var ParticleEmitterComponent = NewComponent[ParticleEmitter]()
