package system

import (
	"image"

	"github.com/dummyworks/crashtestescape/common"
	"github.com/dummyworks/crashtestescape/ecs"
	"github.com/dummyworks/crashtestescape/ecs/component"
	"github.com/hajimehoshi/ebiten/v2"
)

type AnimationSystem struct{}

func NewAnimationSystem() *AnimationSystem {
	return &AnimationSystem{}
}

func (a *AnimationSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	ecs.ForEach2(w, component.AnimationComponent.Kind(), component.SpriteComponent.Kind(), func(e ecs.Entity, anim *component.Animation, sprite *component.Sprite) {
		def, ok := anim.Defs[anim.Current]
		if !ok || def.FrameCount <= 0 {
			return
		}
		advanceAnimation(anim, def)

		if anim.Sheet == nil {
			return
		}
		x := anim.Frame * def.FrameW
		y := def.Row * def.FrameH
		sprite.Image = anim.Sheet.SubImage(image.Rect(x, y, x+def.FrameW, y+def.FrameH)).(*ebiten.Image)
		sprite.UseSource = false
	})
}

func advanceAnimation(anim *component.Animation, def component.AnimationDef) {
	if !anim.Playing {
		return
	}
	ticksPerFrame := 1
	if def.FPS > 0 {
		ticksPerFrame = int(float64(common.TPS) / def.FPS)
		if ticksPerFrame < 1 {
			ticksPerFrame = 1
		}
	}

	anim.FrameTimer++
	if anim.FrameTimer < ticksPerFrame {
		return
	}
	anim.FrameTimer = 0
	anim.Frame++
	if anim.Frame < def.FrameCount {
		return
	}
	if def.Loop {
		anim.Frame = 0
		return
	}
	anim.Frame = def.FrameCount - 1
	anim.Playing = false
	anim.Finished = true
}

// SetAnimation switches clips, restarting only when the clip changes.
func SetAnimation(anim *component.Animation, name string) {
	if anim == nil || anim.Current == name {
		return
	}
	if _, ok := anim.Defs[name]; !ok {
		return
	}
	anim.Current = name
	anim.Frame = 0
	anim.FrameTimer = 0
	anim.Playing = true
	anim.Finished = false
}
