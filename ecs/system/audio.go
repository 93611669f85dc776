package system

import (
	"github.com/dummyworks/crashtestescape/ecs"
	"github.com/dummyworks/crashtestescape/ecs/component"
)

// AudioSystem drains SFX requests once per tick. The same clip requested
// twice in one tick is played once.
type AudioSystem struct {
	play  func(name string)
	muted bool
}

func NewAudioSystem(play func(name string)) *AudioSystem {
	return &AudioSystem{play: play}
}

func (a *AudioSystem) SetMuted(muted bool) {
	a.muted = muted
}

func (a *AudioSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	played := make(map[string]struct{})
	ecs.ForEach(w, component.SFXComponent.Kind(), func(_ ecs.Entity, sfx *component.SFX) {
		for _, name := range sfx.Requests {
			if _, dup := played[name]; dup {
				continue
			}
			played[name] = struct{}{}
			if a.play != nil && !a.muted {
				a.play(name)
			}
		}
		sfx.Requests = sfx.Requests[:0]
	})
}
