package system

import (
	"testing"

	"github.com/dummyworks/crashtestescape/ecs"
	"github.com/dummyworks/crashtestescape/ecs/component"
)

func TestAudioSystemDrainsRequests(t *testing.T) {
	w := ecs.NewWorld()
	a := ecs.CreateEntity(w)
	b := ecs.CreateEntity(w)
	mustAdd(t, w, a, component.SFXComponent.Kind(), &component.SFX{Requests: []string{"jump", "land", "jump"}})
	mustAdd(t, w, b, component.SFXComponent.Kind(), &component.SFX{Requests: []string{"land", "toggle"}})

	var played []string
	sys := NewAudioSystem(func(name string) { played = append(played, name) })
	sys.Update(w)

	if len(played) != 3 {
		t.Fatalf("expected each clip once per tick, got %v", played)
	}
	if n := len(get(t, w, a, component.SFXComponent.Kind()).Requests); n != 0 {
		t.Fatalf("requests must be drained, %d left", n)
	}

	sys.SetMuted(true)
	get(t, w, a, component.SFXComponent.Kind()).Play("jump")
	sys.Update(w)
	if len(played) != 3 {
		t.Fatalf("muted system must not play, got %v", played)
	}
	if n := len(get(t, w, a, component.SFXComponent.Kind()).Requests); n != 0 {
		t.Fatalf("muted system still drains requests, %d left", n)
	}
}

func TestSFXPlayNilSafe(t *testing.T) {
	var sfx *component.SFX
	sfx.Play("jump")
	s := &component.SFX{}
	s.Play("")
	if len(s.Requests) != 0 {
		t.Fatalf("empty names are ignored")
	}
}
