package system

import (
	"testing"

	"github.com/dummyworks/crashtestescape/ecs"
	"github.com/dummyworks/crashtestescape/ecs/component"
	"github.com/jakecoffman/cp"
)

func TestPlayerAnimationPriority(t *testing.T) {
	ground := component.GroundCheck{Grounded: true}
	air := component.GroundCheck{}

	tests := []struct {
		name string
		h    component.Health
		m    component.PlayerMotor
		gc   component.GroundCheck
		in   component.Input
		vel  cp.Vector
		want string
	}{
		{name: "dead_beats_everything", h: component.Health{}, m: component.PlayerMotor{Crushed: true, Shoving: true}, gc: ground, want: "dead"},
		{name: "crushed_beats_shove", h: component.Health{Alive: true}, m: component.PlayerMotor{Crushed: true, Shoving: true}, gc: ground, want: "crushed"},
		{name: "shove_beats_crouch", h: component.Health{Alive: true}, m: component.PlayerMotor{Shoving: true, Crouching: true}, gc: ground, want: "shove"},
		{name: "crouch", h: component.Health{Alive: true}, m: component.PlayerMotor{Crouching: true}, gc: ground, want: "crouch"},
		{name: "crouch_walk", h: component.Health{Alive: true}, m: component.PlayerMotor{Crouching: true}, gc: ground, in: component.Input{MoveX: 1}, want: "crouch_walk"},
		{name: "jump", h: component.Health{Alive: true}, m: component.PlayerMotor{Jumping: true}, gc: air, vel: cp.Vector{Y: -3}, want: "jump"},
		{name: "fall_after_apex", h: component.Health{Alive: true}, m: component.PlayerMotor{Jumping: true}, gc: air, vel: cp.Vector{Y: 2}, want: "fall"},
		{name: "fall_without_jump", h: component.Health{Alive: true}, gc: air, vel: cp.Vector{Y: -1}, want: "fall"},
		{name: "run", h: component.Health{Alive: true}, gc: ground, in: component.Input{MoveX: -1}, want: "run"},
		{name: "idle", h: component.Health{Alive: true}, gc: ground, want: "idle"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := playerAnimation(&tc.h, &tc.m, &tc.gc, &tc.in, tc.vel); got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func testAnimation() *component.Animation {
	return &component.Animation{
		Defs: map[string]component.AnimationDef{
			"idle": {Name: "idle", FrameCount: 2, FrameW: 8, FrameH: 8, FPS: 30, Loop: true},
			"dead": {Name: "dead", FrameCount: 2, FrameW: 8, FrameH: 8, FPS: 60},
		},
		Current: "idle",
		Playing: true,
	}
}

func TestAdvanceAnimation(t *testing.T) {
	anim := testAnimation()
	def := anim.Defs["idle"]
	for i := 0; i < 4; i++ {
		advanceAnimation(anim, def)
	}
	if anim.Frame != 0 {
		t.Fatalf("looping clip should wrap to frame 0, got %d", anim.Frame)
	}

	SetAnimation(anim, "dead")
	def = anim.Defs["dead"]
	for i := 0; i < 5; i++ {
		advanceAnimation(anim, def)
	}
	if !anim.Finished || anim.Playing || anim.Frame != 1 {
		t.Fatalf("one-shot clip should hold its last frame, got frame=%d finished=%v", anim.Frame, anim.Finished)
	}
}

func TestSetAnimation(t *testing.T) {
	anim := testAnimation()
	anim.Frame = 1
	SetAnimation(anim, "idle")
	if anim.Frame != 1 {
		t.Fatalf("re-selecting the current clip must not restart it")
	}
	SetAnimation(anim, "missing")
	if anim.Current != "idle" {
		t.Fatalf("unknown clips are ignored, got %q", anim.Current)
	}
	SetAnimation(anim, "dead")
	if anim.Current != "dead" || anim.Frame != 0 {
		t.Fatalf("expected a restart on clip change")
	}
}

func TestPlayerAnimationSystemSquashesCrushed(t *testing.T) {
	w := ecs.NewWorld()
	p := testPlayer(t, w, 0, 0)
	anim := testAnimation()
	anim.Defs["crushed"] = component.AnimationDef{Name: "crushed", FrameCount: 1, FrameW: 8, FrameH: 8}
	mustAdd(t, w, p, component.AnimationComponent.Kind(), anim)
	get(t, w, p, component.PlayerMotorComponent.Kind()).Crushed = true

	NewPlayerAnimationSystem().Update(w)

	if anim.Current != "crushed" {
		t.Fatalf("expected crushed clip, got %q", anim.Current)
	}
	if s := get(t, w, p, component.SpriteComponent.Kind()); s.SquashY != crushedSquash {
		t.Fatalf("expected squash %v, got %v", crushedSquash, s.SquashY)
	}
}
