package system

import (
	"github.com/dummyworks/crashtestescape/common"
	"github.com/dummyworks/crashtestescape/ecs"
	"github.com/dummyworks/crashtestescape/ecs/component"
)

type CameraSystem struct{}

func NewCameraSystem() *CameraSystem {
	return &CameraSystem{}
}

// Update eases the camera toward its target and keeps the view inside the
// level. Camera.X/Y is the top-left corner of the view in world space.
func (cs *CameraSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	camEntity, ok := ecs.First(w, component.CameraComponent.Kind())
	if !ok {
		return
	}
	cam, _ := ecs.Get(w, camEntity, component.CameraComponent.Kind())
	if cam.ViewW <= 0 {
		cam.ViewW = common.BaseWidth
	}
	if cam.ViewH <= 0 {
		cam.ViewH = common.BaseHeight
	}

	target, ok := cameraTarget(w, cam.Target)
	if !ok {
		return
	}
	tt, ok := ecs.Get(w, target, component.TransformComponent.Kind())
	if !ok {
		return
	}

	var bounds *component.LevelBounds
	if be, ok := ecs.First(w, component.LevelBoundsComponent.Kind()); ok {
		bounds, _ = ecs.Get(w, be, component.LevelBoundsComponent.Kind())
	}
	goalX, goalY := cameraGoal(tt.X, tt.Y, cam.ViewW, cam.ViewH, bounds)

	if cam.Snap || cam.Smoothness <= 0 || cam.Smoothness >= 1 {
		cam.X, cam.Y = goalX, goalY
		cam.Snap = false
	} else {
		cam.X = common.Lerp(cam.X, goalX, cam.Smoothness)
		cam.Y = common.Lerp(cam.Y, goalY, cam.Smoothness)
	}

	if t, ok := ecs.Get(w, camEntity, component.TransformComponent.Kind()); ok {
		t.X, t.Y = cam.X, cam.Y
	}
}

func cameraTarget(w *ecs.World, name string) (ecs.Entity, bool) {
	if name == "" || name == "player" {
		return ecs.First(w, component.PlayerTagComponent.Kind())
	}
	var found ecs.Entity
	ecs.ForEach(w, component.NamedComponent.Kind(), func(e ecs.Entity, n *component.Named) {
		if !found.Valid() && n.Name == name {
			found = e
		}
	})
	return found, found.Valid()
}

// cameraGoal centres the view on (x, y). On an axis where the level is
// smaller than the view, the level is centred instead.
func cameraGoal(x, y, viewW, viewH float64, bounds *component.LevelBounds) (float64, float64) {
	gx := x - viewW/2
	gy := y - viewH/2
	if bounds == nil {
		return gx, gy
	}
	if bounds.Width <= viewW {
		gx = (bounds.Width - viewW) / 2
	} else {
		gx = common.Clamp(gx, 0, bounds.Width-viewW)
	}
	if bounds.Height <= viewH {
		gy = (bounds.Height - viewH) / 2
	} else {
		gy = common.Clamp(gy, 0, bounds.Height-viewH)
	}
	return gx, gy
}

// cameraOffset returns the world position of the view's top-left corner.
func cameraOffset(w *ecs.World) (float64, float64) {
	camEntity, ok := ecs.First(w, component.CameraComponent.Kind())
	if !ok {
		return 0, 0
	}
	cam, _ := ecs.Get(w, camEntity, component.CameraComponent.Kind())
	return cam.X, cam.Y
}
