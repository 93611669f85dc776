package entity

import (
	"fmt"

	"github.com/dummyworks/crashtestescape/ecs"
)

func NewCamera(w *ecs.World) (ecs.Entity, error) {
	camera, err := BuildEntity(w, "camera.yaml")
	if err != nil {
		return 0, fmt.Errorf("camera: %w", err)
	}
	return camera, nil
}
