package entity

import (
	"fmt"

	"github.com/dummyworks/crashtestescape/ecs"
)

func NewPlayer(w *ecs.World) (ecs.Entity, error) {
	return BuildEntity(w, "player.yaml")
}

func NewPlayerAt(w *ecs.World, x, y float64) (ecs.Entity, error) {
	entity, err := SpawnPrefab(w, "player.yaml", x, y)
	if err != nil {
		return 0, fmt.Errorf("player: %w", err)
	}
	return entity, nil
}
