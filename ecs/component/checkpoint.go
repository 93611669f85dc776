package component

// Checkpoint is a respawn anchor. The trigger box is centred on the
// Transform; SpawnX/SpawnY are where the player reappears and sit
// SpawnOffsetX/SpawnOffsetY away from the checkpoint once it is placed.
type Checkpoint struct {
	Active       bool
	Width        float64
	Height       float64
	SpawnX       float64
	SpawnY       float64
	SpawnOffsetX float64
	SpawnOffsetY float64
}

var CheckpointComponent = NewComponent[Checkpoint]()
