package component

// Health tracks hit points and the respawn bookkeeping of the player.
// Checkpoint is the active checkpoint entity, 0 before any is reached.
type Health struct {
	Max             int
	Current         int
	Alive           bool
	KnockbackFrames int
	Checkpoint      uint64
	DeathFrames     int
	RespawnDelay    int
	InitialX        float64
	InitialY        float64
	Deaths          int
}

var HealthComponent = NewComponent[Health]()
