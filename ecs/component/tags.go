package component

type PlayerTag struct{}

var PlayerTagComponent = NewComponent[PlayerTag]()

type CameraTag struct{}

var CameraTagComponent = NewComponent[CameraTag]()

type SpawnPointTag struct{}

var SpawnPointTagComponent = NewComponent[SpawnPointTag]()

// Named carries the level-authored id used to link entities (detector ->
// piston) and to persist checkpoints.
type Named struct {
	Name string
}

var NamedComponent = NewComponent[Named]()
