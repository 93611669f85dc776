package component

// Conveyor is a belt that runs and stops on a timer. Speed is signed, in
// pixels per tick. Spawn* fields configure the optional object spawner.
type Conveyor struct {
	Active          bool
	ToggleFrames    int
	MovementDelay   int
	Speed           float64
	StoppedFriction float64
	Width           float64
	Height          float64
	Cycle           int

	SpawnPrefab   string
	SpawnInterval int
	SpawnFrames   int
	SpawnOffsetX  float64
	SpawnOffsetY  float64
}

var ConveyorComponent = NewComponent[Conveyor]()
