package component

// ConveyorRider is an inanimate object that stops dead when its belt stops.
type ConveyorRider struct {
	Belt    uint64
	Spawned bool
}

var ConveyorRiderComponent = NewComponent[ConveyorRider]()
