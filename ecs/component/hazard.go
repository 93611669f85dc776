package component

// Hazard damages the player on overlap. Bounds are centred on the Transform
// and shifted by the offsets.
type Hazard struct {
	Damage             int
	Width              float64
	Height             float64
	OffsetX            float64
	OffsetY            float64
	KnockbackX         float64
	KnockbackY         float64
	KnockbackLock      int
	InvulnerableFrames int
}

var HazardComponent = NewComponent[Hazard]()
