package component

// Invulnerable marks an entity as temporarily immune to damage.
// The hazard system counts Frames down and removes the component at zero.
type Invulnerable struct {
	Frames int
}

var InvulnerableComponent = NewComponent[Invulnerable]()
