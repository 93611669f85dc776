package component

// DamageKnockback asks the knockback system to push the entity away from
// SourceX/SourceY. The request is consumed on the next tick.
type DamageKnockback struct {
	SourceX  float64
	SourceY  float64
	ImpulseX float64
	ImpulseY float64
}

var DamageKnockbackRequestComponent = NewComponent[DamageKnockback]()
