package component

// HP may go negative; the death sweep consumes anything below zero.
type HP struct {
	Current int32
}

// Enemy carries contact-attack tuning and the earliest time of the next hit.
type Enemy struct {
	AttackDamage   int32
	AttackCooldown float64
	CooldownEnd    float64
}

// Ready reports whether the enemy may hit again at now.
func (e *Enemy) Ready(now float64) bool { return e.CooldownEnd < now }

// PlayerProjectile lives until it hits an enemy or DespawnTime passes.
type PlayerProjectile struct {
	Damage      int32
	DespawnTime float64
}

func (p *PlayerProjectile) Expired(now float64) bool { return p.DespawnTime < now }
