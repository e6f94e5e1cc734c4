package system

// Phase defines execution ordering within a single simulation tick. Later
// phases read the state committed by earlier ones, so the order is fixed.
type Phase int

const (
	PhaseIntegrate  Phase = iota // 0: advance physics
	PhaseConstrain               // 1: clamp the player to the arena
	PhaseFire                    // 2: spawn player projectiles
	PhaseContact                 // 3: enemy contact damage to the player
	PhaseProjectile              // 4: projectile hits on enemies
	PhaseDeath                   // 5: game over / enemy removal
	PhaseCleanup                 // 6: destroy queued entities
)

var phaseNames = [...]string{"integrate", "constrain", "fire", "contact", "projectile", "death", "cleanup"}

func (p Phase) String() string {
	if p < 0 || int(p) >= len(phaseNames) {
		return "unknown"
	}
	return phaseNames[p]
}

// System is the interface every tick system implements. now is the absolute
// game-clock time of the tick in seconds.
type System interface {
	Phase() Phase
	Update(now float64)
}
