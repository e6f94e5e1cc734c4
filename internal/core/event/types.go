package event

import "github.com/neonland/sim/internal/core/ecs"

// ShotFired is emitted once per projectile spawned by the player.
type ShotFired struct {
	Projectile ecs.EntityID
	Weapon     string
	Time       float64
}

// PlayerDamaged carries the contact damage committed in one tick.
type PlayerDamaged struct {
	Amount int32
	HP     int32
	Time   float64
}

type EnemyKilled struct {
	Enemy ecs.EntityID
	Time  float64
}

// GameOver is emitted once, on the tick the player's HP first drops below zero.
type GameOver struct {
	Time float64
}
