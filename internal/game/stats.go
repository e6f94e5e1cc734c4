package game

import (
	"go.uber.org/zap"

	"github.com/neonland/sim/internal/core/event"
)

// Stats are running totals for the session, updated as events are dispatched.
type Stats struct {
	Ticks       uint64
	Frames      uint64
	Shots       int
	Kills       int
	DamageTaken int32
	GameOverAt  float64 // zero until game over
}

func (s *Session) subscribe() {
	event.Subscribe(s.bus, func(event.ShotFired) {
		s.stats.Shots++
	})
	event.Subscribe(s.bus, func(event.EnemyKilled) {
		s.stats.Kills++
	})
	event.Subscribe(s.bus, func(e event.PlayerDamaged) {
		s.stats.DamageTaken += e.Amount
	})
	event.Subscribe(s.bus, func(e event.GameOver) {
		s.stats.GameOverAt = e.Time
		s.log.Info("player died",
			zap.Float64("time", e.Time),
			zap.Int("kills", s.stats.Kills),
			zap.Int("shots", s.stats.Shots),
		)
	})
}
