package system

import (
	"go.uber.org/zap"

	"github.com/neonland/sim/internal/core/ecs"
	coresys "github.com/neonland/sim/internal/core/system"
)

// CleanupSystem flushes the deferred entity destruction queue at tick end.
// Phase 6 (Cleanup).
type CleanupSystem struct {
	world *ecs.World
	log   *zap.Logger
}

func NewCleanupSystem(world *ecs.World, log *zap.Logger) *CleanupSystem {
	return &CleanupSystem{world: world, log: log}
}

func (s *CleanupSystem) Phase() coresys.Phase { return coresys.PhaseCleanup }

func (s *CleanupSystem) Update(now float64) {
	if n := s.world.Flush(); n > 0 {
		s.log.Debug("entities destroyed", zap.Int("count", n), zap.Float64("time", now))
	}
}
