package system

import (
	"slices"
	"sync"

	"go.uber.org/zap"

	"github.com/neonland/sim/internal/component"
	"github.com/neonland/sim/internal/core/ecs"
	"github.com/neonland/sim/internal/core/event"
	coresys "github.com/neonland/sim/internal/core/system"
	"github.com/neonland/sim/internal/world"
)

// DeathSystem consumes everything whose HP fell below zero.
// Phase 5 (Death).
//
// The player is never destroyed: its death only raises the game-over flag.
// Every other dead entity is queued for destruction. Candidates are gathered
// in parallel and committed in entity order so events come out the same on
// every run.
type DeathSystem struct {
	world *world.State
	bus   *event.Bus
	log   *zap.Logger

	mu   sync.Mutex
	dead []ecs.EntityID
}

func NewDeathSystem(ws *world.State, bus *event.Bus, log *zap.Logger) *DeathSystem {
	return &DeathSystem{world: ws, bus: bus, log: log}
}

func (s *DeathSystem) Phase() coresys.Phase { return coresys.PhaseDeath }

func (s *DeathSystem) Update(now float64) {
	ws := s.world
	player := ws.Player

	s.dead = s.dead[:0]
	ws.Living.UpdateParallel(func(id ecs.EntityID, hp *component.HP) {
		if hp.Current >= 0 || id == player {
			return
		}
		s.mu.Lock()
		s.dead = append(s.dead, id)
		s.mu.Unlock()
	})

	slices.Sort(s.dead)
	for _, id := range s.dead {
		ws.World.DestroyEntity(id)
		event.Emit(s.bus, event.EnemyKilled{Enemy: id, Time: now})
	}

	if !ws.GameOver && ws.PlayerHP() < 0 {
		ws.GameOver = true
		event.Emit(s.bus, event.GameOver{Time: now})
		s.log.Info("game over", zap.Float64("time", now))
	}
}
