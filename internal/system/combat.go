package system

import (
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/neonland/sim/internal/component"
	"github.com/neonland/sim/internal/core/ecs"
	"github.com/neonland/sim/internal/core/event"
	coresys "github.com/neonland/sim/internal/core/system"
	"github.com/neonland/sim/internal/world"
)

// ContactSystem lets every ready enemy touching the player hit it.
// Phase 3 (Contact).
//
// Enemies are checked in parallel. Each writes only its own cooldown; the
// damage is summed atomically and committed to the player once, after the
// pass, so the total is exact however the pass is split.
type ContactSystem struct {
	world *world.State
	bus   *event.Bus
	log   *zap.Logger
}

func NewContactSystem(ws *world.State, bus *event.Bus, log *zap.Logger) *ContactSystem {
	return &ContactSystem{world: ws, bus: bus, log: log}
}

func (s *ContactSystem) Phase() coresys.Phase { return coresys.PhaseContact }

func (s *ContactSystem) Update(now float64) {
	ws := s.world
	ptf := ws.Transform.MustGet(ws.Player)
	pph := ws.Physics.MustGet(ws.Player)

	var total atomic.Int64
	ws.Enemies.UpdateParallel(func(_ ecs.EntityID, tf *component.Transform, ph *component.Physics, en *component.Enemy) {
		if !en.Ready(now) || !component.Overlapping(ph, pph, tf, ptf) {
			return
		}
		total.Add(int64(en.AttackDamage))
		en.CooldownEnd = now + en.AttackCooldown
	})

	dmg := int32(total.Load())
	if dmg == 0 {
		return
	}
	hp := ws.HP.MustGet(ws.Player)
	hp.Current -= dmg
	event.Emit(s.bus, event.PlayerDamaged{Amount: dmg, HP: hp.Current, Time: now})
	s.log.Debug("player hit", zap.Int32("damage", dmg), zap.Int32("hp", hp.Current))
}

// ProjectileSystem applies projectile hits and retires spent projectiles.
// Phase 4 (Projectile).
//
// Projectiles are processed one at a time; the enemies a projectile overlaps
// are found in parallel and each takes the projectile's damage. A projectile
// is destroyed once, when it hit anything or its lifetime ran out.
type ProjectileSystem struct {
	world *world.State
}

func NewProjectileSystem(ws *world.State) *ProjectileSystem {
	return &ProjectileSystem{world: ws}
}

func (s *ProjectileSystem) Phase() coresys.Phase { return coresys.PhaseProjectile }

func (s *ProjectileSystem) Update(now float64) {
	ws := s.world
	ws.Projectiles.Update(func(id ecs.EntityID, ptf *component.Transform, pph *component.Physics, proj *component.PlayerProjectile) {
		var hit atomic.Bool
		damage := proj.Damage
		ws.Targets.UpdateParallel(func(_ ecs.EntityID, tf *component.Transform, ph *component.Physics, _ *component.Enemy, hp *component.HP) {
			if component.Overlapping(pph, ph, ptf, tf) {
				hp.Current -= damage
				hit.Store(true)
			}
		})
		if hit.Load() || proj.Expired(now) {
			ws.World.DestroyEntity(id)
		}
	})
}
