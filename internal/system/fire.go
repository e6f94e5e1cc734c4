package system

import (
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/neonland/sim/internal/core/event"
	coresys "github.com/neonland/sim/internal/core/system"
	"github.com/neonland/sim/internal/mathx"
	"github.com/neonland/sim/internal/scripting"
	"github.com/neonland/sim/internal/world"
)

// FireSystem spawns a volley from the selected weapon while the mouse is held
// and the shot cooldown has elapsed. Phase 2 (Fire).
//
// Projectiles leave muzzle units ahead of the player along the aim direction,
// which runs from the player's rendered position to the crosshair. Volleys of
// more than one projectile fan out evenly across the weapon's spread.
type FireSystem struct {
	world  *world.State
	bus    *event.Bus
	lua    *scripting.Engine // optional
	log    *zap.Logger
	muzzle float32
}

func NewFireSystem(ws *world.State, bus *event.Bus, lua *scripting.Engine, log *zap.Logger, muzzle float32) *FireSystem {
	return &FireSystem{world: ws, bus: bus, lua: lua, log: log, muzzle: muzzle}
}

func (s *FireSystem) Phase() coresys.Phase { return coresys.PhaseFire }

func (s *FireSystem) Update(now float64) {
	ws := s.world
	if !ws.Input.MouseDown || ws.ShotCooldownEnd >= now {
		return
	}
	w := ws.Weapon()
	if w == nil {
		return
	}

	origin := ws.Transform.MustGet(ws.Player).Position
	aim := ws.Transform.MustGet(ws.Crosshair).Position
	dir := mathx.Normalize3(aim.Sub(origin))

	n := w.Projectiles()
	for i := 0; i < n; i++ {
		d := spreadDir(dir, w.Spread, i, n)
		damage := w.Damage
		if s.lua != nil {
			damage = s.lua.CalcShotDamage(scripting.ShotContext{
				Weapon:     w.Name,
				Slot:       ws.WeaponSlot,
				BaseDamage: w.Damage,
				Volley:     i,
				Time:       now,
			})
		}
		id := ws.SpawnProjectile(
			origin.Add(d.Mul(s.muzzle)),
			mathx.HeadingDeg(d),
			d.Mul(w.ProjectileSpeed),
			damage,
			now+w.Lifetime,
		)
		event.Emit(s.bus, event.ShotFired{Projectile: id, Weapon: w.Name, Time: now})
	}
	ws.ShotCooldownEnd = now + w.Cooldown

	if ce := s.log.Check(zap.DebugLevel, "volley fired"); ce != nil {
		ce.Write(zap.String("weapon", w.Name), zap.Int("projectiles", n), zap.Float64("time", now))
	}
}

// spreadDir rotates dir around Z to the i-th of n evenly spaced angles
// across a fan of spread degrees centred on dir.
func spreadDir(dir mgl32.Vec3, spread float32, i, n int) mgl32.Vec3 {
	if n < 2 || spread == 0 {
		return dir
	}
	offset := spread * (float32(i)/float32(n-1) - 0.5)
	return mgl32.Rotate3DZ(mgl32.DegToRad(offset)).Mul3x1(dir)
}
