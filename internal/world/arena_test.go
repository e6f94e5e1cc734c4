package world

import (
	"math/rand"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/neonland/sim/internal/component"
	"github.com/neonland/sim/internal/config"
	"github.com/neonland/sim/internal/core/ecs"
	"github.com/neonland/sim/internal/data"
	"github.com/neonland/sim/internal/scripting"
)

func populated(t *testing.T, enemies int, scripts *scripting.Engine) *State {
	t.Helper()
	cfg := config.Defaults()
	cfg.Enemies.Count = enemies
	s := NewState(128, 2, data.DefaultWeaponTable(1, 0.1, 20, 1))
	s.Populate(cfg, scripts, rand.New(rand.NewSource(42)))
	return s
}

func TestPopulateSpawnsArena(t *testing.T) {
	s := populated(t, 10, nil)

	// floor(sqrt(10))² enemies.
	require.Equal(t, 9, s.Enemies.Len())
	require.Equal(t, mgl32.Vec2{20, 20}, s.MapSize)
	require.Equal(t, int32(100), s.PlayerHP())
	require.Equal(t, mgl32.Vec3{0, 0, -20}, s.ActiveCamera().Position)
	require.Equal(t, float32(200), s.ActiveCamera().FarClip)
	require.True(t, s.Physics.Has(s.Player))
	require.False(t, s.Physics.Has(s.Crosshair))

	counts := make([]int, component.MeshTypeCount)
	s.Mesh.Each(func(_ ecs.EntityID, m *component.Mesh) { counts[m.Type]++ })
	require.Equal(t, []int{1, 1, 9, 0, 1}, counts)
}

func TestEnemyGridIsCentred(t *testing.T) {
	s := populated(t, 9, nil)

	var sum mgl32.Vec3
	var xs []float32
	s.Enemies.Update(func(_ ecs.EntityID, tf *component.Transform, ph *component.Physics, en *component.Enemy) {
		sum = sum.Add(tf.Position)
		xs = append(xs, tf.Position[0])
		require.LessOrEqual(t, ph.AngularVelocity[2], float32(30))
		require.GreaterOrEqual(t, ph.AngularVelocity[2], float32(-30))
		require.Equal(t, int32(1), en.AttackDamage)
	})
	require.InDelta(t, 0, sum[0], 1e-4)
	require.InDelta(t, 0, sum[1], 1e-4)
	require.ElementsMatch(t, []float32{-3, -3, -3, 0, 0, 0, 3, 3, 3}, xs)
}

func TestPopulateUsesScriptedEnemyStats(t *testing.T) {
	lua, err := scripting.NewEngineFromSource(`
function enemy_stats(ctx, def)
  if ctx.row == 0 then
    return { hp = def.hp * 10, spin = 0 }
  end
  return def
end
`, zap.NewNop())
	require.NoError(t, err)
	defer lua.Close()

	s := populated(t, 4, lua)
	tough := 0
	s.Targets.Update(func(_ ecs.EntityID, _ *component.Transform, ph *component.Physics, _ *component.Enemy, hp *component.HP) {
		if hp.Current == 20 {
			tough++
			require.Zero(t, ph.AngularVelocity[2])
		} else {
			require.Equal(t, int32(2), hp.Current)
		}
	})
	require.Equal(t, 2, tough)
}

func TestSpawnProjectile(t *testing.T) {
	s := populated(t, 0, nil)
	id := s.SpawnProjectile(mgl32.Vec3{1, 2, 0}, 45, mgl32.Vec3{3, 0, 0}, 7, 9)

	require.Equal(t, []ecs.EntityID{id}, s.Projectiles.Entities())
	tf := s.Transform.MustGet(id)
	require.Equal(t, mgl32.Vec3{0, 0, 45}, tf.Rotation)
	require.Equal(t, mgl32.Vec3{1, 0.25, 0.25}, tf.Scale)
	require.Equal(t, mgl32.Vec3{3, 0, 0}, s.Physics.MustGet(id).Velocity)
	require.Equal(t, component.PlayerProjectile{Damage: 7, DespawnTime: 9}, *s.Projectile.MustGet(id))
	require.Equal(t, component.MeshProjectile, s.Mesh.MustGet(id).Type)
}

func TestSelectWeapon(t *testing.T) {
	s := populated(t, 0, nil)
	require.Equal(t, "blaster", s.Weapon().Name)
	require.False(t, s.SelectWeapon(4))
	require.False(t, s.SelectWeapon(-1))
	require.Equal(t, 0, s.WeaponSlot)
}
