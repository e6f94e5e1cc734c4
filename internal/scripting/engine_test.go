package scripting

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var defStats = EnemyStats{HP: 2, AttackDamage: 1, AttackCooldown: 1, Spin: 30}

func TestNoHooksKeepDefaults(t *testing.T) {
	e, err := NewEngineFromSource("", zap.NewNop())
	require.NoError(t, err)
	defer e.Close()

	require.Equal(t, defStats, e.CalcEnemyStats(EnemyContext{}, defStats))
	require.Equal(t, int32(3), e.CalcShotDamage(ShotContext{BaseDamage: 3}))
}

func TestEnemyStatsHook(t *testing.T) {
	src := `
function enemy_stats(ctx, def)
  if ctx.row == 0 then
    return { hp = def.hp * 5, spin = def.spin * ctx.roll }
  end
  return def
end
`
	e, err := NewEngineFromSource(src, zap.NewNop())
	require.NoError(t, err)
	defer e.Close()

	got := e.CalcEnemyStats(EnemyContext{Row: 0, Roll: -0.5}, defStats)
	require.Equal(t, int32(10), got.HP)
	require.Equal(t, float32(-15), got.Spin)
	require.Equal(t, int32(1), got.AttackDamage)
	require.Equal(t, 1.0, got.AttackCooldown)

	require.Equal(t, defStats, e.CalcEnemyStats(EnemyContext{Row: 3}, defStats))
}

func TestShotDamageHook(t *testing.T) {
	src := `
function shot_damage(ctx)
  if ctx.weapon == "rail" then return ctx.base_damage * 4 end
  if ctx.weapon == "broken" then return "oops" end
  return ctx.base_damage
end
`
	e, err := NewEngineFromSource(src, zap.NewNop())
	require.NoError(t, err)
	defer e.Close()

	require.Equal(t, int32(8), e.CalcShotDamage(ShotContext{Weapon: "rail", BaseDamage: 2}))
	require.Equal(t, int32(2), e.CalcShotDamage(ShotContext{Weapon: "blaster", BaseDamage: 2}))
	require.Equal(t, int32(2), e.CalcShotDamage(ShotContext{Weapon: "broken", BaseDamage: 2}))
}

func TestScriptErrorKeepsDefaults(t *testing.T) {
	e, err := NewEngineFromSource(`function enemy_stats(ctx, def) error("boom") end`, zap.NewNop())
	require.NoError(t, err)
	defer e.Close()
	require.Equal(t, defStats, e.CalcEnemyStats(EnemyContext{}, defStats))
}

func TestNewEngineLoadsDirectories(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "weapon"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "weapon", "damage.lua"),
		[]byte("function shot_damage(ctx) return 7 end"), 0o644))

	e, err := NewEngine(dir, zap.NewNop())
	require.NoError(t, err)
	defer e.Close()
	require.Equal(t, int32(7), e.CalcShotDamage(ShotContext{BaseDamage: 1}))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "weapon", "bad.lua"), []byte("this is not lua"), 0o644))
	_, err = NewEngine(dir, zap.NewNop())
	require.ErrorContains(t, err, "load weapon scripts")
}

func TestNewEngineFromSourceSyntaxError(t *testing.T) {
	_, err := NewEngineFromSource("function (", zap.NewNop())
	require.Error(t, err)
}
