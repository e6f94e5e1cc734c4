package world

import (
	"math"
	"math/rand"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/neonland/sim/internal/component"
	"github.com/neonland/sim/internal/config"
	"github.com/neonland/sim/internal/core/ecs"
	"github.com/neonland/sim/internal/scripting"
)

// Enemy bodies are unit squares; the grid pitch is one body plus the gap.
const enemySize = 1

var (
	planeRotation      = mgl32.Vec3{0, -90, 0}
	projectileScale    = mgl32.Vec3{1, 0.25, 0.25}
	defaultEnemyScale  = mgl32.Vec3{enemySize, enemySize, enemySize}
	defaultPlayerScale = mgl32.Vec3{1, 1, 1}
)

// Populate spawns the arena content: the map plane, the player, the camera,
// the crosshair and the enemy grid. scripts may be nil.
func (s *State) Populate(cfg *config.Config, scripts *scripting.Engine, rng *rand.Rand) {
	s.MapSize = mgl32.Vec2{cfg.Arena.Width, cfg.Arena.Height}
	s.CameraDistance = cfg.Arena.CameraDistance

	s.World.CreateEntity(
		s.Transform.With(component.NewTransform(mgl32.Vec3{}, planeRotation, mgl32.Vec3{1, s.MapSize[1], s.MapSize[0]})),
		s.Mesh.With(component.NewMesh(component.MeshPlane)),
	)

	playerTf := component.NewTransform(mgl32.Vec3{}, mgl32.Vec3{}, defaultPlayerScale)
	s.Player = s.World.CreateEntity(
		s.Physics.With(component.NewPhysics(playerTf, mgl32.Vec3{})),
		s.Transform.With(playerTf),
		s.Mesh.With(component.NewMesh(component.MeshPlayer)),
		s.HP.With(component.HP{Current: cfg.Player.HP}),
	)

	cam := component.NewCamera()
	cam.FarClip = cfg.Arena.FarClip
	cam.FieldOfView = cfg.Arena.FieldOfView
	cam.Position = mgl32.Vec3{0, 0, -s.CameraDistance}
	s.Cam = s.World.CreateEntity(s.Camera.With(cam))

	s.Crosshair = s.World.CreateEntity(
		s.Transform.With(component.DefaultTransform()),
		s.Mesh.With(component.NewMesh(component.MeshCrosshair)),
	)

	s.spawnEnemyGrid(cfg, scripts, rng)
}

// spawnEnemyGrid lays out floor(sqrt(count))² enemies on a square grid
// centred on the origin.
func (s *State) spawnEnemyGrid(cfg *config.Config, scripts *scripting.Engine, rng *rand.Rand) {
	side := int(math.Sqrt(float64(cfg.Enemies.Count)))
	if side == 0 {
		return
	}
	pitch := enemySize + cfg.Enemies.Gap
	extent := float32(side-1) * pitch

	index := 0
	for col := 0; col < side; col++ {
		for row := 0; row < side; row++ {
			pos := mgl32.Vec3{float32(col)*pitch - extent/2, float32(row)*pitch - extent/2, 0}
			roll := rng.Float32()*2 - 1
			stats := scripting.EnemyStats{
				HP:             cfg.Enemies.HP,
				AttackDamage:   cfg.Enemies.AttackDamage,
				AttackCooldown: cfg.Enemies.AttackCooldown,
				Spin:           cfg.Enemies.MaxSpin * roll,
			}
			if scripts != nil {
				stats = scripts.CalcEnemyStats(scripting.EnemyContext{
					Index:  index,
					Column: col,
					Row:    row,
					X:      pos[0],
					Y:      pos[1],
					Roll:   roll,
				}, stats)
			}
			s.SpawnEnemy(pos, stats)
			index++
		}
	}
}

// SpawnEnemy creates one enemy at pos spinning around Z at stats.Spin.
func (s *State) SpawnEnemy(pos mgl32.Vec3, stats scripting.EnemyStats) ecs.EntityID {
	tf := component.NewTransform(pos, mgl32.Vec3{}, defaultEnemyScale)
	ph := component.NewPhysics(tf, mgl32.Vec3{})
	ph.AngularVelocity[2] = stats.Spin
	return s.World.CreateEntity(
		s.Physics.With(ph),
		s.Transform.With(tf),
		s.Mesh.With(component.NewMesh(component.MeshEnemy)),
		s.Enemy.With(component.Enemy{
			AttackDamage:   stats.AttackDamage,
			AttackCooldown: stats.AttackCooldown,
		}),
		s.HP.With(component.HP{Current: stats.HP}),
	)
}

// SpawnProjectile creates a player projectile at pos facing headingDeg and
// moving with velocity.
func (s *State) SpawnProjectile(pos mgl32.Vec3, headingDeg float32, velocity mgl32.Vec3, damage int32, despawn float64) ecs.EntityID {
	tf := component.NewTransform(pos, mgl32.Vec3{0, 0, headingDeg}, projectileScale)
	return s.World.CreateEntity(
		s.Physics.With(component.NewPhysics(tf, velocity)),
		s.Transform.With(tf),
		s.Mesh.With(component.NewMesh(component.MeshProjectile)),
		s.Projectile.With(component.PlayerProjectile{Damage: damage, DespawnTime: despawn}),
	)
}
