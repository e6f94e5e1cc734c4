package world

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/neonland/sim/internal/component"
	"github.com/neonland/sim/internal/core/ecs"
	"github.com/neonland/sim/internal/data"
)

// Stores holds one component store per component type of the session.
type Stores struct {
	Transform  *ecs.Store[component.Transform]
	Physics    *ecs.Store[component.Physics]
	Mesh       *ecs.Store[component.Mesh]
	HP         *ecs.Store[component.HP]
	Enemy      *ecs.Store[component.Enemy]
	Projectile *ecs.Store[component.PlayerProjectile]
	Camera     *ecs.Store[component.Camera]
}

// Groups are the views the tick systems and late render iterate. They are
// built once and recompute membership on every traversal.
type Groups struct {
	Bodies      *ecs.Group2[component.Transform, component.Physics]
	Enemies     *ecs.Group3[component.Transform, component.Physics, component.Enemy]
	Targets     *ecs.Group4[component.Transform, component.Physics, component.Enemy, component.HP]
	Projectiles *ecs.Group3[component.Transform, component.Physics, component.PlayerProjectile]
	Living      *ecs.Group1[component.HP]
	Drawables   *ecs.Group2[component.Transform, component.Mesh]
}

// Input is the per-frame control state written by the frontend.
type Input struct {
	MousePos     mgl32.Vec2 // screen space, clamped to [-1,1]
	PrevMousePos mgl32.Vec2
	MouseDelta   mgl32.Vec2
	MouseDown    bool
	Direction    mgl32.Vec2 // unit length or zero
	MoveDir      mgl32.Vec3 // accumulated since the last tick
}

// State is everything one arena session simulates.
// Single-goroutine access only (the session driver); parallel group passes
// inside a tick touch only the entity they visit.
type State struct {
	World *ecs.World
	Stores
	Groups

	Player    ecs.EntityID
	Cam       ecs.EntityID
	Crosshair ecs.EntityID

	MapSize        mgl32.Vec2
	CameraDistance float32

	Input Input

	Weapons         *data.WeaponTable
	WeaponSlot      int
	ShotCooldownEnd float64

	GameOver bool
}

// NewState creates an empty world with every store and group registered.
// capacity presizes the entity pool.
func NewState(capacity, workers int, weapons *data.WeaponTable) *State {
	w := ecs.NewWorld(capacity, workers)
	s := &State{
		World: w,
		Stores: Stores{
			Transform:  ecs.NewStore[component.Transform](w),
			Physics:    ecs.NewStore[component.Physics](w),
			Mesh:       ecs.NewStore[component.Mesh](w),
			HP:         ecs.NewStore[component.HP](w),
			Enemy:      ecs.NewStore[component.Enemy](w),
			Projectile: ecs.NewStore[component.PlayerProjectile](w),
			Camera:     ecs.NewStore[component.Camera](w),
		},
		Weapons: weapons,
	}
	s.Groups = Groups{
		Bodies:      ecs.NewGroup2(s.Transform, s.Physics),
		Enemies:     ecs.NewGroup3(s.Transform, s.Physics, s.Enemy),
		Targets:     ecs.NewGroup4(s.Transform, s.Physics, s.Enemy, s.HP),
		Projectiles: ecs.NewGroup3(s.Transform, s.Physics, s.Projectile),
		Living:      ecs.NewGroup1(s.HP),
		Drawables:   ecs.NewGroup2(s.Transform, s.Mesh),
	}
	if weapons != nil {
		s.WeaponSlot = weapons.First()
	}
	return s
}

// Weapon returns the selected weapon, or nil when no table is loaded.
func (s *State) Weapon() *data.Weapon {
	if s.Weapons == nil {
		return nil
	}
	return s.Weapons.Get(s.WeaponSlot)
}

// SelectWeapon switches to slot if it holds a weapon and reports whether it did.
func (s *State) SelectWeapon(slot int) bool {
	if s.Weapons == nil || s.Weapons.Get(slot) == nil {
		return false
	}
	s.WeaponSlot = slot
	return true
}

// PlayerHP returns the player's current HP.
func (s *State) PlayerHP() int32 {
	return s.HP.MustGet(s.Player).Current
}

// ActiveCamera returns the session camera.
func (s *State) ActiveCamera() *component.Camera {
	return s.Camera.MustGet(s.Cam)
}
