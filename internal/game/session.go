// Package game drives one arena session: it owns the world, runs the tick
// systems on a fixed timestep behind a variable-rate render loop, and hands
// the platform layer a render-ready frame.
package game

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/neonland/sim/internal/clock"
	"github.com/neonland/sim/internal/component"
	"github.com/neonland/sim/internal/config"
	"github.com/neonland/sim/internal/core/ecs"
	"github.com/neonland/sim/internal/core/event"
	coresys "github.com/neonland/sim/internal/core/system"
	"github.com/neonland/sim/internal/data"
	"github.com/neonland/sim/internal/mathx"
	"github.com/neonland/sim/internal/render"
	"github.com/neonland/sim/internal/scripting"
	"github.com/neonland/sim/internal/system"
	"github.com/neonland/sim/internal/world"
)

// Deps is what a session is built from. Only Config is required.
type Deps struct {
	Config    *config.Config
	Log       *zap.Logger
	Clock     clock.Clock       // nil = monotonic wall clock
	Weapons   *data.WeaponTable // nil = single weapon from [player]
	Scripting *scripting.Engine // nil = built-in enemy stats and damage
	Rand      *rand.Rand        // nil = seeded from enemies.seed, or time when 0
}

// Session is one running game. All methods must be called from the same
// goroutine; parallelism happens only inside Update.
type Session struct {
	id  string
	cfg *config.Config
	log *zap.Logger

	clock     *clock.Pausable
	world     *world.State
	runner    *coresys.Runner
	bus       *event.Bus
	assembler *render.Assembler

	timestep       float64
	nextTickTime   float64
	prevRenderTime float64
	interpolation  float64
	lastTicks      int

	textureSizes map[TextureType]TexSize
	stats        Stats
	quit         bool
	closed       bool
}

// NewSession validates the configuration, populates the arena and registers
// the tick systems. The tick clock starts at the current clock time; call
// Start after any slow loading to drop the elapsed backlog.
func NewSession(deps Deps) (*Session, error) {
	cfg := deps.Config
	if cfg == nil {
		return nil, fmt.Errorf("new session: nil config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("new session: %w", err)
	}

	log := deps.Log
	if log == nil {
		log = zap.NewNop()
	}
	src := deps.Clock
	if src == nil {
		src = clock.NewMonotonic()
	}
	weapons := deps.Weapons
	if weapons == nil {
		weapons = data.DefaultWeaponTable(
			cfg.Player.ProjectileDamage,
			cfg.Player.ShotCooldown,
			cfg.Player.ProjectileSpeed,
			cfg.Player.ProjectileLife,
		)
	}
	rng := deps.Rand
	if rng == nil {
		seed := cfg.Enemies.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		rng = rand.New(rand.NewSource(seed))
	}

	id := uuid.NewString()
	log = log.With(zap.String("session", id))

	ws := world.NewState(cfg.Simulation.MaxInstanceCount, cfg.Simulation.Workers, weapons)
	ws.World.SetMinChunk(cfg.Simulation.ParallelMinChunk)
	ws.Populate(cfg, deps.Scripting, rng)

	s := &Session{
		id:           id,
		cfg:          cfg,
		log:          log,
		clock:        clock.NewPausable(src),
		world:        ws,
		runner:       coresys.NewRunner(),
		bus:          event.NewBus(),
		assembler:    render.NewAssembler(cfg.Simulation.MaxInstanceCount),
		timestep:     cfg.Simulation.Timestep,
		textureSizes: make(map[TextureType]TexSize),
	}
	s.registerSystems(deps.Scripting)
	s.subscribe()
	s.resync()

	log.Info("session created",
		zap.Int("enemies", ws.Enemies.Len()),
		zap.Int("weapons", weapons.Count()),
		zap.Float64("timestep", s.timestep),
		zap.Int("workers", ws.World.Workers()),
		zap.Int("min_chunk", ws.World.MinChunk()),
	)
	return s, nil
}

func (s *Session) registerSystems(lua *scripting.Engine) {
	ws := s.world
	s.runner.Register(system.NewIntegrateSystem(ws, s.timestep))
	s.runner.Register(system.NewConstrainSystem(ws))
	s.runner.Register(system.NewFireSystem(ws, s.bus, lua, s.log, s.cfg.Player.MuzzleOffset))
	s.runner.Register(system.NewContactSystem(ws, s.bus, s.log))
	s.runner.Register(system.NewProjectileSystem(ws))
	s.runner.Register(system.NewDeathSystem(ws, s.bus, s.log))
	s.runner.Register(system.NewCleanupSystem(ws.World, s.log))
}

func (s *Session) resync() {
	now := s.clock.Time()
	s.nextTickTime = now
	s.prevRenderTime = now
}

// Start aligns the tick and render clocks with the current time so that time
// spent loading is not simulated.
func (s *Session) Start() {
	s.resync()
	s.log.Info("session started", zap.Float64("time", s.nextTickTime))
}

// Update runs one render frame: early render, every tick that has come due,
// then late render. Events raised by the ticks are dispatched at the end.
func (s *Session) Update(aspectRatio float32) {
	now := s.clock.Time()
	dt := now - s.prevRenderTime

	cam := s.world.ActiveCamera()
	if aspectRatio > 0 && aspectRatio != cam.AspectRatio {
		cam.AspectRatio = aspectRatio
	}

	in := &s.world.Input
	in.MoveDir = mathx.Normalize3(in.MoveDir.Add(mgl32.Vec3{in.Direction[0], in.Direction[1], 0}))

	s.earlyRender()

	ticks := 0
	for now >= s.nextTickTime {
		s.runner.Tick(now)
		s.nextTickTime += s.timestep
		ticks++
	}
	s.lastTicks = ticks
	if warn := s.cfg.Simulation.BacklogWarnTicks; warn > 0 && ticks >= warn {
		s.log.Warn("tick backlog",
			zap.Int("ticks", ticks),
			zap.Float64("frame_dt", dt),
		)
	}

	s.lateRender(now)

	s.prevRenderTime = now
	in.MouseDelta = mgl32.Vec2{}
	if ticks > 0 {
		in.MoveDir = mgl32.Vec3{}
	}
	s.stats.Ticks += uint64(ticks)
	s.stats.Frames++

	s.bus.Flush()
}

func (s *Session) earlyRender() {
	ws := s.world
	ws.Physics.MustGet(ws.Player).Velocity = ws.Input.MoveDir.Mul(s.cfg.Player.Speed)
}

func (s *Session) lateRender(now float64) {
	ws := s.world
	alpha := mathx.Clamp01((s.timestep - (s.nextTickTime - now)) / s.timestep)
	s.interpolation = alpha

	ws.Bodies.UpdateParallel(func(_ ecs.EntityID, tf *component.Transform, ph *component.Physics) {
		if !tf.Teleported {
			tf.Position = ph.InterpolatedPosition(alpha)
		}
		if !tf.RotationSet {
			tf.Rotation = ph.InterpolatedRotation(alpha)
		}
	})

	pph := ws.Physics.MustGet(ws.Player)
	s.followCamera(pph.InterpolatedPosition(alpha))

	playerPos := pph.Position
	cross := ws.ActiveCamera().ScreenPointToWorld(ws.Input.MousePos, playerPos[2])
	ws.Transform.MustGet(ws.Crosshair).Position = cross

	aim := mathx.Normalize3(cross.Sub(playerPos))
	ws.Transform.MustGet(ws.Player).SetRotation(mgl32.Vec3{0, 0, mathx.HeadingDeg(aim)})

	ws.Drawables.UpdateParallel(func(_ ecs.EntityID, tf *component.Transform, m *component.Mesh) {
		m.Model = mathx.ModelMatrix(tf.Position, tf.Rotation, tf.Scale)
	})
}

// followCamera centres the camera on target, clamped so the visible area
// stays inside the map. On an axis where the map is smaller than the view
// the camera stays centred on the map.
func (s *Session) followCamera(target mgl32.Vec3) {
	ws := s.world
	cam := ws.ActiveCamera()
	cam.Position = mgl32.Vec3{0, 0, target[2] - ws.CameraDistance}

	corner := cam.ScreenPointToWorld(mgl32.Vec2{1, 1}, target[2])
	halfW, halfH := corner[0], corner[1]
	half := ws.MapSize.Mul(0.5)

	pos := target
	pos[0] = mathx.Clamp(pos[0], min(-half[0]+halfW, 0), max(half[0]-halfW, 0))
	pos[1] = mathx.Clamp(pos[1], min(-half[1]+halfH, 0), max(half[1]-halfH, 0))
	pos[2] -= ws.CameraDistance
	cam.Position = pos
}

// FrameData assembles the render buffer for the state left by the last
// Update. Calling it again without an Update in between yields the same frame.
func (s *Session) FrameData() render.FrameData {
	return s.assembler.Assemble(s.world.ActiveCamera(), s.world.Mesh)
}

// Close logs the session summary. The session must not be used afterwards.
func (s *Session) Close() {
	if s.closed {
		return
	}
	s.closed = true
	st := s.stats
	s.log.Info("session closed",
		zap.Uint64("ticks", st.Ticks),
		zap.Uint64("frames", st.Frames),
		zap.Int("shots", st.Shots),
		zap.Int("kills", st.Kills),
		zap.Int32("damage_taken", st.DamageTaken),
		zap.Bool("game_over", s.world.GameOver),
	)
}

func (s *Session) ID() string             { return s.id }
func (s *Session) World() *world.State    { return s.world }
func (s *Session) Bus() *event.Bus        { return s.bus }
func (s *Session) Timestep() float64      { return s.timestep }
func (s *Session) NextTickTime() float64  { return s.nextTickTime }
func (s *Session) Interpolation() float64 { return s.interpolation }
func (s *Session) Time() float64          { return s.clock.Time() }
func (s *Session) Ticks() uint64          { return s.runner.Ticks() }
func (s *Session) LastFrameTicks() int    { return s.lastTicks }
func (s *Session) GameOver() bool         { return s.world.GameOver }
func (s *Session) Paused() bool           { return s.clock.Paused() }
func (s *Session) MaxInstanceCount() int  { return s.assembler.MaxInstances() }
func (s *Session) Stats() Stats           { return s.stats }
