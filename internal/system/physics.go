package system

import (
	"github.com/neonland/sim/internal/component"
	"github.com/neonland/sim/internal/core/ecs"
	coresys "github.com/neonland/sim/internal/core/system"
	"github.com/neonland/sim/internal/mathx"
	"github.com/neonland/sim/internal/world"
)

// IntegrateSystem advances every physics body by one timestep.
// Phase 0 (Integrate). Bodies are independent, so the pass is parallel.
type IntegrateSystem struct {
	world *world.State
	dt    float32
}

func NewIntegrateSystem(ws *world.State, timestep float64) *IntegrateSystem {
	return &IntegrateSystem{world: ws, dt: float32(timestep)}
}

func (s *IntegrateSystem) Phase() coresys.Phase { return coresys.PhaseIntegrate }

func (s *IntegrateSystem) Update(_ float64) {
	s.world.Bodies.UpdateParallel(func(_ ecs.EntityID, tf *component.Transform, ph *component.Physics) {
		ph.Step(tf, s.dt)
	})
}

// ConstrainSystem keeps the player inside the map rectangle.
// Phase 1 (Constrain).
type ConstrainSystem struct {
	world *world.State
}

func NewConstrainSystem(ws *world.State) *ConstrainSystem {
	return &ConstrainSystem{world: ws}
}

func (s *ConstrainSystem) Phase() coresys.Phase { return coresys.PhaseConstrain }

func (s *ConstrainSystem) Update(_ float64) {
	ph := s.world.Physics.MustGet(s.world.Player)
	half := s.world.MapSize.Mul(0.5)
	ph.Position[0] = mathx.Clamp(ph.Position[0], -half[0], half[0])
	ph.Position[1] = mathx.Clamp(ph.Position[1], -half[1], half[1])
}
