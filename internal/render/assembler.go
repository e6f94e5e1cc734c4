package render

import (
	"fmt"

	"github.com/neonland/sim/internal/component"
	"github.com/neonland/sim/internal/core/ecs"
)

// Assembler builds FrameData into buffers it reuses across frames.
type Assembler struct {
	maxInstances int
	instances    []Instance
	groupSizes   []int
}

// NewAssembler sizes the instance buffer for maxInstances meshes.
func NewAssembler(maxInstances int) *Assembler {
	return &Assembler{
		maxInstances: maxInstances,
		instances:    make([]Instance, 0, maxInstances),
		groupSizes:   make([]int, component.MeshTypeCount),
	}
}

func (a *Assembler) MaxInstances() int { return a.maxInstances }

// Assemble sorts the mesh store by type and emits one instance per mesh.
// Exceeding the instance capacity is a fault and panics.
func (a *Assembler) Assemble(cam *component.Camera, meshes *ecs.Store[component.Mesh]) FrameData {
	n := meshes.Len()
	if n > a.maxInstances {
		panic(fmt.Sprintf("render: %d mesh instances exceed capacity %d", n, a.maxInstances))
	}

	meshes.SortStable(func(x, y *component.Mesh) bool { return x.Type < y.Type })

	a.instances = a.instances[:0]
	clear(a.groupSizes)
	meshes.Each(func(_ ecs.EntityID, m *component.Mesh) {
		a.instances = append(a.instances, Instance{Model: m.Model})
		a.groupSizes[m.Type]++
	})

	f := FrameData{
		Uniforms: Uniforms{
			Proj: cam.ProjectionMatrix(),
			View: cam.ViewMatrix(),
		},
		ClearColor: cam.ClearColor,
		Instances:  a.instances,
	}
	if n > 0 {
		f.GroupSizes = a.groupSizes
	}
	return f
}
