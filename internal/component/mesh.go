package component

import "github.com/go-gl/mathgl/mgl32"

// MeshType tags which model a renderer draws. The order is the grouping
// order of the instance buffer.
type MeshType uint8

const (
	MeshPlane MeshType = iota
	MeshPlayer
	MeshEnemy
	MeshProjectile
	MeshCrosshair

	MeshTypeCount = int(MeshCrosshair) + 1
)

var meshNames = [...]string{"plane", "player", "enemy", "projectile", "crosshair"}

func (t MeshType) String() string {
	if int(t) >= len(meshNames) {
		return "unknown"
	}
	return meshNames[t]
}

// Mesh pairs a mesh tag with the model matrix computed in late render.
type Mesh struct {
	Type  MeshType
	Model mgl32.Mat4
}

func NewMesh(t MeshType) Mesh {
	return Mesh{Type: t, Model: mgl32.Ident4()}
}
