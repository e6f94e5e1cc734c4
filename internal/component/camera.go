package component

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/neonland/sim/internal/mathx"
)

// Camera is a left-handed perspective camera looking down +Z. There is
// exactly one per session.
type Camera struct {
	Position    mgl32.Vec3
	AspectRatio float32
	FieldOfView float32 // vertical, degrees
	NearClip    float32
	FarClip     float32
	ClearColor  mgl32.Vec4
}

func NewCamera() Camera {
	return Camera{
		AspectRatio: 1,
		FieldOfView: 60,
		NearClip:    0.1,
		FarClip:     100,
		ClearColor:  mgl32.Vec4{0.02, 0.0, 0.06, 1},
	}
}

func (c *Camera) ProjectionMatrix() mgl32.Mat4 {
	return mathx.PerspectiveLH(c.FieldOfView, c.AspectRatio, c.NearClip, c.FarClip)
}

func (c *Camera) ViewMatrix() mgl32.Mat4 {
	return mgl32.Translate3D(-c.Position[0], -c.Position[1], -c.Position[2])
}

// ScreenPointToWorld maps a screen point in [-1,1]² to the world point at
// world depth z.
func (c *Camera) ScreenPointToWorld(screen mgl32.Vec2, depth float32) mgl32.Vec3 {
	vp := c.ProjectionMatrix().Mul4(c.ViewMatrix())
	return mathx.Unproject(vp, screen, depth)
}
