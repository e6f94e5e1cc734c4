package component

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/neonland/sim/internal/mathx"
)

// Physics is the authoritative rigid-body state. Gameplay reads Position and
// Rotation; rendering blends Prev* toward them with the interpolation factor.
type Physics struct {
	Position        mgl32.Vec3
	Rotation        mgl32.Vec3
	Velocity        mgl32.Vec3
	AngularVelocity mgl32.Vec3 // degrees per second

	PrevPosition mgl32.Vec3
	PrevRotation mgl32.Vec3
}

// NewPhysics starts at rest on tf.
func NewPhysics(tf Transform, velocity mgl32.Vec3) Physics {
	return Physics{
		Position:     tf.Position,
		Rotation:     tf.Rotation,
		Velocity:     velocity,
		PrevPosition: tf.Position,
		PrevRotation: tf.Rotation,
	}
}

// Step integrates one tick of dt seconds. Values explicitly written to tf
// since the last step are adopted first, with no blend across the jump.
func (p *Physics) Step(tf *Transform, dt float32) {
	if tf.Teleported {
		p.Position = tf.Position
		tf.Teleported = false
	}
	if tf.RotationSet {
		p.Rotation = tf.Rotation
		tf.RotationSet = false
	}

	p.PrevPosition = p.Position
	p.PrevRotation = p.Rotation
	p.Position = p.Position.Add(p.Velocity.Mul(dt))
	p.Rotation = p.Rotation.Add(p.AngularVelocity.Mul(dt))
}

// InterpolatedPosition blends the previous and current tick, alpha in [0,1].
func (p *Physics) InterpolatedPosition(alpha float64) mgl32.Vec3 {
	return mathx.Lerp3(p.PrevPosition, p.Position, alpha)
}

func (p *Physics) InterpolatedRotation(alpha float64) mgl32.Vec3 {
	return mathx.Lerp3(p.PrevRotation, p.Rotation, alpha)
}

// Radius of the collision circle implied by a transform's scale.
func Radius(tf *Transform) float32 {
	return 0.5 * max(tf.Scale[0], tf.Scale[1])
}

// Overlapping is a circle test in the XY plane at the bodies' authoritative
// positions. It is symmetric and reports no penetration depth.
func Overlapping(a, b *Physics, tfA, tfB *Transform) bool {
	d := a.Position.Sub(b.Position)
	d[2] = 0
	r := Radius(tfA) + Radius(tfB)
	return d.Dot(d) < r*r
}
