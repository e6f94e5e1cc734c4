// Package mathx holds the small amount of geometry the simulation needs on
// top of mgl32: zero-safe normalisation, degree-based rotations, model
// matrix composition and the left-handed camera matrices.
package mathx

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// RadToDeg converts radians to degrees.
const RadToDeg = 180 / math.Pi

var (
	XAxis = mgl32.Vec3{1, 0, 0}
	YAxis = mgl32.Vec3{0, 1, 0}
	ZAxis = mgl32.Vec3{0, 0, 1}
)

// Normalize2 returns v scaled to unit length, or the zero vector when v has
// no length.
func Normalize2(v mgl32.Vec2) mgl32.Vec2 {
	l := v.Len()
	if l <= 0 || math.IsNaN(float64(l)) {
		return mgl32.Vec2{}
	}
	return v.Mul(1 / l)
}

// Normalize3 is Normalize2 for 3D vectors.
func Normalize3(v mgl32.Vec3) mgl32.Vec3 {
	l := v.Len()
	if l <= 0 || math.IsNaN(float64(l)) {
		return mgl32.Vec3{}
	}
	return v.Mul(1 / l)
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Clamp01 limits v to [0, 1].
func Clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Lerp3 blends a toward b. The endpoints are returned verbatim so that
// alpha 0 and 1 reproduce the inputs bit for bit.
func Lerp3(a, b mgl32.Vec3, alpha float64) mgl32.Vec3 {
	switch {
	case alpha <= 0:
		return a
	case alpha >= 1:
		return b
	}
	t := float32(alpha)
	return mgl32.Vec3{
		a[0] + (b[0]-a[0])*t,
		a[1] + (b[1]-a[1])*t,
		a[2] + (b[2]-a[2])*t,
	}
}

// HeadingDeg is the angle of dir in the XY plane, in degrees.
func HeadingDeg(dir mgl32.Vec3) float32 {
	return float32(math.Atan2(float64(dir[1]), float64(dir[0])) * RadToDeg)
}

// RotationMatrix rotates by deg degrees around one of the unit axes.
func RotationMatrix(axis mgl32.Vec3, deg float32) mgl32.Mat4 {
	return mgl32.HomogRotate3D(mgl32.DegToRad(deg), axis)
}

// ModelMatrix composes scale, then rotation Z·Y·X (Euler degrees), then
// translation.
func ModelMatrix(position, rotation, scale mgl32.Vec3) mgl32.Mat4 {
	s := mgl32.Scale3D(scale[0], scale[1], scale[2])
	t := mgl32.Translate3D(position[0], position[1], position[2])

	rx := RotationMatrix(XAxis, rotation[0])
	ry := RotationMatrix(YAxis, rotation[1])
	rz := RotationMatrix(ZAxis, rotation[2])

	r := rz.Mul4(ry).Mul4(rx)
	return t.Mul4(r).Mul4(s)
}

// PerspectiveLH is a left-handed perspective projection mapping view depth
// [near, far] onto clip depth [0, 1]. The camera looks down +Z.
func PerspectiveLH(fovyDeg, aspect, near, far float32) mgl32.Mat4 {
	ys := float32(1 / math.Tan(float64(mgl32.DegToRad(fovyDeg))/2))
	xs := ys / aspect
	zs := far / (far - near)
	return mgl32.Mat4{
		xs, 0, 0, 0,
		0, ys, 0, 0,
		0, 0, zs, 1,
		0, 0, -near * zs, 0,
	}
}

// Unproject maps a point in normalised device coordinates back to the world
// position on the plane z = depth. Returns the near-plane point when the view
// ray is parallel to that plane.
func Unproject(viewProj mgl32.Mat4, ndc mgl32.Vec2, depth float32) mgl32.Vec3 {
	inv := viewProj.Inv()
	near := homogToVec3(inv.Mul4x1(mgl32.Vec4{ndc[0], ndc[1], 0, 1}))
	far := homogToVec3(inv.Mul4x1(mgl32.Vec4{ndc[0], ndc[1], 1, 1}))

	dz := far[2] - near[2]
	if dz == 0 {
		return near
	}
	t := (depth - near[2]) / dz
	p := near.Add(far.Sub(near).Mul(t))
	p[2] = depth
	return p
}

func homogToVec3(v mgl32.Vec4) mgl32.Vec3 {
	if v[3] == 0 {
		return v.Vec3()
	}
	return v.Vec3().Mul(1 / v[3])
}
