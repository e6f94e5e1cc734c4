package component

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/require"
)

func requireVecNear(t *testing.T, want, got mgl32.Vec3, delta float64) {
	t.Helper()
	for i := range want {
		require.InDelta(t, want[i], got[i], delta, "axis %d", i)
	}
}

func TestStepSplitMatchesSingleStep(t *testing.T) {
	start := NewPhysics(At(mgl32.Vec3{1, -2, 0.5}), mgl32.Vec3{3, -1.5, 0.25})
	start.AngularVelocity = mgl32.Vec3{0, 10, -30}

	const total = 0.5
	for _, dt := range []float32{0, 0.1, 0.25, 0.5} {
		split := start
		tf := DefaultTransform()
		split.Step(&tf, dt)
		split.Step(&tf, total-dt)

		whole := start
		whole.Step(&tf, total)

		requireVecNear(t, whole.Position, split.Position, 1e-5)
		requireVecNear(t, whole.Rotation, split.Rotation, 1e-4)
	}
}

func TestInterpolationEndpoints(t *testing.T) {
	tf := At(mgl32.Vec3{0.3, 0.7, 0})
	p := NewPhysics(tf, mgl32.Vec3{1.1, -2.3, 0})
	p.AngularVelocity = mgl32.Vec3{0, 0, 45}
	p.Step(&tf, 1.0/60)

	require.Equal(t, p.PrevPosition, p.InterpolatedPosition(0))
	require.Equal(t, p.Position, p.InterpolatedPosition(1))
	require.Equal(t, p.PrevRotation, p.InterpolatedRotation(0))
	require.Equal(t, p.Rotation, p.InterpolatedRotation(1))

	prev := p.InterpolatedPosition(0)
	for i := 1; i <= 10; i++ {
		cur := p.InterpolatedPosition(float64(i) / 10)
		require.GreaterOrEqual(t, cur[0], prev[0])
		require.LessOrEqual(t, cur[1], prev[1])
		prev = cur
	}
}

func TestStepAdoptsTeleportAndRotation(t *testing.T) {
	tf := DefaultTransform()
	p := NewPhysics(tf, mgl32.Vec3{1, 0, 0})

	tf.SetPosition(mgl32.Vec3{10, 10, 0})
	tf.SetRotation(mgl32.Vec3{0, 0, 90})
	p.Step(&tf, 1)

	require.False(t, tf.Teleported)
	require.False(t, tf.RotationSet)
	require.Equal(t, mgl32.Vec3{10, 10, 0}, p.PrevPosition)
	require.Equal(t, mgl32.Vec3{11, 10, 0}, p.Position)
	require.Equal(t, mgl32.Vec3{0, 0, 90}, p.Rotation)
}

func TestOverlappingIsSymmetric(t *testing.T) {
	tfA := At(mgl32.Vec3{0, 0, 0})
	tfB := NewTransform(mgl32.Vec3{0.7, 0, 0}, mgl32.Vec3{}, mgl32.Vec3{1, 0.25, 0.25})
	a := NewPhysics(tfA, mgl32.Vec3{})
	b := NewPhysics(tfB, mgl32.Vec3{})

	require.True(t, Overlapping(&a, &b, &tfA, &tfB))
	require.True(t, Overlapping(&b, &a, &tfB, &tfA))

	b.Position = mgl32.Vec3{1.5, 0, 0}
	require.False(t, Overlapping(&a, &b, &tfA, &tfB))
	require.False(t, Overlapping(&b, &a, &tfB, &tfA))
}

func TestCameraScreenCentre(t *testing.T) {
	c := NewCamera()
	c.Position = mgl32.Vec3{3, -2, -20}
	p := c.ScreenPointToWorld(mgl32.Vec2{0, 0}, 0)
	require.InDelta(t, 3, p[0], 1e-3)
	require.InDelta(t, -2, p[1], 1e-3)

	right := c.ScreenPointToWorld(mgl32.Vec2{1, 0}, 0)
	require.Greater(t, right[0], p[0])
}

func TestEnemyReadyAndProjectileExpiry(t *testing.T) {
	e := Enemy{CooldownEnd: 2}
	require.False(t, e.Ready(2))
	require.True(t, e.Ready(2.01))

	pp := PlayerProjectile{DespawnTime: 1}
	require.False(t, pp.Expired(1))
	require.True(t, pp.Expired(1.5))
	require.Equal(t, "projectile", MeshProjectile.String())
}
