package component

import "github.com/go-gl/mathgl/mgl32"

// Transform is the render-facing placement of an entity. Rotation is Euler
// degrees. Teleported and RotationSet mark values written by gameplay code
// that interpolation must not overwrite until the next tick adopts them.
type Transform struct {
	Position mgl32.Vec3
	Rotation mgl32.Vec3
	Scale    mgl32.Vec3

	Teleported  bool
	RotationSet bool
}

func NewTransform(position, rotation, scale mgl32.Vec3) Transform {
	return Transform{Position: position, Rotation: rotation, Scale: scale}
}

// DefaultTransform sits at the origin with unit scale.
func DefaultTransform() Transform {
	return Transform{Scale: mgl32.Vec3{1, 1, 1}}
}

func At(position mgl32.Vec3) Transform {
	tf := DefaultTransform()
	tf.Position = position
	return tf
}

// SetPosition moves the entity without blending from its previous position.
func (t *Transform) SetPosition(p mgl32.Vec3) {
	t.Position = p
	t.Teleported = true
}

// SetRotation overrides the physics rotation for rendering and for the next tick.
func (t *Transform) SetRotation(r mgl32.Vec3) {
	t.Rotation = r
	t.RotationSet = true
}
