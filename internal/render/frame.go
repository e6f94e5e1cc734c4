// Package render assembles the per-frame buffers a renderer consumes: the
// camera uniforms and one instance per mesh, grouped by mesh type.
package render

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"
	"github.com/go-gl/mathgl/mgl32"
)

// Uniforms are the values shared by every draw call in a frame.
type Uniforms struct {
	Proj mgl32.Mat4
	View mgl32.Mat4
}

// Instance is the per-mesh payload of the instance buffer.
type Instance struct {
	Model mgl32.Mat4
}

// FrameData is everything a renderer needs to draw one frame. Instances are
// ordered by mesh type and GroupSizes[t] counts the instances of type t.
// GroupSizes is empty when there is nothing to draw.
//
// Instances and GroupSizes alias the assembler's buffers and are valid until
// the next Assemble.
type FrameData struct {
	Uniforms   Uniforms
	ClearColor mgl32.Vec4
	Instances  []Instance
	GroupSizes []int
}

// InstanceCount is the total number of instances.
func (f FrameData) InstanceCount() int { return len(f.Instances) }

// Group returns the instances of mesh type t.
func (f FrameData) Group(t int) []Instance {
	if t < 0 || t >= len(f.GroupSizes) {
		return nil
	}
	start := 0
	for _, n := range f.GroupSizes[:t] {
		start += n
	}
	return f.Instances[start : start+f.GroupSizes[t]]
}

// Digest hashes the whole frame. Two frames with the same digest draw the
// same picture.
func (f FrameData) Digest() uint64 {
	d := xxhash.New()
	var buf [8]byte
	putMat := func(m mgl32.Mat4) {
		for _, v := range m {
			binary.LittleEndian.PutUint32(buf[:4], math.Float32bits(v))
			_, _ = d.Write(buf[:4])
		}
	}
	putMat(f.Uniforms.Proj)
	putMat(f.Uniforms.View)
	for _, v := range f.ClearColor {
		binary.LittleEndian.PutUint32(buf[:4], math.Float32bits(v))
		_, _ = d.Write(buf[:4])
	}
	for _, n := range f.GroupSizes {
		binary.LittleEndian.PutUint64(buf[:], uint64(n))
		_, _ = d.Write(buf[:])
	}
	for i := range f.Instances {
		putMat(f.Instances[i].Model)
	}
	return d.Sum64()
}
