// Package transform builds the matrices handed to the sprite shader.
package transform

import "github.com/go-gl/mathgl/mgl32"

// Model places a unit, center-anchored sprite at pos with the given size.
// Scale is applied first, then the translation.
func Model(pos mgl32.Vec2, width, height float32) mgl32.Mat4 {
	translation := mgl32.Translate3D(pos.X(), pos.Y(), 0)
	scale := mgl32.Scale3D(width, height, 1)
	return translation.Mul4(scale)
}

// Projection is an orthographic projection fixed at construction.
type Projection struct {
	matrix mgl32.Mat4
}

// NewProjection maps x in [0,width] and y in [0,height] to clip space.
func NewProjection(width, height, near, far float32) *Projection {
	return &Projection{matrix: mgl32.Ortho(0, width, 0, height, near, far)}
}

// Matrix returns a copy of the projection matrix.
func (p *Projection) Matrix() mgl32.Mat4 {
	return p.matrix
}

// UniformBlockFloats is the number of float32 values in the packed block.
const UniformBlockFloats = 16 + 16 + 4

// UniformBlockSize is the byte size of the shader's View block.
const UniformBlockSize = UniformBlockFloats * 4

// UniformBlock is the per-frame shader input.
type UniformBlock struct {
	Model      mgl32.Mat4
	Projection mgl32.Mat4
	Tint       mgl32.Vec4
}

// White is the neutral tint.
var White = mgl32.Vec4{1, 1, 1, 1}

// NewUniformBlock pairs a model matrix with the shared projection.
func NewUniformBlock(model mgl32.Mat4, p *Projection, tint mgl32.Vec4) UniformBlock {
	return UniformBlock{Model: model, Projection: p.Matrix(), Tint: tint}
}

// Std140 packs the block in std140 order: model, projection, tint. mat4
// columns and vec4 are already 16-byte aligned so no padding is needed.
func (b *UniformBlock) Std140() [UniformBlockFloats]float32 {
	var out [UniformBlockFloats]float32
	copy(out[0:16], b.Model[:])
	copy(out[16:32], b.Projection[:])
	copy(out[32:36], b.Tint[:])
	return out
}
