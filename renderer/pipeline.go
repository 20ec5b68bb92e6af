package renderer

import (
	"fmt"

	"github.com/go-gl/gl/v3.2-core/gl"
	"github.com/richinsley/gosprite/geometry"
	"github.com/richinsley/gosprite/shader"
)

// Pipeline is the linked sprite program and the locations it exposes.
type Pipeline struct {
	program     uint32
	positionLoc int32
	texCoordLoc int32
	colorLoc    int32
	samplerLoc  int32
	viewIndex   uint32
}

func newPipeline() (*Pipeline, error) {
	program, err := newProgram(shader.SpriteVertexShader(), shader.SpriteFragmentShader())
	if err != nil {
		return nil, err
	}
	p := &Pipeline{program: program}

	p.positionLoc = gl.GetAttribLocation(program, gl.Str(shader.PositionAttrib+"\x00"))
	p.texCoordLoc = gl.GetAttribLocation(program, gl.Str(shader.TexCoordAttrib+"\x00"))
	p.colorLoc = gl.GetAttribLocation(program, gl.Str(shader.ColorAttrib+"\x00"))
	for name, loc := range map[string]int32{
		shader.PositionAttrib: p.positionLoc,
		shader.TexCoordAttrib: p.texCoordLoc,
		shader.ColorAttrib:    p.colorLoc,
	} {
		if loc < 0 {
			gl.DeleteProgram(program)
			return nil, fmt.Errorf("attribute %q not found in sprite program", name)
		}
	}

	p.viewIndex = gl.GetUniformBlockIndex(program, gl.Str(shader.UniformBlock+"\x00"))
	if p.viewIndex == gl.INVALID_INDEX {
		gl.DeleteProgram(program)
		return nil, fmt.Errorf("uniform block %q not found in sprite program", shader.UniformBlock)
	}
	gl.UniformBlockBinding(program, p.viewIndex, shader.UniformBinding)

	gl.UseProgram(program)
	p.samplerLoc = gl.GetUniformLocation(program, gl.Str(shader.SamplerUniform+"\x00"))
	if p.samplerLoc != -1 {
		gl.Uniform1i(p.samplerLoc, 0)
	}
	gl.UseProgram(0)

	return p, nil
}

// newVertexArray uploads mesh and records its attribute layout for this
// pipeline.
func (p *Pipeline) newVertexArray(mesh geometry.Mesh) (vao, vbo, ebo uint32) {
	vertices := mesh.Interleave()

	gl.GenVertexArrays(1, &vao)
	gl.GenBuffers(1, &vbo)
	gl.GenBuffers(1, &ebo)
	gl.BindVertexArray(vao)

	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, gl.Ptr(vertices), gl.STATIC_DRAW)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(mesh.Indices)*2, gl.Ptr(mesh.Indices), gl.STATIC_DRAW)

	attribs := []struct {
		loc    int32
		size   int32
		offset int
	}{
		{p.positionLoc, 2, geometry.PositionOffset},
		{p.texCoordLoc, 2, geometry.TexCoordOffset},
		{p.colorLoc, 3, geometry.ColorOffset},
	}
	for _, a := range attribs {
		gl.EnableVertexAttribArray(uint32(a.loc))
		gl.VertexAttribPointer(uint32(a.loc), a.size, gl.FLOAT, false, geometry.Stride, gl.PtrOffset(a.offset*4))
	}

	// The element buffer binding is VAO state; unbind the VAO first.
	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, 0)
	return vao, vbo, ebo
}
