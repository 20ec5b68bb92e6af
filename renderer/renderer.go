package renderer

import (
	"fmt"
	"image"
	"log"
	"strings"
	"sync"

	"github.com/go-gl/gl/v3.2-core/gl"
	"github.com/richinsley/gosprite/geometry"
	"github.com/richinsley/gosprite/graphics"
	"github.com/richinsley/gosprite/shader"
	"github.com/richinsley/gosprite/transform"
)

// glInitOnce guards loading the OpenGL function pointers.
var glInitOnce sync.Once

// Renderer owns the GL objects for one sprite and implements
// graphics.Device on an OpenGL 3.2 core context.
type Renderer struct {
	context    graphics.Context
	pipeline   *Pipeline
	vao        uint32
	vbo        uint32
	ebo        uint32
	ubo        uint32
	textureID  uint32
	indexCount int32
}

// NewRenderer makes ctx current, loads OpenGL and builds the pipeline,
// vertex buffers, uniform buffer and texture for mesh and img.
func NewRenderer(ctx graphics.Context, mesh geometry.Mesh, img *image.RGBA) (*Renderer, error) {
	r := &Renderer{context: ctx}

	// Make the context current BEFORE initializing OpenGL.
	r.context.MakeCurrent()

	var initErr error
	glInitOnce.Do(func() {
		initErr = gl.Init()
	})
	if initErr != nil {
		return nil, fmt.Errorf("%w: failed to initialize OpenGL: %w", graphics.ErrResourceCreation, initErr)
	}
	log.Printf("OpenGL version: %s", gl.GoStr(gl.GetString(gl.VERSION)))

	if err := r.initScene(mesh, img); err != nil {
		r.Shutdown()
		return nil, fmt.Errorf("%w: %w", graphics.ErrResourceCreation, err)
	}
	return r, nil
}

func (r *Renderer) initScene(mesh geometry.Mesh, img *image.RGBA) error {
	var err error
	r.pipeline, err = newPipeline()
	if err != nil {
		return fmt.Errorf("failed to create pipeline: %w", err)
	}

	r.vao, r.vbo, r.ebo = r.pipeline.newVertexArray(mesh)
	r.indexCount = int32(len(mesh.Indices))

	gl.GenBuffers(1, &r.ubo)
	gl.BindBuffer(gl.UNIFORM_BUFFER, r.ubo)
	gl.BufferData(gl.UNIFORM_BUFFER, transform.UniformBlockSize, nil, gl.DYNAMIC_DRAW)
	gl.BindBuffer(gl.UNIFORM_BUFFER, 0)

	r.textureID, err = newTexture(img)
	if err != nil {
		return fmt.Errorf("failed to create texture: %w", err)
	}

	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	if code := gl.GetError(); code != gl.NO_ERROR {
		return fmt.Errorf("gl error 0x%x during setup", code)
	}
	return nil
}

// Bindings returns the handles the frame loop passes back on each call.
func (r *Renderer) Bindings() graphics.Bindings {
	return graphics.Bindings{
		Target:   0,
		Pipeline: graphics.Handle(r.pipeline.program),
		Slice: graphics.Slice{
			VertexArray: graphics.Handle(r.vao),
			Count:       r.indexCount,
		},
		Resources: graphics.Resources{
			Uniforms: graphics.Handle(r.ubo),
			Texture:  graphics.Handle(r.textureID),
		},
	}
}

func (r *Renderer) UploadUniform(buffer graphics.Handle, block *transform.UniformBlock) error {
	data := block.Std140()
	gl.BindBuffer(gl.UNIFORM_BUFFER, uint32(buffer))
	gl.BufferSubData(gl.UNIFORM_BUFFER, 0, transform.UniformBlockSize, gl.Ptr(&data[0]))
	gl.BindBuffer(gl.UNIFORM_BUFFER, 0)
	return nil
}

func (r *Renderer) Clear(target graphics.Handle, rgba [4]float32) {
	fbWidth, fbHeight := r.context.GetFramebufferSize()
	gl.BindFramebuffer(gl.FRAMEBUFFER, uint32(target))
	gl.Viewport(0, 0, int32(fbWidth), int32(fbHeight))
	gl.ClearColor(rgba[0], rgba[1], rgba[2], rgba[3])
	gl.Clear(gl.COLOR_BUFFER_BIT)
}

func (r *Renderer) Draw(slice graphics.Slice, pipeline graphics.Handle, res graphics.Resources) {
	gl.UseProgram(uint32(pipeline))
	gl.BindBufferBase(gl.UNIFORM_BUFFER, shader.UniformBinding, uint32(res.Uniforms))
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, uint32(res.Texture))
	gl.BindVertexArray(uint32(slice.VertexArray))
	gl.DrawElements(gl.TRIANGLES, slice.Count, gl.UNSIGNED_SHORT, gl.PtrOffset(0))
}

// Flush submits the queued commands and reports any pending GL error.
func (r *Renderer) Flush() error {
	gl.Flush()
	if code := gl.GetError(); code != gl.NO_ERROR {
		return fmt.Errorf("%w: gl error 0x%x", graphics.ErrSubmit, code)
	}
	return nil
}

// Cleanup unbinds the per-frame state.
func (r *Renderer) Cleanup() {
	gl.BindVertexArray(0)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	gl.BindBufferBase(gl.UNIFORM_BUFFER, shader.UniformBinding, 0)
	gl.UseProgram(0)
}

func (r *Renderer) Shutdown() {
	// The context itself is shut down by its owner.
	if r.pipeline != nil {
		gl.DeleteProgram(r.pipeline.program)
	}
	if r.textureID != 0 {
		gl.DeleteTextures(1, &r.textureID)
	}
	for _, buf := range []*uint32{&r.vbo, &r.ebo, &r.ubo} {
		if *buf != 0 {
			gl.DeleteBuffers(1, buf)
		}
	}
	if r.vao != 0 {
		gl.DeleteVertexArrays(1, &r.vao)
	}
}

func newProgram(vertexShaderSource, fragmentShaderSource string) (uint32, error) {
	vertexShader, err := compileShader(vertexShaderSource, gl.VERTEX_SHADER)
	if err != nil {
		return 0, err
	}
	fragmentShader, err := compileShader(fragmentShaderSource, gl.FRAGMENT_SHADER)
	if err != nil {
		gl.DeleteShader(vertexShader)
		return 0, err
	}

	program := gl.CreateProgram()
	gl.AttachShader(program, vertexShader)
	gl.AttachShader(program, fragmentShader)
	gl.LinkProgram(program)

	gl.DeleteShader(vertexShader)
	gl.DeleteShader(fragmentShader)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(log))
		gl.DeleteProgram(program)
		return 0, fmt.Errorf("failed to link program: %v", log)
	}

	return program, nil
}

func compileShader(source string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
		logText := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(logText))
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("failed to compile shader: %v", logText)
	}
	return shader, nil
}
