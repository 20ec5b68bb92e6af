package graphics

import (
	"errors"

	"github.com/richinsley/gosprite/transform"
)

var (
	// ErrResourceCreation marks a failure building pipelines, buffers or
	// textures at startup.
	ErrResourceCreation = errors.New("resource creation failed")
	// ErrPresentation marks a failed buffer swap.
	ErrPresentation = errors.New("presentation failed")
	// ErrSubmit marks a device error reported when commands were flushed.
	ErrSubmit = errors.New("command submission failed")
)

// Handle is an opaque backend object name.
type Handle uint32

// Slice is the indexed geometry drawn each frame.
type Slice struct {
	VertexArray Handle
	Count       int32
}

// Resources are the objects bound alongside the pipeline for a draw.
type Resources struct {
	Uniforms Handle
	Texture  Handle
}

// Bindings is the set of GPU objects created once at startup.
type Bindings struct {
	Target    Handle
	Pipeline  Handle
	Slice     Slice
	Resources Resources
}

// Device is the GPU backend the frame loop drives.
type Device interface {
	UploadUniform(buffer Handle, block *transform.UniformBlock) error
	Clear(target Handle, rgba [4]float32)
	Draw(slice Slice, pipeline Handle, res Resources)
	Flush() error
	Cleanup()
}
