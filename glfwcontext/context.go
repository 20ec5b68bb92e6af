package glfwcontext

import (
	"fmt"
	"log"
	"runtime"

	glfw "github.com/go-gl/glfw/v3.3/glfw"
	"github.com/richinsley/gosprite/graphics"
	"github.com/richinsley/gosprite/input"
	"github.com/richinsley/gosprite/options"
)

// Context is a GLFW window with an OpenGL 3.2 core context. Key and close
// callbacks are queued and handed out by PollEvents.
type Context struct {
	window  *glfw.Window
	pending []graphics.Event
}

// keys maps the GLFW keys the sprite loop understands.
var keys = map[glfw.Key]input.Key{
	glfw.KeyLeft:   input.KeyLeft,
	glfw.KeyRight:  input.KeyRight,
	glfw.KeyUp:     input.KeyUp,
	glfw.KeyDown:   input.KeyDown,
	glfw.KeyEscape: input.KeyEscape,
}

// New creates the window, makes its context current and applies the vsync
// setting. InitGraphics must have been called.
func New(cfg options.WindowConfig) (*Context, error) {
	glfw.WindowHint(glfw.ContextVersionMajor, 3)
	glfw.WindowHint(glfw.ContextVersionMinor, 2)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Resizable, glfw.False)

	win, err := glfw.CreateWindow(cfg.Width, cfg.Height, cfg.Title, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create window: %w", graphics.ErrResourceCreation, err)
	}

	c := &Context{window: win}
	win.SetKeyCallback(c.glfwKeyCallback)
	win.SetCloseCallback(c.glfwCloseCallback)

	win.MakeContextCurrent()
	if cfg.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}
	log.Printf("Created %dx%d window %q (vsync: %v)", cfg.Width, cfg.Height, cfg.Title, cfg.VSync)
	return c, nil
}

// glfwKeyCallback queues press and release events. Repeats carry no new
// state and are queued as other events.
func (c *Context) glfwKeyCallback(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
	k, ok := keys[key]
	if !ok {
		k = input.KeyOther
	}
	switch action {
	case glfw.Press:
		c.pending = append(c.pending, graphics.KeyPress(k))
	case glfw.Release:
		c.pending = append(c.pending, graphics.KeyRelease(k))
	default:
		c.pending = append(c.pending, graphics.OtherEvent())
	}
}

func (c *Context) glfwCloseCallback(w *glfw.Window) {
	c.pending = append(c.pending, graphics.CloseEvent())
}

// PollEvents processes pending window events without blocking and returns
// them in arrival order.
func (c *Context) PollEvents() []graphics.Event {
	glfw.PollEvents()
	events := c.pending
	c.pending = nil
	return events
}

// Present swaps buffers. GLFW reports swap failures by panicking; they are
// returned as graphics.ErrPresentation.
func (c *Context) Present() (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", graphics.ErrPresentation, r)
		}
	}()
	c.window.SwapBuffers()
	return nil
}

// MakeCurrent makes the context current for the calling goroutine.
func (c *Context) MakeCurrent() {
	c.window.MakeContextCurrent()
}

// Shutdown destroys the window.
func (c *Context) Shutdown() {
	c.window.Destroy()
}

func (c *Context) GetFramebufferSize() (int, int) {
	return c.window.GetFramebufferSize()
}

func (c *Context) Time() float64 {
	return glfw.GetTime()
}

// InitGraphics initializes GLFW. Must be called from the main thread.
func InitGraphics() error {
	runtime.LockOSThread()
	if err := glfw.Init(); err != nil {
		return fmt.Errorf("%w: failed to initialize glfw: %w", graphics.ErrResourceCreation, err)
	}
	log.Printf("GLFW Initialized")
	return nil
}

// TerminateGraphics shuts down GLFW. Must be called from the main thread.
func TerminateGraphics() {
	glfw.Terminate()
	log.Printf("GLFW Terminated")
}
