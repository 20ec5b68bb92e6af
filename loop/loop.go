// Package loop drives the per-frame cycle: drain events, advance the
// animation, rebuild the uniform block and submit the frame.
package loop

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/richinsley/gosprite/animation"
	"github.com/richinsley/gosprite/graphics"
	"github.com/richinsley/gosprite/input"
	"github.com/richinsley/gosprite/transform"
)

// State is the loop's lifecycle state.
type State int

const (
	Running State = iota
	Terminated
)

func (s State) String() string {
	if s == Running {
		return "running"
	}
	return "terminated"
}

// Config is the fixed geometry and appearance of the scene.
type Config struct {
	WindowWidth  float32
	WindowHeight float32
	SpriteWidth  float32
	SpriteHeight float32
	Near         float32
	Far          float32
	ClearColor   [4]float32
	// Flash tints the sprite with |sin t| every frame.
	Flash bool
}

type step struct {
	name string
	run  func(*Loop) error
}

// frameSteps is the command sequence issued to the backend on every frame,
// in order.
var frameSteps = []step{
	{"upload uniforms", (*Loop).upload},
	{"clear", (*Loop).clear},
	{"draw", (*Loop).draw},
	{"flush", (*Loop).flush},
	{"present", (*Loop).present},
	{"cleanup", (*Loop).cleanup},
}

// Loop owns the input state and sprite position. It is not safe for
// concurrent use and must run on the thread that owns the GL context.
type Loop struct {
	cfg      Config
	window   graphics.Context
	device   graphics.Device
	bindings graphics.Bindings
	policy   animation.Policy
	clock    func() float64

	state      State
	input      input.State
	position   mgl32.Vec2
	projection *transform.Projection
	block      transform.UniformBlock
	frames     uint64
}

// New creates a running loop with the sprite at the window center. The
// projection is computed here and never again.
func New(cfg Config, window graphics.Context, device graphics.Device, bindings graphics.Bindings, policy animation.Policy) *Loop {
	return &Loop{
		cfg:        cfg,
		window:     window,
		device:     device,
		bindings:   bindings,
		policy:     policy,
		clock:      window.Time,
		state:      Running,
		position:   mgl32.Vec2{cfg.WindowWidth / 2, cfg.WindowHeight / 2},
		projection: transform.NewProjection(cfg.WindowWidth, cfg.WindowHeight, cfg.Near, cfg.Far),
	}
}

func (l *Loop) State() State                      { return l.state }
func (l *Loop) Position() mgl32.Vec2              { return l.position }
func (l *Loop) Input() input.State                { return l.input }
func (l *Loop) Projection() *transform.Projection { return l.projection }
func (l *Loop) Uniforms() transform.UniformBlock  { return l.block }

// Frames returns the number of frames fully submitted.
func (l *Loop) Frames() uint64 { return l.frames }

// Run steps until the window is closed, escape is pressed or a backend call
// fails.
func (l *Loop) Run() error {
	for l.state == Running {
		if err := l.Step(); err != nil {
			return err
		}
	}
	return nil
}

// Step performs one iteration. A close request or escape press terminates
// the loop before any GPU call is made for that iteration.
func (l *Loop) Step() error {
	if l.state != Running {
		return nil
	}

	for _, e := range l.window.PollEvents() {
		if e.Quits() {
			l.state = Terminated
			return nil
		}
		if phase, ok := e.Phase(); ok && input.Directional(e.Key) {
			l.input.Handle(e.Key, phase)
		}
	}

	frame := animation.Frame{Seconds: l.clock(), Input: l.input}
	l.position = l.policy.Advance(l.position, frame)

	tint := transform.White
	if l.cfg.Flash {
		tint = animation.Flash(frame.Seconds)
	}
	model := transform.Model(l.position, l.cfg.SpriteWidth, l.cfg.SpriteHeight)
	l.block = transform.NewUniformBlock(model, l.projection, tint)

	for _, s := range frameSteps {
		if err := s.run(l); err != nil {
			l.state = Terminated
			return fmt.Errorf("frame %d: %s: %w", l.frames, s.name, err)
		}
	}
	l.frames++
	return nil
}

func (l *Loop) upload() error {
	return l.device.UploadUniform(l.bindings.Resources.Uniforms, &l.block)
}

func (l *Loop) clear() error {
	l.device.Clear(l.bindings.Target, l.cfg.ClearColor)
	return nil
}

func (l *Loop) draw() error {
	l.device.Draw(l.bindings.Slice, l.bindings.Pipeline, l.bindings.Resources)
	return nil
}

func (l *Loop) flush() error {
	return l.device.Flush()
}

func (l *Loop) present() error {
	return l.window.Present()
}

func (l *Loop) cleanup() error {
	l.device.Cleanup()
	return nil
}
