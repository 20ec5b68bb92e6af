// Package animation computes the sprite position for each frame.
//
// A Policy is chosen once at startup. Bounce and Tween are driven by the
// clock, Keyboard by the directional input state and Static not at all.
package animation

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/richinsley/gosprite/input"
)

// Frame is what a policy may read on each iteration.
type Frame struct {
	// Seconds is the clock sample for this frame.
	Seconds float64
	Input   input.State
}

// Policy advances the sprite position by one frame.
type Policy interface {
	Advance(pos mgl32.Vec2, f Frame) mgl32.Vec2
}

// Mode names a Policy variant.
type Mode string

const (
	ModeKeyboard Mode = "keyboard"
	ModeBounce   Mode = "bounce"
	ModeTween    Mode = "tween"
	ModeStatic   Mode = "static"
)

// Modes lists the accepted mode names.
var Modes = []Mode{ModeKeyboard, ModeBounce, ModeTween, ModeStatic}

// Params carries the window and sprite geometry the policies need.
type Params struct {
	WindowWidth  float32
	WindowHeight float32
	SpriteHeight float32
	Speed        float32
	Duration     float32
	Ease         string
}

// NewPolicy builds the policy for mode.
func NewPolicy(mode Mode, p Params) (Policy, error) {
	switch mode {
	case ModeKeyboard:
		return Keyboard{Speed: p.Speed}, nil
	case ModeBounce:
		return Bounce{WindowWidth: p.WindowWidth, WindowHeight: p.WindowHeight, SpriteHeight: p.SpriteHeight}, nil
	case ModeTween:
		if p.Duration <= 0 {
			return nil, fmt.Errorf("tween duration must be positive, got %v", p.Duration)
		}
		fn, err := EaseByName(p.Ease)
		if err != nil {
			return nil, err
		}
		return NewTween(p.WindowWidth, p.WindowHeight, p.SpriteHeight, p.Duration, fn), nil
	case ModeStatic:
		return Static{}, nil
	}
	return nil, fmt.Errorf("unknown animation mode %q", mode)
}

// Static leaves the position unchanged.
type Static struct{}

func (Static) Advance(pos mgl32.Vec2, _ Frame) mgl32.Vec2 { return pos }

// Flash returns the grey tint |sin(seconds)| with full alpha.
func Flash(seconds float64) mgl32.Vec4 {
	g := float32(math.Abs(math.Sin(seconds)))
	return mgl32.Vec4{g, g, g, 1}
}
