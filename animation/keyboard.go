package animation

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/richinsley/gosprite/input"
)

// Step moves pos by speed along each axis that has exactly one of its two
// keys held. Opposite keys held together cancel. The result is not clamped
// to the window.
func Step(pos mgl32.Vec2, in input.State, speed float32) mgl32.Vec2 {
	return mgl32.Vec2{
		pos.X() + axis(in.Left, in.Right)*speed,
		pos.Y() + axis(in.Down, in.Up)*speed,
	}
}

func axis(negative, positive bool) float32 {
	switch {
	case negative && !positive:
		return -1
	case positive && !negative:
		return 1
	}
	return 0
}

// Keyboard moves the sprite a fixed distance per frame from the held keys.
type Keyboard struct {
	Speed float32
}

func (k Keyboard) Advance(pos mgl32.Vec2, f Frame) mgl32.Vec2 {
	return Step(pos, f.Input, k.Speed)
}
