package animation

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// BounceOffset scales |sin(seconds)| into [0, windowHeight-spriteHeight].
func BounceOffset(seconds float64, windowHeight, spriteHeight float32) float32 {
	return float32(math.Abs(math.Sin(seconds))) * (windowHeight - spriteHeight)
}

// Bounce moves the sprite up and down the horizontal center of the window.
// At offset zero the sprite's bottom edge rests on the window's bottom edge.
type Bounce struct {
	WindowWidth  float32
	WindowHeight float32
	SpriteHeight float32
}

func (b Bounce) Advance(_ mgl32.Vec2, f Frame) mgl32.Vec2 {
	y := b.SpriteHeight/2 + BounceOffset(f.Seconds, b.WindowHeight, b.SpriteHeight)
	return mgl32.Vec2{b.WindowWidth / 2, y}
}
