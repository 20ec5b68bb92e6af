package animation

import (
	"fmt"
	"sort"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

var easings = map[string]ease.TweenFunc{
	"linear":       ease.Linear,
	"inquad":       ease.InQuad,
	"outquad":      ease.OutQuad,
	"inoutquad":    ease.InOutQuad,
	"incubic":      ease.InCubic,
	"outcubic":     ease.OutCubic,
	"inoutcubic":   ease.InOutCubic,
	"insine":       ease.InSine,
	"outsine":      ease.OutSine,
	"inoutsine":    ease.InOutSine,
	"inexpo":       ease.InExpo,
	"outexpo":      ease.OutExpo,
	"inoutexpo":    ease.InOutExpo,
	"inback":       ease.InBack,
	"outback":      ease.OutBack,
	"inoutback":    ease.InOutBack,
	"inbounce":     ease.InBounce,
	"outbounce":    ease.OutBounce,
	"inoutbounce":  ease.InOutBounce,
	"inelastic":    ease.InElastic,
	"outelastic":   ease.OutElastic,
	"inoutelastic": ease.InOutElastic,
}

// EaseByName looks up an easing function. Names are case-insensitive and
// may contain dashes or underscores ("in-out-sine").
func EaseByName(name string) (ease.TweenFunc, error) {
	key := strings.ToLower(strings.NewReplacer("-", "", "_", "").Replace(name))
	if fn, ok := easings[key]; ok {
		return fn, nil
	}
	return nil, fmt.Errorf("unknown easing %q (known: %s)", name, strings.Join(EaseNames(), ", "))
}

// EaseNames returns the accepted easing names, sorted.
func EaseNames() []string {
	names := make([]string, 0, len(easings))
	for n := range easings {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Tween eases the sprite between its bottom and top resting positions,
// reversing direction each time an end is reached.
type Tween struct {
	x        float32
	low      float32
	high     float32
	duration float32
	easing   ease.TweenFunc

	tween   *gween.Tween
	rising  bool
	last    float64
	started bool
}

// NewTween starts at the bottom position heading up.
func NewTween(windowWidth, windowHeight, spriteHeight, duration float32, easing ease.TweenFunc) *Tween {
	t := &Tween{
		x:        windowWidth / 2,
		low:      spriteHeight / 2,
		high:     windowHeight - spriteHeight/2,
		duration: duration,
		easing:   easing,
		rising:   true,
	}
	t.tween = t.leg()
	return t
}

func (t *Tween) leg() *gween.Tween {
	if t.rising {
		return gween.New(t.low, t.high, t.duration, t.easing)
	}
	return gween.New(t.high, t.low, t.duration, t.easing)
}

// Advance moves the tween forward by the time elapsed since the previous
// call. Time left over when a leg finishes is dropped.
func (t *Tween) Advance(_ mgl32.Vec2, f Frame) mgl32.Vec2 {
	var dt float32
	if t.started && f.Seconds > t.last {
		dt = float32(f.Seconds - t.last)
	}
	t.last = f.Seconds
	t.started = true

	y, done := t.tween.Update(dt)
	if done {
		t.rising = !t.rising
		t.tween = t.leg()
	}
	return mgl32.Vec2{t.x, y}
}
