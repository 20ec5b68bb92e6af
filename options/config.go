package options

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/richinsley/gosprite/animation"
	"github.com/richinsley/gosprite/geometry"
	"golang.org/x/image/colornames"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Window     WindowConfig    `yaml:"window"`
	Sprite     SpriteConfig    `yaml:"sprite"`
	Animation  AnimationConfig `yaml:"animation"`
	ClearColor string          `yaml:"clear_color"`
	Near       float32         `yaml:"near"`
	Far        float32         `yaml:"far"`
}

type WindowConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
	VSync  bool   `yaml:"vsync"`
}

type SpriteConfig struct {
	Width   float32 `yaml:"width"`
	Height  float32 `yaml:"height"`
	Shape   string  `yaml:"shape"`
	Texture string  `yaml:"texture"`
}

type AnimationConfig struct {
	Mode     string  `yaml:"mode"`
	Speed    float32 `yaml:"speed"`
	Ease     string  `yaml:"ease"`
	Duration float32 `yaml:"duration"`
	Flash    bool    `yaml:"flash"`
}

// Default returns the kitten keyboard setup: a 640x480 window and a
// 266x266 sprite moved 6 pixels per frame.
func Default() Config {
	return Config{
		Window: WindowConfig{
			Width:  640,
			Height: 480,
			Title:  "gosprite",
			VSync:  true,
		},
		Sprite: SpriteConfig{
			Width:  266,
			Height: 266,
			Shape:  string(geometry.ShapeQuad),
		},
		Animation: AnimationConfig{
			Mode:     string(animation.ModeKeyboard),
			Speed:    6,
			Ease:     "inoutsine",
			Duration: 1,
		},
		ClearColor: "0.59,0.93,0.59,1",
		Near:       -1,
		Far:        10,
	}
}

// Load reads a YAML config file over the defaults. Keys that do not match
// a known option are an error.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("options: load %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("options: unmarshal %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML over the defaults.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports every problem found in the configuration.
func (c Config) Validate() error {
	var errs []error
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height))
	}
	if !finite(c.Sprite.Width) || !finite(c.Sprite.Height) || c.Sprite.Width <= 0 || c.Sprite.Height <= 0 {
		errs = append(errs, fmt.Errorf("sprite size must be positive and finite, got %vx%v", c.Sprite.Width, c.Sprite.Height))
	}
	if !knownShape(c.Sprite.Shape) {
		errs = append(errs, fmt.Errorf("unknown shape %q", c.Sprite.Shape))
	}
	if c.Sprite.Texture != "" && !geometry.Shape(c.Sprite.Shape).Textured() {
		errs = append(errs, fmt.Errorf("shape %q does not use a texture", c.Sprite.Shape))
	}

	mode := animation.Mode(c.Animation.Mode)
	if !knownMode(mode) {
		errs = append(errs, fmt.Errorf("unknown animation mode %q", c.Animation.Mode))
	}
	if !finite(c.Animation.Speed) || c.Animation.Speed < 0 {
		errs = append(errs, fmt.Errorf("speed must be finite and not negative, got %v", c.Animation.Speed))
	}
	if mode == animation.ModeTween {
		if !finite(c.Animation.Duration) || c.Animation.Duration <= 0 {
			errs = append(errs, fmt.Errorf("tween duration must be positive and finite, got %v", c.Animation.Duration))
		}
		if _, err := animation.EaseByName(c.Animation.Ease); err != nil {
			errs = append(errs, err)
		}
	}
	if (mode == animation.ModeBounce || mode == animation.ModeTween) && c.Sprite.Height > float32(c.Window.Height) {
		errs = append(errs, fmt.Errorf("sprite height %v exceeds window height %d", c.Sprite.Height, c.Window.Height))
	}

	if !finite(c.Near) || !finite(c.Far) {
		errs = append(errs, fmt.Errorf("near and far planes must be finite, got %v and %v", c.Near, c.Far))
	} else if c.Near == c.Far {
		errs = append(errs, fmt.Errorf("near and far planes must differ, both are %v", c.Near))
	}
	if _, err := ParseColor(c.ClearColor); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Clear returns the parsed clear color. Call after Validate.
func (c Config) Clear() [4]float32 {
	rgba, _ := ParseColor(c.ClearColor)
	return rgba
}

func finite(v float32) bool {
	f := float64(v)
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func knownShape(s string) bool {
	for _, shape := range geometry.Shapes {
		if string(shape) == s {
			return true
		}
	}
	return false
}

func knownMode(m animation.Mode) bool {
	for _, mode := range animation.Modes {
		if mode == m {
			return true
		}
	}
	return false
}

// ParseColor accepts "r,g,b" or "r,g,b,a" with components in [0,1],
// "#rrggbb", "#rrggbbaa" or an SVG color name such as "palegreen".
func ParseColor(s string) ([4]float32, error) {
	s = strings.TrimSpace(s)
	if c, ok := colornames.Map[strings.ToLower(s)]; ok {
		return [4]float32{float32(c.R) / 255, float32(c.G) / 255, float32(c.B) / 255, float32(c.A) / 255}, nil
	}

	if strings.HasPrefix(s, "#") {
		hex := s[1:]
		if len(hex) != 6 && len(hex) != 8 {
			return [4]float32{}, fmt.Errorf("color %q: want #rrggbb or #rrggbbaa", s)
		}
		if len(hex) == 6 {
			hex += "ff"
		}
		v, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return [4]float32{}, fmt.Errorf("color %q: %w", s, err)
		}
		return [4]float32{
			float32(v>>24&0xff) / 255,
			float32(v>>16&0xff) / 255,
			float32(v>>8&0xff) / 255,
			float32(v&0xff) / 255,
		}, nil
	}

	parts := strings.Split(s, ",")
	if len(parts) != 3 && len(parts) != 4 {
		return [4]float32{}, fmt.Errorf("color %q: want 3 or 4 components", s)
	}
	rgba := [4]float32{0, 0, 0, 1}
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 32)
		if err != nil {
			return [4]float32{}, fmt.Errorf("color %q: %w", s, err)
		}
		if v < 0 || v > 1 {
			return [4]float32{}, fmt.Errorf("color %q: component %v outside [0,1]", s, v)
		}
		rgba[i] = float32(v)
	}
	return rgba, nil
}
