package options

import (
	"flag"
	"fmt"
)

// Flag names accepted on the command line.
const (
	FlagConfig       = "config"
	FlagWidth        = "width"
	FlagHeight       = "height"
	FlagTitle        = "title"
	FlagVSync        = "vsync"
	FlagMode         = "mode"
	FlagShape        = "shape"
	FlagTexture      = "texture"
	FlagSpriteWidth  = "sprite-width"
	FlagSpriteHeight = "sprite-height"
	FlagSpeed        = "speed"
	FlagEase         = "ease"
	FlagDuration     = "duration"
	FlagFlash        = "flash"
	FlagClearColor   = "clear-color"
)

type SpriteOptions struct {
	ConfigFile   *string
	Help         *bool
	Width        *int
	Height       *int
	Title        *string
	VSync        *bool
	Mode         *string
	Shape        *string
	Texture      *string
	SpriteWidth  *float64
	SpriteHeight *float64
	Speed        *float64
	Ease         *string
	Duration     *float64
	Flash        *bool
	ClearColor   *string
}

// NewSpriteOptions binds the options to fs. Flag defaults mirror Default so
// the help text is accurate; only flags set explicitly override a config
// file.
func NewSpriteOptions(fs *flag.FlagSet) *SpriteOptions {
	d := Default()
	return &SpriteOptions{
		ConfigFile:   fs.String(FlagConfig, "", "Path to a YAML config file"),
		Help:         fs.Bool("help", false, "Show help message"),
		Width:        fs.Int(FlagWidth, d.Window.Width, "Window width"),
		Height:       fs.Int(FlagHeight, d.Window.Height, "Window height"),
		Title:        fs.String(FlagTitle, d.Window.Title, "Window title"),
		VSync:        fs.Bool(FlagVSync, d.Window.VSync, "Enable vsync"),
		Mode:         fs.String(FlagMode, d.Animation.Mode, "Animation mode: keyboard, bounce, tween or static"),
		Shape:        fs.String(FlagShape, d.Sprite.Shape, "Sprite shape: quad, square or triangle"),
		Texture:      fs.String(FlagTexture, d.Sprite.Texture, "Image file for the quad shape (png, jpeg, gif, bmp, webp)"),
		SpriteWidth:  fs.Float64(FlagSpriteWidth, float64(d.Sprite.Width), "Sprite width in pixels"),
		SpriteHeight: fs.Float64(FlagSpriteHeight, float64(d.Sprite.Height), "Sprite height in pixels"),
		Speed:        fs.Float64(FlagSpeed, float64(d.Animation.Speed), "Keyboard mode speed in pixels per frame"),
		Ease:         fs.String(FlagEase, d.Animation.Ease, "Tween mode easing function"),
		Duration:     fs.Float64(FlagDuration, float64(d.Animation.Duration), "Tween mode seconds per leg"),
		Flash:        fs.Bool(FlagFlash, d.Animation.Flash, "Flash the sprite with |sin t|"),
		ClearColor:   fs.String(FlagClearColor, d.ClearColor, "Clear color: r,g,b[,a], #rrggbb or a color name"),
	}
}

// Apply copies every flag for which set reports true into cfg.
func (o *SpriteOptions) Apply(cfg *Config, set func(name string) bool) {
	setters := []struct {
		name  string
		apply func()
	}{
		{FlagWidth, func() { cfg.Window.Width = *o.Width }},
		{FlagHeight, func() { cfg.Window.Height = *o.Height }},
		{FlagTitle, func() { cfg.Window.Title = *o.Title }},
		{FlagVSync, func() { cfg.Window.VSync = *o.VSync }},
		{FlagMode, func() { cfg.Animation.Mode = *o.Mode }},
		{FlagShape, func() { cfg.Sprite.Shape = *o.Shape }},
		{FlagTexture, func() { cfg.Sprite.Texture = *o.Texture }},
		{FlagSpriteWidth, func() { cfg.Sprite.Width = float32(*o.SpriteWidth) }},
		{FlagSpriteHeight, func() { cfg.Sprite.Height = float32(*o.SpriteHeight) }},
		{FlagSpeed, func() { cfg.Animation.Speed = float32(*o.Speed) }},
		{FlagEase, func() { cfg.Animation.Ease = *o.Ease }},
		{FlagDuration, func() { cfg.Animation.Duration = float32(*o.Duration) }},
		{FlagFlash, func() { cfg.Animation.Flash = *o.Flash }},
		{FlagClearColor, func() { cfg.ClearColor = *o.ClearColor }},
	}
	for _, s := range setters {
		if set(s.name) {
			s.apply()
		}
	}
}

// Resolve builds the effective configuration: defaults, then the config
// file if one was given, then explicitly set flags.
func (o *SpriteOptions) Resolve(fs *flag.FlagSet) (Config, error) {
	cfg := Default()
	if o.ConfigFile != nil && *o.ConfigFile != "" {
		var err error
		cfg, err = Load(*o.ConfigFile)
		if err != nil {
			return Config{}, err
		}
	}

	visited := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { visited[f.Name] = true })
	o.Apply(&cfg, func(name string) bool { return visited[name] })

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
