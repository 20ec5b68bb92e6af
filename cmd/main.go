package main

import (
	"flag"
	"fmt"
	"image"
	"log"
	"runtime"

	"github.com/richinsley/gosprite/animation"
	"github.com/richinsley/gosprite/geometry"
	"github.com/richinsley/gosprite/glfwcontext"
	"github.com/richinsley/gosprite/loop"
	"github.com/richinsley/gosprite/options"
	"github.com/richinsley/gosprite/renderer"
	"github.com/richinsley/gosprite/texture"
)

func runSprite(cfg options.Config) error {
	if err := glfwcontext.InitGraphics(); err != nil {
		return err
	}
	defer glfwcontext.TerminateGraphics()

	ctx, err := glfwcontext.New(cfg.Window)
	if err != nil {
		return err
	}
	defer ctx.Shutdown()

	shape := geometry.Shape(cfg.Sprite.Shape)
	mesh, err := geometry.ForShape(shape)
	if err != nil {
		return err
	}

	var img *image.RGBA
	if shape.Textured() && cfg.Sprite.Texture != "" {
		log.Printf("Loading texture %s", cfg.Sprite.Texture)
		if img, err = texture.Load(cfg.Sprite.Texture); err != nil {
			return err
		}
	} else {
		img = texture.White()
	}

	r, err := renderer.NewRenderer(ctx, mesh, img)
	if err != nil {
		return err
	}
	defer r.Shutdown()

	width, height := float32(cfg.Window.Width), float32(cfg.Window.Height)
	policy, err := animation.NewPolicy(animation.Mode(cfg.Animation.Mode), animation.Params{
		WindowWidth:  width,
		WindowHeight: height,
		SpriteHeight: cfg.Sprite.Height,
		Speed:        cfg.Animation.Speed,
		Duration:     cfg.Animation.Duration,
		Ease:         cfg.Animation.Ease,
	})
	if err != nil {
		return err
	}

	l := loop.New(loop.Config{
		WindowWidth:  width,
		WindowHeight: height,
		SpriteWidth:  cfg.Sprite.Width,
		SpriteHeight: cfg.Sprite.Height,
		Near:         cfg.Near,
		Far:          cfg.Far,
		ClearColor:   cfg.Clear(),
		Flash:        cfg.Animation.Flash,
	}, ctx, r, r.Bindings(), policy)

	log.Printf("Starting sprite loop (%s mode, %s shape)...", cfg.Animation.Mode, cfg.Sprite.Shape)
	err = l.Run()
	log.Printf("Rendered %d frames", l.Frames())
	return err
}

func init() {
	runtime.LockOSThread()
}

func main() {
	opts := options.NewSpriteOptions(flag.CommandLine)
	flag.Parse()

	if *opts.Help {
		fmt.Println("Sprite frame loop")
		fmt.Printf("Ease functions: %v\n", animation.EaseNames())
		flag.PrintDefaults()
		return
	}

	cfg, err := opts.Resolve(flag.CommandLine)
	if err != nil {
		log.Fatalf("Error loading options: %v", err)
	}

	if err := runSprite(cfg); err != nil {
		log.Fatalf("Sprite loop failed: %v", err)
	}
}
