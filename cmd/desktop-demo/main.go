//go:build !js

// Command desktop-demo draws the instanced grid in a GLFW window. Escape
// closes the window.
package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/kjkrol/instancegl/internal/config"
	"github.com/kjkrol/instancegl/internal/demo"
	"github.com/kjkrol/instancegl/internal/device"
	"github.com/kjkrol/instancegl/internal/platform"
	"github.com/kjkrol/instancegl/pkg/frame"
	"github.com/kjkrol/instancegl/pkg/gfx"
)

func main() {
	configPath := flag.String("config", "", "YAML file overriding the default demo settings")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	conf, err := config.Load(*configPath)
	if err != nil {
		logger.Error("load config", "err", err)
		os.Exit(1)
	}
	if err := run(conf, logger); err != nil {
		logger.Error("setup failed", "err", err)
		os.Exit(1)
	}
}

func run(conf config.Demo, logger *slog.Logger) error {
	window, err := platform.NewWindow(platform.WindowConfig{
		Width:  conf.Window.Width,
		Height: conf.Window.Height,
		Title:  conf.Window.Title,
		VSync:  conf.Window.VSync,
	})
	if err != nil {
		return err
	}
	defer window.Close()

	dev, err := device.NewGL()
	if err != nil {
		return err
	}
	logger.Info("opengl", "version", dev.Version())

	ctx, err := gfx.NewContext(dev)
	if err != nil {
		return err
	}
	ctx.Viewport(window.Size())

	clock := frame.NewSystemClock()
	scene, err := demo.NewScene(ctx, clock, conf, demo.WithLogger(logger))
	if err != nil {
		return err
	}
	defer scene.Close()

	scheduler := frame.NewScheduler(clock, window, scene.Frame, frame.WithLogger(logger))
	window.OnEvent(func(e platform.Event) {
		switch e := e.(type) {
		case platform.Resize:
			scene.Resize(e.Width, e.Height)
		case platform.KeyPress:
			if e.Label == "Escape" {
				window.SetShouldClose()
			}
		case platform.DestroyNotify:
			logger.Info("window closed", "frames", scheduler.Count())
		}
	})

	if err := scheduler.Start(); err != nil {
		return err
	}
	window.Run()
	return nil
}
