//go:build js && wasm

// Command wasm-demo draws the instanced grid into the page's canvas. Escape
// stops the loop and releases the GPU objects.
//
//	GOOS=js GOARCH=wasm go build -o cmd/wasm-demo/web/main.wasm ./cmd/wasm-demo
package main

import (
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
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	if err := run(config.Default(), logger); err != nil {
		logger.Error("setup failed", "err", err)
		return
	}
	select {}
}

func run(conf config.Demo, logger *slog.Logger) (err error) {
	canvas, err := platform.LoadCanvas(conf.Canvas)
	if err != nil {
		return err
	}
	var cleanup []func()
	defer func() {
		if err == nil {
			return
		}
		for i := len(cleanup) - 1; i >= 0; i-- {
			cleanup[i]()
		}
	}()
	cleanup = append(cleanup, canvas.Close)

	gl, err := canvas.WebGL2()
	if err != nil {
		return err
	}
	dev, err := device.NewWebGL(gl)
	if err != nil {
		return err
	}
	ctx, err := gfx.NewContext(dev)
	if err != nil {
		return err
	}
	ctx.Viewport(canvas.Size())

	clock, err := platform.NewPerformanceClock()
	if err != nil {
		return err
	}
	scene, err := demo.NewScene(ctx, clock, conf, demo.WithLogger(logger))
	if err != nil {
		return err
	}
	cleanup = append(cleanup, scene.Close)

	frames, err := platform.NewAnimationFrames()
	if err != nil {
		return err
	}
	cleanup = append(cleanup, frames.Release)

	canvas.OnEvent(func(e platform.Event) {
		switch e := e.(type) {
		case platform.Resize:
			scene.Resize(e.Width, e.Height)
		case platform.KeyPress:
			if e.Label == "Escape" {
				frames.Release()
				scene.Close()
				canvas.Close()
			}
		case platform.DestroyNotify:
			logger.Info("demo stopped")
		}
	})
	return frame.NewScheduler(clock, frames, scene.Frame, frame.WithLogger(logger)).Start()
}
