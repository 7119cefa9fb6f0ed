package demo

import (
	"log/slog"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/kjkrol/instancegl/internal/config"
	"github.com/kjkrol/instancegl/pkg/frame"
	"github.com/kjkrol/instancegl/pkg/gfx"
)

// Scene owns the GPU objects of the demo and draws one frame per call.
type Scene struct {
	ctx      *gfx.Context
	program  *gfx.Program
	mesh     *gfx.Mesh
	grid     *Grid
	clock    frame.Clock
	clear    mgl32.Vec4
	logEvery uint64
	logger   *slog.Logger
}

type Option func(*Scene)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Scene) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewScene builds the instanced program and the square mesh on ctx.
func NewScene(ctx *gfx.Context, clock frame.Clock, conf config.Demo, opts ...Option) (*Scene, error) {
	program, err := ctx.CreateInstancedProgram()
	if err != nil {
		return nil, err
	}
	mesh, err := ctx.CreateMesh(program, Square, gfx.WithInstanceCapacity(conf.InstanceCapacity))
	if err != nil {
		program.Close()
		return nil, err
	}
	s := &Scene{
		ctx:      ctx,
		program:  program,
		mesh:     mesh,
		grid:     NewGrid(conf.Grid),
		clock:    clock,
		clear:    mgl32.Vec4(conf.Clear),
		logEvery: conf.LogEvery,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Frame clears the surface, rebuilds every instance record and draws them.
func (s *Scene) Frame(t frame.Time) error {
	s.ctx.Clear(s.clear)

	start := s.clock.Now()
	s.grid.Populate(s.mesh, t)
	afterSetup := s.clock.Now()

	s.mesh.Draw()

	if s.logEvery > 0 && t.Count%s.logEvery == 0 {
		s.logger.Info("frame stats",
			"frame", t.Count,
			"render_ms", ms(t.RenderAverage),
			"setup_ms", ms(afterSetup-start),
			"draw_ms", ms(s.clock.Now()-afterSetup),
			"fps", t.FPS,
		)
	}
	return nil
}

// Resize matches the viewport to a surface of width x height pixels.
func (s *Scene) Resize(width, height int) {
	s.ctx.Viewport(width, height)
}

func (s *Scene) Close() {
	s.mesh.Close()
	s.program.Close()
}

func ms(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
