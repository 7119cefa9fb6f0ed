// Package demo draws an animated grid of colored squares, one instance per
// cell, through a single instanced mesh.
package demo

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/kjkrol/instancegl/internal/config"
	"github.com/kjkrol/instancegl/pkg/frame"
	"github.com/kjkrol/instancegl/pkg/gfx"
)

// Square is two triangles covering [-0.5, 0.5] on both axes.
var Square = []float32{
	-0.5, -0.5, -0.5, 0.5, 0.5, -0.5,
	0.5, 0.5, 0.5, -0.5, -0.5, 0.5,
}

// InstanceSink receives instance records; *gfx.Mesh is one.
type InstanceSink interface {
	AddInstance(*gfx.Instance)
}

type Grid struct {
	Columns int
	Rows    int
	// Margin bounds cell positions to [-Margin, Margin] in clip space.
	Margin float32
	Depth  float32
	Scale  float32

	instance gfx.Instance
}

func NewGrid(conf config.Grid) *Grid {
	return &Grid{
		Columns: conf.Columns,
		Rows:    conf.Rows,
		Margin:  conf.Margin,
		Depth:   conf.Depth,
		Scale:   conf.Scale,
	}
}

// Len is the number of instances Populate emits.
func (g *Grid) Len() int {
	return g.Columns * g.Rows
}

// Populate emits one instance per cell, colored by the frame's elapsed time.
func (g *Grid) Populate(sink InstanceSink, t frame.Time) {
	seconds := float32(t.Seconds())
	halfWidth := g.half(g.Columns)
	halfHeight := g.half(g.Rows)
	matrix := mgl32.Mat2{g.Scale, 0, 0, g.Scale}

	inst := &g.instance
	for x := 0; x < g.Columns; x++ {
		fx := float32(x)
		for y := 0; y < g.Rows; y++ {
			fy := float32(y)
			inst.Position(mgl32.Vec3{
				g.coordinate(fx, halfWidth),
				g.coordinate(fy, halfHeight),
				g.Depth,
			}).Color(mgl32.Vec4{
				sin(5*seconds + fx/8 + fy/9 + 1),
				sin(10*seconds - fx/10 + fy/10),
				-sin(-6*seconds + fx/10 + fy/4),
				1,
			}).Matrix(matrix)
			sink.AddInstance(inst)
		}
	}
}

// half is the cell count that spans one Margin, so the first and last cells
// land exactly on -Margin and Margin.
func (g *Grid) half(cells int) float32 {
	return (float32(cells)/2 - 0.5) / g.Margin
}

func (g *Grid) coordinate(i, half float32) float32 {
	if half == 0 {
		return 0
	}
	return i/half - g.Margin
}

func sin(x float32) float32 {
	return float32(math.Sin(float64(x)))
}
