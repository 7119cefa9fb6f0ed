package gfx_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/kjkrol/instancegl/pkg/gfx"
	"github.com/kjkrol/instancegl/pkg/gfx/gfxtest"
)

var square = []float32{
	-0.5, -0.5, -0.5, 0.5, 0.5, -0.5,
	0.5, 0.5, 0.5, -0.5, -0.5, 0.5,
}

func newMesh(t *testing.T) (*gfx.Mesh, *gfx.Program, *gfxtest.Recorder) {
	t.Helper()
	ctx, rec := newContext(t)
	program, err := ctx.CreateInstancedProgram()
	if err != nil {
		t.Fatal(err)
	}
	mesh, err := ctx.CreateMesh(program, square, gfx.WithInstanceCapacity(64))
	if err != nil {
		t.Fatal(err)
	}
	return mesh, program, rec
}

func TestMeshGeometryValidation(t *testing.T) {
	ctx, _ := newContext(t)
	program, _ := ctx.CreateInstancedProgram()

	for _, n := range []int{0, 3, 9, 11, 13} {
		_, err := ctx.CreateMesh(program, make([]float32, n))
		if !errors.Is(err, gfx.ErrInvalidGeometry) {
			t.Fatalf("%d coordinates: err = %v", n, err)
		}
		if n == 11 {
			msg := err.Error()
			if !strings.Contains(msg, "multiple of 6") || !strings.Contains(msg, "found 11") {
				t.Fatalf("message %q does not name expected and found counts", msg)
			}
		}
	}

	mesh, err := ctx.CreateMesh(program, make([]float32, 12))
	if err != nil {
		t.Fatal(err)
	}
	if mesh.VertexCount() != 6 {
		t.Fatalf("vertex count = %d", mesh.VertexCount())
	}
}

func TestMeshDrawOncePerFrame(t *testing.T) {
	mesh, program, rec := newMesh(t)

	inst := gfx.NewInstance().
		Position(mgl32.Vec3{0.1, 0.2, 0.5}).
		Color(mgl32.Vec4{1, 0, 0, 1}).
		Matrix(mgl32.Mat2{0.005, 0, 0, 0.005})
	for i := 0; i < 3; i++ {
		mesh.AddInstance(inst)
	}
	if mesh.Pending() != 3 {
		t.Fatalf("pending = %d", mesh.Pending())
	}

	// leave something else bound; Draw must rebind its own objects
	rec.BindVertexArray(0)
	rec.UseProgram(0)
	mesh.Draw()

	if len(rec.Draws) != 1 {
		t.Fatalf("draws = %v", rec.Draws)
	}
	draw := rec.Draws[0]
	if draw.Instances != 3 || draw.Count != 6 || draw.First != 0 {
		t.Fatalf("draw = %+v", draw)
	}
	if draw.Program != program.Handle() || draw.VAO == 0 {
		t.Fatalf("draw bound program %d vao %d", draw.Program, draw.VAO)
	}
	if mesh.Pending() != 0 {
		t.Fatalf("pending after draw = %d", mesh.Pending())
	}

	mesh.Draw()
	if got := rec.Draws[1].Instances; got != 0 {
		t.Fatalf("empty draw instances = %d", got)
	}
	if len(rec.Errors) != 0 {
		t.Fatalf("device errors: %v", rec.Errors)
	}
}

func TestMeshLayout(t *testing.T) {
	_, _, rec := newMesh(t)

	var vao uint32
	for handle := range rec.VAOs {
		vao = handle
	}
	want := map[uint32]gfxtest.AttribState{
		0: {Size: 2, Stride: 8, Offset: 0, Divisor: 0},
		1: {Size: 3, Stride: 44, Offset: 0, Divisor: 1},
		2: {Size: 4, Stride: 44, Offset: 12, Divisor: 1},
		3: {Size: 2, Stride: 44, Offset: 28, Divisor: 1},
		4: {Size: 2, Stride: 44, Offset: 36, Divisor: 1},
	}
	for location, w := range want {
		got := rec.Attrib(vao, location)
		if got == nil || !got.Enabled {
			t.Fatalf("location %d not enabled", location)
		}
		if got.Size != w.Size || got.Stride != w.Stride || got.Offset != w.Offset || got.Divisor != w.Divisor {
			t.Fatalf("location %d = %+v, want %+v", location, *got, w)
		}
	}
}

func TestMeshUploadsInstanceRecords(t *testing.T) {
	mesh, _, rec := newMesh(t)

	a := gfx.NewInstance().Position(mgl32.Vec3{1, 2, 3}).Color(mgl32.Vec4{4, 5, 6, 7}).Matrix(mgl32.Mat2{8, 9, 10, 11})
	b := gfx.NewInstance().Position(mgl32.Vec3{-1, -2, -3})
	mesh.AddInstance(a)
	mesh.AddInstance(b)
	mesh.Draw()

	var data []float32
	for _, state := range rec.Buffers {
		if state.Usage == gfx.DynamicDraw {
			data = state.Data
		}
	}
	if len(data) != 2*gfx.InstanceFloats {
		t.Fatalf("uploaded %d floats", len(data))
	}
	for i, v := range a {
		if data[i] != v {
			t.Fatalf("record a = %v", data[:gfx.InstanceFloats])
		}
	}
	if data[gfx.InstanceFloats] != -1 {
		t.Fatalf("record b = %v", data[gfx.InstanceFloats:])
	}

	// fewer instances next frame: in-place overwrite, draw bounded by count
	mesh.AddInstance(b)
	mesh.Draw()
	if got := rec.Draws[1].Instances; got != 1 {
		t.Fatalf("second frame instances = %d", got)
	}
}

func TestMeshClose(t *testing.T) {
	mesh, program, rec := newMesh(t)
	mesh.Close()
	if len(rec.Buffers) != 0 || len(rec.VAOs) != 0 {
		t.Fatalf("leaked buffers=%v vaos=%v", rec.Buffers, rec.VAOs)
	}
	if _, ok := rec.Programs[program.Handle()]; !ok {
		t.Fatal("mesh closed the shared program")
	}
}

func TestMeshCreateFailureReleases(t *testing.T) {
	ctx, rec := newContext(t)
	program, _ := ctx.CreateInstancedProgram()
	rec.FailCreate["vertexArray"] = true

	if _, err := ctx.CreateMesh(program, square); !errors.Is(err, gfx.ErrResourceUnavailable) {
		t.Fatalf("err = %v", err)
	}
	if len(rec.Buffers) != 0 {
		t.Fatalf("leaked buffers %v", rec.Buffers)
	}
}
