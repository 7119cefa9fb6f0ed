package gfx_test

import (
	"errors"
	"testing"

	"github.com/kjkrol/instancegl/pkg/gfx"
	"github.com/kjkrol/instancegl/pkg/gfx/gfxtest"
)

func TestStrideAndOffsets(t *testing.T) {
	cases := []struct {
		name    string
		attribs []gfx.Attrib
		stride  int32
		offsets []int32
	}{
		{"empty", nil, 0, []int32{}},
		{"single vec2", []gfx.Attrib{gfx.VecF32{Location: 0, Len: 2}}, 8, []int32{0}},
		{
			"instance layout",
			[]gfx.Attrib{
				gfx.VecF32{Location: 1, Len: 3},
				gfx.VecF32{Location: 2, Len: 4},
				gfx.MatF32{Location: 3, Rows: 2, Columns: 2},
			},
			44, []int32{0, 12, 28},
		},
		{
			"padding and ints",
			[]gfx.Attrib{
				gfx.VecI32{Location: 0, Len: 1},
				gfx.Offset{Bytes: 6},
				gfx.MatF32{Location: 1, Rows: 3, Columns: 3},
				gfx.VecF32{Location: 4, Len: 1},
			},
			50, []int32{0, 4, 10, 46},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := gfx.Stride(tc.attribs); got != tc.stride {
				t.Fatalf("stride = %d, want %d", got, tc.stride)
			}
			got := gfx.Offsets(tc.attribs)
			if len(got) != len(tc.offsets) {
				t.Fatalf("offsets = %v, want %v", got, tc.offsets)
			}
			for i := range got {
				if got[i] != tc.offsets[i] {
					t.Fatalf("offsets = %v, want %v", got, tc.offsets)
				}
			}
		})
	}
}

func newContext(t *testing.T) (*gfx.Context, *gfxtest.Recorder) {
	t.Helper()
	rec := gfxtest.NewRecorder()
	ctx, err := gfx.NewContext(rec)
	if err != nil {
		t.Fatalf("NewContext: %v", err)
	}
	return ctx, rec
}

func TestLinkMatrixPerDivisor(t *testing.T) {
	for _, instanced := range []bool{false, true} {
		ctx, rec := newContext(t)
		buffer, err := ctx.CreateBuffer()
		if err != nil {
			t.Fatal(err)
		}
		vao, err := ctx.CreateVertexArray()
		if err != nil {
			t.Fatal(err)
		}

		mat := gfx.MatF32{Location: 3, Rows: 3, Columns: 4}
		attribs := []gfx.Attrib{gfx.VecF32{Location: 0, Len: 2}, mat}
		link := vao.LinkBuffer
		wantDivisor := uint32(0)
		if instanced {
			link = vao.LinkInstanceBuffer
			wantDivisor = 1
		}
		if err := link(buffer, attribs...); err != nil {
			t.Fatal(err)
		}

		locations := rec.VAOs[vao.Handle()]
		if len(locations) != 4 {
			t.Fatalf("instanced=%v: %d locations configured, want 4", instanced, len(locations))
		}
		for row := uint32(0); row < 3; row++ {
			state := rec.Attrib(vao.Handle(), 3+row)
			if state == nil || !state.Enabled {
				t.Fatalf("instanced=%v: location %d not enabled", instanced, 3+row)
			}
			if state.Size != 4 || state.Divisor != wantDivisor || state.Stride != 56 {
				t.Fatalf("instanced=%v: location %d = %+v", instanced, 3+row, *state)
			}
			if want := int32(8 + row*16); state.Offset != want {
				t.Fatalf("instanced=%v: location %d offset %d, want %d", instanced, 3+row, state.Offset, want)
			}
			if state.Buffer != buffer.Handle() {
				t.Fatalf("instanced=%v: location %d reads buffer %d", instanced, 3+row, state.Buffer)
			}
		}
		if len(rec.Errors) != 0 {
			t.Fatalf("device errors: %v", rec.Errors)
		}
	}
}

func TestLinkIntegerAndPadding(t *testing.T) {
	ctx, rec := newContext(t)
	buffer, _ := ctx.CreateBuffer()
	vao, _ := ctx.CreateVertexArray()

	err := vao.LinkBuffer(buffer, gfx.Offset{Bytes: 4}, gfx.VecI32{Location: 5, Len: 2})
	if err != nil {
		t.Fatal(err)
	}
	state := rec.Attrib(vao.Handle(), 5)
	if state == nil || !state.Integer || state.Offset != 4 || state.Stride != 12 {
		t.Fatalf("int attribute = %+v", state)
	}
	if got := len(rec.VAOs[vao.Handle()]); got != 1 {
		t.Fatalf("padding configured locations: %d", got)
	}
}

func TestLinkRejectsOverlappingLocations(t *testing.T) {
	ctx, rec := newContext(t)
	buffer, _ := ctx.CreateBuffer()
	vao, _ := ctx.CreateVertexArray()

	err := vao.LinkBuffer(buffer, gfx.MatF32{Location: 1, Rows: 2, Columns: 2}, gfx.VecF32{Location: 2, Len: 1})
	if !errors.Is(err, gfx.ErrLayoutOverlap) {
		t.Fatalf("err = %v, want ErrLayoutOverlap", err)
	}
	if got := len(rec.VAOs[vao.Handle()]); got != 0 {
		t.Fatalf("rejected layout configured %d locations", got)
	}

	if err := vao.LinkBuffer(buffer, gfx.VecF32{Location: 0, Len: 2}); err != nil {
		t.Fatal(err)
	}
	if err := vao.LinkInstanceBuffer(buffer, gfx.VecF32{Location: 0, Len: 4}); !errors.Is(err, gfx.ErrLayoutOverlap) {
		t.Fatalf("second link over location 0: err = %v", err)
	}
}

func TestLinkRejectsInvalidAttributes(t *testing.T) {
	cases := []struct {
		name   string
		attrib gfx.Attrib
	}{
		{"nil", nil},
		{"empty vector", gfx.VecF32{Location: 0, Len: 0}},
		{"wide vector", gfx.VecF32{Location: 0, Len: 5}},
		{"negative int vector", gfx.VecI32{Location: 0, Len: -1}},
		{"negative rows", gfx.MatF32{Location: 0, Rows: -2, Columns: 2}},
		{"zero columns", gfx.MatF32{Location: 0, Rows: 2, Columns: 0}},
		{"negative padding", gfx.Offset{Bytes: -4}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ctx, rec := newContext(t)
			buffer, _ := ctx.CreateBuffer()
			vao, _ := ctx.CreateVertexArray()

			err := vao.LinkBuffer(buffer, gfx.VecF32{Location: 7, Len: 2}, tc.attrib)
			if !errors.Is(err, gfx.ErrInvalidAttribute) {
				t.Fatalf("err = %v, want ErrInvalidAttribute", err)
			}
			if got := len(rec.VAOs[vao.Handle()]); got != 0 {
				t.Fatalf("rejected layout configured %d locations", got)
			}
			// the rejected call claims nothing
			if err := vao.LinkBuffer(buffer, gfx.VecF32{Location: 7, Len: 2}); err != nil {
				t.Fatal(err)
			}
		})
	}
}
