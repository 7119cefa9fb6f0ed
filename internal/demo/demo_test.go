package demo

import (
	"bytes"
	"log/slog"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/kjkrol/instancegl/internal/config"
	"github.com/kjkrol/instancegl/pkg/frame"
	"github.com/kjkrol/instancegl/pkg/gfx"
	"github.com/kjkrol/instancegl/pkg/gfx/gfxtest"
)

type collector struct {
	records []gfx.Instance
}

func (c *collector) AddInstance(i *gfx.Instance) {
	c.records = append(c.records, *i)
}

type stepClock struct {
	now, step time.Duration
}

func (c *stepClock) Now() time.Duration {
	c.now += c.step
	return c.now
}

func TestGridPopulate(t *testing.T) {
	g := &Grid{Columns: 4, Rows: 3, Margin: 0.9, Depth: 0.5, Scale: 0.01}
	var c collector
	g.Populate(&c, frame.Time{Elapsed: 2 * time.Second})

	if len(c.records) != g.Len() || g.Len() != 12 {
		t.Fatalf("records = %d, want 12", len(c.records))
	}
	first := c.records[0]
	last := c.records[len(c.records)-1]
	if !near(first[0], -0.9) || !near(first[1], -0.9) {
		t.Fatalf("first position = %v", first[0:3])
	}
	if !near(last[0], 0.9) || !near(last[1], 0.9) {
		t.Fatalf("last position = %v", last[0:3])
	}
	for i, r := range c.records {
		if r[0] < -0.9-1e-5 || r[0] > 0.9+1e-5 || r[1] < -0.9-1e-5 || r[1] > 0.9+1e-5 {
			t.Fatalf("record %d outside margin: %v", i, r[0:2])
		}
		if r[2] != 0.5 || r[6] != 1 {
			t.Fatalf("record %d depth/alpha = %v/%v", i, r[2], r[6])
		}
		if r[7] != 0.01 || r[8] != 0 || r[9] != 0 || r[10] != 0.01 {
			t.Fatalf("record %d matrix = %v", i, r[7:11])
		}
	}

	// cell (0, 0) at t=2s
	if want := float32(math.Sin(11)); !near(first[3], want) {
		t.Fatalf("red = %v, want %v", first[3], want)
	}
	if want := float32(math.Sin(20)); !near(first[4], want) {
		t.Fatalf("green = %v, want %v", first[4], want)
	}
	if want := float32(-math.Sin(-12)); !near(first[5], want) {
		t.Fatalf("blue = %v, want %v", first[5], want)
	}
}

func TestGridSingleCell(t *testing.T) {
	g := &Grid{Columns: 1, Rows: 1, Margin: 0.95, Scale: 1}
	var c collector
	g.Populate(&c, frame.Time{})
	if len(c.records) != 1 || c.records[0][0] != 0 || c.records[0][1] != 0 {
		t.Fatalf("records = %v", c.records)
	}
}

func testConfig() config.Demo {
	conf := config.Default()
	conf.Grid.Columns = 5
	conf.Grid.Rows = 4
	conf.InstanceCapacity = 64
	conf.LogEvery = 2
	return conf
}

func TestSceneFrame(t *testing.T) {
	rec := gfxtest.NewRecorder()
	ctx, err := gfx.NewContext(rec)
	if err != nil {
		t.Fatal(err)
	}
	var logs bytes.Buffer
	scene, err := NewScene(ctx, &stepClock{step: time.Millisecond}, testConfig(),
		WithLogger(slog.New(slog.NewTextHandler(&logs, nil))))
	if err != nil {
		t.Fatal(err)
	}

	if err := scene.Frame(frame.Time{Count: 1}); err != nil {
		t.Fatal(err)
	}
	if len(rec.Draws) != 1 || rec.Draws[0].Instances != 20 || rec.Draws[0].Count != 6 {
		t.Fatalf("draws = %+v", rec.Draws)
	}
	if len(rec.Clears) != 1 || rec.Clears[0] != [4]float32{0, 0, 0, 1} {
		t.Fatalf("clears = %v", rec.Clears)
	}
	if logs.Len() != 0 {
		t.Fatalf("logged on frame 1: %s", logs.String())
	}

	if err := scene.Frame(frame.Time{Count: 2, RenderAverage: 4 * time.Millisecond}); err != nil {
		t.Fatal(err)
	}
	if len(rec.Draws) != 2 || rec.Draws[1].Instances != 20 {
		t.Fatalf("draws = %+v", rec.Draws)
	}
	out := logs.String()
	for _, want := range []string{"frame stats", "render_ms=4", "setup_ms=1", "draw_ms=1"} {
		if !strings.Contains(out, want) {
			t.Fatalf("log %q missing %q", out, want)
		}
	}
	if len(rec.Errors) != 0 {
		t.Fatalf("device errors: %v", rec.Errors)
	}
}

func TestSceneResizeAndClose(t *testing.T) {
	rec := gfxtest.NewRecorder()
	ctx, _ := gfx.NewContext(rec)
	scene, err := NewScene(ctx, frame.NewSystemClock(), testConfig())
	if err != nil {
		t.Fatal(err)
	}
	scene.Resize(640, 480)
	if rec.ViewportRect != [4]int32{0, 0, 640, 480} {
		t.Fatalf("viewport = %v", rec.ViewportRect)
	}
	scene.Close()
	if len(rec.Buffers) != 0 || len(rec.VAOs) != 0 || len(rec.Programs) != 0 || len(rec.Shaders) != 0 {
		t.Fatalf("leaked: buffers %v vaos %v programs %v shaders %v", rec.Buffers, rec.VAOs, rec.Programs, rec.Shaders)
	}
}

func TestSceneSetupFailure(t *testing.T) {
	rec := gfxtest.NewRecorder()
	rec.FailCreate["vertexArray"] = true
	ctx, _ := gfx.NewContext(rec)
	if _, err := NewScene(ctx, frame.NewSystemClock(), testConfig()); err == nil {
		t.Fatal("expected error")
	}
	if len(rec.Programs) != 0 || len(rec.Buffers) != 0 {
		t.Fatalf("leaked: programs %v buffers %v", rec.Programs, rec.Buffers)
	}
}

func near(a, b float32) bool {
	return math.Abs(float64(a-b)) < 1e-5
}
