package gfx

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// Context is the entry point to a GPU device. It creates the objects that
// draw through the device and owns no binding state of its own.
type Context struct {
	dev Device
}

func NewContext(dev Device) (*Context, error) {
	if dev == nil {
		return nil, ErrContextUnavailable
	}
	dev.EnableDepthTest()
	return &Context{dev: dev}, nil
}

func (c *Context) CreateBuffer() (*Buffer, error) {
	handle := c.dev.CreateBuffer()
	if handle == 0 {
		return nil, fmt.Errorf("%w: unable to create buffer", ErrResourceUnavailable)
	}
	return &Buffer{dev: c.dev, handle: handle}, nil
}

// CreateStaticBuffer creates a buffer and uploads data once with static usage.
func (c *Context) CreateStaticBuffer(data []float32) (*Buffer, error) {
	buffer, err := c.CreateBuffer()
	if err != nil {
		return nil, err
	}
	buffer.AllocateStatic(data)
	return buffer, nil
}

func (c *Context) CreateVertexArray() (*VertexArray, error) {
	handle := c.dev.CreateVertexArray()
	if handle == 0 {
		return nil, fmt.Errorf("%w: unable to create vertex array", ErrResourceUnavailable)
	}
	return &VertexArray{dev: c.dev, handle: handle}, nil
}

// CreateInstancedProgram builds the instanced triangle program from the
// embedded shader bodies, prefixed with the device's GLSL header.
func (c *Context) CreateInstancedProgram() (*Program, error) {
	header := c.dev.ShaderHeader()
	return c.CreateProgram(
		BuildShaderSource(header, instancedVertexSource),
		BuildShaderSource(header, instancedFragmentSource),
	)
}

func (c *Context) Clear(rgba mgl32.Vec4) {
	c.dev.ClearColor(rgba[0], rgba[1], rgba[2], rgba[3])
	c.dev.Clear()
}

func (c *Context) Viewport(width, height int) {
	c.dev.Viewport(0, 0, int32(width), int32(height))
}
