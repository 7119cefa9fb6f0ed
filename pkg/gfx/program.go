package gfx

import (
	"fmt"
	"strings"
)

// Program is a linked vertex + fragment shader pair.
type Program struct {
	dev            Device
	handle         uint32
	vertexShader   uint32
	fragmentShader uint32
}

// CreateProgram compiles both stages and links them. On failure every object
// created along the way is released.
func (c *Context) CreateProgram(vertexSource, fragmentSource string) (*Program, error) {
	vertexShader, err := compileShader(c.dev, VertexShader, vertexSource)
	if err != nil {
		return nil, err
	}
	fragmentShader, err := compileShader(c.dev, FragmentShader, fragmentSource)
	if err != nil {
		c.dev.DeleteShader(vertexShader)
		return nil, err
	}

	handle, err := linkProgram(c.dev, vertexShader, fragmentShader)
	if err != nil {
		c.dev.DeleteShader(vertexShader)
		c.dev.DeleteShader(fragmentShader)
		return nil, err
	}

	return &Program{
		dev:            c.dev,
		handle:         handle,
		vertexShader:   vertexShader,
		fragmentShader: fragmentShader,
	}, nil
}

func (p *Program) Handle() uint32 {
	return p.handle
}

func (p *Program) Use() {
	p.dev.UseProgram(p.handle)
}

// SetUniform assigns value to the named uniform of p. Names that do not
// resolve to an active uniform are ignored.
func (p *Program) SetUniform(name string, value Uniform) {
	p.Use()
	location, ok := p.dev.UniformLocation(p.handle, name)
	if !ok {
		return
	}
	value.apply(p.dev, location)
}

func (p *Program) Close() {
	if p.handle == 0 {
		return
	}
	p.dev.DeleteProgram(p.handle)
	p.dev.DeleteShader(p.vertexShader)
	p.dev.DeleteShader(p.fragmentShader)
	p.handle = 0
	p.vertexShader = 0
	p.fragmentShader = 0
}

func compileShader(dev Device, stage ShaderStage, source string) (uint32, error) {
	shader := dev.CreateShader(stage)
	if shader == 0 {
		return 0, fmt.Errorf("%w: unable to create %s shader", ErrResourceUnavailable, stage)
	}
	if dev.CompileShader(shader, source) {
		return shader, nil
	}

	log := strings.TrimSpace(dev.ShaderInfoLog(shader))
	dev.DeleteShader(shader)
	if log == "" {
		return 0, fmt.Errorf("%w: unknown error compiling %s shader", ErrShaderCompile, stage)
	}
	return 0, fmt.Errorf("%w: could not compile %s shader:\n%s", ErrShaderCompile, stage, log)
}

func linkProgram(dev Device, vertexShader, fragmentShader uint32) (uint32, error) {
	program := dev.CreateProgram()
	if program == 0 {
		return 0, fmt.Errorf("%w: unable to create program", ErrResourceUnavailable)
	}
	dev.AttachShader(program, vertexShader)
	dev.AttachShader(program, fragmentShader)
	if dev.LinkProgram(program) {
		return program, nil
	}

	log := strings.TrimSpace(dev.ProgramInfoLog(program))
	dev.DeleteProgram(program)
	if log == "" {
		return 0, fmt.Errorf("%w: unknown error linking program", ErrShaderLink)
	}
	return 0, fmt.Errorf("%w: could not link shaders: %s", ErrShaderLink, log)
}
