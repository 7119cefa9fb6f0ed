//go:build !js

package device

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/kjkrol/instancegl/pkg/gfx"
)

const glHeader = "#version 330 core\n"

var _ gfx.Device = (*GL)(nil)

// GL implements gfx.Device on the OpenGL 3.3 core context current on the
// calling thread.
type GL struct{}

// NewGL loads the OpenGL entry points. A context must already be current.
func NewGL() (*GL, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("%w: %v", gfx.ErrContextUnavailable, err)
	}
	return &GL{}, nil
}

// Version reports the driver's GL version string.
func (d *GL) Version() string {
	return gl.GoStr(gl.GetString(gl.VERSION))
}

func glUsage(u gfx.Usage) uint32 {
	if u == gfx.StaticDraw {
		return gl.STATIC_DRAW
	}
	return gl.DYNAMIC_DRAW
}

func (d *GL) CreateBuffer() uint32 {
	var buffer uint32
	gl.GenBuffers(1, &buffer)
	return buffer
}

func (d *GL) BindBuffer(buffer uint32) {
	gl.BindBuffer(gl.ARRAY_BUFFER, buffer)
}

func (d *GL) BufferData(data []float32, usage gfx.Usage) {
	if len(data) == 0 {
		gl.BufferData(gl.ARRAY_BUFFER, 0, nil, glUsage(usage))
		return
	}
	gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, gl.Ptr(data), glUsage(usage))
}

func (d *GL) BufferSubData(byteOffset int, data []float32) {
	if len(data) == 0 {
		return
	}
	gl.BufferSubData(gl.ARRAY_BUFFER, byteOffset, len(data)*4, gl.Ptr(data))
}

func (d *GL) DeleteBuffer(buffer uint32) {
	gl.DeleteBuffers(1, &buffer)
}

func (d *GL) CreateVertexArray() uint32 {
	var vao uint32
	gl.GenVertexArrays(1, &vao)
	return vao
}

func (d *GL) BindVertexArray(vao uint32) {
	gl.BindVertexArray(vao)
}

func (d *GL) DeleteVertexArray(vao uint32) {
	gl.DeleteVertexArrays(1, &vao)
}

func (d *GL) VertexAttribPointer(location uint32, size, stride, offset int32) {
	gl.VertexAttribPointer(location, size, gl.FLOAT, false, stride, gl.PtrOffset(int(offset)))
}

func (d *GL) VertexAttribIPointer(location uint32, size, stride, offset int32) {
	gl.VertexAttribIPointer(location, size, gl.INT, stride, gl.PtrOffset(int(offset)))
}

func (d *GL) VertexAttribDivisor(location, divisor uint32) {
	gl.VertexAttribDivisor(location, divisor)
}

func (d *GL) EnableVertexAttribArray(location uint32) {
	gl.EnableVertexAttribArray(location)
}

func (d *GL) CreateShader(stage gfx.ShaderStage) uint32 {
	if stage == gfx.FragmentShader {
		return gl.CreateShader(gl.FRAGMENT_SHADER)
	}
	return gl.CreateShader(gl.VERTEX_SHADER)
}

func (d *GL) CompileShader(shader uint32, source string) bool {
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	return status != gl.FALSE
}

func (d *GL) ShaderInfoLog(shader uint32) string {
	var logLength int32
	gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
	if logLength == 0 {
		return ""
	}
	log := strings.Repeat("\x00", int(logLength+1))
	gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(log))
	return strings.TrimRight(log, "\x00")
}

func (d *GL) DeleteShader(shader uint32) {
	gl.DeleteShader(shader)
}

func (d *GL) CreateProgram() uint32 {
	return gl.CreateProgram()
}

func (d *GL) AttachShader(program, shader uint32) {
	gl.AttachShader(program, shader)
}

func (d *GL) LinkProgram(program uint32) bool {
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	return status != gl.FALSE
}

func (d *GL) ProgramInfoLog(program uint32) string {
	var logLength int32
	gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
	if logLength == 0 {
		return ""
	}
	log := strings.Repeat("\x00", int(logLength+1))
	gl.GetProgramInfoLog(program, logLength, nil, gl.Str(log))
	return strings.TrimRight(log, "\x00")
}

func (d *GL) UseProgram(program uint32) {
	gl.UseProgram(program)
}

func (d *GL) DeleteProgram(program uint32) {
	gl.DeleteProgram(program)
}

func (d *GL) UniformLocation(program uint32, name string) (int32, bool) {
	location := gl.GetUniformLocation(program, gl.Str(name+"\x00"))
	return location, location >= 0
}

func (d *GL) Uniformfv(location int32, components int, values []float32) {
	switch components {
	case 1:
		gl.Uniform1fv(location, 1, &values[0])
	case 2:
		gl.Uniform2fv(location, 1, &values[0])
	case 3:
		gl.Uniform3fv(location, 1, &values[0])
	case 4:
		gl.Uniform4fv(location, 1, &values[0])
	}
}

func (d *GL) Uniformiv(location int32, components int, values []int32) {
	switch components {
	case 1:
		gl.Uniform1iv(location, 1, &values[0])
	case 2:
		gl.Uniform2iv(location, 1, &values[0])
	case 3:
		gl.Uniform3iv(location, 1, &values[0])
	case 4:
		gl.Uniform4iv(location, 1, &values[0])
	}
}

func (d *GL) DrawArraysInstanced(first, count, instances int32) {
	gl.DrawArraysInstanced(gl.TRIANGLES, first, count, instances)
}

func (d *GL) EnableDepthTest() {
	gl.Enable(gl.DEPTH_TEST)
}

func (d *GL) Viewport(x, y, width, height int32) {
	gl.Viewport(x, y, width, height)
}

func (d *GL) ClearColor(r, g, b, a float32) {
	gl.ClearColor(r, g, b, a)
}

func (d *GL) Clear() {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

func (d *GL) ShaderHeader() string {
	return glHeader
}
