package gfx

// Usage hints how often a buffer's contents will change.
type Usage int

const (
	StaticDraw Usage = iota
	DynamicDraw
)

// ShaderStage selects the programmable pipeline stage a shader is compiled for.
type ShaderStage int

const (
	VertexShader ShaderStage = iota
	FragmentShader
)

func (s ShaderStage) String() string {
	switch s {
	case VertexShader:
		return "vertex"
	case FragmentShader:
		return "fragment"
	default:
		return "unknown"
	}
}

// Device is the raw GPU call surface. Every method acts on the device's
// implicit binding state (current buffer, vertex array, program), so callers
// bind what they need right before using it.
//
// Object handles are non-zero; a zero handle from a Create method means the
// object could not be created.
type Device interface {
	CreateBuffer() uint32
	BindBuffer(buffer uint32)
	// BufferData reallocates the bound buffer and copies data into it.
	BufferData(data []float32, usage Usage)
	// BufferSubData overwrites the bound buffer starting at byteOffset.
	BufferSubData(byteOffset int, data []float32)
	DeleteBuffer(buffer uint32)

	CreateVertexArray() uint32
	BindVertexArray(vao uint32)
	DeleteVertexArray(vao uint32)
	VertexAttribPointer(location uint32, size, stride, offset int32)
	VertexAttribIPointer(location uint32, size, stride, offset int32)
	VertexAttribDivisor(location, divisor uint32)
	EnableVertexAttribArray(location uint32)

	CreateShader(stage ShaderStage) uint32
	// CompileShader sets the shader source, compiles it and reports the
	// compile status.
	CompileShader(shader uint32, source string) bool
	ShaderInfoLog(shader uint32) string
	DeleteShader(shader uint32)

	CreateProgram() uint32
	AttachShader(program, shader uint32)
	LinkProgram(program uint32) bool
	ProgramInfoLog(program uint32) string
	UseProgram(program uint32)
	DeleteProgram(program uint32)

	UniformLocation(program uint32, name string) (int32, bool)
	Uniformfv(location int32, components int, values []float32)
	Uniformiv(location int32, components int, values []int32)

	DrawArraysInstanced(first, count, instances int32)
	EnableDepthTest()
	Viewport(x, y, width, height int32)
	ClearColor(r, g, b, a float32)
	// Clear clears the color and depth buffers.
	Clear()

	// ShaderHeader is the preamble (version and precision directives) the
	// device's GLSL dialect expects in front of every shader body.
	ShaderHeader() string
}
