// Package gfxtest provides a GPU-free gfx.Device that tracks binding state
// and records every draw, for tests.
package gfxtest

import (
	"fmt"

	"github.com/kjkrol/instancegl/pkg/gfx"
)

// BufferState is the recorded content of one buffer.
type BufferState struct {
	Data        []float32
	Usage       gfx.Usage
	Allocations int
	SubUploads  int
}

// AttribState is the recorded pointer setup of one attribute location.
type AttribState struct {
	Buffer  uint32
	Size    int32
	Integer bool
	Stride  int32
	Offset  int32
	Divisor uint32
	Enabled bool
}

// DrawCall is one recorded DrawArraysInstanced call.
type DrawCall struct {
	Program   uint32
	VAO       uint32
	First     int32
	Count     int32
	Instances int32
}

// UniformValue is the last value written to a uniform location.
type UniformValue struct {
	Components int
	Floats     []float32
	Ints       []int32
}

// Recorder implements gfx.Device in memory. The exported knobs make object
// creation, compilation or linking fail on demand.
type Recorder struct {
	// FailCreate makes the named Create method return 0: "buffer",
	// "vertexArray", "shader" or "program".
	FailCreate map[string]bool
	// CompileLogs makes compilation of the given stage fail with that log.
	CompileLogs map[gfx.ShaderStage]string
	// LinkLog, when LinkFails is set, is the linker log.
	LinkFails bool
	LinkLog   string
	// Uniforms lists the active uniform names of every program.
	Uniforms []string

	Header string

	Buffers map[uint32]*BufferState
	// VAOs maps a vertex array to its attribute locations.
	VAOs         map[uint32]map[uint32]*AttribState
	Shaders      map[uint32]gfx.ShaderStage
	Programs     map[uint32][]uint32
	Values       map[int32]UniformValue
	Draws        []DrawCall
	Clears       [][4]float32
	ViewportRect [4]int32

	DepthTest bool
	Deleted   []uint32
	// Errors collects calls the real API would reject.
	Errors []string

	BoundBuffer  uint32
	BoundVAO     uint32
	BoundProgram uint32

	clearColor [4]float32
	next       uint32
}

var _ gfx.Device = (*Recorder)(nil)

func NewRecorder() *Recorder {
	return &Recorder{
		FailCreate:  make(map[string]bool),
		CompileLogs: make(map[gfx.ShaderStage]string),
		Header:      "#version 300 es\nprecision mediump float;\n",
		Buffers:     make(map[uint32]*BufferState),
		VAOs:        make(map[uint32]map[uint32]*AttribState),
		Shaders:     make(map[uint32]gfx.ShaderStage),
		Programs:    make(map[uint32][]uint32),
		Values:      make(map[int32]UniformValue),
	}
}

func (r *Recorder) handle(kind string) uint32 {
	if r.FailCreate[kind] {
		return 0
	}
	r.next++
	return r.next
}

func (r *Recorder) errorf(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

func (r *Recorder) CreateBuffer() uint32 {
	h := r.handle("buffer")
	if h != 0 {
		r.Buffers[h] = &BufferState{}
	}
	return h
}

func (r *Recorder) BindBuffer(buffer uint32) {
	r.BoundBuffer = buffer
}

func (r *Recorder) BufferData(data []float32, usage gfx.Usage) {
	state, ok := r.Buffers[r.BoundBuffer]
	if !ok {
		r.errorf("BufferData with no buffer bound")
		return
	}
	state.Data = append([]float32(nil), data...)
	state.Usage = usage
	state.Allocations++
}

func (r *Recorder) BufferSubData(byteOffset int, data []float32) {
	state, ok := r.Buffers[r.BoundBuffer]
	if !ok {
		r.errorf("BufferSubData with no buffer bound")
		return
	}
	start := byteOffset / 4
	if byteOffset%4 != 0 || start+len(data) > len(state.Data) {
		r.errorf("BufferSubData out of range: offset %d, %d floats into %d", byteOffset, len(data), len(state.Data))
		return
	}
	copy(state.Data[start:], data)
	state.SubUploads++
}

func (r *Recorder) DeleteBuffer(buffer uint32) {
	delete(r.Buffers, buffer)
	r.Deleted = append(r.Deleted, buffer)
}

func (r *Recorder) CreateVertexArray() uint32 {
	h := r.handle("vertexArray")
	if h != 0 {
		r.VAOs[h] = make(map[uint32]*AttribState)
	}
	return h
}

func (r *Recorder) BindVertexArray(vao uint32) {
	r.BoundVAO = vao
}

func (r *Recorder) DeleteVertexArray(vao uint32) {
	delete(r.VAOs, vao)
	r.Deleted = append(r.Deleted, vao)
}

func (r *Recorder) attrib(location uint32) *AttribState {
	attribs, ok := r.VAOs[r.BoundVAO]
	if !ok {
		r.errorf("attribute %d configured with no vertex array bound", location)
		return &AttribState{}
	}
	state, ok := attribs[location]
	if !ok {
		state = &AttribState{}
		attribs[location] = state
	}
	return state
}

func (r *Recorder) VertexAttribPointer(location uint32, size, stride, offset int32) {
	r.pointer(location, size, stride, offset, false)
}

func (r *Recorder) VertexAttribIPointer(location uint32, size, stride, offset int32) {
	r.pointer(location, size, stride, offset, true)
}

func (r *Recorder) pointer(location uint32, size, stride, offset int32, integer bool) {
	if r.BoundBuffer == 0 {
		r.errorf("attribute %d pointer with no buffer bound", location)
	}
	state := r.attrib(location)
	state.Buffer = r.BoundBuffer
	state.Size = size
	state.Stride = stride
	state.Offset = offset
	state.Integer = integer
}

func (r *Recorder) VertexAttribDivisor(location, divisor uint32) {
	r.attrib(location).Divisor = divisor
}

func (r *Recorder) EnableVertexAttribArray(location uint32) {
	r.attrib(location).Enabled = true
}

func (r *Recorder) CreateShader(stage gfx.ShaderStage) uint32 {
	h := r.handle("shader")
	if h != 0 {
		r.Shaders[h] = stage
	}
	return h
}

func (r *Recorder) CompileShader(shader uint32, source string) bool {
	_, failed := r.CompileLogs[r.Shaders[shader]]
	return !failed
}

func (r *Recorder) ShaderInfoLog(shader uint32) string {
	return r.CompileLogs[r.Shaders[shader]]
}

func (r *Recorder) DeleteShader(shader uint32) {
	delete(r.Shaders, shader)
	r.Deleted = append(r.Deleted, shader)
}

func (r *Recorder) CreateProgram() uint32 {
	h := r.handle("program")
	if h != 0 {
		r.Programs[h] = nil
	}
	return h
}

func (r *Recorder) AttachShader(program, shader uint32) {
	r.Programs[program] = append(r.Programs[program], shader)
}

func (r *Recorder) LinkProgram(program uint32) bool {
	return !r.LinkFails
}

func (r *Recorder) ProgramInfoLog(program uint32) string {
	return r.LinkLog
}

func (r *Recorder) UseProgram(program uint32) {
	r.BoundProgram = program
}

func (r *Recorder) DeleteProgram(program uint32) {
	delete(r.Programs, program)
	r.Deleted = append(r.Deleted, program)
}

// UniformLocation resolves names listed in Uniforms; the location is
// derived from the program and the name's index.
func (r *Recorder) UniformLocation(program uint32, name string) (int32, bool) {
	for i, known := range r.Uniforms {
		if known == name {
			return int32(program)*100 + int32(i), true
		}
	}
	return 0, false
}

func (r *Recorder) Uniformfv(location int32, components int, values []float32) {
	r.checkUniform(location)
	r.Values[location] = UniformValue{Components: components, Floats: append([]float32(nil), values...)}
}

func (r *Recorder) Uniformiv(location int32, components int, values []int32) {
	r.checkUniform(location)
	r.Values[location] = UniformValue{Components: components, Ints: append([]int32(nil), values...)}
}

func (r *Recorder) checkUniform(location int32) {
	if location/100 != int32(r.BoundProgram) {
		r.errorf("uniform %d written while program %d is in use", location, r.BoundProgram)
	}
}

func (r *Recorder) DrawArraysInstanced(first, count, instances int32) {
	r.Draws = append(r.Draws, DrawCall{
		Program:   r.BoundProgram,
		VAO:       r.BoundVAO,
		First:     first,
		Count:     count,
		Instances: instances,
	})
}

func (r *Recorder) EnableDepthTest() {
	r.DepthTest = true
}

func (r *Recorder) Viewport(x, y, width, height int32) {
	r.ViewportRect = [4]int32{x, y, width, height}
}

func (r *Recorder) ClearColor(red, green, blue, alpha float32) {
	r.clearColor = [4]float32{red, green, blue, alpha}
}

func (r *Recorder) Clear() {
	r.Clears = append(r.Clears, r.clearColor)
}

func (r *Recorder) ShaderHeader() string {
	return r.Header
}

// Attrib returns the recorded state of location in vao, or nil.
func (r *Recorder) Attrib(vao, location uint32) *AttribState {
	return r.VAOs[vao][location]
}
