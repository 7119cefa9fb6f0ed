//go:build js && wasm

package device

import (
	"encoding/binary"
	"syscall/js"

	"github.com/kjkrol/instancegl/pkg/gfx"
	"golang.org/x/mobile/exp/f32"
)

const webGLHeader = "#version 300 es\nprecision mediump float;\n"

var _ gfx.Device = (*WebGL)(nil)

// WebGL implements gfx.Device on a WebGL2RenderingContext. JS objects are
// kept in a handle table so callers only ever see uint32 handles.
type WebGL struct {
	gl     js.Value
	consts webGLConsts

	objects  map[uint32]js.Value
	next     uint32
	uniforms map[uniformKey]int32

	// reused Float32Array; grows to the largest upload seen
	scratch    js.Value
	scratchLen int
}

type uniformKey struct {
	program uint32
	name    string
}

type webGLConsts struct {
	arrayBuffer    int
	staticDraw     int
	dynamicDraw    int
	floatType      int
	intType        int
	triangles      int
	colorBufferBit int
	depthBufferBit int
	depthTest      int
	compileStatus  int
	linkStatus     int
	vertexShader   int
	fragmentShader int
}

// NewWebGL wraps a WebGL2 context obtained from a canvas.
func NewWebGL(gl js.Value) (*WebGL, error) {
	if gl.IsUndefined() || gl.IsNull() {
		return nil, gfx.ErrContextUnavailable
	}
	d := &WebGL{
		gl:       gl,
		objects:  make(map[uint32]js.Value),
		uniforms: make(map[uniformKey]int32),
	}
	d.consts = webGLConsts{
		arrayBuffer:    gl.Get("ARRAY_BUFFER").Int(),
		staticDraw:     gl.Get("STATIC_DRAW").Int(),
		dynamicDraw:    gl.Get("DYNAMIC_DRAW").Int(),
		floatType:      gl.Get("FLOAT").Int(),
		intType:        gl.Get("INT").Int(),
		triangles:      gl.Get("TRIANGLES").Int(),
		colorBufferBit: gl.Get("COLOR_BUFFER_BIT").Int(),
		depthBufferBit: gl.Get("DEPTH_BUFFER_BIT").Int(),
		depthTest:      gl.Get("DEPTH_TEST").Int(),
		compileStatus:  gl.Get("COMPILE_STATUS").Int(),
		linkStatus:     gl.Get("LINK_STATUS").Int(),
		vertexShader:   gl.Get("VERTEX_SHADER").Int(),
		fragmentShader: gl.Get("FRAGMENT_SHADER").Int(),
	}
	return d, nil
}

func (d *WebGL) store(v js.Value) uint32 {
	if v.IsUndefined() || v.IsNull() {
		return 0
	}
	d.next++
	d.objects[d.next] = v
	return d.next
}

// object returns the JS object for handle, or null for handle 0 so that
// binding 0 unbinds.
func (d *WebGL) object(handle uint32) js.Value {
	if v, ok := d.objects[handle]; ok {
		return v
	}
	return js.Null()
}

func (d *WebGL) release(handle uint32) js.Value {
	v := d.object(handle)
	delete(d.objects, handle)
	return v
}

// float32Array copies data into a Float32Array of exactly len(data)
// elements. The copy goes through a byte slice, so no view into wasm memory
// outlives this call.
func (d *WebGL) float32Array(data []float32) js.Value {
	if len(data) == 0 {
		return js.Global().Get("Float32Array").New(0)
	}
	if len(data) > d.scratchLen {
		d.scratch = js.Global().Get("Float32Array").New(len(data))
		d.scratchLen = len(data)
	}
	view := d.scratch.Call("subarray", 0, len(data))
	bytes := js.Global().Get("Uint8Array").New(view.Get("buffer"), view.Get("byteOffset"), view.Get("byteLength"))
	js.CopyBytesToJS(bytes, f32.Bytes(binary.LittleEndian, data...))
	return view
}

func (d *WebGL) usage(u gfx.Usage) int {
	if u == gfx.StaticDraw {
		return d.consts.staticDraw
	}
	return d.consts.dynamicDraw
}

func (d *WebGL) CreateBuffer() uint32 {
	return d.store(d.gl.Call("createBuffer"))
}

func (d *WebGL) BindBuffer(buffer uint32) {
	d.gl.Call("bindBuffer", d.consts.arrayBuffer, d.object(buffer))
}

func (d *WebGL) BufferData(data []float32, usage gfx.Usage) {
	d.gl.Call("bufferData", d.consts.arrayBuffer, d.float32Array(data), d.usage(usage))
}

func (d *WebGL) BufferSubData(byteOffset int, data []float32) {
	d.gl.Call("bufferSubData", d.consts.arrayBuffer, byteOffset, d.float32Array(data))
}

func (d *WebGL) DeleteBuffer(buffer uint32) {
	d.gl.Call("deleteBuffer", d.release(buffer))
}

func (d *WebGL) CreateVertexArray() uint32 {
	return d.store(d.gl.Call("createVertexArray"))
}

func (d *WebGL) BindVertexArray(vao uint32) {
	d.gl.Call("bindVertexArray", d.object(vao))
}

func (d *WebGL) DeleteVertexArray(vao uint32) {
	d.gl.Call("deleteVertexArray", d.release(vao))
}

func (d *WebGL) VertexAttribPointer(location uint32, size, stride, offset int32) {
	d.gl.Call("vertexAttribPointer", location, size, d.consts.floatType, false, stride, offset)
}

func (d *WebGL) VertexAttribIPointer(location uint32, size, stride, offset int32) {
	d.gl.Call("vertexAttribIPointer", location, size, d.consts.intType, stride, offset)
}

func (d *WebGL) VertexAttribDivisor(location, divisor uint32) {
	d.gl.Call("vertexAttribDivisor", location, divisor)
}

func (d *WebGL) EnableVertexAttribArray(location uint32) {
	d.gl.Call("enableVertexAttribArray", location)
}

func (d *WebGL) CreateShader(stage gfx.ShaderStage) uint32 {
	kind := d.consts.vertexShader
	if stage == gfx.FragmentShader {
		kind = d.consts.fragmentShader
	}
	return d.store(d.gl.Call("createShader", kind))
}

func (d *WebGL) CompileShader(shader uint32, source string) bool {
	s := d.object(shader)
	d.gl.Call("shaderSource", s, source)
	d.gl.Call("compileShader", s)
	return d.gl.Call("getShaderParameter", s, d.consts.compileStatus).Truthy()
}

func (d *WebGL) ShaderInfoLog(shader uint32) string {
	return jsString(d.gl.Call("getShaderInfoLog", d.object(shader)))
}

func (d *WebGL) DeleteShader(shader uint32) {
	d.gl.Call("deleteShader", d.release(shader))
}

func (d *WebGL) CreateProgram() uint32 {
	return d.store(d.gl.Call("createProgram"))
}

func (d *WebGL) AttachShader(program, shader uint32) {
	d.gl.Call("attachShader", d.object(program), d.object(shader))
}

func (d *WebGL) LinkProgram(program uint32) bool {
	p := d.object(program)
	d.gl.Call("linkProgram", p)
	return d.gl.Call("getProgramParameter", p, d.consts.linkStatus).Truthy()
}

func (d *WebGL) ProgramInfoLog(program uint32) string {
	return jsString(d.gl.Call("getProgramInfoLog", d.object(program)))
}

func (d *WebGL) UseProgram(program uint32) {
	d.gl.Call("useProgram", d.object(program))
}

func (d *WebGL) DeleteProgram(program uint32) {
	for key, location := range d.uniforms {
		if key.program == program {
			delete(d.objects, uint32(location))
			delete(d.uniforms, key)
		}
	}
	d.gl.Call("deleteProgram", d.release(program))
}

// UniformLocation looks a uniform up once per program and name; the
// WebGLUniformLocation lives in the handle table like any other object.
func (d *WebGL) UniformLocation(program uint32, name string) (int32, bool) {
	key := uniformKey{program: program, name: name}
	if location, ok := d.uniforms[key]; ok {
		return location, location != 0
	}
	location := int32(d.store(d.gl.Call("getUniformLocation", d.object(program), name)))
	d.uniforms[key] = location
	return location, location != 0
}

func (d *WebGL) Uniformfv(location int32, components int, values []float32) {
	if components < 1 || components > 4 {
		return
	}
	method := [...]string{"uniform1fv", "uniform2fv", "uniform3fv", "uniform4fv"}[components-1]
	d.gl.Call(method, d.object(uint32(location)), d.float32Array(values))
}

func (d *WebGL) Uniformiv(location int32, components int, values []int32) {
	if components < 1 || components > 4 {
		return
	}
	method := [...]string{"uniform1iv", "uniform2iv", "uniform3iv", "uniform4iv"}[components-1]
	arr := js.Global().Get("Int32Array").New(len(values))
	for i, v := range values {
		arr.SetIndex(i, v)
	}
	d.gl.Call(method, d.object(uint32(location)), arr)
}

func (d *WebGL) DrawArraysInstanced(first, count, instances int32) {
	d.gl.Call("drawArraysInstanced", d.consts.triangles, first, count, instances)
}

func (d *WebGL) EnableDepthTest() {
	d.gl.Call("enable", d.consts.depthTest)
}

func (d *WebGL) Viewport(x, y, width, height int32) {
	d.gl.Call("viewport", x, y, width, height)
}

func (d *WebGL) ClearColor(r, g, b, a float32) {
	d.gl.Call("clearColor", r, g, b, a)
}

func (d *WebGL) Clear() {
	d.gl.Call("clear", d.consts.colorBufferBit|d.consts.depthBufferBit)
}

func (d *WebGL) ShaderHeader() string {
	return webGLHeader
}

func jsString(v js.Value) string {
	if v.IsUndefined() || v.IsNull() {
		return ""
	}
	return v.String()
}
