// Package device provides the gfx.Device backends: WebGL2 through syscall/js
// when built for js/wasm, OpenGL 3.3 core through go-gl everywhere else.
package device
