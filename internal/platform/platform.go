// Package platform hosts the drawing surface: a browser canvas driven by
// requestAnimationFrame under js/wasm, a GLFW window elsewhere.
package platform

import "errors"

// ErrEnvironmentUnavailable reports a missing host window, document, canvas
// or GPU context.
var ErrEnvironmentUnavailable = errors.New("environment unavailable")

type WindowConfig struct {
	Width  int
	Height int
	Title  string
	// VSync ties buffer swaps to the display refresh.
	VSync bool
}

// EventHandler receives host events on the frame thread.
type EventHandler func(Event)
