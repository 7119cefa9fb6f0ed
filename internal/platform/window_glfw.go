//go:build !js

package platform

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"
)

func init() {
	// GLFW and the GL context must stay on the main thread.
	runtime.LockOSThread()
}

// Window is a GLFW window with a current OpenGL 3.3 core context. It arms
// frames for Run to execute between buffer swaps.
type Window struct {
	win     *glfw.Window
	next    func()
	handler EventHandler
	closed  bool
}

func NewWindow(conf WindowConfig) (*Window, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("%w: glfw init: %v", ErrEnvironmentUnavailable, err)
	}

	glfw.WindowHint(glfw.ContextVersionMajor, 3)
	glfw.WindowHint(glfw.ContextVersionMinor, 3)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	win, err := glfw.CreateWindow(conf.Width, conf.Height, conf.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("%w: create window: %v", ErrEnvironmentUnavailable, err)
	}
	win.MakeContextCurrent()
	if conf.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}

	w := &Window{win: win}
	win.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		w.emit(Resize{Width: width, Height: height})
	})
	win.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		if action != glfw.Press {
			return
		}
		w.emit(KeyPress{Label: keyLabel(key)})
	})
	return w, nil
}

func keyLabel(key glfw.Key) string {
	if key == glfw.KeyEscape {
		return "Escape"
	}
	if name := glfw.GetKeyName(key, 0); name != "" {
		return name
	}
	return fmt.Sprintf("key-%d", key)
}

// Size returns the framebuffer size in pixels.
func (w *Window) Size() (int, int) {
	return w.win.GetFramebufferSize()
}

func (w *Window) OnEvent(handler EventHandler) {
	w.handler = handler
}

func (w *Window) emit(e Event) {
	if w.handler != nil {
		w.handler(e)
	}
}

func (w *Window) RequestFrame(fn func()) error {
	if w.closed {
		return errors.New("window closed")
	}
	w.next = fn
	return nil
}

// SetShouldClose asks Run to return after the current frame.
func (w *Window) SetShouldClose() {
	w.win.SetShouldClose(true)
}

// Run executes armed frames, one per buffer swap, until the window is closed.
func (w *Window) Run() {
	for !w.win.ShouldClose() {
		next := w.next
		w.next = nil
		if next != nil {
			next()
		}
		w.win.SwapBuffers()
		glfw.PollEvents()
	}
	w.emit(DestroyNotify{})
}

func (w *Window) Close() {
	if w.closed {
		return
	}
	w.closed = true
	w.win.Destroy()
	glfw.Terminate()
}
