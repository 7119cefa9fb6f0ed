//go:build js && wasm

package platform

import (
	"errors"
	"fmt"
	"syscall/js"
	"time"
)

// Canvas is an HTML canvas sized to the browser viewport.
type Canvas struct {
	window js.Value
	el     js.Value

	funcs   []js.Func
	removes []listener
	handler EventHandler
}

type listener struct {
	target js.Value
	typ    string
	fn     js.Func
}

// LoadCanvas finds the canvas element with the given id and resizes it to
// the viewport.
func LoadCanvas(id string) (*Canvas, error) {
	window := js.Global().Get("window")
	if !window.Truthy() {
		return nil, fmt.Errorf("%w: no window", ErrEnvironmentUnavailable)
	}
	doc := window.Get("document")
	if !doc.Truthy() {
		return nil, fmt.Errorf("%w: no document", ErrEnvironmentUnavailable)
	}
	el := doc.Call("getElementById", id)
	if !el.Truthy() {
		return nil, fmt.Errorf("%w: no canvas with id %q", ErrEnvironmentUnavailable, id)
	}
	if el.Get("tagName").String() != "CANVAS" {
		return nil, fmt.Errorf("%w: element %q is a %s, not a canvas", ErrEnvironmentUnavailable, id, el.Get("tagName").String())
	}

	c := &Canvas{window: window, el: el}
	c.fit()
	return c, nil
}

func (c *Canvas) fit() (int, int) {
	width := c.window.Get("innerWidth").Int()
	height := c.window.Get("innerHeight").Int()
	c.el.Set("width", width)
	c.el.Set("height", height)
	return width, height
}

func (c *Canvas) Size() (int, int) {
	return c.el.Get("width").Int(), c.el.Get("height").Int()
}

// WebGL2 returns the canvas's WebGL2 rendering context.
func (c *Canvas) WebGL2() (js.Value, error) {
	ctx := c.el.Call("getContext", "webgl2")
	if !ctx.Truthy() {
		return js.Value{}, fmt.Errorf("%w: webgl2 is not supported", ErrEnvironmentUnavailable)
	}
	return ctx, nil
}

// OnEvent delivers viewport resizes and key presses to handler. The canvas
// follows the viewport size before a Resize is delivered.
func (c *Canvas) OnEvent(handler EventHandler) {
	c.handler = handler
	if len(c.funcs) > 0 {
		return
	}
	c.addEventListener(c.window, "resize", func(js.Value) {
		width, height := c.fit()
		c.emit(Resize{Width: width, Height: height})
	})
	c.addEventListener(c.window.Get("document"), "keydown", func(e js.Value) {
		c.emit(KeyPress{Label: e.Get("key").String()})
	})
}

func (c *Canvas) emit(e Event) {
	if c.handler != nil {
		c.handler(e)
	}
}

func (c *Canvas) addEventListener(target js.Value, event string, f func(js.Value)) {
	fn := js.FuncOf(func(this js.Value, args []js.Value) any {
		if len(args) == 0 {
			return nil
		}
		f(args[0])
		return nil
	})
	target.Call("addEventListener", event, fn)
	c.funcs = append(c.funcs, fn)
	c.removes = append(c.removes, listener{target: target, typ: event, fn: fn})
}

func (c *Canvas) Close() {
	for _, r := range c.removes {
		r.target.Call("removeEventListener", r.typ, r.fn)
	}
	for i := range c.funcs {
		c.funcs[i].Release()
	}
	c.funcs = nil
	c.removes = nil
	c.emit(DestroyNotify{})
}

// AnimationFrames arms callbacks with window.requestAnimationFrame. One JS
// function is reused for every frame.
type AnimationFrames struct {
	window js.Value
	fn     js.Func
	next   func()
	// id of the pending request, 0 when none
	pending int
}

func NewAnimationFrames() (*AnimationFrames, error) {
	window := js.Global().Get("window")
	if !window.Truthy() || !window.Get("requestAnimationFrame").Truthy() {
		return nil, fmt.Errorf("%w: requestAnimationFrame", ErrEnvironmentUnavailable)
	}
	a := &AnimationFrames{window: window}
	a.fn = js.FuncOf(func(this js.Value, args []js.Value) any {
		next := a.next
		a.next = nil
		a.pending = 0
		if next != nil {
			next()
		}
		return nil
	})
	return a, nil
}

func (a *AnimationFrames) RequestFrame(fn func()) error {
	if a.fn.IsUndefined() {
		return errors.New("animation frames released")
	}
	a.next = fn
	a.pending = a.window.Call("requestAnimationFrame", a.fn).Int()
	return nil
}

// Release cancels the pending frame and frees the JS callback. Later
// RequestFrame calls fail, which stops a scheduler driven by a.
func (a *AnimationFrames) Release() {
	if a.fn.IsUndefined() {
		return
	}
	if a.pending != 0 {
		a.window.Call("cancelAnimationFrame", a.pending)
		a.pending = 0
	}
	a.fn.Release()
	a.fn = js.Func{}
	a.next = nil
}

// PerformanceClock reads window.performance.now().
type PerformanceClock struct {
	perf js.Value
}

func NewPerformanceClock() (*PerformanceClock, error) {
	perf := js.Global().Get("performance")
	if !perf.Truthy() {
		return nil, fmt.Errorf("%w: window.performance", ErrEnvironmentUnavailable)
	}
	return &PerformanceClock{perf: perf}, nil
}

func (c *PerformanceClock) Now() time.Duration {
	ms := c.perf.Call("now").Float()
	return time.Duration(ms * float64(time.Millisecond))
}
