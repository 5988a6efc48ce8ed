// Package window owns the OS window the visualizer renders into and fans its
// input events out to registered callbacks.
package window

import (
	"fmt"
	"runtime"

	"github.com/cogentcore/webgpu/wgpu"
)

// Window is the platform window behind the arm view. It pumps the message
// loop on the main thread and reports input through the Set*Callback hooks.
type Window interface {
	// SetUpdateCallback sets the function called once per message loop
	// iteration, on the main thread.
	//
	// Parameters:
	//   - callback: function to call, or nil to disable
	SetUpdateCallback(callback func())

	// SetResizeCallback sets the function called when the framebuffer size
	// changes.
	//
	// Parameters:
	//   - callback: function receiving the new width and height in pixels
	SetResizeCallback(callback func(width, height int))

	// SetScrollCallback sets the function called for scroll wheel events.
	// Positive deltas scroll up.
	//
	// Parameters:
	//   - callback: function receiving the scroll delta
	SetScrollCallback(callback func(delta float32))

	// SetKeyDownCallback sets the function called on key press and repeat.
	//
	// Parameters:
	//   - callback: function receiving the virtual key code (common.Key*)
	SetKeyDownCallback(callback func(keyCode uint32))

	// SetKeyUpCallback sets the function called on key release.
	//
	// Parameters:
	//   - callback: function receiving the virtual key code (common.Key*)
	SetKeyUpCallback(callback func(keyCode uint32))

	// SetMiddleMouseDownCallback sets the function called when the middle
	// mouse button goes down. The orbit controls drag with this button.
	//
	// Parameters:
	//   - callback: function receiving the cursor position in pixels
	SetMiddleMouseDownCallback(callback func(x, y int32))

	// SetMiddleMouseUpCallback sets the function called when the middle mouse
	// button is released.
	//
	// Parameters:
	//   - callback: function receiving the cursor position in pixels
	SetMiddleMouseUpCallback(callback func(x, y int32))

	// SetMouseMoveCallback sets the function called when the cursor moves.
	//
	// Parameters:
	//   - callback: function receiving the cursor position in pixels
	SetMouseMoveCallback(callback func(x, y int32))

	// SurfaceDescriptor returns the platform-appropriate descriptor for
	// creating a WebGPU surface on this window.
	//
	// Returns:
	//   - *wgpu.SurfaceDescriptor: the descriptor, or nil before the window exists
	SurfaceDescriptor() *wgpu.SurfaceDescriptor

	// IsRunning reports whether the window is still open.
	//
	// Returns:
	//   - bool: false once the window has been closed
	IsRunning() bool

	// Close destroys the window and shuts the windowing library down.
	//
	// Returns:
	//   - error: error if the window was never created
	Close() error

	// ProcessMessages runs the message loop until the window closes, calling
	// the update callback each iteration. Must run on the main thread.
	ProcessMessages()

	// Width returns the current framebuffer width in pixels.
	//
	// Returns:
	//   - int: width in pixels
	Width() int

	// Height returns the current framebuffer height in pixels.
	//
	// Returns:
	//   - int: height in pixels
	Height() int
}

// vizWindow implements Window over GLFW.
type vizWindow struct {
	title string

	// width and height track the framebuffer size, which on high-DPI
	// displays differs from the requested window size.
	width  int
	height int

	// minWidth/minHeight/maxWidth/maxHeight bound interactive resizing.
	minWidth, minHeight int
	maxWidth, maxHeight int

	glfw *glfwState

	onUpdate          func()
	onResize          func(width, height int)
	onScroll          func(delta float32)
	onKeyDown         func(keyCode uint32)
	onKeyUp           func(keyCode uint32)
	onMiddleMouseDown func(x, y int32)
	onMiddleMouseUp   func(x, y int32)
	onMouseMove       func(x, y int32)
}

var _ Window = &vizWindow{}

// NewWindow creates and opens the visualizer window. Defaults to 1280x720
// with a sensible resize range; options override before the window is
// created.
//
// Parameters:
//   - options: functional options to configure the window
//
// Returns:
//   - Window: the open window
func NewWindow(options ...WindowBuilderOption) Window {
	w := &vizWindow{
		title:     "armviz",
		width:     1280,
		height:    720,
		minWidth:  480,
		minHeight: 320,
		maxWidth:  3840,
		maxHeight: 2160,
	}
	for _, opt := range options {
		opt(w)
	}
	if err := openGLFWWindow(w); err != nil {
		panic(fmt.Sprintf("failed to open window: %v", err))
	}
	return w
}

func (w *vizWindow) SetUpdateCallback(callback func()) {
	w.onUpdate = callback
}

func (w *vizWindow) SetResizeCallback(callback func(width, height int)) {
	w.onResize = callback
}

func (w *vizWindow) SetScrollCallback(callback func(delta float32)) {
	w.onScroll = callback
}

func (w *vizWindow) SetKeyDownCallback(callback func(keyCode uint32)) {
	w.onKeyDown = callback
}

func (w *vizWindow) SetKeyUpCallback(callback func(keyCode uint32)) {
	w.onKeyUp = callback
}

func (w *vizWindow) SetMiddleMouseDownCallback(callback func(x, y int32)) {
	w.onMiddleMouseDown = callback
}

func (w *vizWindow) SetMiddleMouseUpCallback(callback func(x, y int32)) {
	w.onMiddleMouseUp = callback
}

func (w *vizWindow) SetMouseMoveCallback(callback func(x, y int32)) {
	w.onMouseMove = callback
}

func (w *vizWindow) SurfaceDescriptor() *wgpu.SurfaceDescriptor {
	if w.glfw == nil {
		return nil
	}
	return w.glfw.surfaceDescriptor()
}

func (w *vizWindow) IsRunning() bool {
	return w.glfw != nil && w.glfw.isRunning()
}

func (w *vizWindow) Close() error {
	if w.glfw == nil {
		return fmt.Errorf("window is not initialized")
	}
	w.glfw.close()
	return nil
}

func (w *vizWindow) ProcessMessages() {
	for w.IsRunning() {
		w.glfw.pollEvents()
		if !w.IsRunning() {
			break
		}

		if w.onUpdate != nil {
			w.onUpdate()
		}

		runtime.Gosched()
	}
}

func (w *vizWindow) Width() int {
	return w.width
}

func (w *vizWindow) Height() int {
	return w.height
}
