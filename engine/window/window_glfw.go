package window

import (
	"fmt"
	"runtime"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/cogentcore/webgpu/wgpuglfw"
	"github.com/go-gl/glfw/v3.3/glfw"
)

// glfwState holds the GLFW window and its lifecycle flag.
type glfwState struct {
	window  *glfw.Window
	running bool
}

// openGLFWWindow creates the GLFW window, applies the configured size limits,
// and wires input events through to the vizWindow callbacks.
func openGLFWWindow(w *vizWindow) error {
	// GLFW requires the message loop to stay on one OS thread.
	runtime.LockOSThread()

	if err := glfw.Init(); err != nil {
		return fmt.Errorf("failed to initialize GLFW: %w", err)
	}

	// WebGPU brings its own graphics API; no OpenGL context.
	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)

	win, err := glfw.CreateWindow(w.width, w.height, w.title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return fmt.Errorf("failed to create window: %w", err)
	}
	win.SetSizeLimits(w.minWidth, w.minHeight, w.maxWidth, w.maxHeight)

	gs := &glfwState{window: win, running: true}
	w.glfw = gs

	win.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		switch action {
		case glfw.Press, glfw.Repeat:
			if w.onKeyDown != nil {
				w.onKeyDown(uint32(key))
			}
		case glfw.Release:
			if w.onKeyUp != nil {
				w.onKeyUp(uint32(key))
			}
		}
	})

	win.SetScrollCallback(func(_ *glfw.Window, _, yoff float64) {
		if w.onScroll != nil {
			w.onScroll(float32(yoff))
		}
	})

	win.SetMouseButtonCallback(func(_ *glfw.Window, button glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
		if button != glfw.MouseButtonMiddle {
			return
		}
		xpos, ypos := win.GetCursorPos()
		switch action {
		case glfw.Press:
			if w.onMiddleMouseDown != nil {
				w.onMiddleMouseDown(int32(xpos), int32(ypos))
			}
		case glfw.Release:
			if w.onMiddleMouseUp != nil {
				w.onMiddleMouseUp(int32(xpos), int32(ypos))
			}
		}
	})

	win.SetCursorPosCallback(func(_ *glfw.Window, xpos, ypos float64) {
		if w.onMouseMove != nil {
			w.onMouseMove(int32(xpos), int32(ypos))
		}
	})

	// Resize tracks the framebuffer, not the window: the renderer configures
	// its surface in pixels, and the two differ on high-DPI displays.
	win.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		w.width = width
		w.height = height
		if w.onResize != nil {
			w.onResize(width, height)
		}
	})

	w.width, w.height = win.GetFramebufferSize()
	return nil
}

// surfaceDescriptor builds the per-platform WebGPU surface descriptor (Win32,
// X11, Wayland, or Metal) from the GLFW window.
func (gs *glfwState) surfaceDescriptor() *wgpu.SurfaceDescriptor {
	return wgpuglfw.GetSurfaceDescriptor(gs.window)
}

func (gs *glfwState) isRunning() bool {
	return gs.running && !gs.window.ShouldClose()
}

func (gs *glfwState) close() {
	gs.running = false
	gs.window.SetShouldClose(true)
	gs.window.Destroy()
	glfw.Terminate()
}

// pollEvents drains pending window events without blocking.
func (gs *glfwState) pollEvents() {
	glfw.PollEvents()
}
