package window

import (
	"fmt"
	"runtime"

	"github.com/cogentcore/webgpu/wgpu"
)

// Window provides platform windowing and pointer input handling for the
// viewer. Wraps platform-specific window implementations with a common
// interface. Only the pointer events the orbit camera understands are
// surfaced: primary-button press/release and cursor movement.
type Window interface {
	// SetUpdateCallback sets the function called each message loop iteration.
	//
	// Parameters:
	//   - callback: function to call (or nil to disable)
	SetUpdateCallback(callback func())

	// SetResizeCallback sets the function called when the framebuffer is
	// resized. Dimensions are in pixels, which differ from window size on
	// high-DPI displays.
	//
	// Parameters:
	//   - callback: function receiving new width and height in pixels
	SetResizeCallback(callback func(width, height int))

	// SetPrimaryMouseDownCallback sets the callback for primary (left) mouse
	// button press.
	//
	// Parameters:
	//   - callback: function receiving cursor x, y position in pixels
	SetPrimaryMouseDownCallback(callback func(x, y int32))

	// SetPrimaryMouseUpCallback sets the callback for primary (left) mouse
	// button release.
	//
	// Parameters:
	//   - callback: function receiving cursor x, y position in pixels
	SetPrimaryMouseUpCallback(callback func(x, y int32))

	// SetMouseMoveCallback sets the callback for cursor movement.
	//
	// Parameters:
	//   - callback: function receiving cursor x, y position in pixels
	SetMouseMoveCallback(callback func(x, y int32))

	// SurfaceDescriptor returns a wgpu.SurfaceDescriptor suitable for creating
	// a WebGPU surface. The descriptor is platform-appropriate (Windows HWND,
	// X11 Xlib, Wayland, macOS Metal, etc.) and is created by the wgpuglfw
	// bridge from the underlying GLFW window.
	//
	// Returns:
	//   - *wgpu.SurfaceDescriptor: the platform-specific surface descriptor, or nil if window is not initialized
	SurfaceDescriptor() *wgpu.SurfaceDescriptor

	// IsRunning returns true if the window is still active.
	//
	// Returns:
	//   - bool: true if window is running, false if closed
	IsRunning() bool

	// Close closes the window and releases platform resources.
	//
	// Returns:
	//   - error: error if close operation fails
	Close() error

	// ProcessMessages runs the window message loop.
	// Blocks until the window is closed. Calls the update callback each iteration.
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

// viewerWindow is the implementation of the Window interface.
// Holds window configuration, GLFW state, and event callbacks.
type viewerWindow struct {
	// title is the window title displayed in the title bar.
	title string

	// width is the current framebuffer width in pixels.
	width int

	// height is the current framebuffer height in pixels.
	height int

	// internalWindow holds the platform-specific window data (glfwWindow).
	internalWindow any

	// onUpdate is called each iteration of the message loop (if set).
	onUpdate func()

	// onResize is called when the framebuffer is resized.
	onResize func(width, height int)

	// onPrimaryMouseDown is called when the primary mouse button is pressed.
	onPrimaryMouseDown func(x, y int32)

	// onPrimaryMouseUp is called when the primary mouse button is released.
	onPrimaryMouseUp func(x, y int32)

	// onMouseMove is called when the cursor moves within the window.
	onMouseMove func(x, y int32)
}

var _ Window = &viewerWindow{}

// NewWindow creates a new Window with the specified options.
// Applies default values first, then each option in order.
//
// Parameters:
//   - options: functional options to configure the window
//
// Returns:
//   - Window: the configured window
func NewWindow(options ...WindowBuilderOption) Window {
	w := &viewerWindow{
		title:  "Orbit Viewer",
		width:  1280,
		height: 720,
	}
	for _, opt := range options {
		opt(w)
	}
	if err := newPlatformWindow(w); err != nil {
		panic(fmt.Sprintf("failed to create platform window: %v", err))
	}
	return w
}

func (w *viewerWindow) SetUpdateCallback(callback func()) {
	w.onUpdate = callback
}

func (w *viewerWindow) SetResizeCallback(callback func(width, height int)) {
	w.onResize = callback
}

func (w *viewerWindow) SetPrimaryMouseDownCallback(callback func(x, y int32)) {
	w.onPrimaryMouseDown = callback
}

func (w *viewerWindow) SetPrimaryMouseUpCallback(callback func(x, y int32)) {
	w.onPrimaryMouseUp = callback
}

func (w *viewerWindow) SetMouseMoveCallback(callback func(x, y int32)) {
	w.onMouseMove = callback
}

func (w *viewerWindow) SurfaceDescriptor() *wgpu.SurfaceDescriptor {
	return platformGetSurfaceDescriptor(w)
}

func (w *viewerWindow) IsRunning() bool {
	return platformIsRunningCheck(w)
}

func (w *viewerWindow) Close() error {
	return platformCloseWindow(w)
}

func (w *viewerWindow) ProcessMessages() {
	for w.IsRunning() {
		if succ := platformProcessMessages(w); !succ {
			break
		}

		if w.onUpdate != nil {
			w.onUpdate()
		}

		runtime.Gosched()
	}
}

func (w *viewerWindow) Width() int {
	return w.width
}

func (w *viewerWindow) Height() int {
	return w.height
}
