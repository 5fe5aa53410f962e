package window

import (
	"github.com/cogentcore/webgpu/wgpu"
)

// Window provides platform windowing and input event handling for the
// playground. Wraps the GLFW-backed implementation with a common interface.
type Window interface {
	// SetUpdateCallback sets the function called each message loop iteration.
	//
	// Parameters:
	//   - callback: function to call (or nil to disable)
	SetUpdateCallback(callback func())

	// SetResizeCallback sets the function called when the framebuffer is
	// resized, receiving the new pixel dimensions.
	//
	// Parameters:
	//   - callback: function receiving new width and height in pixels
	SetResizeCallback(callback func(width, height int))

	// SetScrollCallback sets the callback for mouse scroll wheel events.
	//
	// Parameters:
	//   - callback: function receiving the scroll delta (positive = zoom in)
	SetScrollCallback(callback func(delta float32))

	// SetDragCallback sets the callback for left-button mouse drags,
	// receiving the cursor delta since the previous event in pixels.
	// Used by the orbit camera.
	//
	// Parameters:
	//   - callback: function receiving the drag delta
	SetDragCallback(callback func(dx, dy float32))

	// SetKeyDownCallback sets the callback for key press events.
	//
	// Parameters:
	//   - callback: function receiving the virtual key code
	SetKeyDownCallback(callback func(keyCode uint32))

	// SurfaceDescriptor returns a wgpu.SurfaceDescriptor suitable for
	// creating a WebGPU surface on this window. The descriptor is
	// platform-appropriate and produced by the wgpuglfw bridge.
	//
	// Returns:
	//   - *wgpu.SurfaceDescriptor: the surface descriptor, or nil if the window failed to initialize
	SurfaceDescriptor() *wgpu.SurfaceDescriptor

	// IsRunning reports whether the window is still open.
	//
	// Returns:
	//   - bool: true while the window is active
	IsRunning() bool

	// Close destroys the window and releases platform resources.
	//
	// Returns:
	//   - error: error if the window was never initialized
	Close() error

	// ProcessMessages runs the window message loop. Blocks until the window
	// closes, invoking the update callback each iteration.
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

// playgroundWindow is the implementation of the Window interface.
type playgroundWindow struct {
	title  string
	width  int
	height int

	onUpdate  func()
	onResize  func(width, height int)
	onScroll  func(delta float32)
	onDrag    func(dx, dy float32)
	onKeyDown func(keyCode uint32)

	internal *glfwWindow
}

var _ Window = &playgroundWindow{}

// NewWindow creates and opens a window with the provided options.
// Panics if the platform window cannot be created, since nothing downstream
// can run without a surface.
//
// Parameters:
//   - options: functional options for window configuration
//
// Returns:
//   - Window: the opened window
func NewWindow(options ...WindowBuilderOption) Window {
	w := &playgroundWindow{
		title:  "oxy-postfx",
		width:  1280,
		height: 720,
	}

	for _, opt := range options {
		opt(w)
	}

	if err := newPlatformWindow(w); err != nil {
		panic("window: " + err.Error())
	}
	return w
}

func (w *playgroundWindow) SetUpdateCallback(callback func()) {
	w.onUpdate = callback
}

func (w *playgroundWindow) SetResizeCallback(callback func(width, height int)) {
	w.onResize = callback
}

func (w *playgroundWindow) SetScrollCallback(callback func(delta float32)) {
	w.onScroll = callback
}

func (w *playgroundWindow) SetDragCallback(callback func(dx, dy float32)) {
	w.onDrag = callback
}

func (w *playgroundWindow) SetKeyDownCallback(callback func(keyCode uint32)) {
	w.onKeyDown = callback
}

func (w *playgroundWindow) SurfaceDescriptor() *wgpu.SurfaceDescriptor {
	return platformSurfaceDescriptor(w)
}

func (w *playgroundWindow) IsRunning() bool {
	return platformIsRunning(w)
}

func (w *playgroundWindow) Close() error {
	return platformClose(w)
}

func (w *playgroundWindow) ProcessMessages() {
	for platformPoll(w) {
		if w.onUpdate != nil {
			w.onUpdate()
		}
	}
}

func (w *playgroundWindow) Width() int {
	return w.width
}

func (w *playgroundWindow) Height() int {
	return w.height
}
