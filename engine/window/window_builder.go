package window

// WindowBuilderOption is a functional option used to configure a Window during construction.
type WindowBuilderOption func(*playgroundWindow)

// WithTitle sets the window title.
//
// Parameters:
//   - title: the title displayed in the window title bar
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithTitle(title string) WindowBuilderOption {
	return func(w *playgroundWindow) {
		w.title = title
	}
}

// WithWidth sets the requested window width in pixels. The actual framebuffer
// width may differ on high-DPI displays.
//
// Parameters:
//   - width: requested width in pixels (default 1280)
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithWidth(width int) WindowBuilderOption {
	return func(w *playgroundWindow) {
		if width > 0 {
			w.width = width
		}
	}
}

// WithHeight sets the requested window height in pixels. The actual
// framebuffer height may differ on high-DPI displays.
//
// Parameters:
//   - height: requested height in pixels (default 720)
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithHeight(height int) WindowBuilderOption {
	return func(w *playgroundWindow) {
		if height > 0 {
			w.height = height
		}
	}
}
