package renderer

// RendererBuilderOption is a functional option used to configure a Renderer during construction.
type RendererBuilderOption func(*wgpuRenderer)

// WithPresentMode sets the surface present mode. Takes effect on the next
// surface configuration (initial sizing or Resize).
//
// Parameters:
//   - mode: the present mode (default PresentModeUncapped)
//
// Returns:
//   - RendererBuilderOption: option function to apply
func WithPresentMode(mode PresentMode) RendererBuilderOption {
	return func(r *wgpuRenderer) {
		r.setPresentMode(mode)
	}
}

// WithDepthDownsample enables or disables the half-resolution depth helper
// target used by effects that can trade precision for bandwidth.
//
// Parameters:
//   - enabled: if true, the half_depth target is created (default true)
//
// Returns:
//   - RendererBuilderOption: option function to apply
func WithDepthDownsample(enabled bool) RendererBuilderOption {
	return func(r *wgpuRenderer) {
		r.halfDepthEnabled = enabled
	}
}
