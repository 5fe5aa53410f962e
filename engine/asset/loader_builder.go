package asset

// LoaderBuilderOption is a functional option for configuring a Loader during construction.
type LoaderBuilderOption func(*loaderImpl, *int)

// WithWorkers sets the number of pool workers used for asset fetches.
//
// Parameters:
//   - workers: the worker count (values below 1 are ignored)
//
// Returns:
//   - LoaderBuilderOption: the option to apply
func WithWorkers(workers int) LoaderBuilderOption {
	return func(_ *loaderImpl, w *int) {
		if workers >= 1 {
			*w = workers
		}
	}
}

// WithMaxDimension sets the maximum width/height of decoded images. Larger
// images are rescaled, preserving aspect ratio.
//
// Parameters:
//   - maxDim: the maximum dimension in pixels
//
// Returns:
//   - LoaderBuilderOption: the option to apply
func WithMaxDimension(maxDim int) LoaderBuilderOption {
	return func(l *loaderImpl, _ *int) {
		if maxDim >= 1 {
			l.maxDim = maxDim
		}
	}
}
