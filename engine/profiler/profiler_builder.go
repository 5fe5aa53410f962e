package profiler

import "time"

// ProfilerBuilderOption is a functional option for configuring a Profiler during construction.
type ProfilerBuilderOption func(*Profiler)

// WithInterval sets the interval between logged summaries.
//
// Parameters:
//   - interval: the log interval (values <= 0 are ignored)
//
// Returns:
//   - ProfilerBuilderOption: the option to apply
func WithInterval(interval time.Duration) ProfilerBuilderOption {
	return func(p *Profiler) {
		if interval > 0 {
			p.updateInterval = interval
		}
	}
}
