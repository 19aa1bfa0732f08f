package overlay

import (
	"log/slog"

	"github.com/Carmen-Shannon/oxy-gl/common"
	"github.com/Carmen-Shannon/oxy-gl/engine/profiler"
)

type OverlayBuilderOption func(*overlayImpl)

// WithLogger sets the logger panels are reported to.
//
// Parameters:
//   - l: the logger
//
// Returns:
//   - OverlayBuilderOption: a function that sets the logger
func WithLogger(l *slog.Logger) OverlayBuilderOption {
	return func(o *overlayImpl) {
		o.logger = l
	}
}

// WithProfiler replaces the profiler ticked by End.
//
// Parameters:
//   - p: the profiler
//
// Returns:
//   - OverlayBuilderOption: a function that sets the profiler
func WithProfiler(p *profiler.Profiler) OverlayBuilderOption {
	return func(o *overlayImpl) {
		o.profiler = p
	}
}

// WithToggleKey sets the key that shows and hides the overlay. The default is F3.
//
// Parameters:
//   - key: the toggle key
//
// Returns:
//   - OverlayBuilderOption: a function that sets the toggle key
func WithToggleKey(key common.Key) OverlayBuilderOption {
	return func(o *overlayImpl) {
		o.toggleKey = key
	}
}

// WithHidden starts the overlay hidden.
//
// Returns:
//   - OverlayBuilderOption: a function that hides the overlay
func WithHidden() OverlayBuilderOption {
	return func(o *overlayImpl) {
		o.visible = false
	}
}
