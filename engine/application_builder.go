package engine

import (
	"log/slog"
	"time"

	"github.com/Carmen-Shannon/oxy-gl/engine/config"
	"github.com/Carmen-Shannon/oxy-gl/engine/gpu"
	"github.com/Carmen-Shannon/oxy-gl/engine/overlay"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/shader"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/texture"
	"github.com/Carmen-Shannon/oxy-gl/engine/window"
)

// ApplicationBuilderOption is a functional option for configuring an Application.
// Use the With* functions to create options that are applied directly to the application instance.
type ApplicationBuilderOption func(*application)

// WithConfig sets the configuration the window, renderer, loggers and loaders are built from.
//
// Parameters:
//   - cfg: the configuration
//
// Returns:
//   - ApplicationBuilderOption: option function to apply
func WithConfig(cfg config.Config) ApplicationBuilderOption {
	return func(a *application) {
		a.cfg = cfg
	}
}

// WithWindowFactory sets the factory used to open the window from the configuration.
//
// Parameters:
//   - factory: the window factory
//
// Returns:
//   - ApplicationBuilderOption: option function to apply
func WithWindowFactory(factory window.Factory) ApplicationBuilderOption {
	return func(a *application) {
		a.windowFactory = factory
	}
}

// WithWindow sets an already opened window for the application to use rather than opening one
// through the window factory. The application takes ownership and closes it in Close.
//
// Parameters:
//   - w: a pre-configured Window instance
//
// Returns:
//   - ApplicationBuilderOption: option function to apply
func WithWindow(w window.Window) ApplicationBuilderOption {
	return func(a *application) {
		a.window = w
	}
}

// WithDevice sets the GPU device bound to the window's context.
//
// Parameters:
//   - device: the GPU device
//
// Returns:
//   - ApplicationBuilderOption: option function to apply
func WithDevice(device gpu.Device) ApplicationBuilderOption {
	return func(a *application) {
		a.device = device
	}
}

// WithLogger sets the engine logger. Without it the process-wide loggers are rebuilt from the
// configuration's log section.
//
// Parameters:
//   - l: the logger
//
// Returns:
//   - ApplicationBuilderOption: option function to apply
func WithLogger(l *slog.Logger) ApplicationBuilderOption {
	return func(a *application) {
		a.logger = l
	}
}

// WithShaderLibrary replaces the default shader library.
//
// Parameters:
//   - lib: the shader library
//
// Returns:
//   - ApplicationBuilderOption: option function to apply
func WithShaderLibrary(lib shader.Library) ApplicationBuilderOption {
	return func(a *application) {
		a.shaders = lib
	}
}

// WithTextureLoader replaces the default texture loader.
//
// Parameters:
//   - l: the texture loader
//
// Returns:
//   - ApplicationBuilderOption: option function to apply
func WithTextureLoader(l texture.Loader) ApplicationBuilderOption {
	return func(a *application) {
		a.textures = l
	}
}

// WithOverlay replaces the default debug overlay.
//
// Parameters:
//   - o: the overlay layer
//
// Returns:
//   - ApplicationBuilderOption: option function to apply
func WithOverlay(o overlay.Overlay) ApplicationBuilderOption {
	return func(a *application) {
		a.overlay = o
	}
}

// WithClock sets the time source used for frame timesteps and profiling.
//
// Parameters:
//   - now: returns the current time
//
// Returns:
//   - ApplicationBuilderOption: option function to apply
func WithClock(now func() time.Time) ApplicationBuilderOption {
	return func(a *application) {
		if now != nil {
			a.now = now
		}
	}
}
