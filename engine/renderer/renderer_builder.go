package renderer

import (
	"log/slog"

	"github.com/go-gl/mathgl/mgl32"
)

// RendererBuilderOption is a functional option applied to a renderer during construction via NewRenderer.
type RendererBuilderOption func(*renderer)

// WithLogger sets the logger used by the renderer and its 2D batch renderer.
//
// Parameters:
//   - l: the logger
//
// Returns:
//   - RendererBuilderOption: a function that applies the logger option to a renderer
func WithLogger(l *slog.Logger) RendererBuilderOption {
	return func(r *renderer) {
		r.logger = l
	}
}

// WithClearColor sets the color applied by Init and used by RenderCommand.Clear.
//
// Parameters:
//   - color: RGBA clear color
//
// Returns:
//   - RendererBuilderOption: a function that applies the clear color option to a renderer
func WithClearColor(color mgl32.Vec4) RendererBuilderOption {
	return func(r *renderer) {
		r.clearColor = color
	}
}

// WithBlending toggles alpha blending. Enabled by default.
//
// Parameters:
//   - enabled: true to enable blending
//
// Returns:
//   - RendererBuilderOption: a function that applies the blending option to a renderer
func WithBlending(enabled bool) RendererBuilderOption {
	return func(r *renderer) {
		r.blending = enabled
	}
}

// WithDepthTest toggles depth testing. Enabled by default.
//
// Parameters:
//   - enabled: true to enable depth testing
//
// Returns:
//   - RendererBuilderOption: a function that applies the depth test option to a renderer
func WithDepthTest(enabled bool) RendererBuilderOption {
	return func(r *renderer) {
		r.depthTest = enabled
	}
}

// WithMaxQuads sets how many quads the 2D renderer batches before flushing.
// Non-positive values keep the default.
//
// Parameters:
//   - n: quads per batch
//
// Returns:
//   - RendererBuilderOption: a function that applies the batch size option to a renderer
func WithMaxQuads(n int) RendererBuilderOption {
	return func(r *renderer) {
		if n > 0 {
			r.maxQuads = n
		}
	}
}

// WithMinimumVersion overrides the minimum OpenGL version Init accepts.
//
// Parameters:
//   - version: a "major.minor" version
//
// Returns:
//   - RendererBuilderOption: a function that applies the version option to a renderer
func WithMinimumVersion(version string) RendererBuilderOption {
	return func(r *renderer) {
		r.minVersion = version
	}
}
