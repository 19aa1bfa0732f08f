package texture

import "github.com/Carmen-Shannon/oxy-gl/engine/gpu"

// TextureBuilderOption is a functional option applied to a texture during construction.
type TextureBuilderOption func(*texture2D)

// WithFilter sets the minification and magnification filter. Defaults to gpu.FilterLinear.
//
// Parameters:
//   - filter: the sampling filter
//
// Returns:
//   - TextureBuilderOption: a function that applies the filter option to a texture
func WithFilter(filter gpu.TextureFilter) TextureBuilderOption {
	return func(t *texture2D) {
		t.filter = filter
	}
}

// WithWrap sets the addressing mode outside of [0, 1]. Defaults to gpu.WrapRepeat.
//
// Parameters:
//   - wrap: the wrap mode
//
// Returns:
//   - TextureBuilderOption: a function that applies the wrap option to a texture
func WithWrap(wrap gpu.TextureWrap) TextureBuilderOption {
	return func(t *texture2D) {
		t.wrap = wrap
	}
}

// withPath records the source file of a loaded texture.
func withPath(path string) TextureBuilderOption {
	return func(t *texture2D) {
		t.path = path
	}
}
