package buffer

import "github.com/Carmen-Shannon/oxy-gl/engine/gpu"

// VertexBufferBuilderOption is a functional option applied to a vertex buffer during construction.
type VertexBufferBuilderOption func(*vertexBuffer)

// WithLayout sets the vertex layout at construction time.
//
// Parameters:
//   - layout: the vertex layout
//
// Returns:
//   - VertexBufferBuilderOption: a function that applies the layout option to a vertex buffer
func WithLayout(layout Layout) VertexBufferBuilderOption {
	return func(vb *vertexBuffer) {
		vb.layout = layout
	}
}

// WithUsage overrides the update frequency hint of the buffer.
//
// Parameters:
//   - usage: gpu.StaticDraw or gpu.DynamicDraw
//
// Returns:
//   - VertexBufferBuilderOption: a function that applies the usage option to a vertex buffer
func WithUsage(usage gpu.BufferUsage) VertexBufferBuilderOption {
	return func(vb *vertexBuffer) {
		vb.usage = usage
	}
}
