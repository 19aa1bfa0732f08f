package buffer

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-gl/common"
	"github.com/Carmen-Shannon/oxy-gl/engine/gpu"
)

// VertexBuffer is a GPU buffer of interleaved vertex data described by a Layout.
type VertexBuffer interface {
	// Bind binds the buffer to the array buffer target.
	Bind()

	// Unbind clears the array buffer binding.
	Unbind()

	// SetLayout sets the layout describing one vertex of this buffer.
	//
	// Parameters:
	//   - layout: the vertex layout
	SetLayout(layout Layout)

	// Layout returns the layout set with SetLayout (empty until set).
	//
	// Returns:
	//   - Layout: the vertex layout
	Layout() Layout

	// SetData overwrites the start of the buffer with vertices. The data is copied and not retained.
	// Panics if the data does not fit the allocated storage.
	//
	// Parameters:
	//   - vertices: the vertex data
	SetData(vertices []float32)

	// SetBytes overwrites the start of the buffer with raw bytes. Panics if the data does not fit.
	//
	// Parameters:
	//   - data: the raw vertex bytes
	SetBytes(data []byte)

	// Size returns the allocated storage in bytes.
	//
	// Returns:
	//   - int: storage size
	Size() int

	// Handle returns the GPU buffer object.
	//
	// Returns:
	//   - gpu.Handle: the buffer object
	Handle() gpu.Handle

	// Destroy releases the GPU buffer. Further calls are no-ops.
	Destroy()
}

// vertexBuffer is the implementation of the VertexBuffer interface.
type vertexBuffer struct {
	device gpu.Device
	handle gpu.Handle
	layout Layout
	size   int
	usage  gpu.BufferUsage
}

var _ VertexBuffer = &vertexBuffer{}

// NewVertexBuffer creates a static vertex buffer and uploads a copy of vertices.
//
// Parameters:
//   - device: the GPU device
//   - vertices: the vertex data
//   - options: functional options to configure the buffer
//
// Returns:
//   - VertexBuffer: the new vertex buffer
func NewVertexBuffer(device gpu.Device, vertices []float32, options ...VertexBufferBuilderOption) VertexBuffer {
	data := common.SliceToBytes(vertices)
	vb := &vertexBuffer{
		device: device,
		size:   len(data),
		usage:  gpu.StaticDraw,
	}
	for _, opt := range options {
		opt(vb)
	}
	vb.handle = device.CreateBuffer(gpu.ArrayBuffer, data, vb.size, vb.usage)
	return vb
}

// NewDynamicVertexBuffer allocates size bytes of vertex storage to be filled later with SetData.
//
// Parameters:
//   - device: the GPU device
//   - size: storage size in bytes
//   - options: functional options to configure the buffer
//
// Returns:
//   - VertexBuffer: the new vertex buffer
func NewDynamicVertexBuffer(device gpu.Device, size int, options ...VertexBufferBuilderOption) VertexBuffer {
	vb := &vertexBuffer{
		device: device,
		size:   size,
		usage:  gpu.DynamicDraw,
	}
	for _, opt := range options {
		opt(vb)
	}
	vb.handle = device.CreateBuffer(gpu.ArrayBuffer, nil, vb.size, vb.usage)
	return vb
}

func (vb *vertexBuffer) Bind() {
	vb.device.BindBuffer(gpu.ArrayBuffer, vb.handle)
}

func (vb *vertexBuffer) Unbind() {
	vb.device.BindBuffer(gpu.ArrayBuffer, gpu.NoHandle)
}

func (vb *vertexBuffer) SetLayout(layout Layout) {
	vb.layout = layout
}

func (vb *vertexBuffer) Layout() Layout {
	return vb.layout
}

func (vb *vertexBuffer) SetData(vertices []float32) {
	vb.SetBytes(common.SliceToBytes(vertices))
}

func (vb *vertexBuffer) SetBytes(data []byte) {
	if len(data) > vb.size {
		panic(fmt.Sprintf("vertex data of %d bytes exceeds buffer size %d", len(data), vb.size))
	}
	vb.device.BufferSubData(gpu.ArrayBuffer, vb.handle, 0, data)
}

func (vb *vertexBuffer) Size() int {
	return vb.size
}

func (vb *vertexBuffer) Handle() gpu.Handle {
	return vb.handle
}

func (vb *vertexBuffer) Destroy() {
	if vb.handle == gpu.NoHandle {
		return
	}
	vb.device.DeleteBuffer(vb.handle)
	vb.handle = gpu.NoHandle
}
